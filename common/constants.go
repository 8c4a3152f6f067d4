package common

// Resolution is a window size in pixels.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

var (
	HD     = Resolution{1280, 720}
	FullHD = Resolution{1920, 1080}
	UHD    = Resolution{3840, 2160}
	WXGA   = Resolution{1280, 800}
	WUXGA  = Resolution{1920, 1200}
)

// Resolutions maps the names accepted in scenario files.
var Resolutions = map[string]Resolution{
	"hd":      HD,
	"full_hd": FullHD,
	"uhd":     UHD,
	"wxga":    WXGA,
	"wuxga":   WUXGA,
}
