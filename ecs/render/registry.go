package render

import "github.com/hajimehoshi/ebiten/v2"

var images = map[string]*ebiten.Image{}

// GetImage returns a cached image by key, building the procedural sprites
// on first use.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	if img, ok := images[key]; ok {
		return img
	}
	build, ok := shapes[key]
	if !ok {
		return nil
	}
	img := build()
	images[key] = img
	return img
}
