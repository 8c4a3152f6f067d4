package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// WaypointRadius is the radius of waypoint and walker discs.
const WaypointRadius = 14

// Shapes are drawn white so the sprite tint picks their color.
var shapes = map[string]func() *ebiten.Image{
	"koi":       koi,
	"disc":      disc,
	"ring":      ring,
	"crosshair": crosshair,
}

// koi is a small fish facing up: head, body and a forked tail.
func koi() *ebiten.Image {
	img := ebiten.NewImage(12, 24)
	vector.FillCircle(img, 6, 6, 5, color.White, true)
	vector.FillCircle(img, 6, 11, 4, color.White, true)
	vector.StrokeLine(img, 6, 14, 6, 19, 3, color.White, true)
	vector.StrokeLine(img, 6, 19, 2, 23, 2, color.White, true)
	vector.StrokeLine(img, 6, 19, 10, 23, 2, color.White, true)
	// Eyes.
	vector.FillCircle(img, 4, 4, 1, color.Black, true)
	vector.FillCircle(img, 8, 4, 1, color.Black, true)
	return img
}

func disc() *ebiten.Image {
	size := 2*WaypointRadius + 2
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.FillCircle(img, c, c, WaypointRadius, color.White, true)
	return img
}

func ring() *ebiten.Image {
	size := 2*WaypointRadius + 8
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.StrokeCircle(img, c, c, WaypointRadius+2, 2, color.White, true)
	return img
}

func crosshair() *ebiten.Image {
	img := ebiten.NewImage(21, 21)
	vector.StrokeLine(img, 10.5, 0, 10.5, 21, 1, color.White, false)
	vector.StrokeLine(img, 0, 10.5, 21, 10.5, 1, color.White, false)
	vector.StrokeCircle(img, 10.5, 10.5, 6, 1, color.White, true)
	return img
}
