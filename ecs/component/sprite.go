package component

import "image/color"

// Sprite names an image in the render registry. Components never hold
// images themselves so headless runs can build the same entities.
type Sprite struct {
	Key     string
	OriginX float64
	OriginY float64
	// Centered draws the image around its center, ignoring the origin.
	Centered bool
	Tint     color.RGBA
	Hidden   bool
}

var SpriteComponent = NewComponent[Sprite]()
