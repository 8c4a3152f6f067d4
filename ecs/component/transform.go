package component

// Transform is where an entity is drawn. Rotation is the sprite heading in
// radians; sprites face up at rotation zero.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
