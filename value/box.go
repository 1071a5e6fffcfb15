package value

// NewBox returns the valid box spanning min and max.
func NewBox(min, max Vector) Box {
	return Box{Min: min, Max: max, IsValid: true}
}

// Box is an axis aligned box.
// The zero Box is invalid; it contains nothing.
type Box struct {
	Min, Max Vector
	IsValid  bool
}

// Contains returns true if p is inside b.
func (b Box) Contains(p Vector) bool {
	return b.IsValid &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// NewBox2D returns the valid 2D box spanning min and max.
func NewBox2D(min, max Vector2D) Box2D {
	return Box2D{Min: min, Max: max, IsValid: true}
}

// Box2D is an axis aligned rectangle.
type Box2D struct {
	Min, Max Vector2D
	IsValid  bool
}

// Contains returns true if p is inside b.
func (b Box2D) Contains(p Vector2D) bool {
	return b.IsValid &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
