package value

// NewTransform returns a transform that scales, then rotates, then translates.
func NewTransform(rotation Quat, translation, scale Vector) Transform {
	return Transform{
		translation: translation,
		rotation:    rotation,
		scale:       scale,
	}
}

// TransformIdentity is the transform that does nothing.
var TransformIdentity = NewTransform(QuatIdentity, Vector{}, Vector{X: 1, Y: 1, Z: 1})

// Transform is a rotation, translation and 3D scale.
// Its components are only reachable through methods.
type Transform struct {
	translation Vector
	rotation    Quat
	scale       Vector
}

// Rotation returns the rotation of t.
func (t Transform) Rotation() Quat { return t.rotation }

// Translation returns the translation of t.
func (t Transform) Translation() Vector { return t.translation }

// Scale3D returns the scale of t.
func (t Transform) Scale3D() Vector { return t.scale }

// SetRotation sets the rotation of t.
func (t *Transform) SetRotation(q Quat) { t.rotation = q }

// SetTranslation sets the translation of t.
func (t *Transform) SetTranslation(v Vector) { t.translation = v }

// SetScale3D sets the scale of t.
func (t *Transform) SetScale3D(v Vector) { t.scale = v }

// NewMatrix2x2 returns the matrix
//
//	| m00 m01 |
//	| m10 m11 |
func NewMatrix2x2(m00, m01, m10, m11 float32) Matrix2x2 {
	return Matrix2x2{m: [2][2]float32{{m00, m01}, {m10, m11}}}
}

// Matrix2x2 is a 2x2 matrix, used for 2D transforms.
type Matrix2x2 struct {
	m [2][2]float32
}

// Matrix returns the elements of m in row major order.
func (m Matrix2x2) Matrix() (m00, m01, m10, m11 float32) {
	return m.m[0][0], m.m[0][1], m.m[1][0], m.m[1][1]
}

// NewQuat2D returns the 2D rotation with the given rotation vector.
func NewQuat2D(v Vector2D) Quat2D { return Quat2D{v: v} }

// Quat2D is a 2D rotation, stored as a unit vector (cos, sin).
type Quat2D struct {
	v Vector2D
}

// Vector returns the rotation vector of q.
func (q Quat2D) Vector() Vector2D { return q.v }

// NewScale returns a 3D scale.
func NewScale(v Vector) Scale { return Scale{v: v} }

// Scale is a 3D scale.
type Scale struct {
	v Vector
}

// Vector returns the per axis scale factors.
func (s Scale) Vector() Vector { return s.v }

// NewScale2D returns a 2D scale.
func NewScale2D(v Vector2D) Scale2D { return Scale2D{v: v} }

// Scale2D is a 2D scale.
type Scale2D struct {
	v Vector2D
}

// Vector returns the per axis scale factors.
func (s Scale2D) Vector() Vector2D { return s.v }

// NewShear2D returns a 2D shear.
func NewShear2D(v Vector2D) Shear2D { return Shear2D{v: v} }

// Shear2D is a 2D shear.
type Shear2D struct {
	v Vector2D
}

// Vector returns the shear along each axis.
func (s Shear2D) Vector() Vector2D { return s.v }
