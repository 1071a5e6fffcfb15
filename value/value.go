// Package value holds the engine value types that arcs knows how to serialize.
//
// Most types are plain structs with exported fields. A few keep their state private and are only
// reachable through accessors and constructors (Transform, Matrix2x2, Quat2D, Scale, Scale2D, Shear2D),
// and their codecs have to go through those as well.
package value

// Vector is a point or direction in 3D space.
type Vector struct {
	X, Y, Z float64
}

// Vector2D is a point or direction in 2D space.
type Vector2D struct {
	X, Y float64
}

// Rotator is a rotation in degrees.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the rotation that does nothing.
var QuatIdentity = Quat{W: 1}

// Plane is the plane X*x + Y*y + Z*z = W.
type Plane struct {
	X, Y, Z, W float64
}

// Sphere is a sphere of radius W around Center.
type Sphere struct {
	Center Vector
	W      float64
}

// Capsule is a capsule shape.
type Capsule struct {
	Center      Vector
	Radius      float64
	Orientation Vector
	Length      float64
}

// OrientedBox is a box with arbitrary axes.
type OrientedBox struct {
	Center                    Vector
	AxisX, AxisY, AxisZ       Vector
	ExtentX, ExtentY, ExtentZ float64
}

// TwoVectors is a pair of vectors.
type TwoVectors struct {
	V1, V2 Vector
}

// IntPoint is a point on an integer grid.
type IntPoint struct {
	X, Y int32
}

// IntRect is a rectangle on an integer grid.
type IntRect struct {
	Min, Max IntPoint
}

// IntVector is a 3D integer vector.
type IntVector struct {
	X, Y, Z int32
}

// IntVector4 is a 4D integer vector.
type IntVector4 struct {
	X, Y, Z, W int32
}

// UintVector4 is a 4D unsigned integer vector.
type UintVector4 struct {
	X, Y, Z, W uint32
}

// Color is an 8 bit per channel sRGB color.
type Color struct {
	R, G, B, A uint8
}

// LinearColor is a floating point linear color.
type LinearColor struct {
	R, G, B, A float32
}

// Matrix is a 4x4 matrix, indexed [row][column].
type Matrix struct {
	M [4][4]float64
}

// MatrixIdentity is the identity matrix.
var MatrixIdentity = Matrix{M: [4][4]float64{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}}
