package codec

import (
	"strconv"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/value"
)

// Vector serializes a value.Vector as X, Y, Z.
func Vector(ar archive.Archive, name string, v *value.Vector) error {
	return Object(ar, name,
		Bind(Float64, "X", &v.X),
		Bind(Float64, "Y", &v.Y),
		Bind(Float64, "Z", &v.Z),
	)
}

// Rotator serializes a value.Rotator as Pitch, Roll, Yaw.
func Rotator(ar archive.Archive, name string, v *value.Rotator) error {
	return Object(ar, name,
		Bind(Float64, "Pitch", &v.Pitch),
		Bind(Float64, "Roll", &v.Roll),
		Bind(Float64, "Yaw", &v.Yaw),
	)
}

// Quat serializes a value.Quat as W, X, Y, Z.
func Quat(ar archive.Archive, name string, v *value.Quat) error {
	return Object(ar, name,
		Bind(Float64, "W", &v.W),
		Bind(Float64, "X", &v.X),
		Bind(Float64, "Y", &v.Y),
		Bind(Float64, "Z", &v.Z),
	)
}

// Transform serializes a value.Transform as Rotation, Scale3D, Translation.
var Transform = Split(EncodeTransform, DecodeTransform)

// EncodeTransform saves t through its accessors.
func EncodeTransform(ar archive.Archive, name string, t value.Transform) error {
	rotation, scale, translation := t.Rotation(), t.Scale3D(), t.Translation()
	return Object(ar, name,
		Bind(Quat, "Rotation", &rotation),
		Bind(Vector, "Scale3D", &scale),
		Bind(Vector, "Translation", &translation),
	)
}

// DecodeTransform loads a transform saved by EncodeTransform.
// Components are applied in the order they are stored; rotation, then scale, then translation.
func DecodeTransform(ar archive.Archive, name string) (value.Transform, error) {
	var (
		rotation           value.Quat
		scale, translation value.Vector
	)
	err := Object(ar, name,
		Bind(Quat, "Rotation", &rotation),
		Bind(Vector, "Scale3D", &scale),
		Bind(Vector, "Translation", &translation),
	)
	if err != nil {
		return value.Transform{}, err
	}

	var t value.Transform
	t.SetRotation(rotation)
	t.SetScale3D(scale)
	t.SetTranslation(translation)
	return t, nil
}

// Vector2D serializes a value.Vector2D as X, Y.
func Vector2D(ar archive.Archive, name string, v *value.Vector2D) error {
	return Object(ar, name,
		Bind(Float64, "X", &v.X),
		Bind(Float64, "Y", &v.Y),
	)
}

// TwoVectors serializes a value.TwoVectors as v1, v2.
func TwoVectors(ar archive.Archive, name string, v *value.TwoVectors) error {
	return Object(ar, name,
		Bind(Vector, "v1", &v.V1),
		Bind(Vector, "v2", &v.V2),
	)
}

// Plane serializes a value.Plane as X, Y, Z, W.
func Plane(ar archive.Archive, name string, v *value.Plane) error {
	return Object(ar, name,
		Bind(Float64, "X", &v.X),
		Bind(Float64, "Y", &v.Y),
		Bind(Float64, "Z", &v.Z),
		Bind(Float64, "W", &v.W),
	)
}

// Sphere serializes a value.Sphere as Center, W.
func Sphere(ar archive.Archive, name string, v *value.Sphere) error {
	return Object(ar, name,
		Bind(Vector, "Center", &v.Center),
		Bind(Float64, "W", &v.W),
	)
}

// Capsule serializes a value.Capsule as Center, Radius, Orientation, Length.
func Capsule(ar archive.Archive, name string, v *value.Capsule) error {
	return Object(ar, name,
		Bind(Vector, "Center", &v.Center),
		Bind(Float64, "Radius", &v.Radius),
		Bind(Vector, "Orientation", &v.Orientation),
		Bind(Float64, "Length", &v.Length),
	)
}

// OrientedBox serializes a value.OrientedBox as AxisX, AxisY, AxisZ, Center, ExtentX, ExtentY, ExtentZ.
func OrientedBox(ar archive.Archive, name string, v *value.OrientedBox) error {
	return Object(ar, name,
		Bind(Vector, "AxisX", &v.AxisX),
		Bind(Vector, "AxisY", &v.AxisY),
		Bind(Vector, "AxisZ", &v.AxisZ),
		Bind(Vector, "Center", &v.Center),
		Bind(Float64, "ExtentX", &v.ExtentX),
		Bind(Float64, "ExtentY", &v.ExtentY),
		Bind(Float64, "ExtentZ", &v.ExtentZ),
	)
}

// Box serializes a value.Box as IsValid, Min, Max.
func Box(ar archive.Archive, name string, v *value.Box) error {
	return Object(ar, name,
		Bind(Bool, "IsValid", &v.IsValid),
		Bind(Vector, "Min", &v.Min),
		Bind(Vector, "Max", &v.Max),
	)
}

// Box2D serializes a value.Box2D as bIsValid, Min, Max.
func Box2D(ar archive.Archive, name string, v *value.Box2D) error {
	return Object(ar, name,
		Bind(Bool, "bIsValid", &v.IsValid),
		Bind(Vector2D, "Min", &v.Min),
		Bind(Vector2D, "Max", &v.Max),
	)
}

// IntPoint serializes a value.IntPoint as X, Y.
func IntPoint(ar archive.Archive, name string, v *value.IntPoint) error {
	return Object(ar, name,
		Bind(Int32, "X", &v.X),
		Bind(Int32, "Y", &v.Y),
	)
}

// IntRect serializes a value.IntRect as Min, Max.
func IntRect(ar archive.Archive, name string, v *value.IntRect) error {
	return Object(ar, name,
		Bind(IntPoint, "Min", &v.Min),
		Bind(IntPoint, "Max", &v.Max),
	)
}

// IntVector serializes a value.IntVector as X, Y, Z.
func IntVector(ar archive.Archive, name string, v *value.IntVector) error {
	return Object(ar, name,
		Bind(Int32, "X", &v.X),
		Bind(Int32, "Y", &v.Y),
		Bind(Int32, "Z", &v.Z),
	)
}

// IntVector4 serializes a value.IntVector4 as X, Y, Z, W.
func IntVector4(ar archive.Archive, name string, v *value.IntVector4) error {
	return Object(ar, name,
		Bind(Int32, "X", &v.X),
		Bind(Int32, "Y", &v.Y),
		Bind(Int32, "Z", &v.Z),
		Bind(Int32, "W", &v.W),
	)
}

// UintVector4 serializes a value.UintVector4 as X, Y, Z, W.
func UintVector4(ar archive.Archive, name string, v *value.UintVector4) error {
	return Object(ar, name,
		Bind(Uint32, "X", &v.X),
		Bind(Uint32, "Y", &v.Y),
		Bind(Uint32, "Z", &v.Z),
		Bind(Uint32, "W", &v.W),
	)
}

// Color serializes a value.Color as R, G, B, A.
func Color(ar archive.Archive, name string, v *value.Color) error {
	return Object(ar, name,
		Bind(Uint8, "R", &v.R),
		Bind(Uint8, "G", &v.G),
		Bind(Uint8, "B", &v.B),
		Bind(Uint8, "A", &v.A),
	)
}

// LinearColor serializes a value.LinearColor as R, G, B, A.
func LinearColor(ar archive.Archive, name string, v *value.LinearColor) error {
	return Object(ar, name,
		Bind(Float32, "R", &v.R),
		Bind(Float32, "G", &v.G),
		Bind(Float32, "B", &v.B),
		Bind(Float32, "A", &v.A),
	)
}

// matrixNames[i][j] is "mij".
var matrixNames = func() (names [4][4]string) {
	for i := range names {
		for j := range names[i] {
			names[i][j] = "m" + strconv.Itoa(i) + strconv.Itoa(j)
		}
	}
	return
}()

// Matrix serializes a value.Matrix as m00, m01 ... m33, row by row.
func Matrix(ar archive.Archive, name string, m *value.Matrix) error {
	if err := ar.Begin(name); err != nil {
		return err
	}

	for i := range m.M {
		for j := range m.M[i] {
			if err := ar.Float64(matrixNames[i][j], &m.M[i][j]); err != nil {
				return err
			}
		}
	}

	return ar.End()
}

// Matrix2x2 serializes a value.Matrix2x2 as m00, m01, m10, m11.
var Matrix2x2 = Split(
	func(ar archive.Archive, name string, m value.Matrix2x2) error {
		m00, m01, m10, m11 := m.Matrix()
		return matrix2x2(ar, name, &m00, &m01, &m10, &m11)
	},
	func(ar archive.Archive, name string) (value.Matrix2x2, error) {
		var m00, m01, m10, m11 float32
		if err := matrix2x2(ar, name, &m00, &m01, &m10, &m11); err != nil {
			return value.Matrix2x2{}, err
		}
		return value.NewMatrix2x2(m00, m01, m10, m11), nil
	},
)

func matrix2x2(ar archive.Archive, name string, m00, m01, m10, m11 *float32) error {
	return Object(ar, name,
		Bind(Float32, "m00", m00),
		Bind(Float32, "m01", m01),
		Bind(Float32, "m10", m10),
		Bind(Float32, "m11", m11),
	)
}

// Kinds that only expose their state as a vector.
var (
	// Scale serializes a value.Scale as X, Y, Z.
	Scale = viaVector(value.NewScale)

	// Quat2D serializes a value.Quat2D as X, Y.
	Quat2D = viaVector2D(value.NewQuat2D)

	// Scale2D serializes a value.Scale2D as X, Y.
	Scale2D = viaVector2D(value.NewScale2D)

	// Shear2D serializes a value.Shear2D as X, Y.
	Shear2D = viaVector2D(value.NewShear2D)
)

func viaVector[T interface{ Vector() value.Vector }](construct func(value.Vector) T) Codec[T] {
	return Split(
		func(ar archive.Archive, name string, v T) error {
			vec := v.Vector()
			return Vector(ar, name, &vec)
		},
		func(ar archive.Archive, name string) (T, error) {
			var vec value.Vector
			if err := Vector(ar, name, &vec); err != nil {
				return *new(T), err
			}
			return construct(vec), nil
		},
	)
}

func viaVector2D[T interface{ Vector() value.Vector2D }](construct func(value.Vector2D) T) Codec[T] {
	return Split(
		func(ar archive.Archive, name string, v T) error {
			vec := v.Vector()
			return Vector2D(ar, name, &vec)
		},
		func(ar archive.Archive, name string) (T, error) {
			var vec value.Vector2D
			if err := Vector2D(ar, name, &vec); err != nil {
				return *new(T), err
			}
			return construct(vec), nil
		},
	)
}
