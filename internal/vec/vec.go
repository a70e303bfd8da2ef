// Package vec provides the 3D vector and orientation math used by the
// flight simulation. Coordinates are right-handed with Y up.
package vec

import "math"

// Vec3 is a 3D vector with X=east, Y=up, Z=north.
type Vec3 struct{ X, Y, Z float64 }

// New creates a vector from its components.
func New(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies every component by k.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean magnitude.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSq returns the squared magnitude, avoiding the sqrt.
func (v Vec3) LenSq() float64 { return v.Dot(v) }

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to the zero vector rather than NaN.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// IsValid reports whether no component is NaN or Inf.
func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// RotateAround rotates v around the given axis by angle radians using the
// Rodrigues rotation formula. The axis must be unit length.
func (v Vec3) RotateAround(axis Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	term1 := v.Scale(cos)
	term2 := axis.Cross(v).Scale(sin)
	term3 := axis.Scale(axis.Dot(v) * (1 - cos))
	return term1.Add(term2).Add(term3)
}
