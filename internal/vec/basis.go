package vec

import "math"

// Basis is an orthonormal orientation triad. Forward points along the
// body nose, Up along the wing normal, Right completes the right-handed set.
type Basis struct {
	Forward Vec3
	Up      Vec3
	Right   Vec3
}

// IdentityBasis returns the reference orientation: nose along +Z, up along +Y.
func IdentityBasis() Basis {
	return Basis{
		Forward: Vec3{Z: 1},
		Up:      Vec3{Y: 1},
		Right:   Vec3{X: 1},
	}
}

// BasisFromForward builds an orientation whose nose points along dir,
// keeping the up axis as close to world up as possible. A vertical dir
// falls back to the identity up reference.
func BasisFromForward(dir Vec3) Basis {
	f := dir.Normalize()
	if f.IsZero() {
		return IdentityBasis()
	}
	worldUp := Vec3{Y: 1}
	right := worldUp.Cross(f)
	if right.Len() < 1e-9 {
		// nose straight up or down
		right = Vec3{X: 1}
	}
	right = right.Normalize()
	up := f.Cross(right).Normalize()
	return Basis{Forward: f, Up: up, Right: right}
}

// Rotate returns the basis rotated around axis by angle radians.
func (b Basis) Rotate(axis Vec3, angle float64) Basis {
	return Basis{
		Forward: b.Forward.RotateAround(axis, angle),
		Up:      b.Up.RotateAround(axis, angle),
		Right:   b.Right.RotateAround(axis, angle),
	}
}

// Renormalize re-orthogonalizes the triad. Incremental rotations drift the
// axes away from unit length and orthogonality after many steps.
func (b Basis) Renormalize() Basis {
	f := b.Forward.Normalize()
	if f.IsZero() {
		return IdentityBasis()
	}
	right := b.Up.Cross(f)
	if right.Len() < 1e-9 {
		return BasisFromForward(f)
	}
	right = right.Normalize()
	up := f.Cross(right).Normalize()
	return Basis{Forward: f, Up: up, Right: right}
}

// BankAngle returns the roll angle in radians: how far the up axis has
// tilted toward the right axis, measured against world up.
func (b Basis) BankAngle() float64 {
	// Project world up onto the plane normal to forward, then measure
	// the angle to the body up axis, signed by the right axis.
	worldUp := Vec3{Y: 1}
	proj := worldUp.Sub(b.Forward.Scale(worldUp.Dot(b.Forward)))
	if proj.Len() < 1e-9 {
		return 0
	}
	proj = proj.Normalize()
	cos := math.Max(-1, math.Min(1, proj.Dot(b.Up)))
	angle := math.Acos(cos)
	if proj.Dot(b.Right) < 0 {
		angle = -angle
	}
	return angle
}
