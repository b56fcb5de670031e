package math

// Transform2D is a 2D pose: position, rotation about Z in radians, scale.
type Transform2D struct {
	Position Vec2
	Rotation float32
	Scale    Vec2
}

func NewTransform2D() Transform2D {
	return Transform2D{Scale: Vec2{X: 1, Y: 1}}
}

// ToMatrix composes translate × rotate × scale.
func (t Transform2D) ToMatrix() Mat4 {
	tr := NewMat4Translation(Vec3{X: t.Position.X, Y: t.Position.Y})
	rot := NewMat4RotationZ(t.Rotation)
	sc := NewMat4Scale(Vec3{X: t.Scale.X, Y: t.Scale.Y, Z: 1})
	return tr.Mul(rot).Mul(sc)
}

// Transform3D is a 3D pose: position, orientation, scale.
type Transform3D struct {
	Position Vec3
	Rotation Quaternion
	Scale    Vec3
}

func NewTransform3D() Transform3D {
	return Transform3D{Rotation: NewQuatIdentity(), Scale: NewVec3One()}
}

func NewTransform3DFromPosition(position Vec3) Transform3D {
	t := NewTransform3D()
	t.Position = position
	return t
}

// ToMatrix composes translate × rotate × scale.
func (t Transform3D) ToMatrix() Mat4 {
	tr := NewMat4Translation(t.Position)
	rot := t.Rotation.ToMat4()
	sc := NewMat4Scale(t.Scale)
	return tr.Mul(rot).Mul(sc)
}
