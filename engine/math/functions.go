package math

import (
	gomath "math"
)

func NewVec2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func NewVec3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func NewVec3Zero() Vec3 { return Vec3{} }

func NewVec3One() Vec3 { return Vec3{X: 1, Y: 1, Z: 1} }

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(gomath.Sqrt(float64(v.Dot(v))))
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1.0 / l)
}

func NewQuatIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

// NewQuatFromAxisAngle builds a quaternion rotating angle radians about axis.
func NewQuatFromAxisAngle(axis Vec3, angle float32) Quaternion {
	half := float64(angle) * 0.5
	s := float32(gomath.Sin(half))
	a := axis.Normalize()
	return Quaternion{
		X: a.X * s,
		Y: a.Y * s,
		Z: a.Z * s,
		W: float32(gomath.Cos(half)),
	}
}

func (q Quaternion) Normalize() Quaternion {
	n := float32(gomath.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if n == 0 {
		return NewQuatIdentity()
	}
	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToMat4 converts a unit quaternion into a rotation matrix.
func (q Quaternion) ToMat4() Mat4 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W

	out := NewMat4Identity()
	out.Data[0] = 1 - 2*y*y - 2*z*z
	out.Data[1] = 2*x*y + 2*z*w
	out.Data[2] = 2*x*z - 2*y*w

	out.Data[4] = 2*x*y - 2*z*w
	out.Data[5] = 1 - 2*x*x - 2*z*z
	out.Data[6] = 2*y*z + 2*x*w

	out.Data[8] = 2*x*z + 2*y*w
	out.Data[9] = 2*y*z - 2*x*w
	out.Data[10] = 1 - 2*x*x - 2*y*y
	return out
}

func NewMat4Identity() Mat4 {
	out := Mat4{}
	out.Data[0] = 1
	out.Data[5] = 1
	out.Data[10] = 1
	out.Data[15] = 1
	return out
}

// Mul returns mt × other with column-vector convention, so the right-hand
// matrix applies first.
func (mt Mat4) Mul(other Mat4) Mat4 {
	out := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[i*4+row] * other.Data[col*4+i]
			}
			out.Data[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 applies the matrix to a column vector.
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := mt.Data
	return Vec4{
		X: d[0]*v.X + d[4]*v.Y + d[8]*v.Z + d[12]*v.W,
		Y: d[1]*v.X + d[5]*v.Y + d[9]*v.Z + d[13]*v.W,
		Z: d[2]*v.X + d[6]*v.Y + d[10]*v.Z + d[14]*v.W,
		W: d[3]*v.X + d[7]*v.Y + d[11]*v.Z + d[15]*v.W,
	}
}

func NewMat4Translation(position Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[12] = position.X
	out.Data[13] = position.Y
	out.Data[14] = position.Z
	return out
}

func NewMat4Scale(scale Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[0] = scale.X
	out.Data[5] = scale.Y
	out.Data[10] = scale.Z
	return out
}

// NewMat4RotationZ rotates about the Z axis; this is the 2D rotation case.
func NewMat4RotationZ(angleRadians float32) Mat4 {
	c := float32(gomath.Cos(float64(angleRadians)))
	s := float32(gomath.Sin(float64(angleRadians)))
	out := NewMat4Identity()
	out.Data[0] = c
	out.Data[1] = s
	out.Data[4] = -s
	out.Data[5] = c
	return out
}

// NewMat4Perspective creates a right-handed perspective projection with a
// [-1,1] clip-space depth range.
func NewMat4Perspective(fovRadians, aspectRatio, nearClip, farClip float32) Mat4 {
	halfTan := float32(gomath.Tan(float64(fovRadians) * 0.5))
	out := Mat4{}
	out.Data[0] = 1.0 / (aspectRatio * halfTan)
	out.Data[5] = 1.0 / halfTan
	out.Data[10] = -(farClip + nearClip) / (farClip - nearClip)
	out.Data[11] = -1.0
	out.Data[14] = -(2.0 * farClip * nearClip) / (farClip - nearClip)
	return out
}

func NewMat4Orthographic(left, right, bottom, top, nearClip, farClip float32) Mat4 {
	out := NewMat4Identity()
	out.Data[0] = 2.0 / (right - left)
	out.Data[5] = 2.0 / (top - bottom)
	out.Data[10] = -2.0 / (farClip - nearClip)
	out.Data[12] = -(right + left) / (right - left)
	out.Data[13] = -(top + bottom) / (top - bottom)
	out.Data[14] = -(farClip + nearClip) / (farClip - nearClip)
	return out
}

func NewMat4LookAt(position, target, up Vec3) Mat4 {
	zAxis := position.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	out := NewMat4Identity()
	out.Data[0] = xAxis.X
	out.Data[1] = yAxis.X
	out.Data[2] = zAxis.X
	out.Data[4] = xAxis.Y
	out.Data[5] = yAxis.Y
	out.Data[6] = zAxis.Y
	out.Data[8] = xAxis.Z
	out.Data[9] = yAxis.Z
	out.Data[10] = zAxis.Z
	out.Data[12] = -xAxis.Dot(position)
	out.Data[13] = -yAxis.Dot(position)
	out.Data[14] = -zAxis.Dot(position)
	return out
}

func DegToRad(degrees float32) float32 {
	return degrees * (gomath.Pi / 180.0)
}

func RadToDeg(radians float32) float32 {
	return radians * (180.0 / gomath.Pi)
}
