package math

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4MulIdentity(t *testing.T) {
	m := NewMat4Translation(NewVec3(1, 2, 3))
	assert.Equal(t, m, NewMat4Identity().Mul(m))
	assert.Equal(t, m, m.Mul(NewMat4Identity()))
}

func TestMat4TranslationCompose(t *testing.T) {
	p := NewMat4Translation(NewVec3(1, 0, 0))
	c := NewMat4Translation(NewVec3(0, 2, 0))
	world := p.Mul(c)

	v := world.MulVec4(Vec4{W: 1})
	assert.InDelta(t, 1.0, float64(v.X), 1e-5)
	assert.InDelta(t, 2.0, float64(v.Y), 1e-5)
	assert.InDelta(t, 0.0, float64(v.Z), 1e-5)
}

func TestQuatRotation(t *testing.T) {
	// 90 degrees about Z maps +X to +Y.
	q := NewQuatFromAxisAngle(NewVec3(0, 0, 1), DegToRad(90))
	v := q.ToMat4().MulVec4(Vec4{X: 1, W: 1})
	assert.InDelta(t, 0.0, float64(v.X), 1e-5)
	assert.InDelta(t, 1.0, float64(v.Y), 1e-5)
}

func TestTransform3DToMatrix(t *testing.T) {
	tr := NewTransform3DFromPosition(NewVec3(5, 0, 0))
	tr.Scale = NewVec3(2, 2, 2)

	v := tr.ToMatrix().MulVec4(Vec4{X: 1, W: 1})
	// Scale applies before translation.
	assert.InDelta(t, 7.0, float64(v.X), 1e-5)
}

func TestTransform2DToMatrix(t *testing.T) {
	tr := NewTransform2D()
	tr.Position = NewVec2(1, 1)
	tr.Rotation = float32(gomath.Pi / 2)

	v := tr.ToMatrix().MulVec4(Vec4{X: 1, W: 1})
	assert.InDelta(t, 1.0, float64(v.X), 1e-5)
	assert.InDelta(t, 2.0, float64(v.Y), 1e-5)
}

func TestClampLerp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.InDelta(t, 1.5, float64(Lerp(float32(1), 2, 0.5)), 1e-6)
}
