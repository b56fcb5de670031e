package systems

import (
	"github.com/raoe/engine/engine/components"
	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/math"
)

// localMatrix derives an entity's local pose matrix from its transform
// component; entities without one contribute identity.
func localMatrix(world *ecs.World, e ecs.Entity) math.Mat4 {
	if t3, ok := ecs.Get[math.Transform3D](world, e); ok {
		return t3.ToMatrix()
	}
	if t2, ok := ecs.Get[math.Transform2D](world, e); ok {
		return t2.ToMatrix()
	}
	return math.NewMat4Identity()
}

// UpdateRenderTransforms recomputes every render transform from its pose
// and parent chain: world = root × … × parent × self. Runs in
// render_begin, so systems later in the tick observe consistent matrices.
func UpdateRenderTransforms(world *ecs.World, _ float64) {
	ecs.Each(world, func(e ecs.Entity, rt *components.RenderTransform) {
		rt.Local = localMatrix(world, e)
		rt.World = rt.Local
		for p := world.Parent(e); !p.IsNil(); p = world.Parent(p) {
			rt.World = localMatrix(world, p).Mul(rt.World)
		}
	})
}
