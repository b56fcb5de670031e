// Package components declares the engine-level ECS components shared by
// the orchestrator and its systems. Pose components (math.Transform2D and
// math.Transform3D) attach directly; this package adds the derived and
// singleton state.
package components

import (
	"github.com/raoe/engine/engine/math"
	"github.com/raoe/engine/engine/task"
)

// EngineInfo is the process-wide singleton carrying the command line.
type EngineInfo struct {
	Args    []string
	AppName string
	OrgName string
}

// RenderTransform caches the matrices derived from an entity's pose and
// its parent chain. World is recomputed at the top of every render tick.
type RenderTransform struct {
	Local math.Mat4
	World math.Mat4
}

// Camera projects the world onto the viewport.
type Camera struct {
	FOV        float32
	NearClip   float32
	FarClip    float32
	Projection math.Mat4
	View       math.Mat4
}

// Matrix is the combined view-projection matrix.
func (c *Camera) Matrix() math.Mat4 {
	return c.Projection.Mul(c.View)
}

// Window mirrors the OS window's client size for systems that must not
// touch the window backend directly.
type Window struct {
	Title  string
	Width  uint32
	Height uint32
}

// CoroutineBox hosts one running coroutine. Destroying the entity cancels
// the task.
type CoroutineBox struct {
	Box *task.Box
}
