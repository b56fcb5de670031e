// Package testbed is an example application exercising the engine: a
// spinning cube drawn with the fallback shader and a coroutine-driven
// camera bob.
package testbed

import (
	"time"

	"github.com/raoe/engine/engine"
	"github.com/raoe/engine/engine/components"
	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/math"
	"github.com/raoe/engine/engine/renderer"
	"github.com/raoe/engine/engine/systems"
	"github.com/raoe/engine/engine/task"
)

type TestGame struct {
	*engine.Game
	eng   *engine.Engine
	state *gameState
}

type gameState struct {
	camera     components.Camera
	cube       *renderer.Mesh
	cubeEntity ecs.Entity
	angle      float32
}

func NewTestGame() *TestGame {
	tg := &TestGame{state: &gameState{}}
	tg.Game = &engine.Game{
		ApplicationConfig: &engine.ApplicationConfig{
			Name:        "raoe testbed",
			OrgName:     "raoe",
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
			LogLevel:    core.DebugLevel,
			Flags:       engine.FlagRendering,
		},
		State: tg.state,
	}
	tg.FnInitialize = tg.initialize
	tg.FnUpdate = tg.update
	tg.FnRender = tg.render
	tg.FnOnResize = tg.onResize
	return tg
}

// Attach hands the game its engine; must happen before Run.
func (g *TestGame) Attach(e *engine.Engine) {
	g.eng = e
}

func (g *TestGame) initialize() error {
	world := g.eng.World()

	g.state.cube = &renderer.Mesh{
		Name:  "testbed_cube",
		Parts: []renderer.MeshPart{{Element: renderer.GenerateCubeMeshElement(1, 1, 1)}},
	}

	g.state.cubeEntity = world.CreateNamedEntity("testbed/cube")
	ecs.Set(world, g.state.cubeEntity, math.Transform3D{
		Position: math.NewVec3Zero(),
		Rotation: math.NewQuatIdentity(),
		Scale:    math.NewVec3One(),
	})
	ecs.Set(world, g.state.cubeEntity, components.RenderTransform{})

	g.setupCamera(1280, 720)

	// Log frame metrics every few seconds for as long as the cube lives.
	systems.StartCoroutine(world, func(yield func(task.Waiter) bool) {
		for {
			if !yield(task.ForDuration(5 * time.Second)) {
				return
			}
			fps, frameMS := core.MetricsFrame()
			core.LogDebug("testbed: %.0f fps, %.2f ms/frame", fps, frameMS)
		}
	})

	return nil
}

func (g *TestGame) setupCamera(width, height uint32) {
	aspect := float32(width) / float32(height)
	g.state.camera.FOV = math.DegToRad(45)
	g.state.camera.NearClip = 0.1
	g.state.camera.FarClip = 1000
	g.state.camera.Projection = math.NewMat4Perspective(g.state.camera.FOV, aspect, 0.1, 1000)
	g.state.camera.View = math.NewMat4LookAt(
		math.NewVec3(0, 2, 6),
		math.NewVec3Zero(),
		math.NewVec3(0, 1, 0),
	)
}

func (g *TestGame) update(deltaTime float64) error {
	g.state.angle += float32(deltaTime)
	world := g.eng.World()
	if t, ok := ecs.Get[math.Transform3D](world, g.state.cubeEntity); ok {
		t.Rotation = math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), g.state.angle)
	}
	return nil
}

func (g *TestGame) render(deltaTime float64) error {
	world := g.eng.World()
	rt, ok := ecs.Get[components.RenderTransform](world, g.state.cubeEntity)
	if !ok {
		return nil
	}
	g.eng.Renderer().RenderMesh(g.state.camera.Matrix(), g.state.cube, rt.World)
	return nil
}

func (g *TestGame) onResize(width, height uint32) error {
	g.setupCamera(width, height)
	return nil
}
