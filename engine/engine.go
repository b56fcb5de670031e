// Package engine is the frame orchestrator: it owns the world, the
// virtual filesystem, the pack and asset systems and (optionally) the
// window and render modules, and advances everything one tick per
// Progress call.
package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/raoe/engine/engine/assets"
	"github.com/raoe/engine/engine/assets/loaders"
	"github.com/raoe/engine/engine/components"
	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/pack"
	"github.com/raoe/engine/engine/platform"
	"github.com/raoe/engine/engine/renderer"
	"github.com/raoe/engine/engine/renderer/opengl"
	"github.com/raoe/engine/engine/systems"
	"github.com/raoe/engine/engine/vfs"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete; the startup pipeline has not run
	EngineStageInitialized
	// Engine is running the per-tick pipeline
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has shut down
	EngineStageShutDown
)

type Engine struct {
	currentStage Stage
	game         *Game

	world  *ecs.World
	fs     *vfs.VFS
	packs  *pack.System
	assets *assets.System

	platform *platform.Platform
	device   *opengl.Device
	renderer *renderer.Renderer

	startup *systems.Schedule
	tick    *systems.Schedule

	clock       *core.Clock
	lastElapsed time.Duration

	width  uint32
	height uint32
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine: game and application config are required")
	}
	if err := g.ApplicationConfig.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		game:         g,
		fs:           vfs.New(),
		clock:        core.NewClock(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

// Initialize wires every module: filesystem, world, events, pack and asset
// systems, both phase chains and, when the rendering flag is set, the
// window and render modules. The startup pipeline itself runs during the
// first Progress call.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine: already initialized")
	}
	e.currentStage = EngineStageInitializing

	cfg := e.game.ApplicationConfig
	core.LogSetLevel(cfg.LogLevel)

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	arg0 := ""
	if len(os.Args) > 0 {
		arg0 = os.Args[0]
	}
	if err := e.fs.Init(arg0, cfg.BasePath, cfg.Name, cfg.OrgName); err != nil {
		return err
	}

	e.world = ecs.NewWorld()
	systems.SetupCoroutines(e.world)

	info := e.world.CreateNamedEntity("engine_info")
	ecs.Set(e.world, info, components.EngineInfo{
		Args:    os.Args,
		AppName: cfg.Name,
		OrgName: cfg.OrgName,
	})

	e.packs = pack.NewSystem(e.world, e.fs)
	e.assets = assets.NewSystem(e.world, e.fs)
	loaders.RegisterDefaults(e.assets)

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, func(core.EventContext) bool {
		e.world.Quit()
		return true
	})

	e.startup = systems.NewSchedule(e.world, systems.StartupChain())
	e.tick = systems.NewSchedule(e.world, systems.RenderChain())

	e.startup.Attach(systems.PhaseOnPreInit, e.loadImportantAssets)
	e.startup.Attach(systems.PhaseOnGameStart, func(w *ecs.World, _ float64) {
		if e.game.FnInitialize == nil {
			return
		}
		if err := e.game.FnInitialize(); err != nil {
			core.Panicf("game initialization failed: %v", err)
		}
	})

	if e.game.FnUpdate != nil {
		e.tick.Attach(systems.PhaseRenderBegin, func(w *ecs.World, dt float64) {
			if err := e.game.FnUpdate(dt); err != nil {
				core.LogError("game update: %v", err)
			}
		})
	}
	e.tick.Attach(systems.PhaseRenderBegin, systems.UpdateRenderTransforms)
	e.tick.Attach(systems.PhaseRenderEnd, func(w *ecs.World, dt float64) {
		core.MetricsUpdate(dt)
	})

	if cfg.Flags&FlagRendering != 0 {
		e.initializeRendering(cfg)
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// initializeRendering imports the window and render modules: the window
// opens in on_window_start, the GL device and renderer come up in
// on_render_start, and the per-tick draw phases are attached.
func (e *Engine) initializeRendering(cfg *ApplicationConfig) {
	e.platform = platform.New()
	e.device = opengl.New()
	e.renderer = renderer.New(e.device)

	e.startup.Attach(systems.PhaseOnWindowStart, func(w *ecs.World, _ float64) {
		if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, e.width, e.height); err != nil {
			core.Panicf("window startup failed: %v", err)
		}
		e.platform.SetResizeCallback(e.onResized)

		win := w.CreateNamedEntity("window")
		ecs.Set(w, win, components.Window{Title: cfg.Name, Width: e.width, Height: e.height})
	})
	e.startup.Attach(systems.PhaseOnRenderStart, func(w *ecs.World, _ float64) {
		if err := e.device.Initialize(); err != nil {
			core.Panicf("opengl initialization failed: %v", err)
		}
		e.renderer.Initialize(e.width, e.height)
	})

	e.tick.Attach(systems.PhasePollWindow, func(w *ecs.World, _ float64) {
		if !e.platform.PumpMessages() {
			w.Quit()
		}
	})
	e.tick.Attach(systems.PhasePrepareFrame, func(w *ecs.World, _ float64) {
		e.renderer.BeginFrame()
	})
	if e.game.FnRender != nil {
		e.tick.Attach(systems.PhaseDraw, func(w *ecs.World, dt float64) {
			if err := e.game.FnRender(dt); err != nil {
				core.LogError("game render: %v", err)
			}
		})
	}
	e.tick.Attach(systems.PhasePresent, func(w *ecs.World, _ float64) {
		e.renderer.EndFrame()
		e.platform.SwapBuffers()
	})
}

// loadImportantAssets mounts the core content pack. The engine cannot run
// without it, so a missing pack is fatal.
func (e *Engine) loadImportantAssets(w *ecs.World, _ float64) {
	entity := w.CreateNamedEntity("packs/core")
	if e.packs.LoadPack(entity, "packs/core", pack.FlagSystem|pack.FlagGame) == nil {
		core.Panicf("core content pack is missing")
	}
}

// Progress advances the engine by one tick. The first call runs the
// one-shot startup pipeline; every later call pumps deferred events,
// advances coroutines and runs the render chain. Returns false once the
// world has been asked to quit.
func (e *Engine) Progress() bool {
	switch e.currentStage {
	case EngineStageInitialized:
		e.clock.Start()
		e.startup.Run(0)
		e.currentStage = EngineStageRunning
		return !e.world.ShouldQuit()

	case EngineStageRunning:
		e.clock.Update()
		elapsed := e.clock.Elapsed()
		delta := (elapsed - e.lastElapsed).Seconds()
		e.lastElapsed = elapsed

		core.EventPump()
		systems.PumpCoroutines(e.world, delta)
		e.tick.Run(delta)
		return !e.world.ShouldQuit()

	default:
		core.Ensure(false, "Progress called in stage %d", e.currentStage)
		return false
	}
}

// Run drives Progress until quit, then shuts down.
func (e *Engine) Run() error {
	defer core.InstallPanicHandler()
	for e.Progress() {
	}
	return e.Shutdown()
}

// Shutdown tears the engine down in the reverse order of startup.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutDown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.renderer != nil {
		e.renderer.Shutdown()
	}
	if e.platform != nil {
		if err := e.platform.Shutdown(); err != nil {
			core.LogError("platform shutdown: %v", err)
		}
	}
	e.fs.Shutdown()
	if err := core.EventSystemShutdown(); err != nil {
		core.LogError("event system shutdown: %v", err)
	}

	e.currentStage = EngineStageShutDown
	core.LogInfo("engine shut down")
	return nil
}

// World exposes the entity world to the host application.
func (e *Engine) World() *ecs.World { return e.world }

// Assets exposes the asset system.
func (e *Engine) Assets() *assets.System { return e.assets }

// Packs exposes the pack system.
func (e *Engine) Packs() *pack.System { return e.packs }

// Renderer exposes the render core; nil when running headless.
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }

func (e *Engine) onResized(width, height uint32) {
	e.width = width
	e.height = height
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if win := e.world.Lookup("window"); win != ecs.Nil {
		if w, ok := ecs.Get[components.Window](e.world, win); ok {
			w.Width = width
			w.Height = height
		}
	}
	if e.game.FnOnResize != nil {
		if err := e.game.FnOnResize(width, height); err != nil {
			core.LogError("game resize: %v", err)
		}
	}
}
