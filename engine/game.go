package engine

// Game bundles the application config with the hooks the engine calls into
// the host application. Any hook may be nil.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
}

// Initialize runs once in the on_game_start startup phase.
type Initialize func() error

// Update runs every tick in render_begin, before transforms recompute.
type Update func(deltaTime float64) error

// Render runs every tick in the draw phase.
type Render func(deltaTime float64) error

// OnResize runs when the window's framebuffer size changes.
type OnResize func(width uint32, height uint32) error
