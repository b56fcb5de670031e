// Package platform owns the GLFW window and the OpenGL context lifecycle.
package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/raoe/engine/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type ResizeCallback func(width, height uint32)

type Platform struct {
	Window   *glfw.Window
	onResize ResizeCallback
}

func New() *Platform {
	return &Platform{}
}

// Startup creates the window with an OpenGL 4.6 core context and makes the
// context current on the calling goroutine.
func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	p.Window = window
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

// SetResizeCallback registers the handler invoked on framebuffer resizes.
func (p *Platform) SetResizeCallback(cb ResizeCallback) {
	p.onResize = cb
}

// PumpMessages processes pending window events. Returns false once the
// user has asked the window to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// SwapBuffers presents the current frame.
func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if p.onResize != nil && width > 0 && height > 0 {
		p.onResize(uint32(width), uint32(height))
	}
	core.EventPost(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: []uint32{uint32(width), uint32(height)},
	})
}
