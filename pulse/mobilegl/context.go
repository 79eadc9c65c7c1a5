//go:build android

// Package mobilegl implements the surface context on top of the OpenGL ES
// context of an x/mobile app.
package mobilegl

import (
	"errors"
	"log/slog"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
	"golang.org/x/mobile/gl"
)

var ErrNoGLContext = errors.New("window does not provide a gl context")
var ErrSurfaceNotReady = errors.New("surface not ready")

// Window is a native window with an OpenGL ES context,
// e.g. glimpse.MobileHost.
type Window interface {
	glimpse.Window
	GLContext() gl.Context
	Publish()
}

var baselineClearColor = glm.Vec4f{0, 0, 0, 1}

type Context struct {
	window Window
	glctx  gl.Context

	width, height uint32

	frameOpen bool
}

var _ device.Surface = (*Context)(nil)

func New() (*Context, error) {
	return &Context{}, nil
}

func (c *Context) Initialize(win glimpse.Window) error {
	return c.bind(win)
}

func (c *Context) SurfaceChanged(win glimpse.Window) error {
	return c.bind(win)
}

func (c *Context) bind(win glimpse.Window) error {
	window, ok := win.(Window)
	if !ok || window.GLContext() == nil {
		return ErrNoGLContext
	}

	c.window = window
	c.glctx = window.GLContext()
	c.width, c.height = window.GetSize()
	c.frameOpen = false

	// baseline render state
	c.glctx.Enable(gl.DEPTH_TEST)
	c.glctx.DepthFunc(gl.LESS)
	c.glctx.Enable(gl.CULL_FACE)
	c.glctx.CullFace(gl.BACK)
	c.glctx.ClearColor(baselineClearColor.XYZW())

	slog.Info("Bind gl surface",
		slog.Int("width", int(c.width)),
		slog.Int("height", int(c.height)))

	return nil
}

// MakeCurrent picks up a new context or size of the window.
func (c *Context) MakeCurrent() error {
	if c.window == nil {
		return nil
	}

	if c.window.GLContext() != c.glctx {
		return c.bind(c.window)
	}

	c.width, c.height = c.window.GetSize()

	return nil
}

func (c *Context) SurfaceDestroyed() {
	c.window = nil
	c.glctx = nil
	c.width, c.height = 0, 0
	c.frameOpen = false
}

func (c *Context) Destroy() {
	c.SurfaceDestroyed()
}

func (c *Context) IsSurfaceReady() bool {
	return c.glctx != nil && c.width > 0 && c.height > 0
}

func (c *Context) Size() (uint32, uint32) {
	return c.width, c.height
}

func (c *Context) ClearFrame() {
	if c.glctx == nil {
		return
	}

	c.glctx.Disable(gl.SCISSOR_TEST)
	c.glctx.ClearColor(baselineClearColor.XYZW())
	c.glctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *Context) BeginFrame() error {
	if !c.IsSurfaceReady() {
		return ErrSurfaceNotReady
	}

	c.frameOpen = true
	return nil
}

// BindEye restricts drawing to the viewport and clears it.
func (c *Context) BindEye(eye device.Eye, viewport device.Viewport, clear glm.Vec4f) error {
	if !c.frameOpen {
		return errors.New("no frame in progress")
	}

	// gl has its origin at the bottom left
	x := int(viewport.X)
	y := int(c.height) - int(viewport.Y+viewport.Height)

	c.glctx.Viewport(x, y, int(viewport.Width), int(viewport.Height))
	c.glctx.Enable(gl.SCISSOR_TEST)
	c.glctx.Scissor(int32(x), int32(y), int32(viewport.Width), int32(viewport.Height))

	c.glctx.ClearColor(clear.XYZW())
	c.glctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	return nil
}

func (c *Context) EndFrame() error {
	if !c.frameOpen {
		return errors.New("no frame in progress")
	}

	c.frameOpen = false

	c.glctx.Disable(gl.SCISSOR_TEST)
	c.window.Publish()

	return nil
}
