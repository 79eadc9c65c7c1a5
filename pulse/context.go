// Package pulse implements the GPU surface context on top of webgpu.
package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

var ErrNoSurfaceDescriptor = errors.New("window does not provide a webgpu surface")
var ErrSurfaceNotReady = errors.New("surface not ready")

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// RenderState is the baseline state the world renderer builds its
// pipelines for.
type RenderState struct {
	DepthTest  bool
	CullBack   bool
	ClearColor glm.Vec4f
}

func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:  true,
		CullBack:   true,
		ClearColor: glm.Vec4f{0, 0, 0, 1},
	}
}

// Context encapsulates the low level state of the webgpu context. The
// instance, adapter and device live as long as the Context, the surface
// follows the native window and can be replaced at any time.
type Context struct {
	instance *wgpu.Instance

	Adapter *wgpu.Adapter
	Device  *wgpu.Device
	Queue   *wgpu.Queue

	window  glimpse.SurfaceSource
	surface *wgpu.Surface
	format  wgpu.TextureFormat

	// nil while the surface is not configured
	config *wgpu.SurfaceConfiguration

	state        RenderState
	clearPending bool

	targets *releaseCache[targetKey, *eyeTarget]
	frame   *frame
}

// New creates the device. No surface is bound until Initialize is called.
func New() (ctx *Context, err error) {
	ctx = &Context{
		state:   DefaultRenderState(),
		targets: newReleaseCache[targetKey, *eyeTarget](8),
	}

	defer func() {
		if err != nil {
			ctx.Destroy()
			ctx = nil
		}
	}()

	ctx.instance = wgpu.CreateInstance(nil)

	ctx.Adapter, err = ctx.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})

	if err != nil {
		return ctx, fmt.Errorf("request adapter: %w", err)
	}

	ctx.Device, err = ctx.Adapter.RequestDevice(nil)
	if err != nil {
		return ctx, fmt.Errorf("request device: %w", err)
	}

	ctx.Queue = ctx.Device.GetQueue()

	return ctx, nil
}

// Initialize binds the context to the window and sets up the baseline
// render state.
func (c *Context) Initialize(win glimpse.Window) error {
	c.state = DefaultRenderState()
	c.clearPending = false

	return c.bind(win)
}

// SurfaceChanged replaces the surface with one for the given window.
// The device stays alive.
func (c *Context) SurfaceChanged(win glimpse.Window) error {
	return c.bind(win)
}

func (c *Context) bind(win glimpse.Window) error {
	source, ok := win.(glimpse.SurfaceSource)
	if !ok {
		return ErrNoSurfaceDescriptor
	}

	c.releaseSurface()

	c.surface = c.instance.CreateSurface(source.SurfaceDescriptor())
	c.window = source

	caps := c.surface.GetCapabilities(c.Adapter)
	if len(caps.Formats) == 0 {
		c.releaseSurface()
		return errors.New("surface is not compatible with the adapter")
	}

	c.format = caps.Formats[0]
	for _, format := range caps.Formats {
		if format == wgpu.TextureFormatBGRA8Unorm {
			c.format = format
		}
	}

	slog.Info("Bind surface",
		slog.Any("formats", caps.Formats),
		slog.Any("format", c.format))

	c.configure()

	return nil
}

func (c *Context) configure() {
	width, height := c.window.GetSize()
	if width == 0 || height == 0 {
		c.config = nil
		return
	}

	slog.Debug("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	caps := c.surface.GetCapabilities(c.Adapter)

	c.config = &wgpu.SurfaceConfiguration{
		// eye targets are copied into the surface
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopyDst,
		Format:      c.format,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
		Width:       width,
		Height:      height,
	}

	c.surface.Configure(c.Adapter, c.Device, c.config)
}

// MakeCurrent prepares the surface for rendering on the calling thread.
// webgpu has no thread bound state, but the surface must match the
// current size of the window.
func (c *Context) MakeCurrent() error {
	if c.surface == nil {
		return nil
	}

	width, height := c.window.GetSize()
	if c.config == nil || c.config.Width != width || c.config.Height != height {
		c.abandonFrame()
		c.configure()
	}

	return nil
}

// SurfaceDestroyed releases the surface. The device stays alive.
func (c *Context) SurfaceDestroyed() {
	c.releaseSurface()
}

// Destroy releases all resources of the context.
func (c *Context) Destroy() {
	c.releaseSurface()
	c.targets.Purge()

	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}

	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}

	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}

	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

func (c *Context) releaseSurface() {
	c.abandonFrame()

	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}

	c.window = nil
	c.config = nil
}

func (c *Context) IsSurfaceReady() bool {
	return c.surface != nil && c.config != nil
}

func (c *Context) Size() (uint32, uint32) {
	if c.config == nil {
		return 0, 0
	}

	return c.config.Width, c.config.Height
}

// Format returns the texture format of the surface and the eye targets.
func (c *Context) Format() wgpu.TextureFormat {
	return c.format
}

func (c *Context) RenderState() RenderState {
	return c.state
}

// ClearFrame clears the next presented frame with the baseline clear color
// before the eyes are composited onto it.
func (c *Context) ClearFrame() {
	c.clearPending = true
}
