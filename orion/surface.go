package orion

import (
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
)

// SurfaceContext binds a rendering context to the native window. The
// rendering context survives the window, the window binding is dropped
// with SurfaceDestroyed and restored with SurfaceChanged.
type SurfaceContext interface {
	device.Surface

	// Initialize binds the context to the window, makes it current and
	// sets up the baseline render state.
	Initialize(win glimpse.Window) error

	// SurfaceChanged rebinds the context to a new or resized window.
	SurfaceChanged(win glimpse.Window) error

	// MakeCurrent binds the context to the calling thread.
	MakeCurrent() error

	// SurfaceDestroyed releases the window binding only.
	SurfaceDestroyed()

	// Destroy releases the rendering context. Only valid during shutdown.
	Destroy()

	// ClearFrame clears the frame buffer before a frame is drawn.
	ClearFrame()
}

// SurfaceFactory creates the SurfaceContext. It is called at most once,
// when the first window becomes ready. An error is fatal.
type SurfaceFactory func() (SurfaceContext, error)
