package orion

import (
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/runqueue"
)

// World is the renderer of the virtual world. The App calls into the World
// from the render thread only, at fixed points of the lifecycle.
type World interface {
	// InitializePlatform binds the World to the host platform. Work put on
	// the queue runs on the render thread between two frames.
	// It is called once before the render loop starts.
	InitializePlatform(host glimpse.Host, queue *runqueue.Queue) error

	// ShutdownPlatform releases the platform bindings.
	// It is called exactly once, when the host destroys the application.
	ShutdownPlatform()

	// InitializeGL creates the GPU resources of the World. It is called once,
	// after the surface context was created and initialized.
	InitializeGL() error

	// ShutdownGL releases the GPU resources when the render loop exits.
	ShutdownGL()

	Pause()
	Resume()
	IsPaused() bool

	// Draw renders a single frame through the device delegate.
	Draw()

	// RegisterDeviceDelegate hands the device delegate to the World.
	RegisterDeviceDelegate(delegate device.Delegate)
}
