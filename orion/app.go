// Package orion runs a VR application: it owns the surface context, the
// device delegate and the world, applies the lifecycle commands of the host
// and drives the render loop.
package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/runqueue"
)

// App is the application context. It is created once at process entry and
// torn down when Run returns.
type App struct {
	host     glimpse.Host
	world    World
	delegate device.Delegate
	queue    *runqueue.Queue

	lifecycle  *Lifecycle
	metrics    *metrics
	frameTimes *FrameTimes
}

func NewApp(opts AppOptions) (*App, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("app options: %w", err)
	}

	m := newMetrics(opts.Registerer)

	app := &App{
		host:       opts.Host,
		world:      opts.World,
		delegate:   opts.Delegate,
		queue:      opts.Queue,
		lifecycle:  newLifecycle(opts, m),
		metrics:    m,
		frameTimes: NewFrameTimes(opts.Clock),
	}

	// the host only ever holds this handler, the app keeps everything else
	app.host.OnCommand(app.lifecycle.Handle)

	return app, nil
}

// Queue returns the queue for work that must run on the render thread.
// It is safe to use from any goroutine.
func (a *App) Queue() *runqueue.Queue {
	return a.queue
}

func (a *App) Lifecycle() *Lifecycle {
	return a.lifecycle
}

func (a *App) FrameTimes() FrameTimes {
	return *a.frameTimes
}

// Run initializes the world and runs the render loop on the calling
// goroutine until the host asks the application to exit. Run is the only
// place where the application is torn down. It returns the fatal error that
// stopped the loop, if any.
func (a *App) Run() error {
	if err := a.world.InitializePlatform(a.host, a.queue); err != nil {
		a.queue.Close()
		a.host.Terminate()
		return fmt.Errorf("initialize platform: %w", err)
	}

	a.world.RegisterDeviceDelegate(a.delegate)

	for a.loopOnce() {
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	slog.Info("Shutting down",
		slog.Uint64("frames", a.frameTimes.FrameCount),
		slog.Bool("fatal", a.lifecycle.Err() != nil))

	// nothing drains the queue anymore, callers waiting for it return
	a.queue.Close()

	// VR mode never outlives the surface
	if a.delegate.IsInVRMode() {
		a.delegate.LeaveVR()
	}

	a.metrics.observeVRMode(false)

	if surface := a.lifecycle.Surface(); surface != nil {
		if a.lifecycle.glInitialized {
			a.world.ShutdownGL()
		}

		surface.Destroy()
	}

	a.host.Terminate()

	return a.lifecycle.Err()
}
