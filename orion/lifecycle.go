package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
)

//go:generate go tool stringer -type=LifecycleState -trimprefix=State

type LifecycleState uint8

const (
	// StateNoSurface is the state before the first window and
	// after a window was terminated.
	StateNoSurface LifecycleState = iota

	// StateSurfaceReady means a window is bound but VR mode is not active.
	StateSurfaceReady

	// StateVRActive means the delegate renders to the bound window.
	StateVRActive
)

// Lifecycle applies the lifecycle commands of the host to the surface
// context, the world and the device delegate. The order of operations
// matters: the surface is created before VR mode is entered, and VR mode is
// left before the surface is destroyed.
type Lifecycle struct {
	world    World
	delegate device.Delegate
	factory  SurfaceFactory
	policy   VRPolicy
	metrics  *metrics

	surface       SurfaceContext
	glInitialized bool

	destroyed bool

	// the first fatal error, the render loop exits once this is set
	err error
}

func newLifecycle(opts AppOptions, m *metrics) *Lifecycle {
	return &Lifecycle{
		world:    opts.World,
		delegate: opts.Delegate,
		factory:  opts.Surface,
		policy:   opts.AutoEnterVR,
		metrics:  m,
	}
}

// Handle applies a single lifecycle command. It must be called
// on the render thread.
func (l *Lifecycle) Handle(ev glimpse.Event) {
	l.metrics.commands.WithLabelValues(ev.Command.String()).Inc()

	if l.destroyed {
		slog.Warn("Ignore lifecycle command after destroy",
			slog.String("command", ev.Command.String()))

		return
	}

	slog.Info("Lifecycle command", slog.String("command", ev.Command.String()))

	switch ev.Command {
	case glimpse.CommandInitWindow:
		l.initWindow(ev.Window)

	case glimpse.CommandTermWindow:
		l.termWindow()

	case glimpse.CommandPause:
		l.pause()

	case glimpse.CommandResume:
		l.resume()

	case glimpse.CommandDestroy:
		l.destroy()

	default:
		slog.Warn("Unknown lifecycle command", slog.Int("command", int(ev.Command)))
	}

	l.metrics.observeVRMode(l.delegate.IsInVRMode())
}

func (l *Lifecycle) initWindow(win glimpse.Window) {
	if l.err != nil {
		return
	}

	if win == nil {
		slog.Error("Cannot initialize surface", slog.String("err", ErrNoWindow.Error()))
		return
	}

	if l.surface == nil {
		// first window: this is where the context is created
		if err := l.createSurface(win); err != nil {
			l.fail(err)
			return
		}
	} else {
		l.rebindSurface(win)
	}

	if l.leaveVRIfUnusable() {
		return
	}

	if !l.policy(l.world.IsPaused(), l.delegate.IsInVRMode()) {
		return
	}

	if !l.surface.IsSurfaceReady() {
		slog.Debug("Window initialized but surface not ready, not entering VR")
		return
	}

	l.delegate.EnterVR(l.surface)
}

func (l *Lifecycle) createSurface(win glimpse.Window) error {
	surface, err := l.factory()
	if err != nil {
		return fmt.Errorf("create surface context: %w", err)
	}

	l.surface = surface

	if err := surface.Initialize(win); err != nil {
		return fmt.Errorf("initialize surface context: %w", err)
	}

	if err := l.world.InitializeGL(); err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}

	l.glInitialized = true

	return nil
}

// rebindSurface binds the existing context to a new or resized window.
func (l *Lifecycle) rebindSurface(win glimpse.Window) {
	if err := l.surface.SurfaceChanged(win); err != nil {
		slog.Error("Failed to rebind surface", slog.String("err", err.Error()))
		return
	}

	if err := l.surface.MakeCurrent(); err != nil {
		slog.Error("Failed to make surface current", slog.String("err", err.Error()))
	}
}

// refresh makes the surface current on the render thread. A surface that
// became unusable, e.g. because the window shrank to nothing, ends VR mode.
func (l *Lifecycle) refresh() {
	if l.surface == nil {
		return
	}

	if err := l.surface.MakeCurrent(); err != nil {
		slog.Warn("Failed to make surface current", slog.String("err", err.Error()))
	}

	if l.leaveVRIfUnusable() {
		l.metrics.observeVRMode(false)
	}
}

// leaveVRIfUnusable leaves VR mode if the surface is not ready anymore.
// VR mode never outlives a usable surface.
func (l *Lifecycle) leaveVRIfUnusable() bool {
	if !l.delegate.IsInVRMode() || l.surface.IsSurfaceReady() {
		return false
	}

	slog.Info("Surface not usable anymore, leaving VR mode")
	l.delegate.LeaveVR()

	return true
}

func (l *Lifecycle) termWindow() {
	if l.delegate.IsInVRMode() {
		l.delegate.LeaveVR()
	}

	if l.surface != nil {
		l.surface.SurfaceDestroyed()
	}
}

func (l *Lifecycle) pause() {
	l.world.Pause()

	if l.delegate.IsInVRMode() {
		l.delegate.LeaveVR()
	}
}

func (l *Lifecycle) resume() {
	l.world.Resume()

	if l.delegate.IsInVRMode() || l.surface == nil || !l.surface.IsSurfaceReady() {
		return
	}

	l.delegate.EnterVR(l.surface)
}

func (l *Lifecycle) destroy() {
	l.world.ShutdownPlatform()
	l.destroyed = true
}

func (l *Lifecycle) fail(err error) {
	slog.Error("Fatal lifecycle error", slog.String("err", err.Error()))
	l.err = err
}

// State returns the current state, derived from the surface and the delegate.
func (l *Lifecycle) State() LifecycleState {
	switch {
	case l.surface == nil || !l.surface.IsSurfaceReady():
		return StateNoSurface

	case l.delegate.IsInVRMode():
		return StateVRActive

	default:
		return StateSurfaceReady
	}
}

// Surface returns the surface context, or nil before the first window.
func (l *Lifecycle) Surface() SurfaceContext {
	return l.surface
}

// Destroyed reports whether the destroy command was handled.
func (l *Lifecycle) Destroyed() bool {
	return l.destroyed
}

// Err returns the fatal error that stopped the lifecycle, if any.
func (l *Lifecycle) Err() error {
	return l.err
}
