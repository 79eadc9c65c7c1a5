// Package demo contains a minimal world renderer. It draws nothing but the
// clear color of both eyes and reacts to controller input, which makes it
// useful to check a backend and the lifecycle handling end to end.
package demo

import (
	"errors"
	"log/slog"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
	"github.com/oliverbestmann/visor/runqueue"
)

var ErrNoDelegate = errors.New("no device delegate registered")

// Palette cycled through by swipe gestures.
var Palette = []glm.Vec4f{
	{0.05, 0.05, 0.12, 1},
	{0.12, 0.03, 0.03, 1},
	{0.03, 0.12, 0.05, 1},
}

// highlight is added to the clear color while a controller button is held.
var highlight = glm.Vec4f{0.3, 0.3, 0.3, 0}

var buttons = [...]device.Button{
	device.ButtonTrigger,
	device.ButtonTouchpad,
	device.ButtonMenu,
	device.ButtonGrip,
}

type World struct {
	delegate device.Delegate
	queue    *runqueue.Queue
	paused   bool

	color int
	held  bool

	frames int

	limit int
	stop  func()
}

func New() *World {
	return &World{}
}

func (w *World) InitializePlatform(host glimpse.Host, queue *runqueue.Queue) error {
	slog.Info("Initialize platform")
	w.queue = queue
	return nil
}

func (w *World) ShutdownPlatform() {
	slog.Info("Shutdown platform", slog.Int("frames", w.frames))
}

func (w *World) InitializeGL() error {
	if w.delegate == nil {
		return ErrNoDelegate
	}

	w.delegate.SetClipPlanes(device.DefaultNear, device.DefaultFar)
	w.delegate.SetClearColor(w.ClearColor())

	slog.Info("Initialize world",
		slog.String("backend", w.delegate.Name()),
		slog.Int("controllers", w.delegate.ControllerCount()))

	return nil
}

func (w *World) ShutdownGL() {
	slog.Info("Shutdown world")
}

func (w *World) Pause() {
	w.paused = true
}

func (w *World) Resume() {
	w.paused = false
}

func (w *World) IsPaused() bool {
	return w.paused
}

func (w *World) RegisterDeviceDelegate(delegate device.Delegate) {
	w.delegate = delegate
}

func (w *World) Draw() {
	d := w.delegate
	if d == nil {
		return
	}

	d.ProcessEvents()

	w.handleGestures(d.Gestures())
	w.handleControllers(d)

	d.SetClearColor(w.ClearColor())

	d.StartFrame()
	for _, eye := range device.Eyes {
		d.BindEye(eye)
	}
	d.EndFrame()

	w.frames++

	if w.stop != nil && w.frames == w.limit {
		w.stop()
	}
}

// SelectColor switches to the given palette entry. It may be called from any
// goroutine, the change is applied on the render thread before the next frame.
func (w *World) SelectColor(index int) {
	index = (index%len(Palette) + len(Palette)) % len(Palette)

	apply := func() {
		w.color = index
		slog.Info("Color selected", slog.Int("color", index))
	}

	if w.queue == nil {
		apply()
		return
	}

	w.queue.Enqueue(apply)
}

// StopAfter calls stop once the given number of frames was drawn.
func (w *World) StopAfter(frames int, stop func()) {
	w.limit = frames
	w.stop = stop
}

func (w *World) handleGestures(gestures device.GestureDelegate) {
	for idx := range gestures.GestureCount() {
		gesture := gestures.Gesture(idx)

		switch gesture {
		case device.GestureSwipeLeft:
			w.color = (w.color + len(Palette) - 1) % len(Palette)
		case device.GestureSwipeRight:
			w.color = (w.color + 1) % len(Palette)
		default:
			continue
		}

		slog.Info("Gesture",
			slog.String("gesture", gesture.String()),
			slog.Int("color", w.color))
	}
}

func (w *World) handleControllers(d device.Delegate) {
	w.held = false

	for idx := range d.ControllerCount() {
		for _, button := range buttons {
			pressed, changed := d.ControllerButtonState(idx, button)
			if changed {
				slog.Info("Button",
					slog.Int("controller", idx),
					slog.String("button", button.String()),
					slog.Bool("pressed", pressed))
			}

			w.held = w.held || pressed
		}

		if dx, dy, ok := d.ControllerScrolled(idx); ok {
			slog.Debug("Scroll",
				slog.Int("controller", idx),
				slog.Float64("dx", float64(dx)),
				slog.Float64("dy", float64(dy)))
		}
	}
}

// ClearColor returns the color both eyes are cleared with in the next frame.
func (w *World) ClearColor() glm.Vec4f {
	color := Palette[w.color]
	if w.held {
		color = color.Add(highlight)
	}

	return color
}

// Frames returns the number of drawn frames.
func (w *World) Frames() int {
	return w.frames
}
