// Package headless provides a simulated VR backend without any hardware.
// It is used for automated runs and tests.
package headless

import (
	"fmt"
	"slices"
	"time"

	"github.com/furui/fastnoiselite-go"
	"github.com/jonboulle/clockwork"
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glm"
	"github.com/oliverbestmann/visor/runqueue"
)

const Name = "headless"

func init() {
	device.Register(Name, "Simulated headset for automated runs (no window, no GPU)",
		func(opts device.Options) (device.Delegate, error) {
			return New(Options{Clock: opts.Clock}), nil
		})
}

type Options struct {
	// Clock drives the simulated head pose. Defaults to the real clock.
	Clock clockwork.Clock

	// Pose computes the head pose from the time elapsed since the delegate
	// was created. Defaults to a head at eye height that sways slightly.
	Pose func(elapsed time.Duration) glm.Mat4f

	// Maximum sway of the default pose in radians.
	SwayAmplitude float32

	// Model names of the simulated controllers.
	// Defaults to a single controller.
	Controllers []string

	// If set, entering VR mode fails with this error.
	EnterError error

	IPD       float32
	FovY      glm.Rad
	EyeHeight float32
}

// Delegate simulates a headset. Input is injected with PressButton, Scroll
// and Swipe from any goroutine and becomes visible with the next
// ProcessEvents.
type Delegate struct {
	device.Base

	opts  Options
	start time.Time
	noise *fastnoiselite.FastNoiseLite

	head glm.Mat4f

	injected *runqueue.Queue
	pending  []device.Gesture

	frames int
	trace  []string
}

var _ device.Delegate = (*Delegate)(nil)

func New(opts Options) *Delegate {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	if opts.SwayAmplitude == 0 {
		opts.SwayAmplitude = 0.05
	}

	if opts.Controllers == nil {
		opts.Controllers = []string{"Simulated Controller"}
	}

	if opts.IPD == 0 {
		opts.IPD = 0.064
	}

	if opts.FovY == 0 {
		opts.FovY = glm.DegToRad[float32](100)
	}

	if opts.EyeHeight == 0 {
		opts.EyeHeight = 1.7
	}

	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)

	d := &Delegate{
		Base:     device.NewBase(Name, opts.IPD, opts.FovY),
		opts:     opts,
		start:    opts.Clock.Now(),
		noise:    noise,
		injected: runqueue.New(),
	}

	if d.opts.Pose == nil {
		d.opts.Pose = d.sway
	}

	for _, model := range opts.Controllers {
		d.Controllers.Add(model, false)
	}

	d.head = d.opts.Pose(0)

	d.OnEnter = func(device.Surface) error {
		d.record("EnterVR")
		return opts.EnterError
	}

	d.OnLeave = func() {
		d.record("LeaveVR")
	}

	return d
}

func (d *Delegate) Name() string {
	return Name
}

func (d *Delegate) HeadTransform() glm.Mat4f {
	return d.head
}

func (d *Delegate) ProcessEvents() {
	d.head = d.opts.Pose(d.opts.Clock.Since(d.start))

	d.GestureSet.Reset()
	d.injected.Drain()

	for _, gesture := range d.pending {
		d.GestureSet.Add(gesture)
	}

	d.pending = d.pending[:0]

	// controllers are held in front of the body
	for idx := range d.Controllers.Count() {
		side := float32(idx%2)*0.4 - 0.2
		d.Controllers.SetTransform(idx, d.head.Translate(side, -0.3, -0.4))
	}
}

func (d *Delegate) StartFrame() {
	if !d.IsInVRMode() {
		return
	}

	d.record("StartFrame")
	d.BeginFrame(d.head)
}

func (d *Delegate) BindEye(eye device.Eye) {
	if !d.IsInVRMode() {
		return
	}

	d.record(fmt.Sprintf("BindEye(%s)", eye))
	d.Base.BindEye(eye)
}

func (d *Delegate) EndFrame() {
	if !d.IsInVRMode() {
		return
	}

	d.record("EndFrame")
	d.frames++
	d.Base.EndFrame()
}

// PressButton sets the state of a controller button.
func (d *Delegate) PressButton(index int, button device.Button, pressed bool) {
	d.injected.Enqueue(func() {
		d.Controllers.SetButton(index, button, pressed)
	})
}

func (d *Delegate) Scroll(index int, dx, dy float32) {
	d.injected.Enqueue(func() {
		d.Controllers.AddScroll(index, dx, dy)
	})
}

// Swipe reports a gesture during the next frame.
func (d *Delegate) Swipe(gesture device.Gesture) {
	d.injected.Enqueue(func() {
		d.pending = append(d.pending, gesture)
	})
}

// Frames returns the number of frames submitted while in VR mode.
func (d *Delegate) Frames() int {
	return d.frames
}

// Trace returns the calls that entered, left or bracketed frames.
func (d *Delegate) Trace() []string {
	return slices.Clone(d.trace)
}

func (d *Delegate) record(call string) {
	d.trace = append(d.trace, call)
}

func (d *Delegate) sway(elapsed time.Duration) glm.Mat4f {
	t := fastnoiselite.FNLfloat(elapsed.Seconds() * 20)

	yaw := d.opts.SwayAmplitude * float32(d.noise.GetNoise2D(t, 0))
	pitch := d.opts.SwayAmplitude * float32(d.noise.GetNoise2D(t, 100))

	rotation := glm.QuatFromAxisAngle(glm.Vec3f{0, 1, 0}, glm.Rad(yaw)).
		Mul(glm.QuatFromAxisAngle(glm.Vec3f{1, 0, 0}, glm.Rad(pitch)))

	return glm.TranslationMat4[float32](0, d.opts.EyeHeight, 0).Mul(glm.Mat4FromQuat(rotation))
}
