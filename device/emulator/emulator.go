// Package emulator provides a headset emulator for the desktop. The head is
// steered with mouse and keyboard, both eyes are rendered side by side into
// the window.
package emulator

import (
	"errors"
	"log/slog"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
)

const Name = "emulator"

func init() {
	device.Register(Name, "Desktop headset emulator (mouse look, WASD, side by side stereo)",
		func(opts device.Options) (device.Delegate, error) {
			if opts.Input == nil {
				return nil, errors.New("emulator requires an input source")
			}

			return New(Options{Input: opts.Input}), nil
		})
}

type Options struct {
	// Input provides the keyboard and mouse state. Required.
	Input glimpse.InputSource

	// Distance between the eyes in meters. Defaults to 64mm.
	IPD float32

	FovY glm.Rad

	// Radians of head rotation per pixel of mouse movement.
	LookSensitivity float32

	// Meters of head movement per frame while a movement key is held.
	MoveSpeed float32

	// Height of the head above the floor.
	EyeHeight float32
}

// controllerOffset places the emulated controller relative to the head.
var controllerOffset = glm.Vec3f{0.2, -0.3, -0.4}

// Delegate emulates a headset with a single controller.
// Dragging with the right mouse button turns the head, WASD moves it,
// R recenters. The left mouse button is the trigger, the middle button the
// touchpad and space the menu button. The arrow keys produce swipe gestures.
type Delegate struct {
	device.Base

	opts Options

	yaw, pitch float32
	position   glm.Vec3f
}

var _ device.Delegate = (*Delegate)(nil)

func New(opts Options) *Delegate {
	if opts.IPD == 0 {
		opts.IPD = 0.064
	}

	if opts.FovY == 0 {
		opts.FovY = glm.DegToRad[float32](90)
	}

	if opts.LookSensitivity == 0 {
		opts.LookSensitivity = 0.005
	}

	if opts.MoveSpeed == 0 {
		opts.MoveSpeed = 0.02
	}

	if opts.EyeHeight == 0 {
		opts.EyeHeight = 1.7
	}

	d := &Delegate{
		Base:     device.NewBase(Name, opts.IPD, opts.FovY),
		opts:     opts,
		position: glm.Vec3f{0, opts.EyeHeight, 0},
	}

	d.Controllers.Add("Emulated Controller", true)

	return d
}

func (d *Delegate) Name() string {
	return Name
}

func (d *Delegate) orientation() glm.Quatf {
	yaw := glm.QuatFromAxisAngle(glm.Vec3f{0, 1, 0}, glm.Rad(d.yaw))
	pitch := glm.QuatFromAxisAngle(glm.Vec3f{1, 0, 0}, glm.Rad(d.pitch))
	return yaw.Mul(pitch)
}

func (d *Delegate) HeadTransform() glm.Mat4f {
	translation := glm.TranslationMat4[float32](d.position.XYZ())
	return translation.Mul(glm.Mat4FromQuat(d.orientation()))
}

func (d *Delegate) ProcessEvents() {
	input := d.opts.Input.InputState()

	d.GestureSet.Reset()

	d.look(input.Mouse)
	d.move(input.Keys)

	if input.Keys.JustPressed[glimpse.KeyR] {
		slog.Info("Recenter emulated headset")
		d.yaw, d.pitch = 0, 0
		d.position = glm.Vec3f{0, d.opts.EyeHeight, 0}
	}

	if input.Keys.JustPressed[glimpse.KeyLeft] {
		d.GestureSet.Add(device.GestureSwipeLeft)
	}

	if input.Keys.JustPressed[glimpse.KeyRight] {
		d.GestureSet.Add(device.GestureSwipeRight)
	}

	d.Controllers.SetButton(0, device.ButtonTrigger, input.Mouse.Pressed[glimpse.MouseButtonLeft])
	d.Controllers.SetButton(0, device.ButtonTouchpad, input.Mouse.Pressed[glimpse.MouseButtonMiddle])
	d.Controllers.SetButton(0, device.ButtonMenu, input.Keys.Pressed[glimpse.KeySpace])

	if input.Mouse.ScrollX != 0 || input.Mouse.ScrollY != 0 {
		d.Controllers.AddScroll(0, input.Mouse.ScrollX, input.Mouse.ScrollY)
	}

	d.Controllers.SetTransform(0, d.HeadTransform().Translate(controllerOffset.XYZ()))
}

func (d *Delegate) look(mouse glimpse.MouseState) {
	if !mouse.Pressed[glimpse.MouseButtonRight] {
		return
	}

	d.yaw -= mouse.DeltaX * d.opts.LookSensitivity
	d.pitch -= mouse.DeltaY * d.opts.LookSensitivity

	// do not look further than straight up or down
	const limit = 1.5
	d.pitch = max(-limit, min(limit, d.pitch))
}

func (d *Delegate) move(keys glimpse.KeysState) {
	var direction glm.Vec3f

	if keys.Pressed[glimpse.KeyW] {
		direction[2] -= 1
	}
	if keys.Pressed[glimpse.KeyS] {
		direction[2] += 1
	}
	if keys.Pressed[glimpse.KeyA] {
		direction[0] -= 1
	}
	if keys.Pressed[glimpse.KeyD] {
		direction[0] += 1
	}

	if direction == (glm.Vec3f{}) {
		return
	}

	// walk in the direction the head is facing, but stay on the ground
	yaw := glm.QuatFromAxisAngle(glm.Vec3f{0, 1, 0}, glm.Rad(d.yaw))
	step := yaw.Rotate(direction.Normalize()).MulScalar(d.opts.MoveSpeed)

	d.position = d.position.Add(step)
}

func (d *Delegate) StartFrame() {
	d.BeginFrame(d.HeadTransform())
}
