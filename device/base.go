package device

import (
	"log/slog"

	"github.com/oliverbestmann/visor/glm"
)

// Base implements the parts of a Delegate that do not depend on the
// hardware: VR session, settings, controllers, gestures and the frame
// bracket on a side by side stereo surface. Backends embed it and add
// Name, HeadTransform, ProcessEvents and StartFrame.
type Base struct {
	Settings    Settings
	Session     Session
	Controllers Controllers
	GestureSet  GestureSet

	// OnEnter is called when entering VR mode. An error
	// keeps the delegate out of VR mode.
	OnEnter func(surface Surface) error

	// OnLeave is called when leaving VR mode.
	OnLeave func()

	cameras   [2]*Camera
	frameOpen bool
}

func NewBase(backend string, ipd float32, fovY glm.Rad) Base {
	return Base{
		Settings: NewSettings(),
		Session:  NewSession(backend),
		cameras:  StereoCameras(ipd, fovY),
	}
}

func (b *Base) Camera(eye Eye) *Camera {
	if int(eye) >= len(b.cameras) {
		return nil
	}

	return b.cameras[eye]
}

func (b *Base) SetClearColor(color glm.Vec4f) {
	b.Settings.SetClearColor(color)
}

func (b *Base) SetClipPlanes(near, far float32) {
	b.Settings.SetClipPlanes(near, far)
}

func (b *Base) ControllerCount() int {
	return b.Controllers.Count()
}

func (b *Base) ControllerModelName(index int) string {
	return b.Controllers.ModelName(index)
}

func (b *Base) ControllerTransform(index int) glm.Mat4f {
	return b.Controllers.Transform(index)
}

func (b *Base) ControllerButtonState(index int, button Button) (pressed, changed bool) {
	return b.Controllers.ButtonState(index, button)
}

func (b *Base) ControllerScrolled(index int) (dx, dy float32, ok bool) {
	return b.Controllers.Scrolled(index)
}

func (b *Base) IsControllerUsingHeadTracking(index int) bool {
	return b.Controllers.UsingHeadTracking(index)
}

func (b *Base) Gestures() GestureDelegate {
	return &b.GestureSet
}

func (b *Base) EnterVR(surface Surface) {
	b.Session.Enter(surface, b.OnEnter)
}

func (b *Base) LeaveVR() {
	// a frame that is still open is dropped
	b.frameOpen = false

	b.Session.Leave(b.OnLeave)
}

func (b *Base) IsInVRMode() bool {
	return b.Session.Active()
}

// BeginFrame activates pending settings, positions the eye cameras
// relative to the given head pose and starts a frame on the surface.
func (b *Base) BeginFrame(head glm.Mat4f) {
	surface := b.Session.Surface()
	if surface == nil {
		return
	}

	if b.frameOpen {
		slog.Warn("Frame started before the previous frame ended")
		b.EndFrame()
	}

	config := b.Settings.Apply()

	width, height := surface.Size()
	for _, eye := range Eyes {
		b.cameras[eye].Update(head, SideBySide(width, height, eye), config.Near, config.Far)
	}

	if err := surface.BeginFrame(); err != nil {
		slog.Warn("Failed to begin frame", slog.String("err", err.Error()))
		return
	}

	b.frameOpen = true
}

func (b *Base) BindEye(eye Eye) {
	camera := b.Camera(eye)
	if !b.frameOpen || camera == nil {
		return
	}

	surface := b.Session.Surface()

	err := surface.BindEye(eye, camera.Viewport(), b.Settings.Active().ClearColor)
	if err != nil {
		slog.Warn("Failed to bind eye",
			slog.String("eye", eye.String()),
			slog.String("err", err.Error()))
	}
}

func (b *Base) EndFrame() {
	if !b.frameOpen {
		return
	}

	b.frameOpen = false

	if err := b.Session.Surface().EndFrame(); err != nil {
		slog.Warn("Failed to end frame", slog.String("err", err.Error()))
	}
}
