// Package device defines the capability set every VR hardware backend offers
// to the world renderer, together with the helpers the backends share.
package device

import "github.com/oliverbestmann/visor/glm"

//go:generate go tool stringer -type=Eye,Button,Gesture -output=enum_string.go

// Eye identifies one of the two views of a stereo frame.
type Eye uint8

const (
	EyeLeft Eye = iota
	EyeRight
)

// Eyes lists both eyes in the order they are rendered.
var Eyes = [...]Eye{EyeLeft, EyeRight}

// Button is a controller button.
type Button uint8

const (
	ButtonTrigger Button = iota
	ButtonTouchpad
	ButtonMenu
	ButtonGrip
)

// Surface is what a delegate renders into once VR mode is active.
type Surface interface {
	// IsSurfaceReady reports whether a drawable surface is currently bound.
	IsSurfaceReady() bool

	// Size returns the size of the bound surface in pixels.
	Size() (width, height uint32)

	// BeginFrame starts a new frame on the surface.
	BeginFrame() error

	// BindEye directs all following draw calls to the region of the given
	// eye. The region is cleared with the given color first.
	BindEye(eye Eye, viewport Viewport, clear glm.Vec4f) error

	// EndFrame submits the frame and presents it.
	EndFrame() error
}

// Delegate is the backend-specific bridge to a VR runtime. Only the render
// thread calls into a Delegate. Errors never cross this boundary: a
// delegate logs failures and degrades to a no-op.
type Delegate interface {
	// Name is the registered name of the backend.
	Name() string

	// Camera returns the camera of the given eye, as of the last StartFrame.
	Camera(eye Eye) *Camera

	// HeadTransform returns the current head pose in world space.
	HeadTransform() glm.Mat4f

	SetClearColor(color glm.Vec4f)
	SetClipPlanes(near, far float32)

	ControllerCount() int
	ControllerModelName(index int) string
	ControllerTransform(index int) glm.Mat4f

	// ControllerButtonState reports whether the button is pressed and
	// whether its state changed since it was queried the last time.
	ControllerButtonState(index int, button Button) (pressed, changed bool)

	// ControllerScrolled returns the scroll delta accumulated since the last
	// call. ok is false if there was no scrolling.
	ControllerScrolled(index int) (dx, dy float32, ok bool)

	IsControllerUsingHeadTracking(index int) bool

	// Gestures returns the gestures recognized during the last ProcessEvents.
	Gestures() GestureDelegate

	// ProcessEvents pumps the event queue of the backend.
	ProcessEvents()

	StartFrame()
	BindEye(eye Eye)
	EndFrame()

	// EnterVR starts rendering to the given surface. Entering without a
	// ready surface, or while already in VR, does nothing.
	EnterVR(surface Surface)
	LeaveVR()
	IsInVRMode() bool
}
