package headless

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readySurface(t *testing.T) *Surface {
	surface := NewSurface()
	require.NoError(t, surface.Initialize(glimpse.FixedWindow{Width: 64, Height: 32}))
	require.True(t, surface.IsSurfaceReady())
	return surface
}

func TestPoseFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClock()

	d := New(Options{
		Clock: clock,
		Pose: func(elapsed time.Duration) glm.Mat4f {
			return glm.TranslationMat4[float32](float32(elapsed.Seconds()), 0, 0)
		},
	})

	clock.Advance(2 * time.Second)
	d.ProcessEvents()

	assert.Equal(t, glm.Vec3f{2, 0, 0}, d.HeadTransform().Translation())
}

func TestDefaultPoseSwaysAroundEyeHeight(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := New(Options{Clock: clock})

	for range 10 {
		clock.Advance(100 * time.Millisecond)
		d.ProcessEvents()

		position := d.HeadTransform().Translation()
		assert.InDelta(t, 1.7, float64(position[1]), 1e-5)

		// the head looks roughly forward
		forward := d.HeadTransform().Transform(glm.Vec4f{0, 0, -1, 0})
		assert.Less(t, float64(forward[2]), -0.99)
	}
}

func TestFrameTrace(t *testing.T) {
	d := New(Options{Clock: clockwork.NewFakeClock()})
	surface := readySurface(t)

	// frames outside of VR are not recorded
	d.StartFrame()
	d.EndFrame()

	d.EnterVR(surface)
	require.True(t, d.IsInVRMode())

	d.StartFrame()
	d.BindEye(device.EyeLeft)
	d.BindEye(device.EyeRight)
	d.EndFrame()

	d.LeaveVR()

	assert.Equal(t, []string{
		"EnterVR",
		"StartFrame",
		"BindEye(EyeLeft)",
		"BindEye(EyeRight)",
		"EndFrame",
		"LeaveVR",
	}, d.Trace())

	assert.Equal(t, 1, d.Frames())
	assert.Equal(t, 1, surface.Presented())
}

func TestEnterFailure(t *testing.T) {
	d := New(Options{EnterError: errors.New("no runtime")})

	d.EnterVR(readySurface(t))
	assert.False(t, d.IsInVRMode())
	assert.Equal(t, []string{"EnterVR"}, d.Trace())
}

func TestEnterRequiresReadySurface(t *testing.T) {
	d := New(Options{})

	d.EnterVR(NewSurface())
	assert.False(t, d.IsInVRMode())
	assert.Empty(t, d.Trace())
}

func TestInjectedInputVisibleAfterProcessEvents(t *testing.T) {
	d := New(Options{Controllers: []string{"left", "right"}})

	d.PressButton(1, device.ButtonGrip, true)
	d.Scroll(0, 0, 3)
	d.Swipe(device.GestureSwipeRight)

	pressed, _ := d.ControllerButtonState(1, device.ButtonGrip)
	assert.False(t, pressed)

	d.ProcessEvents()

	pressed, changed := d.ControllerButtonState(1, device.ButtonGrip)
	assert.True(t, pressed)
	assert.True(t, changed)

	_, dy, ok := d.ControllerScrolled(0)
	assert.True(t, ok)
	assert.Equal(t, float32(3), dy)

	require.Equal(t, 1, d.Gestures().GestureCount())
	assert.Equal(t, device.GestureSwipeRight, d.Gestures().Gesture(0))

	d.ProcessEvents()
	assert.Zero(t, d.Gestures().GestureCount())

	assert.Equal(t, 2, d.ControllerCount())
	assert.Equal(t, "right", d.ControllerModelName(1))
	assert.False(t, d.IsControllerUsingHeadTracking(0))
}

func TestSurfaceRendersEyeClearColors(t *testing.T) {
	d := New(Options{})
	surface := readySurface(t)

	d.EnterVR(surface)
	d.SetClearColor(glm.Vec4f{1, 0, 0, 1})

	surface.ClearFrame()
	d.StartFrame()
	d.BindEye(device.EyeLeft)
	d.BindEye(device.EyeRight)
	d.EndFrame()

	frame := surface.Frame()
	require.NotNil(t, frame)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, frame.At(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, frame.At(63, 31))
	assert.Equal(t, 1, surface.Clears())
}

func TestSurfaceLifecycle(t *testing.T) {
	surface := NewSurface()

	assert.False(t, surface.IsSurfaceReady())
	assert.ErrorIs(t, surface.BeginFrame(), ErrSurfaceNotReady)

	win := &resizableWindow{width: 10, height: 10}
	require.NoError(t, surface.Initialize(win))

	win.width = 20
	require.NoError(t, surface.MakeCurrent())

	width, height := surface.Size()
	assert.Equal(t, uint32(20), width)
	assert.Equal(t, uint32(10), height)

	surface.SurfaceDestroyed()
	assert.False(t, surface.IsSurfaceReady())

	require.NoError(t, surface.SurfaceChanged(win))
	assert.True(t, surface.IsSurfaceReady())

	surface.Destroy()
	assert.False(t, surface.IsSurfaceReady())
	assert.Error(t, surface.Initialize(win))
}

func TestRegisteredBackend(t *testing.T) {
	delegate, err := device.Open(Name, device.Options{})
	require.NoError(t, err)
	assert.Equal(t, Name, delegate.Name())
}

type resizableWindow struct {
	width, height uint32
}

func (w *resizableWindow) GetSize() (uint32, uint32) {
	return w.width, w.height
}
