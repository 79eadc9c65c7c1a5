package emulator

import (
	"testing"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedInput returns the queued states one after another,
// followed by empty states.
type scriptedInput struct {
	states []glimpse.InputState
}

func (s *scriptedInput) InputState() glimpse.InputState {
	if len(s.states) == 0 {
		return glimpse.InputState{}
	}

	state := s.states[0]
	s.states = s.states[1:]
	return state
}

func keysPressed(keys ...glimpse.Key) glimpse.KeysState {
	state := glimpse.KeysState{Pressed: map[glimpse.Key]bool{}, JustPressed: map[glimpse.Key]bool{}}
	for _, key := range keys {
		state.Pressed[key] = true
		state.JustPressed[key] = true
	}

	return state
}

func TestHeadStartsAtEyeHeight(t *testing.T) {
	d := New(Options{Input: &scriptedInput{}})

	position := d.HeadTransform().Translation()
	assert.InDelta(t, 1.7, float64(position[1]), 1e-6)
	assert.Equal(t, Name, d.Name())
}

func TestWalkForward(t *testing.T) {
	input := &scriptedInput{states: []glimpse.InputState{{Keys: keysPressed(glimpse.KeyW)}}}
	d := New(Options{Input: input, MoveSpeed: 1})

	d.ProcessEvents()

	position := d.HeadTransform().Translation()
	assert.InDelta(t, -1, float64(position[2]), 1e-5)
	assert.InDelta(t, 0, float64(position[0]), 1e-5)
}

func TestMouseLookRequiresRightButton(t *testing.T) {
	drag := glimpse.MouseState{DeltaX: 100}
	look := glimpse.MouseState{DeltaX: 100, Pressed: map[glimpse.MouseButton]bool{glimpse.MouseButtonRight: true}}

	input := &scriptedInput{states: []glimpse.InputState{{Mouse: drag}, {Mouse: look}}}
	d := New(Options{Input: input, LookSensitivity: 0.01})

	d.ProcessEvents()
	assert.Zero(t, d.yaw)

	d.ProcessEvents()
	assert.InDelta(t, -1, float64(d.yaw), 1e-6)
}

func TestRecenter(t *testing.T) {
	input := &scriptedInput{states: []glimpse.InputState{
		{Keys: keysPressed(glimpse.KeyD)},
		{Keys: keysPressed(glimpse.KeyR)},
	}}

	d := New(Options{Input: input})

	d.ProcessEvents()
	require.NotEqual(t, float32(0), d.HeadTransform().Translation()[0])

	d.ProcessEvents()
	assert.Equal(t, glm.Vec3f{0, 1.7, 0}, d.HeadTransform().Translation())
}

func TestControllerFollowsMouse(t *testing.T) {
	mouse := glimpse.MouseState{
		ScrollY: 2,
		Pressed: map[glimpse.MouseButton]bool{glimpse.MouseButtonLeft: true},
	}

	input := &scriptedInput{states: []glimpse.InputState{{Mouse: mouse}, {}}}
	d := New(Options{Input: input})

	require.Equal(t, 1, d.ControllerCount())
	assert.True(t, d.IsControllerUsingHeadTracking(0))

	d.ProcessEvents()

	pressed, changed := d.ControllerButtonState(0, device.ButtonTrigger)
	assert.True(t, pressed)
	assert.True(t, changed)

	_, dy, ok := d.ControllerScrolled(0)
	assert.True(t, ok)
	assert.Equal(t, float32(2), dy)

	d.ProcessEvents()

	pressed, changed = d.ControllerButtonState(0, device.ButtonTrigger)
	assert.False(t, pressed)
	assert.True(t, changed)
}

func TestArrowKeysProduceGestures(t *testing.T) {
	input := &scriptedInput{states: []glimpse.InputState{
		{Keys: keysPressed(glimpse.KeyLeft, glimpse.KeyRight)},
		{},
	}}

	d := New(Options{Input: input})

	d.ProcessEvents()
	assert.Equal(t, 2, d.Gestures().GestureCount())

	d.ProcessEvents()
	assert.Equal(t, 0, d.Gestures().GestureCount())
}

func TestRegisteredBackendRequiresInput(t *testing.T) {
	_, err := device.Open(Name, device.Options{})
	assert.Error(t, err)

	delegate, err := device.Open(Name, device.Options{Input: &scriptedInput{}})
	require.NoError(t, err)
	assert.Equal(t, Name, delegate.Name())
}
