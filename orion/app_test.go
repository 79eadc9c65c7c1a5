package orion

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppRequiresComponents(t *testing.T) {
	valid := func() AppOptions {
		return AppOptions{
			Host:     glimpse.NewChannelHost(),
			World:    &fakeWorld{log: &callLog{}},
			Delegate: newFakeDelegate(&callLog{}),
			Surface:  func() (SurfaceContext, error) { return nil, errors.New("unused") },
		}
	}

	cases := map[string]func(opts *AppOptions){
		"Host":     func(opts *AppOptions) { opts.Host = nil },
		"World":    func(opts *AppOptions) { opts.World = nil },
		"Delegate": func(opts *AppOptions) { opts.Delegate = nil },
		"Surface":  func(opts *AppOptions) { opts.Surface = nil },
	}

	for field, unset := range cases {
		t.Run(field, func(t *testing.T) {
			opts := valid()
			unset(&opts)

			_, err := NewApp(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), field+" must not be nil")
		})
	}

	t.Run("defaults", func(t *testing.T) {
		app, err := NewApp(valid())
		require.NoError(t, err)
		assert.NotNil(t, app.Queue())
		assert.NotNil(t, app.Lifecycle())
	})
}

func TestRunDrawsFramesAndShutsDown(t *testing.T) {
	h := newHarness(t)

	h.world.onDraw = func(frame int) {
		h.clock.Advance(10 * time.Millisecond)

		if frame == 3 {
			h.host.Send(glimpse.Event{Command: glimpse.CommandTermWindow, Window: testWindow})
			h.host.Send(glimpse.Event{Command: glimpse.CommandDestroy})
			h.host.RequestDestroy()
		}
	}

	h.app.Queue().Enqueue(func() { h.log.record("Work") })

	h.host.Send(glimpse.Event{Command: glimpse.CommandResume})
	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	err := h.app.Run()
	require.NoError(t, err)

	frame := []string{"ClearFrame", "Draw", "BeginFrame", "BindEye(EyeLeft)", "BindEye(EyeRight)", "EndFrame"}

	var expected []string
	expected = append(expected, "InitializePlatform", "Resume", "Initialize", "InitializeGL", "EnterVR", "Work")
	expected = append(expected, frame...)
	expected = append(expected, frame...)
	expected = append(expected, frame...)
	expected = append(expected, "LeaveVR", "SurfaceDestroyed", "ShutdownPlatform", "ShutdownGL", "Destroy")

	assert.Equal(t, expected, h.log.all())
	assert.True(t, h.host.Terminated())

	assert.Equal(t, float64(3), testutil.ToFloat64(h.app.metrics.framesDrawn))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.app.metrics.workDrained))
	assert.Equal(t, float64(0), testutil.ToFloat64(h.app.metrics.vrMode))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.app.metrics.commands.WithLabelValues("InitWindow")))

	count, err := testutil.GatherAndCount(h.registry, "visor_frames_drawn_total", "visor_frame_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stats := h.app.FrameTimes()
	assert.EqualValues(t, 3, stats.FrameCount)
	assert.Equal(t, 10*time.Millisecond, stats.Delta)
	assert.InDelta(t, 100.0, stats.FPS(), 0.001)
}

func TestRunLeavesVROnExit(t *testing.T) {
	h := newHarness(t)

	h.world.onDraw = func(frame int) {
		h.host.RequestDestroy()
	}

	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	require.NoError(t, h.app.Run())

	calls := h.log.all()
	assert.Equal(t, []string{"LeaveVR", "ShutdownGL", "Destroy"}, calls[len(calls)-3:])
	assert.False(t, h.delegate.IsInVRMode())
}

func TestRunWithoutWindowDoesNotDraw(t *testing.T) {
	h := newHarness(t)

	h.host.Send(glimpse.Event{Command: glimpse.CommandResume})
	h.host.RequestDestroy()

	require.NoError(t, h.app.Run())

	assert.Zero(t, h.world.draws)
	assert.Zero(t, h.factoryCalls)

	// no surface, nothing to tear down
	assert.Zero(t, h.log.count("ShutdownGL"))
	assert.Zero(t, h.log.count("Destroy"))
	assert.True(t, h.host.Terminated())
}

func TestRunReturnsFatalSurfaceError(t *testing.T) {
	h := newHarness(t)
	h.factoryErr = errors.New("no adapter")

	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	err := h.app.Run()
	require.ErrorIs(t, err, h.factoryErr)

	assert.Zero(t, h.world.draws)
	assert.Zero(t, h.log.count("EnterVR"))
	assert.Zero(t, h.log.count("ShutdownGL"))
	assert.True(t, h.host.Terminated())
}

func TestRunReturnsFatalWorldError(t *testing.T) {
	h := newHarness(t)
	h.world.initGLErr = errors.New("shader compile failed")

	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	err := h.app.Run()
	require.ErrorIs(t, err, h.world.initGLErr)

	// the surface exists and is released, the world never finished its setup
	assert.Equal(t, 1, h.log.count("Destroy"))
	assert.Zero(t, h.log.count("ShutdownGL"))
	assert.Zero(t, h.log.count("EnterVR"))
}

func TestRunBlocksWhilePaused(t *testing.T) {
	h := newHarness(t)

	h.host.Send(glimpse.Event{Command: glimpse.CommandPause})

	done := make(chan error, 1)
	go func() { done <- h.app.Run() }()

	select {
	case <-h.host.blocking:
	case <-time.After(time.Second):
		t.Fatal("render loop did not block while paused")
	}

	ran := make(chan struct{})
	h.app.Queue().Enqueue(func() { close(ran) })

	select {
	case <-ran:
		t.Fatal("work ran while the render loop was waiting for events")
	case <-time.After(50 * time.Millisecond):
	}

	h.host.Send(glimpse.Event{Command: glimpse.CommandResume})

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("work did not run after resume")
	}

	h.host.RequestDestroy()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("render loop did not exit")
	}
}

func TestRunDoesNotDrawWhilePaused(t *testing.T) {
	h := newHarness(t)

	h.world.onDraw = func(frame int) {
		if frame == 1 {
			h.host.Send(glimpse.Event{Command: glimpse.CommandPause})
			h.host.Send(glimpse.Event{Command: glimpse.CommandDestroy})
		}
	}

	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	require.NoError(t, h.app.Run())

	assert.Equal(t, 1, h.world.draws)
	assert.Less(t, h.log.index("LeaveVR"), h.log.index("ShutdownPlatform"))
}

func TestRunStopsDrawingWhenSurfaceBecomesUnusable(t *testing.T) {
	h := newHarness(t)

	h.world.onDraw = func(frame int) {
		// the window shrinks to nothing without a window command
		h.surface.width = 0
		h.app.Queue().Enqueue(h.host.RequestDestroy)
	}

	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	require.NoError(t, h.app.Run())

	assert.Equal(t, 1, h.world.draws)
	assert.Equal(t, 1, h.log.count("LeaveVR"))
	assert.Less(t, h.log.index("LeaveVR"), h.log.index("ShutdownGL"))
	assert.Zero(t, h.delegate.enterWithoutReady)
}

func TestWorldWorkRunsOnRenderThread(t *testing.T) {
	h := newHarness(t)

	h.world.onDraw = func(frame int) {
		if frame == 1 {
			h.world.queue.Enqueue(func() {
				h.log.record("WorldWork")
				h.host.RequestDestroy()
			})
		}
	}

	h.host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: testWindow})

	require.NoError(t, h.app.Run())

	assert.Same(t, h.app.Queue(), h.world.queue)
	assert.Equal(t, 1, h.log.count("WorldWork"))
	assert.Equal(t, 2, h.world.draws)
}

func TestQueueClosedAfterRun(t *testing.T) {
	h := newHarness(t)
	h.host.RequestDestroy()

	require.NoError(t, h.app.Run())

	assert.True(t, h.app.Queue().Closed())

	done := make(chan bool, 1)
	go func() { done <- h.app.Queue().Call(func() {}) }()

	select {
	case ran := <-done:
		assert.False(t, ran)
	case <-time.After(time.Second):
		t.Fatal("Call blocked after the render loop exited")
	}
}

func TestRunReturnsPlatformError(t *testing.T) {
	h := newHarness(t)
	h.world.platformErr = errors.New("no platform")

	err := h.app.Run()
	require.ErrorIs(t, err, h.world.platformErr)

	assert.True(t, h.host.Terminated())
	assert.True(t, h.app.Queue().Closed())
	assert.Zero(t, h.world.draws)
}

func TestFrameTimes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	times := NewFrameTimes(clock)

	assert.Zero(t, times.FPS())

	var logged int
	for range 120 {
		if times.Tick() {
			logged++
		}

		clock.Advance(20 * time.Millisecond)
	}

	assert.Equal(t, 2, logged)
	assert.EqualValues(t, 120, times.FrameCount)
	assert.Equal(t, 20*time.Millisecond, times.Delta)
	assert.Equal(t, 20*time.Millisecond, times.MaxDuration)
	assert.InDelta(t, 50.0, times.FPS(), 0.001)
}
