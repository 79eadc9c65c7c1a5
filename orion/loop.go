package orion

import (
	"log/slog"
)

// loopOnce runs a single iteration of the render loop.
// It returns false once the loop must exit.
func (a *App) loopOnce() bool {
	// wait for events while paused, otherwise just look at what is there
	a.host.PollEvents(a.world.IsPaused())

	if a.host.DestroyRequested() || a.lifecycle.Destroyed() || a.lifecycle.Err() != nil {
		return false
	}

	// lifecycle commands might have changed the binding of the surface
	a.lifecycle.refresh()

	if count := a.queue.Drain(); count > 0 {
		a.metrics.workDrained.Add(float64(count))
	}

	if !a.world.IsPaused() && a.delegate.IsInVRMode() {
		a.drawFrame()
	}

	return true
}

func (a *App) drawFrame() {
	if surface := a.lifecycle.Surface(); surface != nil {
		surface.ClearFrame()
	}

	a.world.Draw()

	a.metrics.framesDrawn.Inc()

	logStats := a.frameTimes.Tick()

	if a.frameTimes.FrameCount > 1 {
		a.metrics.frameDuration.Observe(a.frameTimes.Delta.Seconds())
	}

	if logStats {
		slog.Info("Frame stats",
			slog.Float64("fps", a.frameTimes.FPS()),
			slog.Duration("avg", a.frameTimes.AverageDuration),
			slog.Duration("max", a.frameTimes.MaxDuration),
		)
	}
}
