package device

import (
	"log/slog"

	"github.com/oliverbestmann/visor/glm"
)

const (
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100
)

// Config holds the per-frame rendering settings of a delegate.
type Config struct {
	ClearColor glm.Vec4f
	Near, Far  float32
}

func DefaultConfig() Config {
	return Config{
		ClearColor: glm.Vec4f{0, 0, 0, 1},
		Near:       DefaultNear,
		Far:        DefaultFar,
	}
}

// Settings collects changes to the Config that become active with the
// next frame.
type Settings struct {
	pending Config
	active  Config
}

func NewSettings() Settings {
	return Settings{
		pending: DefaultConfig(),
		active:  DefaultConfig(),
	}
}

func (s *Settings) SetClearColor(color glm.Vec4f) {
	s.pending.ClearColor = color
}

// SetClipPlanes changes the depth range. Invalid ranges are ignored.
func (s *Settings) SetClipPlanes(near, far float32) {
	if near <= 0 || far <= near {
		slog.Warn("Ignore invalid clip planes",
			slog.Float64("near", float64(near)),
			slog.Float64("far", float64(far)),
		)

		return
	}

	s.pending.Near = near
	s.pending.Far = far
}

// Apply activates all pending changes. Call this at the start of a frame.
func (s *Settings) Apply() Config {
	s.active = s.pending
	return s.active
}

func (s *Settings) Active() Config {
	return s.active
}
