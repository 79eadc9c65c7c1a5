package device

import (
	"log/slog"

	"github.com/google/uuid"
)

// Session tracks whether a delegate is in VR mode and guards the
// transitions between the two states.
type Session struct {
	backend string

	id      uuid.UUID
	surface Surface
}

func NewSession(backend string) Session {
	return Session{backend: backend}
}

// Enter calls start and enters VR mode if start succeeds. Nothing happens if
// the session is already active or the surface is not ready.
func (s *Session) Enter(surface Surface, start func(surface Surface) error) bool {
	if s.Active() {
		slog.Debug("Already in VR mode", slog.String("session", s.id.String()))
		return false
	}

	if surface == nil || !surface.IsSurfaceReady() {
		slog.Warn("Cannot enter VR mode without a ready surface",
			slog.String("backend", s.backend))

		return false
	}

	if start != nil {
		if err := start(surface); err != nil {
			slog.Error("Failed to enter VR mode",
				slog.String("backend", s.backend),
				slog.String("err", err.Error()))

			return false
		}
	}

	s.id = uuid.New()
	s.surface = surface

	slog.Info("Entered VR mode",
		slog.String("backend", s.backend),
		slog.String("session", s.id.String()))

	return true
}

// Leave calls stop and leaves VR mode. Nothing happens if the
// session is not active.
func (s *Session) Leave(stop func()) bool {
	if !s.Active() {
		return false
	}

	if stop != nil {
		stop()
	}

	slog.Info("Left VR mode",
		slog.String("backend", s.backend),
		slog.String("session", s.id.String()))

	s.id = uuid.Nil
	s.surface = nil

	return true
}

func (s *Session) Active() bool {
	return s.surface != nil
}

// ID identifies the active session in logs. It is uuid.Nil outside of VR mode.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Surface returns the surface of the active session, or nil.
func (s *Session) Surface() Surface {
	return s.surface
}
