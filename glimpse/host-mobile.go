//go:build android

package glimpse

import (
	"log/slog"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"
)

// MobileHost adapts the event stream of an x/mobile app to the Host
// interface. The host itself is the Window delivered with the window
// commands; it carries the gl.Context of the visible activity.
type MobileHost struct {
	app     app.App
	handler func(Event)

	size  size.Event
	glctx gl.Context

	destroy bool
}

var _ Host = (*MobileHost)(nil)

func NewMobileHost(a app.App) *MobileHost {
	return &MobileHost{app: a}
}

func (h *MobileHost) OnCommand(handler func(Event)) {
	h.handler = handler
}

func (h *MobileHost) PollEvents(block bool) {
	if block && !h.destroy {
		h.handle(<-h.app.Events())
	}

	for {
		select {
		case ev := <-h.app.Events():
			h.handle(ev)
		default:
			return
		}
	}
}

func (h *MobileHost) DestroyRequested() bool {
	return h.destroy
}

func (h *MobileHost) Terminate() {
	h.glctx = nil
}

func (h *MobileHost) GetSize() (uint32, uint32) {
	return uint32(h.size.WidthPx), uint32(h.size.HeightPx)
}

// GLContext returns the context of the visible activity, or nil.
func (h *MobileHost) GLContext() gl.Context {
	return h.glctx
}

// Publish presents the frame drawn into the current gl.Context.
func (h *MobileHost) Publish() {
	h.app.Publish()
}

func (h *MobileHost) handle(ev any) {
	switch ev := h.app.Filter(ev).(type) {
	case lifecycle.Event:
		if ev.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
			h.glctx, _ = ev.DrawContext.(gl.Context)
		}

		for _, cmd := range CommandsForLifecycle(ev, h) {
			h.deliver(cmd)
		}

		if ev.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
			h.glctx = nil
		}

		if ev.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff {
			h.destroy = true
		}

	case size.Event:
		h.size = ev

		if h.glctx != nil {
			// same activity, new geometry
			h.deliver(Event{Command: CommandInitWindow, Window: h})
		}
	}
}

func (h *MobileHost) deliver(ev Event) {
	slog.Debug("Host command", slog.String("command", ev.Command.String()))

	if h.handler != nil {
		h.handler(ev)
	}
}
