package glimpse

import (
	"sync"
	"sync/atomic"
)

// ChannelHost is a Host that is driven programmatically. Events can be sent
// from any goroutine and are delivered on the goroutine calling PollEvents.
// It is used for headless runs and in tests.
type ChannelHost struct {
	mu      sync.Mutex
	pending []Event

	// signaled whenever an event or a destroy request arrives
	signal chan struct{}

	destroy    atomic.Bool
	terminated atomic.Bool

	handler func(Event)
}

func NewChannelHost() *ChannelHost {
	return &ChannelHost{
		signal: make(chan struct{}, 1),
	}
}

func (h *ChannelHost) OnCommand(handler func(Event)) {
	h.handler = handler
}

// Send queues an event for delivery. It never blocks.
func (h *ChannelHost) Send(ev Event) {
	h.mu.Lock()
	h.pending = append(h.pending, ev)
	h.mu.Unlock()

	h.wakeup()
}

// RequestDestroy marks the host as exiting and wakes up a blocked PollEvents.
func (h *ChannelHost) RequestDestroy() {
	h.destroy.Store(true)
	h.wakeup()
}

func (h *ChannelHost) DestroyRequested() bool {
	return h.destroy.Load()
}

func (h *ChannelHost) PollEvents(block bool) {
	events := h.take()

	for block && len(events) == 0 && !h.destroy.Load() {
		<-h.signal
		events = h.take()
	}

	for _, ev := range events {
		if h.handler != nil {
			h.handler(ev)
		}
	}
}

func (h *ChannelHost) Terminate() {
	h.terminated.Store(true)
}

// Terminated reports whether Terminate was called.
func (h *ChannelHost) Terminated() bool {
	return h.terminated.Load()
}

func (h *ChannelHost) take() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	events := h.pending
	h.pending = nil
	return events
}

func (h *ChannelHost) wakeup() {
	select {
	case h.signal <- struct{}{}:
	default:
	}
}

// FixedWindow is a Window with a constant size and no backing surface.
type FixedWindow struct {
	Width, Height uint32
}

func (w FixedWindow) GetSize() (uint32, uint32) {
	return w.Width, w.Height
}
