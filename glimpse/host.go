package glimpse

import "github.com/cogentcore/webgpu/wgpu"

// Host is the environment the application runs in. It owns the native
// window and delivers lifecycle commands to the handler registered
// with OnCommand.
type Host interface {
	// OnCommand registers the handler that receives lifecycle commands.
	// It is called once at startup, before the first call to PollEvents.
	OnCommand(handler func(Event))

	// PollEvents processes pending host events and delivers the resulting
	// commands to the handler. If block is true, PollEvents waits until at
	// least one event was processed, otherwise it returns immediately.
	PollEvents(block bool)

	// DestroyRequested reports whether the host asked the application to exit.
	DestroyRequested() bool

	// Terminate releases all host resources.
	Terminate()
}

// Window is a native window owned by the host.
type Window interface {
	GetSize() (uint32, uint32)
}

// SurfaceSource is a Window that webgpu can render to.
type SurfaceSource interface {
	Window
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// InputSource is a host that tracks keyboard and mouse input.
type InputSource interface {
	// InputState returns the input accumulated since the previous call.
	InputState() InputState
}
