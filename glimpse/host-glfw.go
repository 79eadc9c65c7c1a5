//go:build !android && !ios && !js

package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw must only be used from the main thread
	runtime.LockOSThread()
}

// GlfwHost runs the application in a desktop window. Minimizing the window
// pauses the application and takes the window away, restoring it brings both
// back. Closing the window requests the application to exit.
type GlfwHost struct {
	win     *glfw.Window
	handler func(Event)

	input InputState

	// commands collected by the glfw callbacks, delivered on the next poll
	pending []Event

	iconified bool
	destroy   bool

	resize resizeTracker
}

var _ Host = (*GlfwHost)(nil)
var _ SurfaceSource = (*GlfwHost)(nil)
var _ InputSource = (*GlfwHost)(nil)

func NewGlfwHost(width, height int, title string) (*GlfwHost, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	h := &GlfwHost{win: window}

	// the window exists right away, the application is started and gets
	// its window on the first poll
	h.pending = append(h.pending,
		Event{Command: CommandResume},
		Event{Command: CommandInitWindow, Window: h},
	)

	h.configureCallbacks()

	return h, nil
}

func (h *GlfwHost) OnCommand(handler func(Event)) {
	h.handler = handler
}

func (h *GlfwHost) PollEvents(block bool) {
	if block && len(h.pending) == 0 && !h.destroy {
		glfw.WaitEvents()
	} else {
		glfw.PollEvents()
	}

	events := h.pending
	h.pending = nil

	for _, ev := range events {
		if h.handler != nil {
			h.handler(ev)
		}
	}
}

func (h *GlfwHost) DestroyRequested() bool {
	return h.destroy
}

// Close takes the window away and requests the application to exit, the same
// way closing the window does. It must be called on the render thread.
func (h *GlfwHost) Close() {
	if h.destroy {
		return
	}

	if !h.iconified {
		h.push(Event{Command: CommandTermWindow, Window: h})
	}

	h.push(Event{Command: CommandDestroy})
	h.destroy = true
}

// Wakeup interrupts a blocking PollEvents. It is safe to call from any goroutine.
func (h *GlfwHost) Wakeup() {
	glfw.PostEmptyEvent()
}

func (h *GlfwHost) Terminate() {
	h.win.Destroy()
	glfw.Terminate()
}

func (h *GlfwHost) GetSize() (uint32, uint32) {
	width, height := h.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (h *GlfwHost) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(h.win)
}

func (h *GlfwHost) InputState() InputState {
	state := h.input.snapshot()
	h.input.nextTick()
	return state
}

func (h *GlfwHost) push(events ...Event) {
	for _, ev := range events {
		slog.Debug("Host command", slog.String("command", ev.Command.String()))
	}

	h.pending = append(h.pending, events...)
}

func (h *GlfwHost) configureCallbacks() {
	h.win.SetIconifyCallback(func(_win *glfw.Window, iconified bool) {
		if iconified == h.iconified {
			return
		}

		h.iconified = iconified

		if iconified {
			h.push(Event{Command: CommandPause}, Event{Command: CommandTermWindow, Window: h})
		} else {
			h.resize.restored()
			h.push(Event{Command: CommandInitWindow, Window: h}, Event{Command: CommandResume})
		}
	})

	h.win.SetFramebufferSizeCallback(func(_win *glfw.Window, width, height int) {
		if h.resize.resized(width, height, h.iconified) {
			h.push(Event{Command: CommandInitWindow, Window: h})
		}
	})

	h.win.SetCloseCallback(func(_win *glfw.Window) {
		h.Close()
	})

	h.win.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		switch action {
		case glfw.Press:
			h.input.Keys.press(key)

		case glfw.Release:
			h.input.Keys.release(key)
		}
	})

	h.win.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		button := MouseButton(btn)

		switch action {
		case glfw.Press:
			h.input.Mouse.press(button)
		case glfw.Release:
			h.input.Mouse.release(button)
		}
	})

	h.win.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		h.input.Mouse.position(float32(xpos), float32(ypos))
	})

	h.win.SetScrollCallback(func(_win *glfw.Window, xoff float64, yoff float64) {
		h.input.Mouse.scroll(float32(xoff), float32(yoff))
	})
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape: KeyEscape,
	glfw.KeyEnter:  KeyEnter,
	glfw.KeyTab:    KeyTab,
	glfw.KeySpace:  KeySpace,
	glfw.KeyLeft:   KeyLeft,
	glfw.KeyRight:  KeyRight,
	glfw.KeyUp:     KeyUp,
	glfw.KeyDown:   KeyDown,
	glfw.KeyW:      KeyW,
	glfw.KeyA:      KeyA,
	glfw.KeyS:      KeyS,
	glfw.KeyD:      KeyD,
	glfw.KeyQ:      KeyQ,
	glfw.KeyE:      KeyE,
	glfw.KeyR:      KeyR,
	glfw.KeyP:      KeyP,
}

func keyOf(glfwKey glfw.Key) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unbound key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return
}
