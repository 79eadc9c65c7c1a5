package glimpse

import "log/slog"

type MouseButton uint32

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to nextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to nextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float32

	// cursor movement since the last tick
	DeltaX, DeltaY float32

	// scroll offset since the last tick
	ScrollX, ScrollY float32

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to nextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to nextTick()
	JustReleased map[MouseButton]bool

	// false until the first cursor position was seen
	positioned bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	if m.positioned {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.positioned = true
}

func (m *MouseState) scroll(dx, dy float32) {
	m.ScrollX += dx
	m.ScrollY += dy
}

func (m *MouseState) nextTick() {
	clear(m.JustPressed)
	clear(m.JustReleased)

	m.DeltaX, m.DeltaY = 0, 0
	m.ScrollX, m.ScrollY = 0, 0
}

type InputState struct {
	Keys  KeysState
	Mouse MouseState
}

func (s *InputState) nextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

// snapshot returns a copy of the state that does not share maps with s.
func (s *InputState) snapshot() InputState {
	c := *s
	c.Keys.Pressed = cloneMap(s.Keys.Pressed)
	c.Keys.JustPressed = cloneMap(s.Keys.JustPressed)
	c.Keys.JustReleased = cloneMap(s.Keys.JustReleased)
	c.Mouse.Pressed = cloneMap(s.Mouse.Pressed)
	c.Mouse.JustPressed = cloneMap(s.Mouse.JustPressed)
	c.Mouse.JustReleased = cloneMap(s.Mouse.JustReleased)
	return c
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}

func cloneMap[K comparable](m map[K]bool) map[K]bool {
	if m == nil {
		return nil
	}

	c := make(map[K]bool, len(m))
	for k, v := range m {
		c[k] = v
	}

	return c
}
