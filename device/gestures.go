package device

// Gesture is a gesture recognized by the backend.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureSwipeLeft
	GestureSwipeRight
)

// GestureDelegate gives access to the gestures of the current frame.
type GestureDelegate interface {
	GestureCount() int

	// Gesture returns the gesture at the given index,
	// or GestureNone if the index is out of range.
	Gesture(index int) Gesture
}

// GestureSet is a GestureDelegate holding the gestures of one frame.
type GestureSet struct {
	gestures []Gesture
}

var _ GestureDelegate = (*GestureSet)(nil)

func (g *GestureSet) Add(gesture Gesture) {
	g.gestures = append(g.gestures, gesture)
}

func (g *GestureSet) Reset() {
	g.gestures = g.gestures[:0]
}

func (g *GestureSet) GestureCount() int {
	return len(g.gestures)
}

func (g *GestureSet) Gesture(index int) Gesture {
	if index < 0 || index >= len(g.gestures) {
		return GestureNone
	}

	return g.gestures[index]
}
