package glimpse

// resizeTracker decides which framebuffer size changes need a new window
// binding. A plain resize keeps the binding, the surface context picks up
// the new size in MakeCurrent. Only a window that had no area and becomes
// usable again is announced as a fresh window.
type resizeTracker struct {
	empty bool
}

// resized records a size change and reports whether the window must be
// bound again.
func (r *resizeTracker) resized(width, height int, iconified bool) bool {
	if width <= 0 || height <= 0 {
		r.empty = true
		return false
	}

	if iconified || !r.empty {
		return false
	}

	r.empty = false
	return true
}

// restored is called when the window is bound again for another reason.
func (r *resizeTracker) restored() {
	r.empty = false
}
