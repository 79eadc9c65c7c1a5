package device

// Viewport is a rectangle on the surface in pixels, origin at the top left.
type Viewport struct {
	X, Y          uint32
	Width, Height uint32
}

func (v Viewport) Empty() bool {
	return v.Width == 0 || v.Height == 0
}

// Aspect returns width divided by height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Empty() {
		return 1
	}

	return float32(v.Width) / float32(v.Height)
}

// SideBySide splits a surface of the given size into a left and a right half.
// An odd pixel column goes to the right eye.
func SideBySide(width, height uint32, eye Eye) Viewport {
	half := width / 2

	if eye == EyeLeft {
		return Viewport{Width: half, Height: height}
	}

	return Viewport{X: half, Width: width - half, Height: height}
}
