package device

import "github.com/oliverbestmann/visor/glm"

// Camera is the view of a single eye.
type Camera struct {
	eye    Eye
	offset glm.Vec3f
	fovY   glm.Rad

	head     glm.Mat4f
	viewport Viewport
	near     float32
	far      float32
}

// NewCamera creates the camera of an eye that sits at offset in head space.
func NewCamera(eye Eye, offset glm.Vec3f, fovY glm.Rad) *Camera {
	return &Camera{
		eye:    eye,
		offset: offset,
		fovY:   fovY,
		head:   glm.IdentityMat4[float32](),
		near:   DefaultNear,
		far:    DefaultFar,
	}
}

// StereoCameras creates a left and a right camera separated by ipd meters.
func StereoCameras(ipd float32, fovY glm.Rad) [2]*Camera {
	return [2]*Camera{
		EyeLeft:  NewCamera(EyeLeft, glm.Vec3f{-ipd / 2, 0, 0}, fovY),
		EyeRight: NewCamera(EyeRight, glm.Vec3f{ipd / 2, 0, 0}, fovY),
	}
}

// Update sets the state of the camera for the next frame.
func (c *Camera) Update(head glm.Mat4f, viewport Viewport, near, far float32) {
	c.head = head
	c.viewport = viewport
	c.near = near
	c.far = far
}

func (c *Camera) Eye() Eye {
	return c.eye
}

func (c *Camera) Viewport() Viewport {
	return c.viewport
}

// Transform maps eye space to world space.
func (c *Camera) Transform() glm.Mat4f {
	return c.head.Translate(c.offset.XYZ())
}

// View maps world space to eye space.
func (c *Camera) View() glm.Mat4f {
	return c.Transform().InvertRigid()
}

func (c *Camera) Projection() glm.Mat4f {
	return glm.Perspective(c.fovY, c.viewport.Aspect(), c.near, c.far)
}

// ViewProjection maps world space to clip space.
func (c *Camera) ViewProjection() glm.Mat4f {
	return c.Projection().Mul(c.View())
}

// Position returns the position of the eye in world space.
func (c *Camera) Position() glm.Vec3f {
	return c.Transform().Translation()
}
