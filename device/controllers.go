package device

import "github.com/oliverbestmann/visor/glm"

type controller struct {
	modelName    string
	headTracking bool
	transform    glm.Mat4f

	pressed map[Button]bool

	// the button state as of the last query
	reported map[Button]bool

	scrollX, scrollY float32
}

// Controllers holds the state of the controllers of a backend. Queries for
// an index that does not exist return neutral values.
type Controllers struct {
	list []*controller
}

// Add registers a new controller and returns its index.
func (c *Controllers) Add(modelName string, headTracking bool) int {
	c.list = append(c.list, &controller{
		modelName:    modelName,
		headTracking: headTracking,
		transform:    glm.IdentityMat4[float32](),
		pressed:      map[Button]bool{},
		reported:     map[Button]bool{},
	})

	return len(c.list) - 1
}

func (c *Controllers) Count() int {
	return len(c.list)
}

func (c *Controllers) get(index int) *controller {
	if index < 0 || index >= len(c.list) {
		return nil
	}

	return c.list[index]
}

func (c *Controllers) ModelName(index int) string {
	if ctrl := c.get(index); ctrl != nil {
		return ctrl.modelName
	}

	return ""
}

func (c *Controllers) UsingHeadTracking(index int) bool {
	if ctrl := c.get(index); ctrl != nil {
		return ctrl.headTracking
	}

	return false
}

func (c *Controllers) Transform(index int) glm.Mat4f {
	if ctrl := c.get(index); ctrl != nil {
		return ctrl.transform
	}

	return glm.IdentityMat4[float32]()
}

func (c *Controllers) SetTransform(index int, transform glm.Mat4f) {
	if ctrl := c.get(index); ctrl != nil {
		ctrl.transform = transform
	}
}

func (c *Controllers) SetButton(index int, button Button, pressed bool) {
	if ctrl := c.get(index); ctrl != nil {
		ctrl.pressed[button] = pressed
	}
}

// ButtonState returns the current state of the button and whether it
// differs from the state returned by the previous query.
func (c *Controllers) ButtonState(index int, button Button) (pressed, changed bool) {
	ctrl := c.get(index)
	if ctrl == nil {
		return false, false
	}

	pressed = ctrl.pressed[button]
	changed = pressed != ctrl.reported[button]
	ctrl.reported[button] = pressed

	return pressed, changed
}

func (c *Controllers) AddScroll(index int, dx, dy float32) {
	if ctrl := c.get(index); ctrl != nil {
		ctrl.scrollX += dx
		ctrl.scrollY += dy
	}
}

// Scrolled returns and resets the accumulated scroll delta.
func (c *Controllers) Scrolled(index int) (dx, dy float32, ok bool) {
	ctrl := c.get(index)
	if ctrl == nil || (ctrl.scrollX == 0 && ctrl.scrollY == 0) {
		return 0, 0, false
	}

	dx, dy = ctrl.scrollX, ctrl.scrollY
	ctrl.scrollX, ctrl.scrollY = 0, 0

	return dx, dy, true
}
