package headless

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/glm"
)

var ErrSurfaceNotReady = errors.New("surface not ready")

// Surface renders into main memory. It implements the full surface life
// cycle, so it can stand in for a GPU surface wherever no GPU is available.
type Surface struct {
	window glimpse.Window

	width, height uint32

	back  *image.RGBA
	front *image.RGBA

	frameOpen bool
	destroyed bool

	clears    int
	presented int
}

var _ device.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Initialize(win glimpse.Window) error {
	if s.destroyed {
		return errors.New("surface already destroyed")
	}

	return s.bind(win)
}

func (s *Surface) SurfaceChanged(win glimpse.Window) error {
	return s.bind(win)
}

func (s *Surface) bind(win glimpse.Window) error {
	if win == nil {
		return errors.New("no window to bind")
	}

	s.window = win
	s.resize()

	return nil
}

// MakeCurrent picks up size changes of the bound window.
func (s *Surface) MakeCurrent() error {
	if s.window != nil {
		s.resize()
	}

	return nil
}

func (s *Surface) resize() {
	width, height := s.window.GetSize()
	if width == s.width && height == s.height && s.back != nil {
		return
	}

	slog.Debug("Resize software surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)))

	s.width, s.height = width, height
	s.back = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	s.front = nil
	s.frameOpen = false
}

func (s *Surface) SurfaceDestroyed() {
	s.window = nil
	s.back = nil
	s.frameOpen = false
	s.width, s.height = 0, 0
}

func (s *Surface) Destroy() {
	s.SurfaceDestroyed()
	s.front = nil
	s.destroyed = true
}

func (s *Surface) IsSurfaceReady() bool {
	return s.window != nil && s.width > 0 && s.height > 0
}

func (s *Surface) Size() (uint32, uint32) {
	return s.width, s.height
}

// ClearFrame fills the back buffer with opaque black.
func (s *Surface) ClearFrame() {
	if s.back == nil {
		return
	}

	s.clears++
	draw.Draw(s.back, s.back.Bounds(), image.NewUniform(color.RGBA{A: 0xff}), image.Point{}, draw.Src)
}

func (s *Surface) BeginFrame() error {
	if !s.IsSurfaceReady() {
		return ErrSurfaceNotReady
	}

	s.frameOpen = true
	return nil
}

// BindEye fills the viewport of the eye with the clear color.
func (s *Surface) BindEye(eye device.Eye, viewport device.Viewport, clear glm.Vec4f) error {
	if !s.frameOpen {
		return errors.New("no frame in progress")
	}

	rect := image.Rect(
		int(viewport.X), int(viewport.Y),
		int(viewport.X+viewport.Width), int(viewport.Y+viewport.Height),
	)

	draw.Draw(s.back, rect.Intersect(s.back.Bounds()), image.NewUniform(toRGBA(clear)), image.Point{}, draw.Src)

	return nil
}

// EndFrame presents the back buffer.
func (s *Surface) EndFrame() error {
	if !s.frameOpen {
		return errors.New("no frame in progress")
	}

	s.frameOpen = false

	if s.front == nil {
		s.front = image.NewRGBA(s.back.Bounds())
	}

	copy(s.front.Pix, s.back.Pix)
	s.presented++

	return nil
}

// Frame returns the last presented frame, or nil.
func (s *Surface) Frame() image.Image {
	if s.front == nil {
		return nil
	}

	return s.front
}

// Presented returns the number of presented frames.
func (s *Surface) Presented() int {
	return s.presented
}

// Clears returns the number of times the frame was cleared.
func (s *Surface) Clears() int {
	return s.clears
}

func toRGBA(c glm.Vec4f) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(max(0, min(1, v))*255 + 0.5)
	}

	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
}
