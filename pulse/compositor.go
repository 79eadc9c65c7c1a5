package pulse

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/glm"
)

var errNoFrame = errors.New("no frame in progress")

type boundEye struct {
	target   *eyeTarget
	viewport device.Viewport
}

// frame holds the resources of the frame currently being rendered.
type frame struct {
	texture *wgpu.Texture
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
	eyes    []boundEye
}

var _ device.Surface = (*Context)(nil)

// BeginFrame acquires the next texture of the surface.
func (c *Context) BeginFrame() error {
	if !c.IsSurfaceReady() {
		return ErrSurfaceNotReady
	}

	// a frame that was never ended is thrown away
	c.abandonFrame()

	texture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}

	textureGuard := NewReleaseGuard(texture)
	defer textureGuard.Release()

	encoder, err := c.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Frame",
	})

	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	textureGuard.Keep()

	c.frame = &frame{texture: texture, encoder: encoder}

	return nil
}

// BindEye starts a render pass on the target of the given eye. The target
// has the size of the viewport and is cleared with the given color.
func (c *Context) BindEye(eye device.Eye, viewport device.Viewport, clear glm.Vec4f) error {
	f := c.frame
	if f == nil {
		return errNoFrame
	}

	if err := f.endPass(); err != nil {
		return err
	}

	width, height := c.Size()
	if viewport.Empty() || viewport.X+viewport.Width > width || viewport.Y+viewport.Height > height {
		return fmt.Errorf("viewport %+v outside of surface %dx%d", viewport, width, height)
	}

	key := targetKey{
		Eye:    eye,
		Width:  viewport.Width,
		Height: viewport.Height,
		Format: c.format,
		Depth:  c.state.DepthTest,
	}

	target, err := c.targets.Get(key, func(key targetKey) (*eyeTarget, error) {
		return newEyeTarget(c.Device, key)
	})

	if err != nil {
		return fmt.Errorf("eye target for %s: %w", eye, err)
	}

	desc := &wgpu.RenderPassDescriptor{
		Label: "Eye",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.colorView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearValue(clear),
			},
		},
	}

	if target.depthView != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            target.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1,
		}
	}

	f.pass = f.encoder.BeginRenderPass(desc)
	f.eyes = append(f.eyes, boundEye{target: target, viewport: viewport})

	return nil
}

// CurrentPass returns the render pass of the eye bound last, or nil.
func (c *Context) CurrentPass() *wgpu.RenderPassEncoder {
	if c.frame == nil {
		return nil
	}

	return c.frame.pass
}

// EndFrame composites all eyes onto the surface texture and presents it.
func (c *Context) EndFrame() error {
	f := c.frame
	if f == nil {
		return errNoFrame
	}

	c.frame = nil

	defer f.release()

	if err := f.endPass(); err != nil {
		return err
	}

	if c.clearPending {
		c.clearPending = false

		if err := f.clearSurface(c.state.ClearColor); err != nil {
			return fmt.Errorf("clear surface: %w", err)
		}
	}

	for _, eye := range f.eyes {
		err := f.encoder.CopyTextureToTexture(
			&wgpu.ImageCopyTexture{
				Texture: eye.target.color,
				Aspect:  wgpu.TextureAspectAll,
			},
			&wgpu.ImageCopyTexture{
				Texture: f.texture,
				Origin:  wgpu.Origin3D{X: eye.viewport.X, Y: eye.viewport.Y},
				Aspect:  wgpu.TextureAspectAll,
			},
			&wgpu.Extent3D{
				Width:              eye.viewport.Width,
				Height:             eye.viewport.Height,
				DepthOrArrayLayers: 1,
			},
		)

		if err != nil {
			return fmt.Errorf("copy eye target: %w", err)
		}
	}

	buf, err := f.encoder.Finish(&wgpu.CommandBufferDescriptor{Label: "Frame"})
	if err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}

	defer buf.Release()

	c.Queue.Submit(buf)
	c.surface.Present()

	return nil
}

func (c *Context) abandonFrame() {
	if c.frame != nil {
		_ = c.frame.endPass()
		c.frame.release()
		c.frame = nil
	}
}

func (f *frame) endPass() error {
	if f.pass == nil {
		return nil
	}

	pass := f.pass
	f.pass = nil

	defer pass.Release()

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	return nil
}

func (f *frame) clearSurface(color glm.Vec4f) error {
	view, err := f.texture.CreateView(nil)
	if err != nil {
		return err
	}

	defer view.Release()

	pass := f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ClearSurface",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearValue(color),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	return pass.End()
}

func (f *frame) release() {
	if f.encoder != nil {
		f.encoder.Release()
		f.encoder = nil
	}

	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}

func clearValue(color glm.Vec4f) wgpu.Color {
	return wgpu.Color{
		R: float64(color[0]),
		G: float64(color[1]),
		B: float64(color[2]),
		A: float64(color[3]),
	}
}
