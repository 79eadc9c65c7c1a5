package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/visor/device"
)

type targetKey struct {
	Eye    device.Eye
	Width  uint32
	Height uint32
	Format wgpu.TextureFormat
	Depth  bool
}

// eyeTarget is the offscreen texture a single eye is rendered into.
type eyeTarget struct {
	color     *wgpu.Texture
	colorView *wgpu.TextureView

	// only set if depth testing is enabled
	depth     *wgpu.Texture
	depthView *wgpu.TextureView
}

func newEyeTarget(dev *wgpu.Device, key targetKey) (*eyeTarget, error) {
	size := wgpu.Extent3D{
		Width:              key.Width,
		Height:             key.Height,
		DepthOrArrayLayers: 1,
	}

	color, colorView, err := createTexture(dev, &wgpu.TextureDescriptor{
		Label:         fmt.Sprintf("EyeTarget(%s)", key.Eye),
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        key.Format,
		MipLevelCount: 1,
		SampleCount:   1,
	})

	if err != nil {
		return nil, fmt.Errorf("create color target: %w", err)
	}

	target := &eyeTarget{color: color, colorView: colorView}

	if key.Depth {
		target.depth, target.depthView, err = createTexture(dev, &wgpu.TextureDescriptor{
			Label:         fmt.Sprintf("EyeDepth(%s)", key.Eye),
			Usage:         wgpu.TextureUsageRenderAttachment,
			Dimension:     wgpu.TextureDimension2D,
			Size:          size,
			Format:        wgpu.TextureFormatDepth32Float,
			MipLevelCount: 1,
			SampleCount:   1,
		})

		if err != nil {
			target.Release()
			return nil, fmt.Errorf("create depth target: %w", err)
		}
	}

	return target, nil
}

func createTexture(dev *wgpu.Device, desc *wgpu.TextureDescriptor) (*wgpu.Texture, *wgpu.TextureView, error) {
	texture, err := dev.CreateTexture(desc)
	if err != nil {
		return nil, nil, err
	}

	guard := NewReleaseGuard(texture)
	defer guard.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		return nil, nil, err
	}

	guard.Keep()

	return texture, view, nil
}

func (t *eyeTarget) Release() {
	if t.depthView != nil {
		t.depthView.Release()
		t.depthView = nil
	}

	if t.depth != nil {
		t.depth.Release()
		t.depth = nil
	}

	if t.colorView != nil {
		t.colorView.Release()
		t.colorView = nil
	}

	if t.color != nil {
		t.color.Release()
		t.color = nil
	}
}
