package software

import (
	"fmt"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/format"
	"github.com/gogpu/rhi/layout"
	"github.com/gogpu/rhi/mipmap"
	"github.com/gogpu/rhi/resource"
)

// Texture is a host-memory texture.
//
// Each mip level stores its slices back to back: layer-major for array
// and cube types, depth-major for 3D textures.
type Texture struct {
	desc   resource.TextureDescriptor
	info   format.Info
	layers uint32
	levels []level
}

type level struct {
	extent resource.Extent3D
	layout layout.SubresourceLayout
	data   []byte
}

// Descriptor implements backend.Texture.
func (t *Texture) Descriptor() resource.TextureDescriptor { return t.desc }

// MipLevels returns the resolved number of mip levels.
func (t *Texture) MipLevels() uint32 { return uint32(len(t.levels)) }

// Layers returns the number of array layers.
func (t *Texture) Layers() uint32 { return t.layers }

// Level returns the storage of one mip level, or nil. The slice aliases
// the texture.
func (t *Texture) Level(mip uint32) []byte {
	if int(mip) >= len(t.levels) {
		return nil
	}
	return t.levels[mip].data
}

// CreateTexture implements backend.RenderSystem.
func (rs *RenderSystem) CreateTexture(desc *resource.TextureDescriptor, initial *resource.ImageView) (backend.Texture, error) {
	if err := desc.Validate(rs.calc.Table()); err != nil {
		return nil, err
	}
	mips, err := layout.ResolveMipLevels(desc)
	if err != nil {
		return nil, err
	}
	info, _ := rs.calc.Table().Lookup(desc.Format)

	t := &Texture{
		desc:   *desc,
		info:   info,
		layers: desc.Layers(),
		levels: make([]level, mips),
	}
	t.desc.MipLevels = mips
	if desc.Type.IsMultiSample() {
		t.desc.Samples = rs.calc.GetClampedSamples(int(desc.Samples))
	}
	for i := range t.levels {
		ext := layout.MipExtent(desc.Type, desc.Extent, uint32(i))
		l, err := rs.calc.CalcSubresourceLayout(desc.Format, ext, t.layers)
		if err != nil {
			return nil, err
		}
		t.levels[i] = level{extent: ext, layout: l, data: make([]byte, l.DataSize)}
	}

	if !initial.Empty() {
		full := resource.TextureRegion{
			Subresource: resource.Subresource{NumArrayLayers: t.layers},
			Extent:      desc.Extent,
		}
		if err := rs.copyRegion(t, full, initial.Format, initial.Data, true); err != nil {
			return nil, err
		}
		if layout.MustGenerateMipsOnCreate(desc, initial) {
			if err := rs.generateMips(t); err != nil {
				return nil, err
			}
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.checkLive(); err != nil {
		return nil, err
	}
	rs.textures[t] = struct{}{}
	if rs.debug {
		rhi.Logger().Debug("software: created texture",
			"label", desc.Label, "type", desc.Type, "format", desc.Format,
			"extent", desc.Extent, "layers", t.layers, "mips", mips)
	}
	return t, nil
}

func (rs *RenderSystem) texture(t backend.Texture) (*Texture, error) {
	st, ok := t.(*Texture)
	if !ok || st == nil {
		return nil, backend.ErrForeignResource
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if err := rs.checkLive(); err != nil {
		return nil, err
	}
	if _, ok := rs.textures[st]; !ok {
		return nil, fmt.Errorf("texture %q: %w", st.desc.Label, backend.ErrReleased)
	}
	return st, nil
}

// WriteTexture implements backend.RenderSystem.
func (rs *RenderSystem) WriteTexture(t backend.Texture, region resource.TextureRegion, image *resource.ImageView) error {
	st, err := rs.texture(t)
	if err != nil {
		return err
	}
	if image.Empty() {
		return fmt.Errorf("%w: empty image", rhi.ErrInvalidArgument)
	}
	return rs.copyRegion(st, region, image.Format, image.Data, true)
}

// ReadTexture implements backend.Reader. data receives the region tightly
// packed in the texture's format.
func (rs *RenderSystem) ReadTexture(t backend.Texture, region resource.TextureRegion, data []byte) error {
	st, err := rs.texture(t)
	if err != nil {
		return err
	}
	return rs.copyRegion(st, region, st.desc.Format, data, false)
}

// ReleaseTexture implements backend.RenderSystem.
func (rs *RenderSystem) ReleaseTexture(t backend.Texture) error {
	st, err := rs.texture(t)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	delete(rs.textures, st)
	rs.mu.Unlock()
	st.levels = nil
	return nil
}

// copyRegion copies between tightly packed host data and a region of t.
// The region is mapped to slices with CalcTextureOffset and
// CalcTextureExtent; cube types address their faces as layers.
func (rs *RenderSystem) copyRegion(t *Texture, region resource.TextureRegion, f format.Format, data []byte, write bool) error {
	if f != t.desc.Format {
		return fmt.Errorf("%w: image format %v differs from texture format %v",
			rhi.ErrNotSupported, f, t.desc.Format)
	}
	sub := region.Subresource
	if sub.MipLevel >= uint32(len(t.levels)) {
		return fmt.Errorf("%w: mip level %d of %d", rhi.ErrInvalidArgument, sub.MipLevel, len(t.levels))
	}
	if sub.NumArrayLayers == 0 || !within(sub.BaseArrayLayer, sub.NumArrayLayers, t.layers) {
		return fmt.Errorf("%w: %d layers at %d of %d", rhi.ErrInvalidArgument,
			sub.NumArrayLayers, sub.BaseArrayLayer, t.layers)
	}

	typ := t.desc.Type
	off := layout.CalcTextureOffset(typ, region.Offset, sub.BaseArrayLayer)
	ext := layout.CalcTextureExtent(typ, region.Extent, sub.NumArrayLayers)
	first, count := uint32(off.Z), ext.Depth
	if typ.IsCube() {
		first, count = sub.BaseArrayLayer, sub.NumArrayLayers
	}

	lvl := &t.levels[sub.MipLevel]
	if off.X < 0 || off.Y < 0 || off.Z < 0 {
		return fmt.Errorf("%w: negative offset %+v", rhi.ErrInvalidArgument, off)
	}
	x, y := uint32(off.X), uint32(off.Y)
	if !within(x, ext.Width, lvl.extent.Width) || !within(y, ext.Height, lvl.extent.Height) {
		return fmt.Errorf("%w: region %+v at %+v exceeds mip extent %+v",
			rhi.ErrInvalidArgument, ext, off, lvl.extent)
	}
	slices := t.layers
	if typ == resource.Texture3D {
		slices = lvl.extent.Depth
	}
	if !within(first, count, slices) {
		return fmt.Errorf("%w: %d slices at %d of %d", rhi.ErrInvalidArgument, count, first, slices)
	}

	bw, bh := t.info.BlockWidth, t.info.BlockHeight
	if x%bw != 0 || y%bh != 0 ||
		(ext.Width%bw != 0 && x+ext.Width != lvl.extent.Width) ||
		(ext.Height%bh != 0 && y+ext.Height != lvl.extent.Height) {
		return fmt.Errorf("%w: region %+v at %+v is not aligned to %dx%d blocks",
			rhi.ErrInvalidArgument, ext, off, bw, bh)
	}

	src, err := rs.calc.CalcSubresourceLayout(f, resource.Extent3D{Width: ext.Width, Height: ext.Height, Depth: 1}, count)
	if err != nil {
		return err
	}
	if uint64(len(data)) < src.DataSize {
		return fmt.Errorf("%w: %d bytes for a region of %d bytes", rhi.ErrInvalidArgument, len(data), src.DataSize)
	}

	rowBytes := src.RowStride
	xBytes := uint64(x/bw) * uint64(t.info.BlockSize)
	rows := src.Rows()
	for s := range uint64(count) {
		for r := range rows {
			i := (uint64(first)+s)*lvl.layout.LayerStride + (uint64(y/bh)+r)*lvl.layout.RowStride + xBytes
			j := s*src.LayerStride + r*src.RowStride
			if write {
				copy(lvl.data[i:i+rowBytes], data[j:j+rowBytes])
			} else {
				copy(data[j:j+rowBytes], lvl.data[i:i+rowBytes])
			}
		}
	}
	return nil
}

// within reports whether [start, start+n) fits in [0, limit) without
// overflowing uint32.
func within(start, n, limit uint32) bool {
	return n <= limit && start <= limit-n
}

func (rs *RenderSystem) generateMips(t *Texture) error {
	if t.desc.Type == resource.Texture3D || !mipmap.Supports(t.desc.Format) {
		return fmt.Errorf("%w: mip generation for %v %v", rhi.ErrNotSupported, t.desc.Type, t.desc.Format)
	}
	base := &t.levels[0]
	n := uint32(len(t.levels))
	for s := range uint64(t.layers) {
		slice := base.data[s*base.layout.LayerStride : (s+1)*base.layout.LayerStride]
		chain, err := rs.mips.Generate(t.desc.Format, base.extent.Width, base.extent.Height, slice, n)
		if err != nil {
			return err
		}
		for i, pix := range chain {
			lvl := &t.levels[i+1]
			copy(lvl.data[s*lvl.layout.LayerStride:], pix)
		}
	}
	return nil
}
