package software

import (
	"fmt"
	"sync"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/layout"
	"github.com/gogpu/rhi/mipmap"
	"github.com/gogpu/rhi/resource"
)

// RenderSystem is the software implementation of backend.RenderSystem.
// Its resource bookkeeping is safe for concurrent use; writes to the same
// resource must still be serialized by the caller.
type RenderSystem struct {
	calc  *layout.Calculator
	mips  *mipmap.Generator
	debug bool

	mu       sync.RWMutex
	buffers  map[*Buffer]struct{}
	textures map[*Texture]struct{}
	released bool
}

var (
	_ backend.RenderSystem = (*RenderSystem)(nil)
	_ backend.Reader       = (*RenderSystem)(nil)
)

// New creates a software render system. desc may be nil.
func New(desc *backend.RenderSystemDescriptor) *RenderSystem {
	rs := &RenderSystem{
		calc:     layout.NewCalculator(desc.FormatTable(), layout.WithMaxSamples(desc.SampleLimit())),
		mips:     mipmap.New(nil),
		buffers:  make(map[*Buffer]struct{}),
		textures: make(map[*Texture]struct{}),
	}
	if desc != nil {
		rs.debug = desc.Debug
		if desc.Device != nil {
			rhi.Logger().Debug("software: ignoring host device")
		}
	}
	return rs
}

// RendererID implements backend.RenderSystem.
func (rs *RenderSystem) RendererID() rhi.RendererID { return rhi.RendererSoftware }

// Name implements backend.RenderSystem.
func (rs *RenderSystem) Name() string { return RendererName }

// Calculator returns the layout calculator used for texture storage.
func (rs *RenderSystem) Calculator() *layout.Calculator { return rs.calc }

// Release implements backend.RenderSystem.
func (rs *RenderSystem) Release() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.released {
		return backend.ErrReleased
	}
	for b := range rs.buffers {
		b.data = nil
	}
	for t := range rs.textures {
		t.levels = nil
	}
	clear(rs.buffers)
	clear(rs.textures)
	rs.released = true
	return nil
}

// Stats reports the number of live resources.
func (rs *RenderSystem) Stats() (buffers, textures int) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.buffers), len(rs.textures)
}

func (rs *RenderSystem) checkLive() error {
	if rs.released {
		return backend.ErrReleased
	}
	return nil
}

// Buffer is a host-memory buffer.
type Buffer struct {
	desc resource.BufferDescriptor
	data []byte
}

// Descriptor implements backend.Buffer.
func (b *Buffer) Descriptor() resource.BufferDescriptor { return b.desc }

// Bytes returns the buffer contents. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// CreateBuffer implements backend.RenderSystem.
func (rs *RenderSystem) CreateBuffer(desc *resource.BufferDescriptor, initial []byte) (backend.Buffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if uint64(len(initial)) > desc.Size {
		return nil, fmt.Errorf("%w: %d bytes of initial data for %d-byte buffer %q",
			rhi.ErrInvalidArgument, len(initial), desc.Size, desc.Label)
	}

	b := &Buffer{desc: *desc, data: make([]byte, desc.Size)}
	copy(b.data, initial)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.checkLive(); err != nil {
		return nil, err
	}
	rs.buffers[b] = struct{}{}
	if rs.debug {
		rhi.Logger().Debug("software: created buffer",
			"label", desc.Label, "type", desc.Type(), "size", desc.Size)
	}
	return b, nil
}

func (rs *RenderSystem) buffer(b backend.Buffer) (*Buffer, error) {
	sb, ok := b.(*Buffer)
	if !ok || sb == nil {
		return nil, backend.ErrForeignResource
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if err := rs.checkLive(); err != nil {
		return nil, err
	}
	if _, ok := rs.buffers[sb]; !ok {
		return nil, fmt.Errorf("buffer %q: %w", sb.desc.Label, backend.ErrReleased)
	}
	return sb, nil
}

func checkRange(what string, offset, n, size uint64) error {
	if offset > size || n > size-offset {
		return fmt.Errorf("%w: %s range [%d, %d) exceeds size %d",
			rhi.ErrInvalidArgument, what, offset, offset+n, size)
	}
	return nil
}

// WriteBuffer implements backend.RenderSystem.
func (rs *RenderSystem) WriteBuffer(b backend.Buffer, offset uint64, data []byte) error {
	sb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	if err := checkRange("buffer write", offset, uint64(len(data)), sb.desc.Size); err != nil {
		return err
	}
	copy(sb.data[offset:], data)
	return nil
}

// ReadBuffer implements backend.Reader.
func (rs *RenderSystem) ReadBuffer(b backend.Buffer, offset uint64, data []byte) error {
	sb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	if err := checkRange("buffer read", offset, uint64(len(data)), sb.desc.Size); err != nil {
		return err
	}
	copy(data, sb.data[offset:])
	return nil
}

// ReleaseBuffer implements backend.RenderSystem.
func (rs *RenderSystem) ReleaseBuffer(b backend.Buffer) error {
	sb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	delete(rs.buffers, sb)
	rs.mu.Unlock()
	sb.data = nil
	return nil
}
