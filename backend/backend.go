package backend

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
	"github.com/gogpu/rhi/resource"
)

// Module names of the backends shipped with this module.
const (
	// ModuleSoftware is the CPU reference backend (backend/software).
	ModuleSoftware = "Software"

	// ModuleWebGPU is the gogpu/wgpu HAL backend (backend/wgpu).
	ModuleWebGPU = "WebGPU"
)

// Module is one backend implementation. A Module is obtained from a Loader
// once per registry entry and then used to allocate render systems.
type Module interface {
	// BuildID returns the build the module was compiled against.
	// A registry refuses modules whose BuildID differs from its own.
	BuildID() int

	// RendererID returns the graphics API the module drives.
	RendererID() rhi.RendererID

	// RendererName returns the human-readable renderer name.
	RendererName() string

	// Alloc creates a render system. It returns an error when the
	// descriptor is unusable or the native resources are missing.
	Alloc(desc *RenderSystemDescriptor) (RenderSystem, error)
}

// Loader discovers a module. It is called at most once per registration.
type Loader func() (Module, error)

// ModuleInfo identifies a loaded module.
type ModuleInfo struct {
	// Name is the registry key, e.g. "OpenGLES3".
	Name string

	// RendererName is the display name, e.g. "OpenGLES 3".
	RendererName string

	RendererID rhi.RendererID
	BuildID    int
}

// RenderSystemDescriptor configures a render system.
type RenderSystemDescriptor struct {
	// ModuleName is set by the registry to the module being allocated.
	ModuleName string

	// Debug enables backend validation and verbose logging.
	Debug bool

	// Device is an optional host-owned GPU device to share.
	// Backends that cannot use it ignore it.
	Device gpucontext.DeviceProvider

	// Formats is the format table; nil selects format.DefaultTable.
	Formats *format.Table

	// MaxSamples bounds the sample count of multi-sampled textures.
	// Zero keeps the calculator default.
	MaxSamples uint32
}

// FormatTable returns Formats or format.DefaultTable.
func (d *RenderSystemDescriptor) FormatTable() *format.Table {
	if d == nil || d.Formats == nil {
		return format.DefaultTable()
	}
	return d.Formats
}

// SampleLimit returns MaxSamples, or 0 for a nil descriptor.
func (d *RenderSystemDescriptor) SampleLimit() uint32 {
	if d == nil {
		return 0
	}
	return d.MaxSamples
}

// RenderSystem creates and updates resources for one backend.
//
// Calls are externally synchronized by the host. Implementations guard
// only their own resource bookkeeping.
type RenderSystem interface {
	// RendererID returns the graphics API in use.
	RendererID() rhi.RendererID

	// Name returns the renderer name.
	Name() string

	// CreateBuffer creates a buffer, optionally filled with initial data.
	CreateBuffer(desc *resource.BufferDescriptor, initial []byte) (Buffer, error)

	// WriteBuffer copies data into b at offset.
	WriteBuffer(b Buffer, offset uint64, data []byte) error

	// ReleaseBuffer destroys b.
	ReleaseBuffer(b Buffer) error

	// CreateTexture creates a texture, optionally filled with initial
	// level-0 data. Mips are generated when layout.MustGenerateMipsOnCreate
	// says so.
	CreateTexture(desc *resource.TextureDescriptor, initial *resource.ImageView) (Texture, error)

	// WriteTexture copies a tightly packed image into a region of t.
	WriteTexture(t Texture, region resource.TextureRegion, image *resource.ImageView) error

	// ReleaseTexture destroys t.
	ReleaseTexture(t Texture) error

	// Release destroys every resource and the render system itself.
	Release() error
}

// Reader is implemented by render systems that can read resources back.
type Reader interface {
	ReadBuffer(b Buffer, offset uint64, data []byte) error
	ReadTexture(t Texture, region resource.TextureRegion, data []byte) error
}

// Buffer is a buffer created by a RenderSystem.
type Buffer interface {
	Descriptor() resource.BufferDescriptor
}

// Texture is a texture created by a RenderSystem.
type Texture interface {
	Descriptor() resource.TextureDescriptor
}
