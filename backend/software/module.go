// Package software provides the CPU reference backend.
//
// Buffers and textures live in host memory. Texture storage is laid out
// exactly as the layout package describes it, one tightly packed block of
// slices per mip level, which makes the backend useful for checking
// layouts produced for GPU backends.
//
// Importing the package registers the "Software" module:
//
//	import _ "github.com/gogpu/rhi/backend/software"
package software

import (
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
)

// RendererName is the display name of the software renderer.
const RendererName = "Software"

func init() {
	backend.Register(backend.ModuleSoftware, 10, Load, nil)
}

// Module is the software backend module.
type Module struct{}

// Load returns the software module. It never fails.
func Load() (backend.Module, error) {
	return Module{}, nil
}

// BuildID implements backend.Module.
func (Module) BuildID() int { return rhi.BuildID }

// RendererID implements backend.Module.
func (Module) RendererID() rhi.RendererID { return rhi.RendererSoftware }

// RendererName implements backend.Module.
func (Module) RendererName() string { return RendererName }

// Alloc implements backend.Module.
func (Module) Alloc(desc *backend.RenderSystemDescriptor) (backend.RenderSystem, error) {
	return New(desc), nil
}
