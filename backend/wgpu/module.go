// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
)

// RendererName is the display name of the renderer.
const RendererName = "WebGPU (gogpu/wgpu)"

func init() {
	backend.Register(backend.ModuleWebGPU, 100, Load, Available)
}

// Available reports whether a HAL backend is compiled in.
func Available() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}

// Module is the gogpu/wgpu backend module.
type Module struct{}

// Load returns the module.
func Load() (backend.Module, error) {
	return Module{}, nil
}

// BuildID implements backend.Module.
func (Module) BuildID() int { return rhi.BuildID }

// RendererID implements backend.Module.
func (Module) RendererID() rhi.RendererID { return rhi.RendererWebGPU }

// RendererName implements backend.Module.
func (Module) RendererName() string { return RendererName }

// Alloc implements backend.Module. It shares the host device when one is
// provided and opens a device otherwise.
func (Module) Alloc(desc *backend.RenderSystemDescriptor) (backend.RenderSystem, error) {
	if desc != nil && desc.Device != nil {
		dev, err := hostDevice(desc.Device)
		if err != nil {
			return nil, err
		}
		return newRenderSystem(dev, desc), nil
	}
	dev, err := openDevice()
	if err != nil {
		return nil, err
	}
	return newRenderSystem(dev, desc), nil
}
