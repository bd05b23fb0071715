package rhi

import "fmt"

// RendererID identifies the graphics API a backend module drives.
// Values are stable across builds and cross the native module boundary.
type RendererID int32

// Renderer IDs.
const (
	RendererUndefined  RendererID = 0x00
	RendererNull       RendererID = 0x01
	RendererSoftware   RendererID = 0x02
	RendererOpenGL     RendererID = 0x10
	RendererOpenGLES3  RendererID = 0x11
	RendererDirect3D11 RendererID = 0x20
	RendererDirect3D12 RendererID = 0x21
	RendererVulkan     RendererID = 0x30
	RendererMetal      RendererID = 0x40
	RendererWebGPU     RendererID = 0x50
)

func (id RendererID) String() string {
	switch id {
	case RendererUndefined:
		return "Undefined"
	case RendererNull:
		return "Null"
	case RendererSoftware:
		return "Software"
	case RendererOpenGL:
		return "OpenGL"
	case RendererOpenGLES3:
		return "OpenGLES3"
	case RendererDirect3D11:
		return "Direct3D11"
	case RendererDirect3D12:
		return "Direct3D12"
	case RendererVulkan:
		return "Vulkan"
	case RendererMetal:
		return "Metal"
	case RendererWebGPU:
		return "WebGPU"
	default:
		return fmt.Sprintf("RendererID(%#x)", int32(id))
	}
}
