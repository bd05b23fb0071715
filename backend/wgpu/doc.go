// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU backend built on the gogpu/wgpu HAL.
//
// Buffers and textures are created directly on a hal.Device and filled
// through hal.Queue writes whose data layouts come from the layout
// package. The backend either opens its own Vulkan device or shares a
// host device passed in RenderSystemDescriptor.Device.
//
// # Host Devices
//
// A host device is used when the provider exposes the HAL objects:
//
//	type halProvider interface {
//		HalDevice() any // hal.Device
//		HalQueue() any  // hal.Queue
//	}
//
// Shared devices are never destroyed by the render system.
//
// # Limitations
//
// WebGPU has no 1D array textures and no 8-bit indices, and multi-sampled
// textures cannot be written from the host. These requests fail with
// rhi.ErrNotSupported.
package wgpu
