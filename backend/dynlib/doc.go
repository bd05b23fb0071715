// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dynlib loads render system modules from shared libraries.
//
// A native module is a shared library exporting the RHI C ABI:
//
//	int32_t     RHI_BuildID(void);
//	int32_t     RHI_RendererID(void);
//	const char* RHI_RendererName(void);
//	void*       RHI_Alloc(const RHI_RenderSystemDescriptor* desc);
//
// with the descriptor
//
//	typedef struct {
//		uint32_t build_id;
//		uint32_t flags;        // bit 0: debug
//		uint32_t max_samples;  // 0 for the host default
//		char     module_name[64];
//	} RHI_RenderSystemDescriptor;
//
// and optionally the resource interface:
//
//	void    RHI_Release(void* rs);
//
//	void*   RHI_CreateBuffer(void* rs, const RHI_BufferDescriptor* desc, const void* data, uint64_t size);
//	int32_t RHI_WriteBuffer(void* rs, void* buf, uint64_t offset, const void* data, uint64_t size);
//	void    RHI_ReleaseBuffer(void* rs, void* buf);
//
//	void*   RHI_CreateTexture(void* rs, const RHI_TextureDescriptor* desc, const void* data, uint64_t size);
//	int32_t RHI_WriteTexture(void* rs, void* tex, const RHI_TextureRegion* region, const void* data, uint64_t size);
//	void    RHI_ReleaseTexture(void* rs, void* tex);
//
// Modules without the buffer or texture functions report
// rhi.ErrNotSupported for those resources. Create functions return NULL on
// failure and write functions return an RHI_RESULT code (0 OK, 1 invalid
// argument, 2 unsupported format, 3 not supported). A module whose
// RHI_BuildID differs from the host's is rejected by the registry before
// RHI_Alloc is called.
//
// Shared libraries are opened with purego, so no cgo toolchain is needed.
// On platforms without dlopen, Open returns rhi.ErrNotSupported.
package dynlib
