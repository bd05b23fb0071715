// Package rhi is a backend-neutral GPU resource description layer.
//
// # Overview
//
// Applications describe vertex layouts, buffers and textures once, using the
// types in the vertex and resource packages. The layout package turns those
// descriptions into byte-exact memory layouts (row pitch, layer pitch, total
// size) for any format in the format table, including block-compressed
// formats. The backend package loads one of several renderer modules by name,
// checks that it was built against the same build ID as the host, and returns
// it behind the RenderSystem capability interface.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rhi/backend"
//	    _ "github.com/gogpu/rhi/backend/software"
//	    "github.com/gogpu/rhi/format"
//	    "github.com/gogpu/rhi/resource"
//	)
//
//	rs, err := backend.Instantiate("software", &backend.RenderSystemDescriptor{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rs.Release()
//
//	tex, err := rs.CreateTexture(&resource.TextureDescriptor{
//	    Type:   resource.Texture2D,
//	    Format: format.RGBA8UNorm,
//	    Extent: resource.Extent3D{Width: 256, Height: 256, Depth: 1},
//	}, nil)
//
// # Packages
//
//   - format: pixel and vertex component formats, the injectable format table
//   - vertex: vertex attribute layouts with eager offsets
//   - resource: buffer and texture descriptors, shader buffer views
//   - layout: subresource layouts, texture copy coordinates, mip helpers
//   - backend: module registry and renderer capability interface
//   - mipmap: CPU mip chain generation
//   - config: host configuration files
//
// # Errors
//
// All packages report failures with the sentinel errors declared here
// (ErrInvalidArgument, ErrUnsupportedFormat, ErrIncompatibleModule,
// ErrAllocationFailed), wrapped with context. Use errors.Is to match them.
package rhi

// Version information
const (
	// Version is the current version of the library.
	Version = "0.1.0"

	// BuildID identifies the descriptor layout this host was built with.
	// Backend modules report the build ID they were compiled against; the
	// registry refuses modules whose build ID differs.
	BuildID = 20260115
)
