package rhi

import "errors"

// Error taxonomy shared by every rhi package. Callers match with errors.Is;
// call sites wrap these with the offending value.
var (
	// ErrInvalidArgument is returned for malformed descriptor input, such as a
	// vertex attribute with a component count outside 1..4. The object being
	// built is left in its last valid state.
	ErrInvalidArgument = errors.New("rhi: invalid argument")

	// ErrUnsupportedFormat is returned when a format is unknown to the format
	// table or has no backend-neutral byte layout.
	ErrUnsupportedFormat = errors.New("rhi: unsupported format")

	// ErrIncompatibleModule is returned when a backend module was built against
	// a different build ID than the host expects.
	ErrIncompatibleModule = errors.New("rhi: incompatible module")

	// ErrAllocationFailed is returned when a backend could not construct a
	// renderer (no device, invalid configuration for that backend).
	ErrAllocationFailed = errors.New("rhi: renderer allocation failed")

	// ErrNotSupported is returned by renderers for operations they do not
	// provide, such as resource creation on an opaque native renderer.
	ErrNotSupported = errors.New("rhi: operation not supported")
)
