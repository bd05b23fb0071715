// Package backend loads backend modules and allocates render systems.
//
// A backend is a Module: it reports the build it was compiled against,
// the graphics API it drives, and allocates RenderSystem values. Modules
// are registered by name with a Loader and a priority:
//
//	func init() {
//		backend.Register(backend.ModuleSoftware, 10, Load, nil)
//	}
//
// # Loading
//
// The first use of a name calls its Loader exactly once. The module's
// BuildID is compared with the registry's build ID before anything else;
// a mismatch fails with *IncompatibleModuleError (errors.Is
// rhi.ErrIncompatibleModule) and Alloc is never called.
//
// # Selection
//
// Instantiate allocates from a named module. InstantiateDefault tries every
// available module from highest to lowest priority:
//
//	import _ "github.com/gogpu/rhi/backend/software"
//
//	rs, err := backend.InstantiateDefault(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rs.Release()
//
// # Available Backends
//
//   - "WebGPU": gogpu/wgpu HAL (backend/wgpu), priority 100
//   - native shared libraries (backend/dynlib), priority 50
//   - "Software": CPU reference renderer (backend/software), priority 10
package backend
