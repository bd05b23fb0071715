package backend

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Default returns the global registry.
func Default() *Registry {
	return globalRegistry
}

// Register adds a module to the global registry.
// Backend packages call it from init.
func Register(name string, priority int, load Loader, available func() bool) {
	globalRegistry.Register(name, priority, load, available)
}

// Unregister removes a module from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all modules of the global registry sorted by priority.
func List() []string {
	return globalRegistry.List()
}

// Available returns the available modules of the global registry.
func Available() []string {
	return globalRegistry.Available()
}

// Info reports the identity of a module of the global registry.
func Info(name string) (ModuleInfo, error) {
	return globalRegistry.Info(name)
}

// Instantiate allocates a render system from the global registry.
func Instantiate(name string, desc *RenderSystemDescriptor) (RenderSystem, error) {
	return globalRegistry.Instantiate(name, desc)
}

// InstantiateDefault allocates a render system from the best available
// module of the global registry.
func InstantiateDefault(desc *RenderSystemDescriptor) (RenderSystem, error) {
	return globalRegistry.InstantiateDefault(desc)
}
