package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/cases"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
)

// Entry is a registered module.
type Entry struct {
	// Name is the module name as registered.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU backends
	//   - 50: native modules loaded from shared libraries
	//   - 10: software backends
	Priority int

	// Load discovers the module.
	Load Loader

	// Available reports if the module can run on this system.
	Available func() bool
}

type entry struct {
	Entry

	once   sync.Once
	module Module
	err    error
}

// Option configures a Registry.
type Option func(*Registry)

// WithBuildID sets the build ID modules must report. The default is
// rhi.BuildID.
func WithBuildID(id int) Option {
	return func(r *Registry) {
		r.buildID = id
	}
}

// WithFormatTable sets the format table passed to render systems whose
// descriptor does not carry one.
func WithFormatTable(t *format.Table) Option {
	return func(r *Registry) {
		r.formats = t
	}
}

// Registry maps module names to loaders.
//
// Names are matched case-insensitively. Each entry is loaded at most once;
// the build ID is checked right after loading, before any render system
// is allocated. A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	buildID int
	formats *format.Table
}

// NewRegistry creates an empty registry.
// Most code should use the global registry via Register and Instantiate.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		buildID: rhi.BuildID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func key(name string) string {
	return cases.Fold().String(name)
}

// BuildID returns the build ID modules must match.
func (r *Registry) BuildID() int {
	return r.buildID
}

// Register adds a module. If available is nil, the module is assumed
// always available. Registering a name that already exists replaces the
// previous entry, including its loaded state.
func (r *Registry) Register(name string, priority int, load Loader, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*entry)
	}
	r.entries[key(name)] = &entry{Entry: Entry{
		Name:      name,
		Priority:  priority,
		Load:      load,
		Available: available,
	}}
	rhi.Logger().Debug("backend: registered module", "name", name, "priority", priority)
}

// Unregister removes a module.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key(name))
}

// SetPriority changes the priority of a registered module without
// resetting its loaded state.
func (r *Registry) SetPriority(name string, priority int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key(name)]
	if !ok {
		return &ModuleNotFoundError{Name: name}
	}
	e.Priority = priority
	return nil
}

// List returns all registered module names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns the names of available modules sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns the registration of a module.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key(name)]
	if !ok {
		return Entry{}, false
	}
	return e.Entry, true
}

// lookup returns the live entry. Callers may read its Name, Load and
// Available fields without the lock; Priority is guarded by r.mu.
func (r *Registry) lookup(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key(name)]
	return e, ok
}

// Load returns the module registered under name, loading it on first use.
// A module whose BuildID differs from the registry's fails with
// *IncompatibleModuleError, and keeps failing on later calls.
func (r *Registry) Load(name string) (Module, error) {
	e, ok := r.lookup(name)
	if !ok {
		return nil, &ModuleNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &ModuleUnavailableError{Name: e.Name}
	}

	e.once.Do(func() {
		e.module, e.err = r.load(e)
	})
	return e.module, e.err
}

func (r *Registry) load(e *entry) (Module, error) {
	if e.Load == nil {
		return nil, fmt.Errorf("backend: module %s has no loader", e.Name)
	}
	m, err := e.Load()
	if err != nil {
		return nil, fmt.Errorf("backend: load %s: %w", e.Name, err)
	}
	if m == nil {
		return nil, fmt.Errorf("backend: load %s: loader returned no module", e.Name)
	}
	if got := m.BuildID(); got != r.buildID {
		rhi.Logger().Warn("backend: rejected module",
			"name", e.Name, "buildID", got, "want", r.buildID)
		return nil, &IncompatibleModuleError{Name: e.Name, Want: r.buildID, Got: got}
	}
	rhi.Logger().Info("backend: loaded module",
		"name", e.Name, "renderer", m.RendererName(), "id", m.RendererID())
	return m, nil
}

// Info loads the module registered under name and reports its identity.
func (r *Registry) Info(name string) (ModuleInfo, error) {
	m, err := r.Load(name)
	if err != nil {
		return ModuleInfo{}, err
	}
	info := ModuleInfo{
		RendererName: m.RendererName(),
		RendererID:   m.RendererID(),
		BuildID:      m.BuildID(),
	}
	if e, ok := r.Get(name); ok {
		info.Name = e.Name
	}
	return info, nil
}

// Instantiate allocates a render system from the module registered under
// name. desc may be nil. Allocation failures wrap rhi.ErrAllocationFailed.
func (r *Registry) Instantiate(name string, desc *RenderSystemDescriptor) (RenderSystem, error) {
	m, err := r.Load(name)
	if err != nil {
		return nil, err
	}

	var d RenderSystemDescriptor
	if desc != nil {
		d = *desc
	}
	if e, ok := r.lookup(name); ok {
		d.ModuleName = e.Name
	}
	if d.Formats == nil {
		d.Formats = r.formats
	}

	rs, err := m.Alloc(&d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", rhi.ErrAllocationFailed, d.ModuleName, err)
	}
	if rs == nil {
		return nil, fmt.Errorf("%w: %s returned no render system", rhi.ErrAllocationFailed, d.ModuleName)
	}
	rhi.Logger().Info("backend: allocated render system",
		"module", d.ModuleName, "renderer", rs.Name(), "debug", d.Debug)
	return rs, nil
}

// InstantiateDefault tries each available module in priority order and
// returns the first render system allocated. If every module fails, the
// error joins ErrNoModuleAvailable with each module's failure.
func (r *Registry) InstantiateDefault(desc *RenderSystemDescriptor) (RenderSystem, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoModuleAvailable
	}

	errs := []error{ErrNoModuleAvailable}
	for _, name := range names {
		rs, err := r.Instantiate(name, desc)
		if err == nil {
			return rs, nil
		}
		rhi.Logger().Warn("backend: falling back", "module", name, "err", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// sortedNames returns module names sorted by priority (highest first),
// then by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
