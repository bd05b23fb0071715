package backend

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/resource"
)

// fakeModule counts Alloc calls.
type fakeModule struct {
	buildID  int
	allocErr error
	allocs   atomic.Int32
	lastDesc RenderSystemDescriptor
}

func (m *fakeModule) BuildID() int               { return m.buildID }
func (m *fakeModule) RendererID() rhi.RendererID { return rhi.RendererNull }
func (m *fakeModule) RendererName() string       { return "Fake Renderer" }

func (m *fakeModule) Alloc(desc *RenderSystemDescriptor) (RenderSystem, error) {
	m.allocs.Add(1)
	m.lastDesc = *desc
	if m.allocErr != nil {
		return nil, m.allocErr
	}
	return fakeSystem{name: m.RendererName()}, nil
}

type fakeSystem struct{ name string }

func (s fakeSystem) RendererID() rhi.RendererID { return rhi.RendererNull }
func (s fakeSystem) Name() string               { return s.name }
func (fakeSystem) CreateBuffer(*resource.BufferDescriptor, []byte) (Buffer, error) {
	return nil, rhi.ErrNotSupported
}
func (fakeSystem) WriteBuffer(Buffer, uint64, []byte) error { return rhi.ErrNotSupported }
func (fakeSystem) ReleaseBuffer(Buffer) error               { return rhi.ErrNotSupported }
func (fakeSystem) CreateTexture(*resource.TextureDescriptor, *resource.ImageView) (Texture, error) {
	return nil, rhi.ErrNotSupported
}
func (fakeSystem) WriteTexture(Texture, resource.TextureRegion, *resource.ImageView) error {
	return rhi.ErrNotSupported
}
func (fakeSystem) ReleaseTexture(Texture) error { return rhi.ErrNotSupported }
func (fakeSystem) Release() error               { return nil }

func loaderFor(m Module, calls *atomic.Int32) Loader {
	return func() (Module, error) {
		if calls != nil {
			calls.Add(1)
		}
		return m, nil
	}
}

func TestRegistryInstantiate(t *testing.T) {
	r := NewRegistry(WithBuildID(7))
	m := &fakeModule{buildID: 7}
	r.Register("Fake", 10, loaderFor(m, nil), nil)

	rs, err := r.Instantiate("Fake", &RenderSystemDescriptor{Debug: true})
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if rs.Name() != "Fake Renderer" {
		t.Errorf("Name() = %q, want %q", rs.Name(), "Fake Renderer")
	}
	if m.allocs.Load() != 1 {
		t.Errorf("Alloc calls = %d, want 1", m.allocs.Load())
	}
	if m.lastDesc.ModuleName != "Fake" || !m.lastDesc.Debug {
		t.Errorf("descriptor = %+v, want ModuleName Fake and Debug", m.lastDesc)
	}
}

func TestRegistryBuildIDMismatchNeverAllocs(t *testing.T) {
	r := NewRegistry(WithBuildID(7))
	m := &fakeModule{buildID: 8}
	r.Register("Old", 10, loaderFor(m, nil), nil)

	for range 3 {
		_, err := r.Instantiate("Old", nil)
		if !errors.Is(err, rhi.ErrIncompatibleModule) {
			t.Fatalf("Instantiate() error = %v, want ErrIncompatibleModule", err)
		}
		var ie *IncompatibleModuleError
		if !errors.As(err, &ie) || ie.Want != 7 || ie.Got != 8 {
			t.Errorf("IncompatibleModuleError = %+v, want Want 7 Got 8", ie)
		}
	}
	if n := m.allocs.Load(); n != 0 {
		t.Errorf("Alloc calls = %d, want 0", n)
	}
	if _, err := r.Info("Old"); !errors.Is(err, rhi.ErrIncompatibleModule) {
		t.Errorf("Info() error = %v, want ErrIncompatibleModule", err)
	}
}

func TestRegistryLoadsOnce(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	var loads atomic.Int32
	r.Register("Fake", 10, loaderFor(&fakeModule{buildID: 1}, &loads), nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Load("Fake"); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if n := loads.Load(); n != 1 {
		t.Errorf("loader calls = %d, want 1", n)
	}
}

func TestRegistryCaseInsensitiveNames(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	r.Register("OpenGLES3", 10, loaderFor(&fakeModule{buildID: 1}, nil), nil)

	for _, name := range []string{"OpenGLES3", "opengles3", "OPENGLES3"} {
		info, err := r.Info(name)
		if err != nil {
			t.Fatalf("Info(%q) error = %v", name, err)
		}
		if info.Name != "OpenGLES3" {
			t.Errorf("Info(%q).Name = %q, want OpenGLES3", name, info.Name)
		}
		if info.RendererName != "Fake Renderer" || info.BuildID != 1 || info.RendererID != rhi.RendererNull {
			t.Errorf("Info(%q) = %+v", name, info)
		}
	}
}

func TestRegistryNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Instantiate("missing", nil)
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("error = %v, want ErrModuleNotFound", err)
	}
	var nf *ModuleNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("error = %v, want *ModuleNotFoundError{missing}", err)
	}
}

func TestRegistryUnavailable(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	var loads atomic.Int32
	r.Register("Off", 10, loaderFor(&fakeModule{buildID: 1}, &loads), func() bool { return false })

	if _, err := r.Load("Off"); !errors.Is(err, ErrModuleUnavailable) {
		t.Errorf("Load() error = %v, want ErrModuleUnavailable", err)
	}
	if loads.Load() != 0 {
		t.Error("unavailable module should not be loaded")
	}
	if got := r.Available(); len(got) != 0 {
		t.Errorf("Available() = %v, want none", got)
	}
	if got := r.List(); !slices.Equal(got, []string{"Off"}) {
		t.Errorf("List() = %v, want [Off]", got)
	}
}

func TestRegistryAllocFailure(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	cause := errors.New("no device")
	r.Register("Broken", 10, loaderFor(&fakeModule{buildID: 1, allocErr: cause}, nil), nil)

	_, err := r.Instantiate("Broken", nil)
	if !errors.Is(err, rhi.ErrAllocationFailed) {
		t.Errorf("error = %v, want ErrAllocationFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want to wrap cause", err)
	}
}

func TestRegistryLoaderError(t *testing.T) {
	r := NewRegistry()
	cause := errors.New("dlopen failed")
	r.Register("Native", 50, func() (Module, error) { return nil, cause }, nil)

	if _, err := r.Load("Native"); !errors.Is(err, cause) {
		t.Errorf("Load() error = %v, want %v", err, cause)
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	r.Register("Low", 10, loaderFor(&fakeModule{buildID: 1}, nil), nil)
	r.Register("High", 100, loaderFor(&fakeModule{buildID: 1}, nil), nil)
	r.Register("Mid", 50, loaderFor(&fakeModule{buildID: 1}, nil), nil)

	want := []string{"High", "Mid", "Low"}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRegistryInstantiateDefaultFallsBack(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	high := &fakeModule{buildID: 1, allocErr: errors.New("no GPU")}
	low := &fakeModule{buildID: 1}
	r.Register("High", 100, loaderFor(high, nil), nil)
	r.Register("Low", 10, loaderFor(low, nil), nil)

	rs, err := r.InstantiateDefault(nil)
	if err != nil {
		t.Fatalf("InstantiateDefault() error = %v", err)
	}
	if rs == nil {
		t.Fatal("InstantiateDefault() returned nil")
	}
	if high.allocs.Load() != 1 || low.allocs.Load() != 1 {
		t.Errorf("allocs high=%d low=%d, want 1 and 1", high.allocs.Load(), low.allocs.Load())
	}
	if low.lastDesc.ModuleName != "Low" {
		t.Errorf("ModuleName = %q, want Low", low.lastDesc.ModuleName)
	}
}

func TestRegistryInstantiateDefaultJoinsErrors(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	r.Register("Old", 100, loaderFor(&fakeModule{buildID: 2}, nil), nil)
	r.Register("Broken", 10, loaderFor(&fakeModule{buildID: 1, allocErr: errors.New("boom")}, nil), nil)

	_, err := r.InstantiateDefault(nil)
	if !errors.Is(err, ErrNoModuleAvailable) {
		t.Errorf("error = %v, want ErrNoModuleAvailable", err)
	}
	if !errors.Is(err, rhi.ErrIncompatibleModule) || !errors.Is(err, rhi.ErrAllocationFailed) {
		t.Errorf("error = %v, want both module failures joined", err)
	}

	empty := NewRegistry()
	if _, err := empty.InstantiateDefault(nil); !errors.Is(err, ErrNoModuleAvailable) {
		t.Errorf("empty registry error = %v, want ErrNoModuleAvailable", err)
	}
}

func TestRegistryReRegisterResetsLoad(t *testing.T) {
	r := NewRegistry(WithBuildID(1))
	r.Register("Fake", 10, loaderFor(&fakeModule{buildID: 2}, nil), nil)
	if _, err := r.Load("Fake"); err == nil {
		t.Fatal("expected build mismatch")
	}

	r.Register("Fake", 10, loaderFor(&fakeModule{buildID: 1}, nil), nil)
	if _, err := r.Load("Fake"); err != nil {
		t.Errorf("Load() after re-register error = %v", err)
	}

	r.Unregister("fake")
	if _, ok := r.Get("Fake"); ok {
		t.Error("Get() after Unregister should fail")
	}
}

func TestGlobalRegistry(t *testing.T) {
	const name = "global-test-module"
	Register(name, -1, loaderFor(&fakeModule{buildID: rhi.BuildID}, nil), nil)
	t.Cleanup(func() { Unregister(name) })

	if !slices.Contains(List(), name) {
		t.Errorf("List() = %v, want to contain %q", List(), name)
	}
	info, err := Info(name)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.BuildID != rhi.BuildID {
		t.Errorf("BuildID = %d, want %d", info.BuildID, rhi.BuildID)
	}
	if _, err := Instantiate(name, nil); err != nil {
		t.Errorf("Instantiate() error = %v", err)
	}
}

func TestRenderSystemDescriptorFormatTable(t *testing.T) {
	var d *RenderSystemDescriptor
	if d.FormatTable() == nil {
		t.Error("nil descriptor should yield the default table")
	}
}

func TestRegistrySetPriority(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int32
	r.Register("Low", 10, loaderFor(&fakeModule{buildID: rhi.BuildID}, &calls), nil)
	r.Register("High", 100, loaderFor(&fakeModule{buildID: rhi.BuildID}, nil), nil)

	if _, err := r.Load("low"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := r.SetPriority("LOW", 200); err != nil {
		t.Fatalf("SetPriority() error = %v", err)
	}
	if got, want := r.List(), []string{"Low", "High"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if _, err := r.Load("Low"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d, want 1", calls.Load())
	}
	if err := r.SetPriority("missing", 1); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("SetPriority(missing) error = %v, want ErrModuleNotFound", err)
	}
}

func TestRegistrySetPriorityConcurrentReads(t *testing.T) {
	r := NewRegistry()
	r.Register("Soft", 10, loaderFor(&fakeModule{buildID: rhi.BuildID}, nil), nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := range 100 {
				_ = r.SetPriority("Soft", i*100+j)
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				if _, ok := r.Get("soft"); !ok {
					t.Error("Get(soft) not found")
					return
				}
				if _, err := r.Info("Soft"); err != nil {
					t.Errorf("Info() error = %v", err)
					return
				}
				_ = r.List()
			}
		}()
	}
	wg.Wait()
}
