package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/rhi"
)

// Registry errors.
var (
	// ErrModuleNotFound is returned when no module is registered under a name.
	ErrModuleNotFound = errors.New("backend: module not found")

	// ErrModuleUnavailable is returned when a module's availability check
	// fails on this system.
	ErrModuleUnavailable = errors.New("backend: module unavailable")

	// ErrNoModuleAvailable is returned when no registered module could be
	// instantiated.
	ErrNoModuleAvailable = errors.New("backend: no module available")

	// ErrReleased is returned by render systems and resources used after
	// Release.
	ErrReleased = errors.New("backend: released")

	// ErrForeignResource is returned when a resource created by one render
	// system is passed to another.
	ErrForeignResource = errors.New("backend: resource belongs to another render system")
)

// ModuleNotFoundError indicates a named module is not registered.
type ModuleNotFoundError struct {
	Name string
}

func (e *ModuleNotFoundError) Error() string {
	return "backend: module not found: " + e.Name
}

func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

// ModuleUnavailableError indicates a module exists but is not available.
type ModuleUnavailableError struct {
	Name string
}

func (e *ModuleUnavailableError) Error() string {
	return "backend: module unavailable: " + e.Name
}

func (e *ModuleUnavailableError) Unwrap() error { return ErrModuleUnavailable }

// IncompatibleModuleError reports a module built against another build ID.
type IncompatibleModuleError struct {
	Name string
	Want int
	Got  int
}

func (e *IncompatibleModuleError) Error() string {
	return fmt.Sprintf("backend: module %s has build ID %d, want %d", e.Name, e.Got, e.Want)
}

func (e *IncompatibleModuleError) Unwrap() error { return rhi.ErrIncompatibleModule }
