// Package registry provides a global registry for leaderboard backends.
// Backends register themselves in init() functions, allowing the CLI
// to select one by name without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

// ErrUnknownBackend is returned by Create for names nobody registered.
var ErrUnknownBackend = errors.New("registry: unknown backend")

// Factory opens a backend at the given location.
type Factory func(path string) (leaderboard.Backend, error)

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	Name        string
	Description string
	DefaultPath string // Used when no path is given; may start with ~
}

type entry struct {
	info    BackendInfo
	factory Factory
}

var (
	backends = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(info BackendInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[info.Name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", info.Name))
	}
	backends[info.Name] = entry{info: info, factory: f}
}

// List returns information about all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for _, e := range backends {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create opens the named backend. An empty path selects the backend's
// default location.
func Create(name, path string) (leaderboard.Backend, error) {
	mu.RLock()
	e, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
	}
	if path == "" {
		path = e.info.DefaultPath
	}

	b, err := e.factory(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s backend: %w", name, err)
	}
	return b, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[name]
	return ok
}
