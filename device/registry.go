package device

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/oliverbestmann/visor/glimpse"
)

var ErrUnknownBackend = errors.New("unknown device backend")

// Options are passed to a backend when it is opened.
// Backends ignore the fields they do not need.
type Options struct {
	// Input of the host, used by backends that emulate a headset.
	Input glimpse.InputSource

	// Clock drives simulated poses. Defaults to the real clock.
	Clock clockwork.Clock
}

type Factory func(opts Options) (Delegate, error)

// BackendInfo describes a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

type backend struct {
	info    BackendInfo
	factory Factory
}

var registry = struct {
	sync.Mutex
	backends map[string]backend
}{backends: map[string]backend{}}

// Register makes a backend available under the given name.
// Registering a name twice panics.
func Register(name, description string, factory Factory) {
	registry.Lock()
	defer registry.Unlock()

	if factory == nil {
		panic("device: Register factory is nil")
	}

	if _, exists := registry.backends[name]; exists {
		panic("device: Register called twice for backend " + name)
	}

	registry.backends[name] = backend{
		info:    BackendInfo{Name: name, Description: description},
		factory: factory,
	}
}

// Backends lists all registered backends sorted by name.
func Backends() []BackendInfo {
	registry.Lock()
	defer registry.Unlock()

	var infos []BackendInfo
	for _, b := range registry.backends {
		infos = append(infos, b.info)
	}

	slices.SortFunc(infos, func(a, b BackendInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	return infos
}

// Open creates a delegate of the backend with the given name.
func Open(name string, opts Options) (Delegate, error) {
	registry.Lock()
	b, ok := registry.backends[name]
	registry.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	delegate, err := b.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("open backend %q: %w", name, err)
	}

	return delegate, nil
}
