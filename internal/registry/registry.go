// Package registry provides a global registry of variant factories.
// Variants register themselves in init() functions, allowing the platform to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
)

// Info contains metadata about a registered variant.
type Info struct {
	ID          string
	Title       string
	Description string
	Players     int
}

// Factory creates a new variant instance from the loaded settings.
type Factory func(settings config.Variants) Variant

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f

	v := f(config.DefaultVariants())
	infos[id] = Info{
		ID:          id,
		Title:       v.Title(),
		Description: v.Description(),
		Players:     len(v.Session().Players()),
	}
}

// List returns information about all registered variants, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered variant.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a variant by its ID. This is selectVariant for the
// presentation layer. Settings are normalized first, so a zero value yields
// the defaults.
func Create(id string, settings config.Variants) (Variant, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return f(settings.Normalize()), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
