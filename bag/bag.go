// Package bag provides a concurrency-safe key-value bag addressed by dot paths.
package bag

import (
	"fmt"
	"sync"

	"github.com/0xalexb/hjarta-kit/dotpath"
)

// Bag holds nested data and delegates every path operation to dotpath.
// Containers handed out by a Bag are copies, so callers never alias its state.
// The zero value is an empty, ready to use Bag.
type Bag struct {
	mu   sync.RWMutex
	data dotpath.Map
}

// New creates a Bag seeded with a normalized copy of initial.
func New(initial dotpath.Map) *Bag {
	return &Bag{data: dotpath.NormalizeMap(initial)}
}

// Has reports whether path resolves.
func (b *Bag) Has(path string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return dotpath.Has(b.data, path)
}

// Lookup returns a copy of the value at path and whether it exists.
func (b *Bag) Lookup(path string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, found := dotpath.Lookup(b.data, path)
	if !found {
		return nil, false
	}

	return dotpath.CloneValue(value), true
}

// Get returns the value at path, or def when it is absent.
func (b *Bag) Get(path string, def any) any {
	value, found := b.Lookup(path)
	if !found {
		return def
	}

	return value
}

// Must returns the value at path or an error wrapping dotpath.ErrMissingPath.
func (b *Bag) Must(path string) (any, error) {
	value, found := b.Lookup(path)
	if !found {
		return nil, fmt.Errorf("%w: %q", dotpath.ErrMissingPath, path)
	}

	return value, nil
}

// Set stores value at path. Containers in value are normalized and copied.
func (b *Bag) Set(path string, value any) error {
	if path == "" {
		return fmt.Errorf("setting value: %w", dotpath.ErrEmptyPath)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		b.data = dotpath.Map{}
	}

	err := dotpath.Set(b.data, path, dotpath.Normalize(value))
	if err != nil {
		return fmt.Errorf("setting %q: %w", path, err)
	}

	return nil
}

// Remove deletes path and reports whether it existed.
func (b *Bag) Remove(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return dotpath.Remove(b.data, path)
}

// All returns a deep copy of the whole container.
func (b *Bag) All() dotpath.Map {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.data == nil {
		return dotpath.Map{}
	}

	return dotpath.Clone(b.data)
}

// Keys returns the sorted leaf paths of the bag.
func (b *Bag) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return dotpath.Keys(b.data)
}

// Len returns the number of top-level keys.
func (b *Bag) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.data)
}

// Merge deep-merges other into the bag, other winning on conflicts.
func (b *Bag) Merge(other dotpath.Map) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		b.data = dotpath.Map{}
	}

	return dotpath.Merge(b.data, dotpath.NormalizeMap(other))
}

// Replace swaps the whole container for a normalized copy of data.
func (b *Bag) Replace(data dotpath.Map) {
	normalized := dotpath.NormalizeMap(data)

	b.mu.Lock()
	b.data = normalized
	b.mu.Unlock()
}

// Value returns the value at path as T. Absent values and values of another
// type yield def; no conversion is attempted.
func Value[T any](b *Bag, path string, def T) T {
	value, found := b.Lookup(path)
	if !found {
		return def
	}

	typed, isT := value.(T)
	if !isT {
		return def
	}

	return typed
}
