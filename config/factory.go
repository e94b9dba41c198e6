package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/0xalexb/hjarta-kit/bag"
	"github.com/0xalexb/hjarta-kit/dotpath"
)

// DefaultKindField is the discriminant field read by Factories when none is given.
const DefaultKindField = "type"

// ErrUnknownKind is returned when no factory is registered for a discriminant.
var ErrUnknownKind = errors.New("unknown kind")

// ErrMissingKind is returned when the object data has no string discriminant.
var ErrMissingKind = errors.New("missing kind")

// ErrDuplicateKind is returned when a kind is registered twice.
var ErrDuplicateKind = errors.New("kind already registered")

// ErrNilFactory is returned when registering a nil factory.
var ErrNilFactory = errors.New("factory must not be nil")

// ErrNotObject is returned when the data at a key is not a container.
var ErrNotObject = errors.New("value is not an object")

// ErrUnexpectedType is returned by Build when a factory result has the wrong type.
var ErrUnexpectedType = errors.New("unexpected object type")

// Factory constructs an object from its configuration data.
type Factory func(ctx context.Context, data *bag.Bag) (any, error)

// Factories maps discriminant values to constructors.
type Factories struct {
	field string

	mu        sync.RWMutex
	factories map[string]Factory
}

// NewFactories creates an empty set keyed by field, or DefaultKindField when field is empty.
func NewFactories(field string) *Factories {
	if field == "" {
		field = DefaultKindField
	}

	return &Factories{
		field:     field,
		factories: make(map[string]Factory),
	}
}

// Register adds the factory for kind.
func (f *Factories) Register(kind string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("registering %q: %w", kind, ErrNilFactory)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[kind]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}

	f.factories[kind] = factory

	return nil
}

// Kinds reports how many kinds are registered.
func (f *Factories) Kinds() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.factories)
}

// Build reads the object at key, picks the factory named by its discriminant
// field and calls it with the object data.
func (f *Factories) Build(ctx context.Context, registry *Registry, key string) (any, error) {
	value, err := registry.Get(ctx, key, Strict())
	if err != nil {
		return nil, err
	}

	data, isMap := value.(dotpath.Map)
	if !isMap {
		return nil, fmt.Errorf("%w: %q holds %T", ErrNotObject, key, value)
	}

	objectBag := bag.New(data)

	kind, isString := objectBag.Get(f.field, nil).(string)
	if !isString || kind == "" {
		return nil, fmt.Errorf("%w: %q has no string %q field", ErrMissingKind, key, f.field)
	}

	f.mu.RLock()
	factory, registered := f.factories[kind]
	f.mu.RUnlock()

	if !registered {
		return nil, fmt.Errorf("%w: %q (at %q)", ErrUnknownKind, kind, key)
	}

	object, err := factory(ctx, objectBag)
	if err != nil {
		return nil, fmt.Errorf("building %q (%s): %w", key, kind, err)
	}

	return object, nil
}

// Build is Factories.Build with the result asserted to T.
func Build[T any](ctx context.Context, factories *Factories, registry *Registry, key string) (T, error) {
	var zero T

	object, err := factories.Build(ctx, registry, key)
	if err != nil {
		return zero, err
	}

	typed, isT := object.(T)
	if !isT {
		return zero, fmt.Errorf("%w: %q built %T", ErrUnexpectedType, key, object)
	}

	return typed, nil
}
