package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-kit/bag"
	"github.com/0xalexb/hjarta-kit/dotpath"
)

// ErrSectionNotFound is returned by a Source when it has no data for a section.
var ErrSectionNotFound = errors.New("section not found")

// ErrWatchUnsupported is returned by Registry.Watch when the source cannot report changes.
var ErrWatchUnsupported = errors.New("source does not support watching")

// ErrNilSource is returned when a Registry is created without a Source.
var ErrNilSource = errors.New("source must not be nil")

// ErrEmptyKey is returned when a key does not name a section.
var ErrEmptyKey = errors.New("key must name a section")

// Source loads the raw container of a named section.
type Source interface {
	Load(ctx context.Context, section string) (dotpath.Map, error)
}

// Watcher is implemented by sources that can report changed sections.
// Watch must return once watching is set up and stop when ctx is done.
type Watcher interface {
	Watch(ctx context.Context, onChange func(section string)) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, section string) (dotpath.Map, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context, section string) (dotpath.Map, error) {
	return f(ctx, section)
}

type section struct {
	done chan struct{}
	bag  *bag.Bag
	err  error
}

// Registry caches configuration sections loaded lazily from a Source.
// It is safe for concurrent use; each section is loaded at most once until it
// is invalidated, even with concurrent readers.
type Registry struct {
	source    Source
	logger    *slog.Logger
	metrics   *metrics
	preload   []string
	hotReload bool

	mu       sync.Mutex
	sections map[string]*section
}

// NewRegistry creates a Registry reading from source.
func NewRegistry(source Source, opts ...Option) (*Registry, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	var options registryOptions

	for _, apply := range opts {
		apply(&options)
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := &Registry{
		source:    source,
		logger:    logger,
		preload:   options.preload,
		hotReload: options.hotReload,
		sections:  make(map[string]*section),
	}

	if options.registerer != nil {
		m, err := newMetrics(options.registerer)
		if err != nil {
			return nil, err
		}

		registry.metrics = m
	}

	return registry, nil
}

// Init loads the preloaded sections configured with WithPreload plus the
// given ones. Every failure is reported.
func (r *Registry) Init(ctx context.Context, sections ...string) error {
	var errs []error

	for _, name := range append(append([]string{}, r.preload...), sections...) {
		_, err := r.Section(ctx, name)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Reset drops every cached section.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.sections = make(map[string]*section)
	r.mu.Unlock()

	r.metrics.setCached(0)
	r.logger.Debug("config sections reset")
}

// Invalidate drops a cached section so the next read loads it again.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	delete(r.sections, name)
	cached := len(r.sections)
	r.mu.Unlock()

	r.metrics.setCached(cached)
}

// Section returns the bag of a section, loading it on first use.
// A section the source does not know is an empty bag.
func (r *Registry) Section(ctx context.Context, name string) (*bag.Bag, error) {
	r.mu.Lock()

	entry, cached := r.sections[name]
	if !cached {
		entry = &section{done: make(chan struct{})}
		r.sections[name] = entry
	}

	r.mu.Unlock()

	if !cached {
		r.load(ctx, name, entry)
	}

	select {
	case <-entry.done:
		return entry.bag, entry.err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for section %q: %w", name, ctx.Err())
	}
}

// Get reads key, whose first segment names the section and whose remaining
// segments are the path inside it. Absent values yield the WithDefault value
// (nil without one), or an error wrapping dotpath.ErrMissingPath under Strict.
func (r *Registry) Get(ctx context.Context, key string, opts ...ReadOption) (any, error) {
	var read readOptions

	for _, apply := range opts {
		apply(&read)
	}

	name, path, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	sectionBag, err := r.Section(ctx, name)
	if err != nil {
		return nil, err
	}

	value, found := sectionBag.Lookup(path)
	if found {
		return value, nil
	}

	if read.strict {
		return nil, fmt.Errorf("config %w: %q", dotpath.ErrMissingPath, key)
	}

	return read.def, nil
}

// Set overrides the value at key in the cached section. The override lasts
// until the section is invalidated or the registry is reset.
func (r *Registry) Set(ctx context.Context, key string, value any) error {
	name, path, err := splitKey(key)
	if err != nil {
		return err
	}

	sectionBag, err := r.Section(ctx, name)
	if err != nil {
		return err
	}

	return sectionBag.Set(path, value)
}

// Watch invalidates sections as the source reports changes.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, canWatch := r.source.(Watcher)
	if !canWatch {
		return ErrWatchUnsupported
	}

	err := watcher.Watch(ctx, func(name string) {
		r.logger.Info("config section changed", slog.String("section", name))
		r.Invalidate(name)
		r.metrics.observeReload()
	})
	if err != nil {
		return fmt.Errorf("watching config source: %w", err)
	}

	return nil
}

func (r *Registry) load(ctx context.Context, name string, entry *section) {
	defer close(entry.done)

	data, err := r.source.Load(ctx, name)

	switch {
	case errors.Is(err, ErrSectionNotFound):
		r.logger.Debug("config section not found, using empty section", slog.String("section", name))
		r.metrics.observeLoad(resultMissing)

		data = dotpath.Map{}
	case err != nil:
		r.logger.Error("config section load failed", slog.String("section", name), slog.Any("error", err))
		r.metrics.observeLoad(resultError)

		entry.err = fmt.Errorf("loading section %q: %w", name, err)
		r.forget(name, entry)

		return
	default:
		r.logger.Debug("config section loaded", slog.String("section", name))
		r.metrics.observeLoad(resultLoaded)
	}

	entry.bag = bag.New(data)

	r.mu.Lock()
	cached := len(r.sections)
	r.mu.Unlock()

	r.metrics.setCached(cached)
}

// forget removes a failed entry so later reads retry the load.
func (r *Registry) forget(name string, entry *section) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sections[name] == entry {
		delete(r.sections, name)
	}
}

func splitKey(key string) (string, string, error) {
	name, path, _ := strings.Cut(key, dotpath.Separator)
	if name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrEmptyKey, key)
	}

	return name, path, nil
}
