package config

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type registryOptions struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	preload    []string
	hotReload  bool
}

// Option configures a Registry.
type Option func(*registryOptions)

// WithLogger sets the logger used by the Registry. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *registryOptions) {
		opts.logger = logger
	}
}

// WithMetrics registers the Registry's collectors with registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(opts *registryOptions) {
		opts.registerer = registerer
	}
}

// WithPreload names sections loaded by Init.
func WithPreload(sections ...string) Option {
	return func(opts *registryOptions) {
		opts.preload = append(opts.preload, sections...)
	}
}

// WithHotReload makes the config module watch the source once started.
func WithHotReload() Option {
	return func(opts *registryOptions) {
		opts.hotReload = true
	}
}

type readOptions struct {
	def    any
	strict bool
}

// ReadOption configures a single Registry.Get call.
type ReadOption func(*readOptions)

// WithDefault sets the value returned when the key is absent.
func WithDefault(value any) ReadOption {
	return func(opts *readOptions) {
		opts.def = value
	}
}

// Strict turns absence into an error wrapping dotpath.ErrMissingPath.
func Strict() ReadOption {
	return func(opts *readOptions) {
		opts.strict = true
	}
}
