package kit

import (
	"github.com/0xalexb/hjarta-kit/config"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string

	// ConfigLayers are the configuration layer directories, lowest precedence first.
	// The config module is installed only when at least one layer is set.
	ConfigLayers  []string
	ConfigOptions []config.Option
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (the default) or "text" log records.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithConfigLayers adds configuration layer directories and installs the
// config module, which provides a *config.Registry backed by those layers.
// Later directories override earlier ones, across calls as well.
func WithConfigLayers(dirs ...string) Option {
	return func(opts *Options) {
		opts.ConfigLayers = append(opts.ConfigLayers, dirs...)
	}
}

// WithConfigPreload loads the named sections when the application starts.
func WithConfigPreload(sections ...string) Option {
	return WithConfigOptions(config.WithPreload(sections...))
}

// WithConfigHotReload reloads changed sections while the application runs.
func WithConfigHotReload() Option {
	return WithConfigOptions(config.WithHotReload())
}

// WithConfigOptions passes options through to the configuration registry.
func WithConfigOptions(configOpts ...config.Option) Option {
	return func(opts *Options) {
		opts.ConfigOptions = append(opts.ConfigOptions, configOpts...)
	}
}
