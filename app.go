// Package kit is an Fx application shell wiring structured logging and
// layered dot-path configuration into the dependency graph.
package kit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/0xalexb/hjarta-kit/config"
	"github.com/0xalexb/hjarta-kit/config/loader"
	yamlparser "github.com/0xalexb/hjarta-kit/config/parser/yaml"
	"github.com/0xalexb/hjarta-kit/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for application using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(loggerConfig, os.Stderr)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger),
		configModule(options),
		fx.Options(options.Modules...),
	)
}

// configModule provides the layered file source and the registry over it.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func configModule(options *Options) fx.Option {
	if len(options.ConfigLayers) == 0 {
		return fx.Options()
	}

	layers := slices.Clone(options.ConfigLayers)

	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) (*loader.Loader, error) {
					return loader.New(yamlparser.NewParser(), layers, loader.WithLogger(logger))
				},
				fx.As(new(config.Source)),
			),
		),
		config.NewModule(options.ConfigOptions...),
	)
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
