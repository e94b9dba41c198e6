package config

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

type moduleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Source    Source
	Logger    *slog.Logger `optional:"true"`
}

// NewModule creates an Fx module providing a *Registry built from the Source in the graph.
// The registry preloads its WithPreload sections on start, watches the source
// when WithHotReload is set, and is reset on stop.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	return fx.Module("config",
		fx.Provide(func(params moduleParams) (*Registry, error) {
			registryOpts := opts
			if params.Logger != nil {
				registryOpts = append([]Option{WithLogger(params.Logger)}, opts...)
			}

			registry, err := NewRegistry(params.Source, registryOpts...)
			if err != nil {
				return nil, err
			}

			var stopWatching context.CancelFunc

			params.Lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					err := registry.Init(ctx)
					if err != nil {
						return err
					}

					if !registry.hotReload {
						return nil
					}

					watchCtx, cancel := context.WithCancel(context.Background())
					err = registry.Watch(watchCtx)
					if err != nil {
						cancel()

						return err
					}

					stopWatching = cancel

					return nil
				},
				OnStop: func(_ context.Context) error {
					if stopWatching != nil {
						stopWatching()
					}

					registry.Reset()

					return nil
				},
			})

			return registry, nil
		}),
	)
}
