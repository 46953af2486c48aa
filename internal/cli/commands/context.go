// Package commands implements the waql CLI subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/wwise-tools/waql/internal/cli/config"
	"github.com/wwise-tools/waql/internal/executor"
	"github.com/wwise-tools/waql/internal/waapi"
)

// depsKey is used to store command dependencies in context.
type depsKey struct{}

// Deps carries the loaded configuration and logger from the root command to
// subcommands.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// WithDeps stores dependencies in the context.
func WithDeps(ctx context.Context, deps *Deps) context.Context {
	return context.WithValue(ctx, depsKey{}, deps)
}

// DepsFrom retrieves dependencies from the context, falling back to
// defaults so commands stay usable in tests.
func DepsFrom(ctx context.Context) *Deps {
	if d, ok := ctx.Value(depsKey{}).(*Deps); ok {
		return d
	}
	return &Deps{
		Cfg: &config.Config{
			URL:     config.DefaultURL,
			Timeout: config.DefaultTimeout,
			Output:  config.DefaultOutput,
		},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// newClient builds a WAAPI client from the resolved configuration.
func (d *Deps) newClient() *waapi.Client {
	return waapi.New(d.Cfg.URL,
		waapi.WithTimeout(d.Cfg.Timeout),
		waapi.WithLogger(d.Logger))
}

// newExecutor builds the query pipeline from the resolved configuration.
func (d *Deps) newExecutor() *executor.Executor {
	return executor.New(d.newClient(), d.Logger)
}
