package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/prunekit/prunekit-host-sdk/integration"
)

// Middleware wraps a run function to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion
// model). Middleware may observe a run; it must never retry it or swallow
// its error.
type Middleware func(next integration.RunFunc) integration.RunFunc

type commandNameKey struct{}

// withCommandName records the invoked command name in the context for
// middleware to read.
func withCommandName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandNameKey{}, name)
}

// CommandName returns the name of the command being invoked, or "" when the
// context does not come from a dispatch.
func CommandName(ctx context.Context) string {
	name, _ := ctx.Value(commandNameKey{}).(string)
	return name
}

// LoggingMiddleware logs each run's start, duration, and outcome.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next integration.RunFunc) integration.RunFunc {
		return func(ctx context.Context, cfg *integration.Config) (any, error) {
			name := CommandName(ctx)
			logger.Info("running command", "command", name, "fields", cfg.Len())

			start := time.Now()
			result, err := next(ctx, cfg)
			elapsed := time.Since(start)

			if err != nil {
				logger.Error("command failed", "command", name, "elapsed", elapsed, "error", err)
				return nil, err
			}
			logger.Info("command finished", "command", name, "elapsed", elapsed)
			return result, nil
		}
	}
}

// chain applies middleware to run in FIFO onion order.
func chain(run integration.RunFunc, middleware []Middleware) integration.RunFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		run = middleware[i](run)
	}
	return run
}
