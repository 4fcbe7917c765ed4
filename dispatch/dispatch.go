package dispatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prunekit/prunekit-host-sdk/integration"
)

// Dispatcher resolves command names and forwards parsed configurations into
// run functions. It holds no cross-invocation state; one command is one
// synchronous call chain, terminal on first failure.
type Dispatcher struct {
	registry   *Registry
	middleware []Middleware
	logger     *slog.Logger
	saveDir    string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMiddleware appends run middleware, applied in FIFO order.
func WithMiddleware(mw ...Middleware) Option {
	return func(d *Dispatcher) { d.middleware = append(d.middleware, mw...) }
}

// WithSaveDir overrides the default artifact directory hint.
func WithSaveDir(dir string) Option {
	return func(d *Dispatcher) {
		if dir != "" {
			d.saveDir = dir
		}
	}
}

// NewDispatcher creates a dispatcher over the given command table.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		logger:   slog.Default(),
		saveDir:  DefaultSaveDir(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultSaveDir returns the directory per-command artifacts land in unless
// overridden: next to the invoking executable, falling back to the working
// directory when the executable path cannot be determined.
func DefaultSaveDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// Invoke runs one command: look up its entry, parse argv with the command's
// own parse function, verify the parsed configuration covers the run
// function's required fields, then run. The run function's result is
// returned as-is; its error is classified as a RunError but otherwise
// forwarded unmodified. No parse or run function is called for an unknown
// name.
func (d *Dispatcher) Invoke(ctx context.Context, name string, argv []string) (any, error) {
	cmd, ok := d.registry.Lookup(name)
	if !ok {
		return nil, &CommandNotFoundError{Name: name, Known: d.registry.Names()}
	}

	hints := integration.ParseHints{}
	if cmd.WantsSaveDir {
		hints.SaveDir = d.saveDir
	}

	cfg, err := cmd.Parse(ctx, argv, hints)
	if err != nil {
		return nil, &ParseError{Command: name, Err: err}
	}
	if cfg == nil {
		cfg = integration.NewConfig(nil)
	}

	if missing := cfg.Missing(cmd.Params); len(missing) > 0 {
		return nil, &ContractError{Command: name, Missing: missing}
	}

	run := chain(cmd.Run, d.middleware)
	result, err := run(withCommandName(ctx, name), cfg)
	if err != nil {
		return nil, &RunError{Command: name, Err: err}
	}
	return result, nil
}
