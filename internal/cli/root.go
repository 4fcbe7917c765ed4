// Package cli implements the prunekit command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prunekit/prunekit-host-sdk/dispatch"
	"github.com/prunekit/prunekit-host-sdk/wasmhost"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "prunekit",
	Short:         "Model optimization toolkit host",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "prunekit:", err)
		return dispatch.ExitStatus(err)
	}
	return dispatch.ExitSuccess
}

// integrationsDir is where installed integration plugins live.
func integrationsDir() string {
	return filepath.Join(os.Getenv("HOME"), ".prunekit", "integrations")
}

// loadCommandRegistry loads every installed integration plugin and builds
// the command table from the commands they advertise. The returned closer
// releases the WASM runtime.
func loadCommandRegistry(ctx context.Context) (*dispatch.Registry, func(), error) {
	executor, err := wasmhost.NewExecutor(ctx, wasmhost.WithLogger(slog.Default()))
	if err != nil {
		return nil, nil, fmt.Errorf("start integration host: %w", err)
	}
	closer := func() { _ = executor.Close(ctx) }

	var cmds []dispatch.Command
	entries, err := os.ReadDir(integrationsDir())
	if err != nil && !os.IsNotExist(err) {
		closer()
		return nil, nil, fmt.Errorf("read integrations dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wasm") {
			continue
		}
		path := filepath.Join(integrationsDir(), entry.Name())
		wasmBytes, err := os.ReadFile(path)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("read integration %s: %w", entry.Name(), err)
		}
		instance, err := executor.Load(ctx, wasmBytes)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("load integration %s: %w", entry.Name(), err)
		}
		guestCmds, err := instance.Commands(ctx)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("enumerate integration %s: %w", entry.Name(), err)
		}
		cmds = append(cmds, guestCmds...)
	}

	registry, err := dispatch.NewRegistry(cmds...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return registry, closer, nil
}
