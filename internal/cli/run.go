package cli

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prunekit/prunekit-host-sdk/dispatch"
)

var runCmd = &cobra.Command{
	Use:   "run <integration.action> [toolkit args...]",
	Short: "Invoke one integration command",
	Long: `Invokes a single integration command by its flat name, e.g.
"detection.train". Everything after the name belongs to the integration's own
argument parser and is forwarded untouched, flags included. The artifact
directory hint can be overridden through PRUNEKIT_SAVE_DIR.`,
	// The integration owns its flag syntax; cobra must not interpret it.
	DisableFlagParsing: true,
	Args:               cobra.MinimumNArgs(1),
	RunE:               runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	registry, closeHost, err := loadCommandRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeHost()

	dispatcher := dispatch.NewDispatcher(registry,
		dispatch.WithSaveDir(os.Getenv("PRUNEKIT_SAVE_DIR")),
		dispatch.WithMiddleware(dispatch.LoggingMiddleware(slog.Default())))

	argv := args[1:]
	if len(argv) > 0 && argv[0] == "--" {
		argv = argv[1:]
	}

	result, err := dispatcher.Invoke(ctx, args[0], argv)
	if err != nil {
		return err
	}

	if result != nil {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	}
	return nil
}
