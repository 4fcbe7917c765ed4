package cli

import (
	"github.com/spf13/cobra"

	prunekit "github.com/prunekit/prunekit-host-sdk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the package identity and version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("%s %s\n", prunekit.PackageIdentity(prunekit.IsRelease), prunekit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
