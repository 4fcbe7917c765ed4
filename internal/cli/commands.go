package cli

import (
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the available integration commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, closeHost, err := loadCommandRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer closeHost()

		names := registry.Names()
		if len(names) == 0 {
			cmd.Println("No integration commands installed.")
			return nil
		}
		for _, name := range names {
			cmd.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
