package cli

import (
	"github.com/spf13/cobra"

	"github.com/prunekit/prunekit-host-sdk/extras"
)

var extrasCmd = &cobra.Command{
	Use:   "extras",
	Short: "Work with optional capability bundles",
}

var extrasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available capability bundles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := extras.Builtin()
		for _, name := range reg.List() {
			bundle, err := reg.Bundle(name)
			if err != nil {
				return err
			}
			cmd.Printf("%s (%d requirements)\n", name, len(bundle))
		}
		return nil
	},
}

var extrasResolveCmd = &cobra.Command{
	Use:   "resolve [capability...]",
	Short: "Print the requirement list for a capability selection",
	Long: `Prints the core requirements followed by the requirements of each
named capability, deduplicated. With no arguments the persisted selection
from "extras pick" is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected := args
		if len(selected) == 0 {
			stored, err := extras.NewSelectionStore().Load()
			if err != nil {
				return err
			}
			selected = stored
		}

		reqs, err := extras.Builtin().Resolve(selected...)
		if err != nil {
			return err
		}
		for _, req := range reqs {
			cmd.Println(req.String())
		}
		return nil
	},
}

var extrasPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively choose capabilities and persist the selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := extras.NewSelectionStore()
		previous, err := store.Load()
		if err != nil {
			return err
		}

		selection, err := extras.NewTerminalPrompter().PickCapabilities(extras.Builtin(), previous)
		if err != nil {
			return err
		}
		if err := store.Save(selection); err != nil {
			return err
		}
		cmd.Printf("Saved %d capabilities to %s\n", len(selection), store.Path())
		return nil
	},
}

func init() {
	extrasCmd.AddCommand(extrasListCmd, extrasResolveCmd, extrasPickCmd)
	rootCmd.AddCommand(extrasCmd)
}
