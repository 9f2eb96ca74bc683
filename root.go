package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the game CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghostgame",
		Short: "A small ghost exploration game",
		Long: `Guide a ghost through gardens of holes, phantom walls and hidden
things. Items found in chests grant abilities that change what the
ghost can cross and see.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewPlayCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewItemsCmd())
	cmd.AddCommand(NewKeysCmd())
	cmd.AddCommand(NewGenerateCmd())

	return cmd
}
