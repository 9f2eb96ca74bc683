package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ghostgame/pkg/engine/input"
	"ghostgame/pkg/game/config"
)

// reservedActions cannot be rebound from the config file.
var reservedActions = map[input.Action]bool{
	input.ActionAction:   true,
	input.ActionInteract: true,
}

// NewKeysCmd creates the keys subcommand.
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key bindings",
		Long: `List every action with the keys bound to it, after applying the
bindings section of the config file. Use the action names shown
here as keys under "bindings:" to rebind them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, nil)
			if err != nil {
				return err
			}
			applyBindings(cfg)
			return runKeys(cmd.OutOrStdout())
		},
	}
}

func runKeys(w io.Writer) error {
	byAction := input.GetBindingsByAction()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tNAME\tKEYS")
	for _, a := range input.Actions() {
		codes := strings.Join(byAction[a], ", ")
		if codes == "" {
			codes = "(unbound)"
		}
		if reservedActions[a] {
			codes += " (fixed)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", input.ActionKey(a), input.ActionName(a), codes)
	}
	return tw.Flush()
}
