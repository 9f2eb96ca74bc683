package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/game/devtools"
	"ghostgame/pkg/game/gameplay"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/setup"
	"ghostgame/pkg/game/state"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	var dumpMap bool
	cmd := &cobra.Command{
		Use:   "validate [level.yaml]",
		Short: "Check that a level loads and can be finished",
		Long: `Loads a level file, checks its map and entities, then works out
whether the goal can be reached with the items the level offers.
Without an argument the built-in level is checked.
Exits with code 0 on success, non-zero on failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if err := runValidate(cmd.OutOrStdout(), path); err != nil {
				return err
			}
			if dumpMap {
				return runDumpMap(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dumpMap, "map", false, "also print the level layout and entities")
	return cmd
}

func runValidate(w io.Writer, path string) error {
	l, err := loadLevel(path)
	if err != nil {
		return err
	}
	report, err := setup.CheckSolvable(l)
	if err != nil {
		return err
	}

	abilities := make([]string, 0, len(report.Abilities))
	for _, a := range report.Abilities {
		abilities = append(abilities, locale.Get(a.LabelKey()))
	}

	fmt.Fprintf(w, "level:     %s (%dx%d)\n", l.Title(), l.Rows(), l.Cols())
	fmt.Fprintf(w, "reachable: %d cells\n", report.Reachable)
	fmt.Fprintf(w, "items:     %s\n", joinOrNone(report.Items))
	fmt.Fprintf(w, "abilities: %s\n", joinOrNone(abilities))

	if !report.Solvable {
		fmt.Fprintln(w, "solvable:  no")
		return oops.Code("UNSOLVABLE_LEVEL").
			With("level", l.Title()).
			Wrapf(setup.ErrInvalidLevel, "goal cannot be reached")
	}
	fmt.Fprintln(w, "solvable:  yes")
	return nil
}

// runDumpMap starts the level on a fresh game and prints its map dump.
func runDumpMap(w io.Writer, path string) error {
	l, err := loadLevel(path)
	if err != nil {
		return err
	}
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.DiscardHandler))
	if err := gameplay.StartLevel(g, l); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return devtools.DumpMap(w, g)
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ", ")
}
