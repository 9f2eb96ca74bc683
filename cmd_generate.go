package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"ghostgame/pkg/game/generator"
)

// NewGenerateCmd creates the generate subcommand.
func NewGenerateCmd() *cobra.Command {
	opts := generator.DefaultOptions()
	var layout, output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random solvable level",
		Long: `Generate a random level and write it as YAML. Gates are placed on
corridors the goal cannot be reached without, and the chest holding
each gate's item is placed before it. The same seed always gives the
same level. Play the result with "play --level".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := generator.ParseLayout(layout)
			if err != nil {
				return err
			}
			opts.Layout = l
			if !cmd.Flags().Changed("seed") {
				opts.Seed = uint64(time.Now().UnixNano())
			}
			return runGenerate(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, output)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().IntVar(&opts.Rows, "rows", opts.Rows, "map height including walls")
	cmd.Flags().IntVar(&opts.Cols, "cols", opts.Cols, "map width including walls")
	cmd.Flags().IntVar(&opts.Gates, "gates", opts.Gates, "gates to place (0-3, 3 adds a hidden chest)")
	cmd.Flags().StringVar(&layout, "layout", "bsp", "map layout: bsp or walker")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the level to this file instead of stdout")
	return cmd
}

func runGenerate(w, status io.Writer, opts generator.Options, output string) error {
	l, err := generator.Generate(opts)
	if err != nil {
		return err
	}
	data, err := l.Encode()
	if err != nil {
		return err
	}

	fmt.Fprintf(status, "generated %q (seed %d)\n", l.Title(), opts.Seed)
	if output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return oops.Code("WRITE_FAILED").With("path", output).Wrapf(err, "write level")
	}
	fmt.Fprintf(status, "written to %s\n", output)
	return nil
}
