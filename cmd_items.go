package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/locale"
)

// NewItemsCmd creates the items subcommand.
func NewItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the items levels can hand out",
		Long:  `List every item key usable in level files with the abilities it grants.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runItems(cmd.OutOrStdout())
		},
	}
}

func runItems(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tGRANTS\tDESCRIPTION")
	for _, t := range entities.AllItemTypes() {
		info := entities.ItemTypes[t]
		grants := make([]string, 0, len(info.Grants))
		for _, a := range info.Grants {
			grants = append(grants, locale.Get(a.LabelKey()))
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", info.Key, info.Icon, info.Name, strings.Join(grants, ", "), info.Description)
	}
	return tw.Flush()
}
