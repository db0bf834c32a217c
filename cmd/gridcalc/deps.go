package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/packages/render"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

func newDepsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <script> <cell>",
		Short: "Show what a cell reads and what is derived from it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := spreadsheet.ParseCellID(args[1])
			if err != nil {
				return fmt.Errorf("cell %q: %w", args[1], err)
			}
			s, err := a.load(args[0])
			if err != nil {
				return err
			}

			value := "(empty)"
			if cell, ok := s.Get(id); ok {
				value = render.Display(cell, render.Options{ShowErrors: a.cfg.Output.ShowErrors})
				if cell.IsFormula() {
					value = fmt.Sprintf("%s = %s", cell.Raw, value)
				}
			}
			fmt.Fprintf(a.stdout, "%s: %s\n", id, value)
			fmt.Fprintf(a.stdout, "precedents: %s\n", joinIDs(s.Precedents(id)))
			fmt.Fprintf(a.stdout, "dependents: %s\n", joinIDs(s.Dependents(id)))
			return a.writeMetrics()
		},
	}
}

func joinIDs(ids []spreadsheet.CellID) string {
	if len(ids) == 0 {
		return "-"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}
