package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/packages/xlsx"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outputPath string
		opts       xlsx.Options
	)

	cmd := &cobra.Command{
		Use:   "export <script>",
		Short: "Evaluate a script and save it as an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			if err := xlsx.Save(outputPath, s, opts); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "wrote %d cells to %s\n", s.Len(), outputPath)
			return a.writeMetrics()
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	cmd.Flags().StringVar(&opts.InputSheet, "sheet", xlsx.DefaultInputSheet, "Name of the worksheet holding the inputs")
	cmd.Flags().BoolVar(&opts.SkipValues, "no-values", false, "Omit the computed values worksheet")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
