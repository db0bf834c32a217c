package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/packages/config"
	"github.com/vogtb/go-spreadsheet/packages/render"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		format     string
		showErrors bool
	)

	cmd := &cobra.Command{
		Use:   "eval <script>",
		Short: "Evaluate a script and print every cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			opts := render.Options{ShowErrors: showErrors || a.cfg.Output.ShowErrors}

			switch format {
			case config.FormatTable:
				err = render.Table(a.stdout, s, opts)
			case config.FormatPlain:
				err = render.Plain(a.stdout, s, opts)
			default:
				return fmt.Errorf("invalid format: %s (must be %s or %s)", format, config.FormatTable, config.FormatPlain)
			}
			if err != nil {
				return err
			}
			return a.writeMetrics()
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTable, "Output format: table or plain")
	cmd.Flags().BoolVar(&showErrors, "show-errors", false, "Print the message behind each error cell")
	return cmd
}
