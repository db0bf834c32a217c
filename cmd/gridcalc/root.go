package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/packages/config"
	"github.com/vogtb/go-spreadsheet/packages/logging"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

// app holds state shared by every subcommand once flags are parsed
type app struct {
	configPath string
	logLevel   string
	metrics    bool
	strict     bool

	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	stdout   io.Writer
	stderr   io.Writer
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "gridcalc",
		Short: "Evaluate spreadsheet cell scripts",
		Long: `gridcalc loads a cell script, evaluates every formula and prints the result.

A script holds one cell per line: an address, whitespace, then the cell text.
Text starting with '=' is a formula using + - * / parentheses and cell
references. Blank lines and lines starting with '#' are ignored.

Examples:
  gridcalc eval budget.grid
  gridcalc eval budget.grid --format plain
  gridcalc export budget.grid -o budget.xlsx
  gridcalc deps budget.grid B1`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().BoolVar(&a.metrics, "metrics", false, "Print engine metrics after the command (overrides config)")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "Fail when the formulas contain a cycle")

	root.AddCommand(
		newEvalCmd(a),
		newExportCmd(a),
		newDepsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Metrics.Enabled = a.metrics
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	loggingCfg := cfg.LoggingConfig()
	loggingCfg.Output = a.stderr
	a.cfg = cfg
	a.logger = logging.New(loggingCfg)
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
	}
	return nil
}

// newSpreadsheet creates an engine wired to the app's logger and metrics
func (a *app) newSpreadsheet() *spreadsheet.Spreadsheet {
	opts := []spreadsheet.Option{spreadsheet.WithLogger(a.logger)}
	if a.registry != nil {
		opts = append(opts, spreadsheet.WithMetrics(spreadsheet.NewMetrics(a.registry)))
	}
	return spreadsheet.NewSpreadsheet(opts...)
}

// writeMetrics prints the registry in the Prometheus text format
func (a *app) writeMetrics() error {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.stdout, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
