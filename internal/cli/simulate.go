package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratetower/pkg/observability/prom"
	"github.com/matzehuels/cratetower/pkg/report"
)

// simulateFlags holds the flags of the simulate command.
type simulateFlags struct {
	mode        string
	marker      string
	format      string
	output      string
	noCache     bool
	refresh     bool
	metricsFile string
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate <file|->",
		Short: "Replay the moves and report the top crate of every stack",
		Long: `Replay every move instruction on the drawn stacks and print the crates left
on top, in identifier-row order. Empty stacks are reported as "none".

Modes:
  single (alias 9000)  the crane lifts one crate at a time, reversing their order
  block  (alias 9001)  the crane lifts all crates at once, keeping their order`,
		Example: `  cratetower simulate input.txt
  cratetower simulate --mode block --format json input.txt
  cat input.txt | cratetower simulate -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "crane mode: single|block (default from config, else single)")
	cmd.Flags().StringVar(&flags.marker, "comment-marker", "", "prefix of comment lines in the move list (default //)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text|json|yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results and recompute")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics for this run to a textfile")

	return cmd
}

func (c *CLI) runSimulate(cmd *cobra.Command, path string, flags simulateFlags) (err error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := report.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	metricsFile := flags.metricsFile
	if metricsFile == "" {
		metricsFile = c.config.Metrics.File
	}
	if metricsFile != "" {
		reg := prometheus.NewRegistry()
		prom.New(reg).Register()
		defer func() {
			if werr := prom.WriteTextfile(reg, metricsFile); werr != nil {
				logger.Warn("write metrics", "file", metricsFile, "err", werr)
			} else {
				logger.Debug("wrote metrics", "file", metricsFile)
			}
		}()
	}

	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, nil)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	opts := c.options(input, flags.mode, flags.marker)
	opts.Refresh = flags.refresh

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	status := iconFresh
	if res.CacheInfo.Hit {
		status = iconCached
	}
	prog.done(fmt.Sprintf("Simulated %d moves in %s mode [%s]", res.Stats.Instructions, res.Report.Mode, status))

	var w io.Writer = cmd.OutOrStdout()
	if flags.output != "" {
		f, cerr := os.Create(flags.output)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if err := report.Write(w, res.Report, format); err != nil {
		return err
	}
	if flags.output != "" {
		printSuccess("Wrote %s report", format)
		printFile(flags.output)
		printStats(res.Stats.Stacks, res.Stats.Instructions, res.Stats.Moved, res.CacheInfo.Hit)
	}
	return nil
}
