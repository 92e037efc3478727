package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/pipeline"
)

// layoutFlags are the pipeline flags shared by layout, dot and inspect.
type layoutFlags struct {
	stage   string
	rank    bool
	cover   bool
	refresh bool
	noCache bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.stage, "stage", "s", "", "cycle-removal stage: auto, cycles, swimlanes (default from config, else auto)")
	cmd.Flags().BoolVarP(&f.rank, "rank", "r", false, "assign layer ranks after cycle removal")
	cmd.Flags().BoolVar(&f.cover, "cover", false, "let the swimlane stage also visit vertices its roots miss")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options layers explicitly set flags over the config file defaults.
func (f *layoutFlags) options(cmd *cobra.Command, cfg *Config) pipeline.Options {
	opts := cfg.Options()
	if cmd.Flags().Changed("stage") {
		opts.Stage = f.stage
	}
	if cmd.Flags().Changed("rank") {
		opts.Rank = f.rank
	}
	if cmd.Flags().Changed("cover") {
		opts.CoverUnreached = f.cover
	}
	opts.Refresh = f.refresh
	return opts
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.yaml]",
		Short: "Remove cycles from a graph and write the layout result",
		Long: `Remove cycles from a graph and write the layout result.

The input is a graph document (JSON or YAML, chosen by extension). Edges that
close a cycle are reversed; with lanes present the swimlane stage also makes
every edge run from a lower lane to a higher one. With --rank each vertex is
assigned a layer.

Results are cached, keyed by the graph content and the options.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], flags.options(cmd, c.Config), flags.noCache, output, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, opts pipeline.Options, noCache bool, output, format string) error {
	ctx := cmd.Context()
	out := printer{w: cmd.OutOrStdout()}

	f, err := graph.ParseFormat(format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "output format")
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, hit, err := compute(ctx, cmd, runner, input, opts)
	if err != nil {
		return err
	}

	if output == "-" {
		return graph.Write(cmd.OutOrStdout(), res, f)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout." + string(f)
	}
	if err := writeResult(output, res, f); err != nil {
		return err
	}

	out.success("Layout complete")
	out.file(output)
	out.stats(res, hit)
	out.stages(res)
	out.newline()
	out.nextStep("Draw", appName+" dot "+input)
	return nil
}

// compute loads the graph at input and runs the pipeline on it.
func compute(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, input string, opts pipeline.Options) (*graph.Result, bool, error) {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadFile(input)
	if err != nil {
		return nil, false, fmt.Errorf("load graph %s: %w", input, err)
	}

	opts.Logger = logger
	prog := newProgress(logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Laying out %d vertices...", len(g.Nodes)))
	spinner.Start()

	res, hit, err := runner.Run(ctx, g, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			logger.Warn("Layout interrupted", "input", input)
		}
		return nil, false, err
	}
	prog.done("Layout finished", "vertices", len(res.Vertices), "reversed", res.ReversedCount(), "cached", hit)
	return res, hit, nil
}

func writeResult(path string, res *graph.Result, f graph.Format) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := graph.Write(w, res, f); err != nil {
		w.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return w.Close()
}
