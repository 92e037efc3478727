package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/pipeline"
	"github.com/matzehuels/hierlayout/pkg/render/dot"
)

// dotCommand creates the dot command for drawing a layout with Graphviz.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		svg     bool
		dotOpts dot.Options
	)

	cmd := &cobra.Command{
		Use:   "dot [graph.json|graph.yaml]",
		Short: "Draw the layout of a graph as Graphviz DOT or SVG",
		Long: `Draw the layout of a graph as Graphviz DOT or SVG.

Runs the same pipeline as 'layout' and writes a diagram of the result:
reversed edges are dashed, lanes become clusters and ranked vertices share
a Graphviz rank.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pipeline.FormatDOT
			if svg {
				format = pipeline.FormatSVG
			}
			return c.runDOT(cmd, args[0], flags, format, output, dotOpts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.<dot|svg>)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with Graphviz instead of writing DOT source")
	cmd.Flags().BoolVarP(&dotOpts.Detailed, "detailed", "d", false, "show lanes, ranks and edge IDs")
	cmd.Flags().BoolVar(&dotOpts.Lanes, "lanes", false, "always draw lane clusters")
	cmd.Flags().StringVar(&dotOpts.RankDir, "rankdir", "TB", "Graphviz rank direction: TB, LR, BT, RL")

	return cmd
}

func (c *CLI) runDOT(cmd *cobra.Command, input string, flags layoutFlags, format, output string, dotOpts dot.Options) error {
	ctx := cmd.Context()
	out := printer{w: cmd.OutOrStdout()}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, hit, err := compute(ctx, cmd, runner, input, flags.options(cmd, c.Config))
	if err != nil {
		return err
	}

	data, err := runner.Render(ctx, res, format, dotOpts)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	out.success("Diagram written")
	out.file(output)
	out.stats(res, hit)
	return nil
}
