package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand lays out a graph and opens an interactive edge browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags layoutFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [graph.json|graph.yaml]",
		Short: "Browse the edges of a layout interactively",
		Long: `Lay out a graph and browse its edges in the terminal.

Reversed edges are highlighted together with the lanes and ranks of their
endpoints. Press r to show reversed edges only. With --plain the first page
is printed without starting the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			res, _, err := compute(ctx, cmd, runner, args[0], flags.options(cmd, c.Config))
			if err != nil {
				return err
			}

			m := NewEdgeListModel(res)
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), m.View())
				return nil
			}

			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print the edge table and exit")

	return cmd
}
