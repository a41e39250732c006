package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fberrors "github.com/matzehuels/flowboard/pkg/errors"
)

// layoutCommand creates the layout command: re-export a flow with canvas
// positions filled in.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		reset  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [flow.yml]",
		Short: "Compute canvas positions for a Flow document",
		Long: `Compute canvas positions for a Flow document.

Pods without a saved position are placed on a grid: one row per
dependency depth, left to right in document order. With --reset every
saved position is discarded first. The flow is written back with the
positions under with.board.canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, reset)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&reset, "reset", false, "recompute every position")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, reset bool) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ch, err := runner.Import(ctx, data, input, opts)
	if err != nil {
		c.printError("Layout failed: %s", fberrors.UserMessage(err))
		return err
	}
	placed := 0
	if reset {
		if placed, err = runner.Layout(ctx, ch, opts, true); err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
	}

	yml, err := runner.Export(ctx, ch, opts)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := c.out.Write(yml)
		return err
	}
	if err := os.WriteFile(output, yml, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	c.printSuccess("Layout complete")
	c.printFile(output)
	if reset {
		c.printDetail("Placed %d pods", placed)
	}
	return nil
}
