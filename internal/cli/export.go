package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	flowio "github.com/matzehuels/flowboard/pkg/io"
)

// exportCommand creates the export command: chart JSON to Flow YAML.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output      string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "export [chart.json]",
		Short: "Convert chart JSON back to a Flow document",
		Long: `Convert chart JSON back to a Flow document.

Node positions are written under with.board.canvas so a later import
restores the layout. Nodes without a label cannot be named in the Flow
and are skipped with a warning. Without --output the YAML is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, toClipboard)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "copy the YAML to the clipboard")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output string, toClipboard bool) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	ch, err := flowio.ImportJSON(input)
	if err != nil {
		c.printError("Export failed: %s", fberrors.UserMessage(err))
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, err := runner.Export(ctx, ch, opts)
	if err != nil {
		c.printError("Export failed: %s", fberrors.UserMessage(err))
		return err
	}

	if skipped := flowio.Unlabeled(ch); len(skipped) > 0 {
		c.printWarning("Skipped %d unlabeled node(s)", len(skipped))
	}

	if toClipboard {
		if err := c.Clipboard.Copy(string(data)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.printSuccess("Copied to clipboard")
	}

	if output == "" {
		if !toClipboard {
			_, err := c.out.Write(data)
			return err
		}
		return nil
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	c.printSuccess("Export complete")
	c.printFile(output)
	return nil
}
