package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	flowio "github.com/matzehuels/flowboard/pkg/io"
)

// importCommand creates the import command: Flow YAML to chart JSON.
func (c *CLI) importCommand() *cobra.Command {
	var (
		output       string
		ignoreCanvas bool
	)

	cmd := &cobra.Command{
		Use:   "import [flow.yml]",
		Short: "Convert a Flow document to chart JSON",
		Long: `Convert a Flow document to chart JSON.

Pods become nodes and needs become links. Positions stored under
with.board.canvas are restored; pods without one are placed on a grid by
dependency depth. Pass --ignore-canvas to lay out every pod afresh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], output, ignoreCanvas)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.json, stdout for stdin input)")
	cmd.Flags().BoolVar(&ignoreCanvas, "ignore-canvas", false, "ignore saved canvas positions")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, output string, ignoreCanvas bool) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	opts.IgnoreCanvas = ignoreCanvas

	output, err = importOutput(input, output)
	if err != nil {
		c.printError("%s", fberrors.UserMessage(err))
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

	prog := newProgress(c.Logger)
	ch, err := runner.Import(ctx, data, input, opts)
	if err != nil {
		c.printError("Import failed: %s", fberrors.UserMessage(err))
		return err
	}
	prog.done("Imported " + input)

	if output == "" {
		return flowio.WriteJSON(ch, c.out)
	}
	if err := flowio.ExportJSON(ch, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	c.printSuccess("Import complete")
	c.printFile(output)
	c.printStats(ch.Nodes.Len(), ch.Links.Len(), false)
	c.printNewline()
	c.printNextStep("Render", appName+" render "+output)
	return nil
}

// importOutput picks the chart JSON path for input. An empty result means
// stdout, which is the default for stdin input. The derived name may not
// replace the input itself.
func importOutput(input, output string) (string, error) {
	if output == "" {
		if input == "-" {
			return "", nil
		}
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if output == "-" {
		return "", nil
	}
	if input != "-" && samePath(input, output) {
		return "", fberrors.New(fberrors.ErrCodeInvalidInput,
			"output %s would overwrite the input; choose another path with -o", output)
	}
	return output, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(os.Stdin); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fberrors.Wrap(fberrors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
