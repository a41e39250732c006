package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/chart"
	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/format"
	"github.com/matzehuels/flowboard/pkg/layout"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var showPods bool

	cmd := &cobra.Command{
		Use:   "validate [flow.yml]",
		Short: "Check a Flow document and print its shape",
		Long: `Check a Flow document and print its shape.

The flow is parsed and imported exactly as the other commands do, so
malformed YAML, unknown needs and dependency cycles are reported here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], showPods)
		},
	}

	cmd.Flags().BoolVar(&showPods, "pods", false, "list every pod with its depth and needs")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, showPods bool) error {
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

	start := time.Now()
	ch, err := runner.Import(ctx, data, input, opts)
	if err != nil {
		c.printError("%s is invalid: %s", input, fberrors.UserMessage(err))
		return err
	}
	elapsed := time.Since(start)

	c.printSuccess("%s is valid", input)
	c.printKeyValue("Pods", strconv.Itoa(ch.Nodes.Len()))
	c.printKeyValue("Links", strconv.Itoa(ch.Links.Len()))
	c.printKeyValue("Levels", strconv.Itoa(layout.MaxDepth(ch)+1))
	c.printKeyValue("Size", format.Bytes(int64(len(data))))
	c.printKeyValue("Parsed in", format.Seconds(elapsed.Round(time.Millisecond).Seconds()))

	if showPods {
		c.printNewline()
		c.printTable([]string{"Pod", "Depth", "Needs", "Properties"}, podRows(ch))
	}
	return nil
}

func podRows(ch *chart.Chart) [][]string {
	rows := make([][]string, 0, ch.Nodes.Len())
	for p := ch.Nodes.Oldest(); p != nil; p = p.Next() {
		n := p.Value
		depth := "-"
		if n.Depth != nil {
			depth = strconv.Itoa(*n.Depth)
		}
		needs := strings.Join(n.Parents(), ", ")
		if needs == "" {
			needs = "-"
		}
		rows = append(rows, []string{n.Label, depth, needs, strconv.Itoa(n.Properties.Len())})
	}
	return rows
}
