package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratetower/pkg/pipeline"
	"github.com/matzehuels/cratetower/pkg/report"
	"github.com/matzehuels/cratetower/pkg/yard"
)

// showCommand creates the show command, which parses without simulating.
func (c *CLI) showCommand() *cobra.Command {
	var marker string

	cmd := &cobra.Command{
		Use:   "show <file|->",
		Short: "Parse the input and print the initial stacks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			pz, err := pipeline.Parse(ctx, c.options(input, "", marker))
			if err != nil {
				return err
			}
			prog.done("Parsed input")

			fmt.Fprintln(cmd.OutOrStdout(), yardTable(pz.Yard))
			printNewline()
			printKeyValue("Stacks", strconv.Itoa(pz.Yard.Size()))
			printKeyValue("Instructions", strconv.Itoa(len(pz.Instructions)))
			printKeyValue("Tops", StyleHighlight.Render(topsOf(pz.Yard)))
			printNewline()
			printNextStep("Run the moves", appName+" simulate "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&marker, "comment-marker", "", "prefix of comment lines in the move list (default //)")
	return cmd
}

// yardTable renders one row per stack, crates listed bottom to top.
func yardTable(y *yard.Yard) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, y.Size())
	for _, s := range y.Stacks() {
		crates := make([]string, len(s.Items))
		for i, it := range s.Items {
			crates[i] = "[" + string(it) + "]"
		}
		top := report.EmptyTop
		if it, ok := s.Top(); ok {
			top = string(it)
		}
		rows = append(rows, []string{s.ID.String(), strconv.Itoa(len(s.Items)), strings.Join(crates, " "), top})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stack", "Height", "Crates (bottom → top)", "Top").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			case 3:
				return lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
	return t.Render()
}

// topsOf joins the top crate of every stack, "none" for empty stacks.
func topsOf(y *yard.Yard) string {
	tops, present := y.Tops()
	var b strings.Builder
	for i, t := range tops {
		if present[i] {
			b.WriteString(string(t))
		} else {
			b.WriteString(report.EmptyTop)
		}
	}
	return b.String()
}
