package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratetower/pkg/crane"
	"github.com/matzehuels/cratetower/pkg/diagram"
	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/instruction"
	"github.com/matzehuels/cratetower/pkg/pipeline"
	"github.com/matzehuels/cratetower/pkg/yard"
)

// Step viewer styles
var (
	stepBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	stepMoveStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stepErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// frame is the yard after one step. Frame 0 is the initial yard.
type frame struct {
	move *instruction.Instruction
	yard *yard.Yard
}

// recordFrames replays the puzzle and keeps a snapshot after every move.
// A failing move ends the recording; its error is returned alongside the
// frames recorded so far.
func recordFrames(cmd *cobra.Command, c *CLI, input []byte, mode, marker string) ([]frame, crane.Mode, error) {
	ctx := cmd.Context()
	opts := c.options(input, mode, marker)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}

	pz, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	frames := []frame{{yard: pz.Yard.Clone()}}
	record := func(_ int, in instruction.Instruction, y *yard.Yard) {
		frames = append(frames, frame{move: &in, yard: y.Clone()})
	}
	_, err = pipeline.Simulate(ctx, pz, opts, crane.WithObserver(record))
	return frames, opts.CraneMode(), err
}

// stepModel is the bubbletea model of the step viewer.
type stepModel struct {
	frames []frame
	mode   crane.Mode
	err    error // simulation error after the last frame, if any
	cursor int
}

func newStepModel(frames []frame, mode crane.Mode, err error) stepModel {
	return stepModel{frames: frames, mode: mode, err: err}
}

func (m stepModel) Init() tea.Cmd {
	return nil
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.cursor < len(m.frames)-1 {
				m.cursor++
			}
		case "left", "h", "p":
			if m.cursor > 0 {
				m.cursor--
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.frames) - 1
		}
	}
	return m, nil
}

func (m stepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Step %d/%d", m.cursor, len(m.frames)-1)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s mode", m.mode)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  home/end jump  q quit"))
	b.WriteString("\n\n")

	f := m.frames[m.cursor]
	if f.move != nil {
		b.WriteString(stepMoveStyle.Render(f.move.String()))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  (line %d)", f.move.Line)))
	} else {
		b.WriteString(StyleDim.Render("initial stacks"))
	}
	b.WriteString("\n")

	pic := strings.TrimRight(diagram.Render(f.yard), "\n")
	if pic == "" {
		pic = "(no stacks)"
	}
	b.WriteString(stepBoxStyle.Render(pic))
	b.WriteString("\n")
	b.WriteString("Tops: " + StyleHighlight.Render(topsOf(f.yard)))
	b.WriteString("\n")

	if m.err != nil && m.cursor == len(m.frames)-1 {
		b.WriteString("\n")
		b.WriteString(stepErrorStyle.Render(iconError + " " + errs.UserMessage(m.err)))
		b.WriteString("\n")
	}
	return b.String()
}

// stepCommand creates the interactive step viewer command.
func (c *CLI) stepCommand() *cobra.Command {
	var (
		mode   string
		marker string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "step <file|->",
		Short: "Step through the simulation one move at a time",
		Long: `Open an interactive viewer that shows the stacks before and after every move.
Use --plain to print every step instead, for example when output is piped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			frames, m, simErr := recordFrames(cmd, c, input, mode, marker)
			if len(frames) == 0 {
				return simErr
			}

			model := newStepModel(frames, m, simErr)
			if plain || args[0] == "-" {
				return writePlainSteps(cmd.OutOrStdout(), model)
			}
			if _, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run(); err != nil {
				return err
			}
			return simErr
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "crane mode: single|block")
	cmd.Flags().StringVar(&marker, "comment-marker", "", "prefix of comment lines in the move list (default //)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print every step instead of opening the viewer")
	return cmd
}

// writePlainSteps prints every frame in order without styling.
func writePlainSteps(w io.Writer, m stepModel) error {
	for i, f := range m.frames {
		if f.move != nil {
			fmt.Fprintf(w, "step %d: %s\n", i, f.move)
		} else {
			fmt.Fprintln(w, "initial:")
		}
		fmt.Fprint(w, diagram.Render(f.yard))
		fmt.Fprintln(w)
	}
	return m.err
}
