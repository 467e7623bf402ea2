// Package instruction parses crane move instructions.
//
// An instruction line reads "move <quantity> from <source> to <destination>"
// where all three fields are runs of decimal digits. Blank lines and lines
// starting with the comment marker are not instructions and are skipped.
// Anything else in the instruction section is an error.
package instruction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/yard"
)

// DefaultCommentMarker starts a comment line in the instruction section.
const DefaultCommentMarker = "//"

var moveRE = regexp.MustCompile(`^move (\d+) from (\d+) to (\d+)$`)

// Instruction moves Quantity crates from Source to Destination.
type Instruction struct {
	Quantity    int          `json:"quantity" yaml:"quantity"`
	Source      yard.StackID `json:"source" yaml:"source"`
	Destination yard.StackID `json:"destination" yaml:"destination"`

	Line  int `json:"line,omitempty" yaml:"line,omitempty"`   // 1-based input line
	Index int `json:"index,omitempty" yaml:"index,omitempty"` // 1-based position in the sequence
}

// String renders the instruction in input form.
func (in Instruction) String() string {
	return fmt.Sprintf("move %d from %d to %d", in.Quantity, in.Source, in.Destination)
}

// Parser recognizes instruction lines.
// The zero value uses DefaultCommentMarker.
type Parser struct {
	CommentMarker string
}

// NewParser returns a parser using marker for comment lines. An empty marker
// selects DefaultCommentMarker.
func NewParser(marker string) *Parser {
	return &Parser{CommentMarker: marker}
}

func (p *Parser) marker() string {
	if p == nil || p.CommentMarker == "" {
		return DefaultCommentMarker
	}
	return p.CommentMarker
}

// IsComment reports whether line is a comment line.
func (p *Parser) IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), p.marker())
}

// ParseLine parses a single line. ok is false for blank and comment lines.
// A line that is neither fails with MALFORMED_INSTRUCTION, and a quantity of
// zero fails with ZERO_QUANTITY.
func (p *Parser) ParseLine(line string) (in Instruction, ok bool, err error) {
	trimmed := strings.TrimRight(line, " \t\r")
	if strings.TrimSpace(trimmed) == "" || p.IsComment(trimmed) {
		return Instruction{}, false, nil
	}

	m := moveRE.FindStringSubmatch(trimmed)
	if m == nil {
		return Instruction{}, false, errs.New(errs.ErrCodeMalformedInstruction,
			"expected \"move <n> from <a> to <b>\", got %q", trimmed)
	}

	qty, err := strconv.ParseUint(m[1], 10, strconv.IntSize-1)
	if err != nil {
		return Instruction{}, false, errs.Wrap(errs.ErrCodeMalformedInstruction, err, "bad quantity %q", m[1])
	}
	if qty == 0 {
		return Instruction{}, false, errs.New(errs.ErrCodeZeroQuantity, "cannot move 0 crates")
	}
	src, err := parseID(m[2])
	if err != nil {
		return Instruction{}, false, err
	}
	dst, err := parseID(m[3])
	if err != nil {
		return Instruction{}, false, err
	}

	return Instruction{Quantity: int(qty), Source: src, Destination: dst}, true, nil
}

// ParseAll parses the instruction section. lines holds the section in input
// order and firstLine is the 1-based line number of lines[0]. The returned
// instructions keep input order and carry their line and index. Parsing stops
// at the first error.
func (p *Parser) ParseAll(lines []string, firstLine int) ([]Instruction, error) {
	var out []Instruction
	for i, line := range lines {
		in, ok, err := p.ParseLine(line)
		if err != nil {
			return nil, errs.At(err, firstLine+i, 0)
		}
		if !ok {
			continue
		}
		in.Line = firstLine + i
		in.Index = len(out) + 1
		out = append(out, in)
	}
	return out, nil
}

func parseID(s string) (yard.StackID, error) {
	v, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeMalformedInstruction, err, "bad stack id %q", s)
	}
	return yard.StackID(v), nil
}
