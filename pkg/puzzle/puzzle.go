// Package puzzle splits raw input into its diagram and instruction sections
// and parses both.
//
// Input is a diagram (crate rows and an identifier row), a blank line, then
// zero or more move instructions:
//
//	    [D]
//	[N] [C]
//	[Z] [M] [P]
//	 1   2   3
//
//	move 1 from 2 to 1
//	move 3 from 1 to 3
//
// The two sections are parsed concurrently; [Parse] returns only after both
// have succeeded, or with the first error either of them hit.
package puzzle

import (
	"bufio"
	"context"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cratetower/pkg/diagram"
	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/instruction"
	"github.com/matzehuels/cratetower/pkg/yard"
)

// Section is a contiguous run of input lines.
type Section struct {
	Lines     []string
	FirstLine int // 1-based line number of Lines[0]
}

// Sections is the result of Split.
type Sections struct {
	Diagram      Section
	Instructions Section
}

// Puzzle is a fully parsed input: the initial yard and the ordered moves.
type Puzzle struct {
	Yard         *yard.Yard
	Instructions []instruction.Instruction
}

// Options configures parsing.
type Options struct {
	// CommentMarker starts comment lines in the instruction section.
	// Empty selects instruction.DefaultCommentMarker.
	CommentMarker string
}

// ReadLines reads r and splits it into lines, dropping a trailing "\r" from
// each. A final newline does not produce an empty last line.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), errs.MaxInputSize)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read input")
	}
	return lines, nil
}

// Split separates lines into the diagram and instruction sections.
//
// Leading blank lines are skipped. The diagram runs up to the first blank
// line; without one, it ends before the first line that looks like a move or
// a comment. Everything after the separator belongs to the instructions.
func Split(lines []string, commentMarker string) Sections {
	p := instruction.NewParser(commentMarker)

	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}

	end := start
	for end < len(lines) && !isBlank(lines[end]) && !looksLikeInstruction(p, lines[end]) {
		end++
	}

	return Sections{
		Diagram:      Section{Lines: lines[start:end], FirstLine: start + 1},
		Instructions: Section{Lines: lines[end:], FirstLine: end + 1},
	}
}

// Parse reads r and parses both sections.
func Parse(ctx context.Context, r io.Reader, opts Options) (*Puzzle, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(ctx, lines, opts)
}

// ParseString parses an in-memory input.
func ParseString(ctx context.Context, s string, opts Options) (*Puzzle, error) {
	return Parse(ctx, strings.NewReader(s), opts)
}

// ParseLines parses input that has already been split into lines.
func ParseLines(ctx context.Context, lines []string, opts Options) (*Puzzle, error) {
	sec := Split(lines, opts.CommentMarker)

	var (
		pz               Puzzle
		g                errgroup.Group
		diagErr, instErr error
	)
	g.Go(func() error {
		pz.Yard, diagErr = diagram.Parse(sec.Diagram.Lines, sec.Diagram.FirstLine)
		return diagErr
	})
	g.Go(func() error {
		p := instruction.NewParser(opts.CommentMarker)
		pz.Instructions, instErr = p.ParseAll(sec.Instructions.Lines, sec.Instructions.FirstLine)
		return instErr
	})
	if g.Wait() != nil {
		// Report the error nearest the top of the input.
		if diagErr != nil {
			return nil, diagErr
		}
		return nil, instErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &pz, nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func looksLikeInstruction(p *instruction.Parser, line string) bool {
	return strings.HasPrefix(line, "move ") || p.IsComment(line)
}
