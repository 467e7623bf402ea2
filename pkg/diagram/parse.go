package diagram

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/yard"
)

var identifierRowRE = regexp.MustCompile(`^\s*\d+(?:\s+\d+)*\s*$`)

// Column is one declared stack id and the rune columns its token occupies.
type Column struct {
	ID    yard.StackID
	Start int // first column of the token
	End   int // one past the last column of the token
}

// centre2 returns twice the centre column, keeping the arithmetic integral.
func (c Column) centre2() int { return c.Start + c.End - 1 }

// IsIdentifierRow reports whether line matches the identifier row grammar:
// one or more runs of digits separated by whitespace.
func IsIdentifierRow(line string) bool {
	return identifierRowRE.MatchString(line)
}

// ParseIdentifierRow tokenizes the identifier row and records where each id
// starts. Columns are returned left to right, which is the declaration order.
func ParseIdentifierRow(line string) ([]Column, error) {
	if !IsIdentifierRow(line) {
		return nil, errs.New(errs.ErrCodeMalformedDiagram,
			"identifier row %q is not a list of positive integers", line)
	}

	var cols []Column
	runes := []rune(line)
	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		tok := string(runes[start:i])
		if err := errs.ValidateStackToken(tok); err != nil {
			return nil, errs.Wrap(errs.ErrCodeMalformedDiagram, err, "bad identifier at column %d", start+1)
		}
		v, err := strconv.ParseUint(tok, 10, strconv.IntSize)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeMalformedDiagram, err, "bad identifier at column %d", start+1)
		}
		cols = append(cols, Column{ID: yard.StackID(v), Start: start, End: i})
	}
	return cols, nil
}

// placement is one crate found in a row.
type placement struct {
	id   yard.StackID
	item yard.Item
}

// Parse builds a yard from the diagram section. lines holds every line of the
// section in input order and firstLine is the 1-based line number of lines[0];
// it is only used to locate errors. Blank lines are skipped. The last
// non-blank line is the identifier row.
func Parse(lines []string, firstLine int) (*yard.Yard, error) {
	idRow := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			idRow = i
			break
		}
	}
	if idRow < 0 {
		return nil, errs.New(errs.ErrCodeMalformedDiagram, "identifier row is missing")
	}

	cols, err := ParseIdentifierRow(lines[idRow])
	if err != nil {
		return nil, errs.At(err, firstLine+idRow, 0)
	}

	ids := make([]yard.StackID, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	y, err := yard.New(ids...)
	if err != nil {
		return nil, errs.At(err, firstLine+idRow, 0)
	}

	// Bottom crate row first, so every push lands on top of what is below it.
	for i := idRow - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		row, err := parseCrateRow(lines[i], cols)
		if err != nil {
			return nil, errs.At(err, firstLine+i, 0)
		}
		for _, p := range row {
			if err := y.PushAll(p.id, []yard.Item{p.item}); err != nil {
				return nil, errs.At(err, firstLine+i, 0)
			}
		}
	}
	return y, nil
}

// parseCrateRow locates every bracket pair in line and matches it to a column.
func parseCrateRow(line string, cols []Column) ([]placement, error) {
	runes := []rune(line)
	seen := make(map[yard.StackID]bool)
	var out []placement

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			continue
		}
		if r != '[' {
			return nil, errs.New(errs.ErrCodeMalformedDiagram,
				"unexpected %q at column %d", r, i+1)
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '[' {
				return nil, errs.New(errs.ErrCodeMalformedDiagram,
					"nested bracket at column %d", j+1)
			}
			if runes[j] == ']' {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, errs.New(errs.ErrCodeMalformedDiagram,
				"unterminated crate at column %d", i+1)
		}
		if end == i+1 {
			return nil, errs.New(errs.ErrCodeMalformedDiagram,
				"empty crate at column %d", i+1)
		}

		col, ok := matchColumn(cols, i, end)
		if !ok {
			return nil, errs.New(errs.ErrCodeMalformedDiagram,
				"crate at column %d is not aligned with any stack", i+1)
		}
		if seen[col.ID] {
			return nil, errs.New(errs.ErrCodeMalformedDiagram,
				"two crates on stack %d in one row", col.ID)
		}
		seen[col.ID] = true
		out = append(out, placement{id: col.ID, item: yard.Item(runes[i+1 : end])})
		i = end
	}
	return out, nil
}

// matchColumn returns the column whose token overlaps [open, close], nearest
// centre first.
func matchColumn(cols []Column, open, close int) (Column, bool) {
	var (
		best  Column
		found bool
		dist  int
	)
	centre2 := open + close
	for _, c := range cols {
		if c.Start > close || c.End-1 < open {
			continue
		}
		d := abs(c.centre2() - centre2)
		if !found || d < dist {
			best, found, dist = c, true, d
		}
	}
	return best, found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
