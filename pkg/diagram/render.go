package diagram

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/cratetower/pkg/yard"
)

// slot is the horizontal extent reserved for one stack.
type slot struct {
	id    string
	width int
}

// Render draws y in diagram format: crate rows from the tallest stack down,
// then the identifier row. Slots are separated by one space and trailing
// spaces are trimmed. An empty yard renders as the empty string.
func Render(y *yard.Yard) string {
	stacks := y.Stacks()
	if len(stacks) == 0 {
		return ""
	}

	slots := make([]slot, len(stacks))
	for i, s := range stacks {
		w := utf8.RuneCountInString(s.ID.String())
		for _, it := range s.Items {
			w = max(w, utf8.RuneCountInString(string(it))+2)
		}
		slots[i] = slot{id: s.ID.String(), width: max(w, 3)}
	}

	var b strings.Builder
	for level := y.Height() - 1; level >= 0; level-- {
		cells := make([]string, len(stacks))
		for i, s := range stacks {
			if level < len(s.Items) {
				cells[i] = centre("["+string(s.Items[level])+"]", slots[i].width)
			} else {
				cells[i] = strings.Repeat(" ", slots[i].width)
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		b.WriteByte('\n')
	}

	ids := make([]string, len(slots))
	for i, sl := range slots {
		ids[i] = centre(sl.id, sl.width)
	}
	b.WriteString(strings.TrimRight(strings.Join(ids, " "), " "))
	b.WriteByte('\n')
	return b.String()
}

// centre pads s with spaces to width runes, extra space going right.
func centre(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
