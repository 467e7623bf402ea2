package yard

import (
	"slices"
	"strconv"

	errs "github.com/matzehuels/cratetower/pkg/errors"
)

// StackID identifies a stack. IDs are positive and unique within a yard.
type StackID uint

// String returns the decimal form of the id.
func (id StackID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Item is an opaque crate label, taken verbatim from between a bracket pair.
// Items are values: two crates with the same label are indistinguishable.
type Item string

// Stack is an ordered sequence of items, bottom-first.
type Stack struct {
	ID    StackID
	Items []Item
}

// Top returns the topmost item, or false if the stack is empty.
func (s *Stack) Top() (Item, bool) {
	if len(s.Items) == 0 {
		return "", false
	}
	return s.Items[len(s.Items)-1], true
}

// Yard maps stack ids to stacks and remembers declaration order.
//
// The zero value is an empty yard with no stacks. Use New to declare stacks.
type Yard struct {
	stacks []*Stack
	index  map[StackID]int
}

// New creates a yard with one empty stack per id, in the given order.
// It fails with MALFORMED_DIAGRAM if an id is zero or declared twice.
func New(ids ...StackID) (*Yard, error) {
	y := &Yard{
		stacks: make([]*Stack, 0, len(ids)),
		index:  make(map[StackID]int, len(ids)),
	}
	for _, id := range ids {
		if id == 0 {
			return nil, errs.New(errs.ErrCodeMalformedDiagram, "stack id must be positive")
		}
		if _, dup := y.index[id]; dup {
			return nil, errs.New(errs.ErrCodeMalformedDiagram, "stack %d declared more than once", id)
		}
		y.index[id] = len(y.stacks)
		y.stacks = append(y.stacks, &Stack{ID: id})
	}
	return y, nil
}

// IDs returns the stack identifiers in declaration order.
func (y *Yard) IDs() []StackID {
	ids := make([]StackID, len(y.stacks))
	for i, s := range y.stacks {
		ids[i] = s.ID
	}
	return ids
}

// Has reports whether id was declared.
func (y *Yard) Has(id StackID) bool {
	_, ok := y.index[id]
	return ok
}

// Len returns the number of items on stack id, or 0 for an unknown id.
func (y *Yard) Len(id StackID) int {
	s, ok := y.stack(id)
	if !ok {
		return 0
	}
	return len(s.Items)
}

// Size returns the number of stacks.
func (y *Yard) Size() int { return len(y.stacks) }

// Items returns a copy of stack id's items, bottom-first.
func (y *Yard) Items(id StackID) []Item {
	s, ok := y.stack(id)
	if !ok {
		return nil
	}
	return slices.Clone(s.Items)
}

// Stacks returns a copy of every stack in declaration order.
func (y *Yard) Stacks() []Stack {
	out := make([]Stack, len(y.stacks))
	for i, s := range y.stacks {
		out[i] = Stack{ID: s.ID, Items: slices.Clone(s.Items)}
	}
	return out
}

// PeekTop returns the top item of stack id. It reports false when the stack
// is empty or id is unknown.
func (y *Yard) PeekTop(id StackID) (Item, bool) {
	s, ok := y.stack(id)
	if !ok {
		return "", false
	}
	return s.Top()
}

// PopN removes the top n items of stack id and returns them top-to-bottom:
// the item that was on top is first.
//
// PopN is all-or-nothing. It fails with UNKNOWN_STACK for an undeclared id and
// with INSUFFICIENT_ITEMS when the stack holds fewer than n items; in both
// cases the yard is left unchanged. Popping zero items returns an empty slice.
func (y *Yard) PopN(id StackID, n int) ([]Item, error) {
	s, ok := y.stack(id)
	if !ok {
		return nil, unknown(id)
	}
	if n < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cannot pop %d items", n)
	}
	if n > len(s.Items) {
		return nil, errs.New(errs.ErrCodeInsufficientItems,
			"stack %d holds %d items, cannot take %d", id, len(s.Items), n)
	}

	cut := len(s.Items) - n
	popped := slices.Clone(s.Items[cut:])
	slices.Reverse(popped)
	clear(s.Items[cut:])
	s.Items = s.Items[:cut]
	return popped, nil
}

// PushAll appends items onto stack id in arrival order; the last item given
// ends up on top. It fails with UNKNOWN_STACK for an undeclared id.
func (y *Yard) PushAll(id StackID, items []Item) error {
	s, ok := y.stack(id)
	if !ok {
		return unknown(id)
	}
	s.Items = append(s.Items, items...)
	return nil
}

// Tops returns the top item of each stack in declaration order. Empty stacks
// are reported with ok=false in the matching position of present.
func (y *Yard) Tops() (tops []Item, present []bool) {
	tops = make([]Item, len(y.stacks))
	present = make([]bool, len(y.stacks))
	for i, s := range y.stacks {
		tops[i], present[i] = s.Top()
	}
	return tops, present
}

// Height returns the size of the tallest stack.
func (y *Yard) Height() int {
	h := 0
	for _, s := range y.stacks {
		h = max(h, len(s.Items))
	}
	return h
}

// Clone returns a deep copy of the yard.
func (y *Yard) Clone() *Yard {
	c := &Yard{
		stacks: make([]*Stack, len(y.stacks)),
		index:  make(map[StackID]int, len(y.index)),
	}
	for i, s := range y.stacks {
		c.stacks[i] = &Stack{ID: s.ID, Items: slices.Clone(s.Items)}
		c.index[s.ID] = i
	}
	return c
}

// Equal reports whether both yards declare the same ids in the same order
// with identical contents.
func (y *Yard) Equal(other *Yard) bool {
	if len(y.stacks) != len(other.stacks) {
		return false
	}
	for i, s := range y.stacks {
		o := other.stacks[i]
		if s.ID != o.ID || !slices.Equal(s.Items, o.Items) {
			return false
		}
	}
	return true
}

func (y *Yard) stack(id StackID) (*Stack, bool) {
	i, ok := y.index[id]
	if !ok {
		return nil, false
	}
	return y.stacks[i], true
}

func unknown(id StackID) error {
	return errs.New(errs.ErrCodeUnknownStack, "stack %d is not declared", id)
}
