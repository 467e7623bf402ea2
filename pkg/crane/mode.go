package crane

import (
	"strings"

	errs "github.com/matzehuels/cratetower/pkg/errors"
)

// Mode selects how a multi-crate move orders the crates it carries.
type Mode int

const (
	// SingleItem moves crates one at a time; moved crates end up reversed.
	SingleItem Mode = iota
	// Block moves crates as one unit; moved crates keep their order.
	Block
)

// Modes lists every mode in a stable order.
var Modes = []Mode{SingleItem, Block}

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case SingleItem:
		return "single"
	case Block:
		return "block"
	}
	return "unknown"
}

// ParseMode resolves a mode name. It accepts the canonical names, "single-item",
// and the crane model numbers "9000" (single) and "9001" (block), ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-item", "singleitem", "9000":
		return SingleItem, nil
	case "block", "9001":
		return Block, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidMode, "invalid mode: %q (must be one of: single, block)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != SingleItem && m != Block {
		return nil, errs.New(errs.ErrCodeInvalidMode, "invalid mode: %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
