// Package diagram parses and renders the ASCII crate diagram.
//
// # Format
//
// A diagram is zero or more crate rows followed by one identifier row:
//
//	    [D]
//	[N] [C]
//	[Z] [M] [P]
//	 1   2   3
//
// The identifier row declares the stacks, left to right, and fixes the column
// each stack occupies. Crate rows are read top-down but describe stacks
// bottom-up, so [Parse] applies them in reverse: the last crate row is the
// bottom of every stack.
//
// # Column Matching
//
// A crate "[X]" spans the columns from its opening to its closing bracket. It
// belongs to the declared id whose token overlaps that span; if more than one
// token overlaps, the one whose centre is closest wins. A crate that overlaps
// no id, two crates landing on the same stack in one row, stray characters,
// unterminated brackets and empty labels all fail with MALFORMED_DIAGRAM.
//
// Columns are counted in runes, so labels and padding may be any printable
// characters as long as the diagram stays aligned.
//
// # Rendering
//
// [Render] produces the same format from a yard. For single-character labels
// and ids, Parse(Render(y)) reproduces y exactly.
package diagram
