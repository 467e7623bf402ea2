// Package yard provides the stack yard: an ordered collection of named
// stacks of crates.
//
// # Overview
//
// A [Yard] holds one [Stack] per declared [StackID]. The set of identifiers is
// fixed when the yard is created with [New]; no operation can add or remove a
// stack afterwards. Iteration order is declaration order, not numeric order,
// so a yard declared as "7 2 9" reports its stacks as 7, 2, 9.
//
// Each stack is stored bottom-first: the last element is the top.
//
// # Operations
//
//   - [Yard.PeekTop] returns the top item of a stack without mutating it.
//   - [Yard.PopN] removes the top n items and returns them top-to-bottom.
//     It is all-or-nothing: a short stack is left untouched.
//   - [Yard.PushAll] appends items in the order given, so the last one ends
//     up on top.
//   - [Yard.IDs] returns the identifiers in declaration order.
//
// PopN followed by PushAll of the reversed result restores the stack, and the
// yard itself never reorders anything: whether moved crates arrive reversed
// or in their original order is decided by the caller (see package crane).
//
// # Concurrency
//
// A Yard is not safe for concurrent use. It is owned by a single simulator for
// the length of a run.
package yard
