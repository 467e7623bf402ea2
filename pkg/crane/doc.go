// Package crane replays move instructions against a stack yard.
//
// # Move Modes
//
// Two cranes are modelled, selected with [Mode]:
//
//   - [SingleItem] lifts one crate at a time. Moving n crates is n single
//     moves, so the crates arrive on the destination in reversed order.
//   - [Block] lifts n crates as a unit. Their relative order is preserved.
//
// Both modes pop the same crates from the source; they differ only in the
// order the popped sequence is pushed onto the destination.
//
// # Execution
//
// A [Simulator] owns one yard for the length of a run. [Simulator.Run]
// applies instructions strictly in order and stops at the first failure:
// UNKNOWN_STACK when an instruction names an undeclared stack and
// INSUFFICIENT_ITEMS when the source is too short. Each check happens before
// the yard is touched, so a failing instruction leaves both stacks as they
// were. A move whose source and destination are the same stack is checked
// the same way and then left as a no-op.
//
// There is no partial-result mode: callers that get an error from Run should
// discard the yard.
package crane
