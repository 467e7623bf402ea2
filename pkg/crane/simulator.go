package crane

import (
	"slices"

	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/instruction"
	"github.com/matzehuels/cratetower/pkg/yard"
)

// Observer is called after each instruction has been applied. step is the
// 1-based count of applied instructions. The yard must not be modified.
type Observer func(step int, in instruction.Instruction, y *yard.Yard)

// Option configures a Simulator.
type Option func(*Simulator)

// WithObserver registers fn to be called after every applied instruction.
func WithObserver(fn Observer) Option {
	return func(s *Simulator) {
		s.observers = append(s.observers, fn)
	}
}

// Simulator applies instructions to a yard with a fixed move mode.
// It is not safe for concurrent use.
type Simulator struct {
	yard      *yard.Yard
	mode      Mode
	observers []Observer
	applied   int
	moved     int
}

// New creates a simulator that mutates y in place.
func New(y *yard.Yard, mode Mode, opts ...Option) *Simulator {
	s := &Simulator{yard: y, mode: mode}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Yard returns the yard being simulated.
func (s *Simulator) Yard() *yard.Yard { return s.yard }

// Mode returns the move mode.
func (s *Simulator) Mode() Mode { return s.mode }

// Applied returns the number of instructions applied so far.
func (s *Simulator) Applied() int { return s.applied }

// Moved returns the number of crates moved so far. Self-moves count zero.
func (s *Simulator) Moved() int { return s.moved }

// Apply executes one instruction. The instruction is validated against the
// yard before anything is popped, so a failure leaves the yard unchanged.
func (s *Simulator) Apply(in instruction.Instruction) error {
	if !s.yard.Has(in.Source) {
		return errs.New(errs.ErrCodeUnknownStack, "%s: source stack %d is not declared", in, in.Source)
	}
	if !s.yard.Has(in.Destination) {
		return errs.New(errs.ErrCodeUnknownStack, "%s: destination stack %d is not declared", in, in.Destination)
	}
	if in.Quantity <= 0 {
		return errs.New(errs.ErrCodeZeroQuantity, "%s: quantity must be positive", in)
	}
	if have := s.yard.Len(in.Source); have < in.Quantity {
		return errs.New(errs.ErrCodeInsufficientItems,
			"%s: stack %d holds %d crates", in, in.Source, have)
	}

	if in.Source != in.Destination {
		crates, err := s.yard.PopN(in.Source, in.Quantity)
		if err != nil {
			return err
		}
		if s.mode == Block {
			slices.Reverse(crates)
		}
		if err := s.yard.PushAll(in.Destination, crates); err != nil {
			return err
		}
		s.moved += in.Quantity
	}

	s.applied++
	for _, fn := range s.observers {
		fn(s.applied, in, s.yard)
	}
	return nil
}

// Run applies instructions in order and stops at the first error. The error
// carries the failing instruction's line and index.
func (s *Simulator) Run(instructions []instruction.Instruction) error {
	for i, in := range instructions {
		if err := s.Apply(in); err != nil {
			index := in.Index
			if index == 0 {
				index = i + 1
			}
			return errs.At(err, in.Line, index)
		}
	}
	return nil
}
