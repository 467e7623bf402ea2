package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/cratetower/pkg/observability"
	"github.com/matzehuels/cratetower/pkg/puzzle"
)

// Parse splits and parses opts.Input.
func Parse(ctx context.Context, opts Options) (*puzzle.Puzzle, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.RunID, len(opts.Input))
	start := time.Now()

	pz, err := puzzle.Parse(ctx, bytes.NewReader(opts.Input), puzzle.Options{
		CommentMarker: opts.CommentMarker,
	})

	stacks, moves := 0, 0
	if pz != nil {
		stacks, moves = pz.Yard.Size(), len(pz.Instructions)
	}
	hooks.OnParseComplete(ctx, opts.RunID, stacks, moves, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("parsed puzzle",
		"run_id", opts.RunID,
		"stacks", stacks,
		"crates", crateCount(pz),
		"instructions", moves)
	return pz, nil
}

func crateCount(pz *puzzle.Puzzle) int {
	n := 0
	for _, id := range pz.Yard.IDs() {
		n += pz.Yard.Len(id)
	}
	return n
}
