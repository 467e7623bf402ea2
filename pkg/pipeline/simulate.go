package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/cratetower/pkg/crane"
	"github.com/matzehuels/cratetower/pkg/observability"
	"github.com/matzehuels/cratetower/pkg/puzzle"
)

// Simulate replays the puzzle's instructions on a copy of its yard. The
// puzzle itself is left untouched. Extra crane options, such as observers,
// are passed through to the simulator.
func Simulate(ctx context.Context, pz *puzzle.Puzzle, opts Options, craneOpts ...crane.Option) (*crane.Simulator, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnSimulateStart(ctx, opts.RunID, opts.Mode, len(pz.Instructions))
	start := time.Now()

	sim := crane.New(pz.Yard.Clone(), opts.CraneMode(), craneOpts...)
	err := sim.Run(pz.Instructions)
	if err == nil {
		err = ctx.Err()
	}

	hooks.OnSimulateComplete(ctx, opts.RunID, opts.Mode, sim.Moved(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return sim, nil
}
