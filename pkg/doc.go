// Package pkg provides the core libraries for Cratetower.
//
// # Overview
//
// Cratetower reads a drawing of crate stacks followed by a list of move
// instructions, replays the moves with one of two crane models, and reports
// the crate left on top of each stack. The pkg directory is organized into
// three areas:
//
//  1. Domain logic ([yard], [instruction], [diagram], [puzzle], [crane])
//  2. Orchestration and output ([pipeline], [report])
//  3. Infrastructure ([cache], [observability], [errors], [buildinfo])
//
// # Architecture
//
// The data flow through Cratetower:
//
//	puzzle text
//	     ↓
//	[puzzle] package (split into diagram and move list)
//	     ↓
//	[diagram] + [instruction] packages (parse both parts)
//	     ↓
//	[crane] package (replay the moves on a [yard])
//	     ↓
//	[report] package (tops, JSON, YAML)
//
// [pipeline] runs these steps for the CLI and the HTTP server alike, with
// results cached in [cache] and reported through [observability] hooks.
//
// # Quick Start
//
//	opts := pipeline.Options{Input: data, Mode: "block"}
//	res, err := pipeline.NewRunner(nil, nil, nil).Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report.Tops)
//
// # Testing
//
//	go test ./pkg/...
//
// [yard]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/yard
// [instruction]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/instruction
// [diagram]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/diagram
// [puzzle]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/puzzle
// [crane]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/crane
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/pipeline
// [report]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/report
// [cache]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cratetower/pkg/buildinfo
package pkg
