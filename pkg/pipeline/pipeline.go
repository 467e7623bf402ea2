// Package pipeline provides the parse → simulate pipeline for cratetower.
//
// This package implements the complete run that the CLI and the HTTP API
// share. By centralizing this logic, both entry points validate options,
// cache results, and emit metrics the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: Split the input and parse the diagram and instructions
//  2. Simulate: Replay the instructions with the chosen crane mode
//
// Each stage can be run on its own ([Parse], [Simulate]) or through a
// [Runner], which adds result caching and logging.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: data,
//	    Mode:  "block",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.Tops)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cratetower/pkg/cache"
	"github.com/matzehuels/cratetower/pkg/crane"
	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/instruction"
	"github.com/matzehuels/cratetower/pkg/report"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMode is the crane mode used when none is configured.
	DefaultMode = "single"

	// DefaultCommentMarker starts comment lines in the instruction section.
	DefaultCommentMarker = instruction.DefaultCommentMarker
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Mode          string `json:"mode,omitempty"`
	CommentMarker string `json:"comment_marker,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Input  []byte      `json:"-"`
	RunID  string      `json:"-"`
	Logger *log.Logger `json:"-"`

	mode crane.Mode
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the input and settings and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errs.ValidateInput(o.Input); err != nil {
		return err
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	mode, err := crane.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = mode
	o.Mode = mode.String()

	if o.CommentMarker == "" {
		o.CommentMarker = DefaultCommentMarker
	}
	if err := errs.ValidateCommentMarker(o.CommentMarker); err != nil {
		return err
	}

	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CraneMode returns the parsed mode. It is only meaningful after
// ValidateAndSetDefaults succeeded.
func (o *Options) CraneMode() crane.Mode {
	return o.mode
}

// ResultKeyOpts returns cache key options for simulation results.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Mode:          o.Mode,
		CommentMarker: o.CommentMarker,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Report is the final yard for Execute, the initial yard for Inspect.
	Report *report.Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputBytes   int           `json:"input_bytes"`
	Stacks       int           `json:"stacks"`
	Instructions int           `json:"instructions"`
	Moved        int           `json:"moved"`
	ParseTime    time.Duration `json:"parse_time"`
	SimulateTime time.Duration `json:"simulate_time"`
}

// CacheInfo tracks cache hits for a run.
type CacheInfo struct {
	Hit bool // Whether the report came from cache
	Key string
}
