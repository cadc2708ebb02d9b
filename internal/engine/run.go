package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lacquerai/jsonl-split/internal/dataset"
	"github.com/lacquerai/jsonl-split/internal/execcontext"
	"github.com/lacquerai/jsonl-split/pkg/events"
	"github.com/rs/zerolog/log"
)

// Outputs names the destination file of each subset.
type Outputs struct {
	Train string `json:"train" yaml:"train"`
	Valid string `json:"valid" yaml:"valid"`
	Test  string `json:"test" yaml:"test"`
}

// Path returns the destination of subset s.
func (o Outputs) Path(s dataset.Subset) string {
	switch s {
	case dataset.Train:
		return o.Train
	case dataset.Valid:
		return o.Valid
	case dataset.Test:
		return o.Test
	default:
		return ""
	}
}

// Request describes a single split run.
type Request struct {
	Input   string
	Outputs Outputs
	Ratios  dataset.Ratios
	// Seed makes the shuffle reproducible when non-nil.
	Seed *int64
	// DryRun computes the split without writing any output file.
	DryRun bool
}

// SubsetResult reports where one subset went and how many records it holds.
type SubsetResult struct {
	Subset  dataset.Subset `json:"subset" yaml:"subset"`
	Path    string         `json:"path" yaml:"path"`
	Records int            `json:"records" yaml:"records"`
}

// Result is the outcome of a completed split run.
type Result struct {
	RunID        string         `json:"run_id" yaml:"run_id"`
	Input        string         `json:"input" yaml:"input"`
	Seed         *int64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	Ratios       dataset.Ratios `json:"ratios" yaml:"ratios"`
	TotalRecords int            `json:"total_records" yaml:"total_records"`
	Subsets      []SubsetResult `json:"subsets" yaml:"subsets"`
	DryRun       bool           `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	StartTime    time.Time      `json:"start_time" yaml:"start_time"`
	EndTime      time.Time      `json:"end_time" yaml:"end_time"`
	Duration     time.Duration  `json:"duration" yaml:"duration"`
}

// Counts returns the number of records per subset.
func (r *Result) Counts() dataset.Counts {
	var c dataset.Counts
	for _, s := range r.Subsets {
		switch s.Subset {
		case dataset.Train:
			c.Train = s.Records
		case dataset.Valid:
			c.Valid = s.Records
		case dataset.Test:
			c.Test = s.Records
		}
	}
	return c
}

// ShufflerFunc builds the random source for one run from its optional seed.
type ShufflerFunc func(seed *int64) dataset.Shuffler

// DefaultShufflerFunc returns a PCG-backed source from math/rand/v2.
func DefaultShufflerFunc(seed *int64) dataset.Shuffler {
	return dataset.NewShuffler(seed)
}

// Runner executes split requests and reports progress to a listener.
type Runner struct {
	listener    events.Listener
	newShuffler ShufflerFunc
	newRunID    func() string
	now         func() time.Time
}

// RunnerOption is a function that can be used to configure a Runner.
type RunnerOption func(*Runner)

// WithShufflerFunc replaces the random source used for each run.
func WithShufflerFunc(fn ShufflerFunc) RunnerOption {
	return func(r *Runner) {
		r.newShuffler = fn
	}
}

// WithRunIDFunc replaces the run ID generator. In general this is only used
// for testing.
func WithRunIDFunc(fn func() string) RunnerOption {
	return func(r *Runner) {
		r.newRunID = fn
	}
}

// NewRunner creates a runner that sends events to listener. A nil listener
// discards them.
func NewRunner(listener events.Listener, options ...RunnerOption) *Runner {
	if listener == nil {
		listener = events.NoopListener{}
	}

	r := &Runner{
		listener:    listener,
		newShuffler: DefaultShufflerFunc,
		newRunID:    uuid.NewString,
		now:         time.Now,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// SetListener replaces the progress listener.
func (r *Runner) SetListener(listener events.Listener) {
	if listener == nil {
		listener = events.NoopListener{}
	}
	r.listener = listener
}

// Run reads the input, shuffles it, and writes the three subsets in the order
// train, valid, test. Nothing is written if the input cannot be read. A write
// failure leaves earlier subsets in place.
func (r *Runner) Run(ctx execcontext.RunContext, req Request) (*Result, error) {
	result := &Result{
		RunID:     r.newRunID(),
		Input:     req.Input,
		Seed:      req.Seed,
		Ratios:    req.Ratios,
		DryRun:    req.DryRun,
		StartTime: r.now(),
	}
	logger := log.With().Str("run_id", result.RunID).Logger()

	for _, warning := range req.Ratios.Warnings() {
		logger.Warn().
			Float64("train_ratio", req.Ratios.Train).
			Float64("valid_ratio", req.Ratios.Valid).
			Msg(warning)
	}

	r.emit(result, events.SplitEvent{Type: events.EventSplitStarted, Path: req.Input})

	records, err := dataset.ReadFile(req.Input)
	if err != nil {
		return nil, r.fail(result, err)
	}
	result.TotalRecords = len(records)
	r.emit(result, events.SplitEvent{Type: events.EventRecordsLoaded, Path: req.Input, Records: len(records)})

	logger.Debug().
		Str("input", req.Input).
		Int("records", len(records)).
		Msg("Loaded input records")

	if err := ctx.Err(); err != nil {
		return nil, r.fail(result, err)
	}

	partition := dataset.ShuffleAndCut(records, req.Ratios, r.newShuffler(req.Seed))
	r.emit(result, events.SplitEvent{Type: events.EventRecordsShuffled, Records: len(records)})

	for _, subset := range dataset.Subsets {
		path := req.Outputs.Path(subset)
		subsetRecords := partition.Get(subset)

		if !req.DryRun {
			if err := ctx.Err(); err != nil {
				return nil, r.fail(result, err)
			}
			if err := dataset.WriteFile(path, subset, subsetRecords); err != nil {
				return nil, r.fail(result, err)
			}
			r.emit(result, events.SplitEvent{
				Type:    events.EventSubsetWritten,
				Subset:  string(subset),
				Path:    path,
				Records: len(subsetRecords),
			})
		}

		result.Subsets = append(result.Subsets, SubsetResult{
			Subset:  subset,
			Path:    path,
			Records: len(subsetRecords),
		})
	}

	result.EndTime = r.now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	r.emit(result, events.SplitEvent{Type: events.EventSplitCompleted, Records: len(records), Duration: result.Duration})

	counts := result.Counts()
	event := logger.Info().
		Str("input", req.Input).
		Int("records", result.TotalRecords).
		Int("train", counts.Train).
		Int("valid", counts.Valid).
		Int("test", counts.Test).
		Bool("dry_run", req.DryRun).
		Dur("duration", result.Duration)
	if req.Seed != nil {
		event = event.Int64("seed", *req.Seed)
	}
	event.Msg("Split completed")

	return result, nil
}

func (r *Runner) fail(result *Result, err error) error {
	duration := r.now().Sub(result.StartTime)
	r.emit(result, events.SplitEvent{Type: events.EventSplitFailed, Error: err.Error(), Duration: duration})

	log.Error().
		Err(err).
		Str("run_id", result.RunID).
		Dur("duration", duration).
		Msg("Split failed")

	var fileErr *dataset.FileError
	if errors.As(err, &fileErr) {
		return err
	}
	return fmt.Errorf("split interrupted: %w", err)
}

func (r *Runner) emit(result *Result, event events.SplitEvent) {
	event.RunID = result.RunID
	event.Timestamp = r.now()
	r.listener.HandleEvent(event)
}
