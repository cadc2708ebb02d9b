// Package engine provides a public API for splitting JSONL datasets
// programmatically. It allows other Go programs to produce training,
// validation and test files without going through the jsonl-split CLI.
//
// The main functionality includes:
//   - Splitting a line-delimited JSON file into three output files
//   - Configuring ratios, seed and random source through functional options
//   - Monitoring split progress through event listeners
//
// Example usage:
//
//	outputs := engine.Outputs{
//		Train: "train.jsonl",
//		Valid: "valid.jsonl",
//		Test:  "test.jsonl",
//	}
//
//	// Reproducible 80/10/10 split
//	result, err := engine.Split("data.jsonl", outputs,
//		engine.WithRatios(0.8, 0.1),
//		engine.WithSeed(42),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.TotalRecords)
package engine

import (
	"context"
	"io"

	"github.com/lacquerai/jsonl-split/internal/dataset"
	"github.com/lacquerai/jsonl-split/internal/engine"
	"github.com/lacquerai/jsonl-split/internal/execcontext"
	"github.com/lacquerai/jsonl-split/pkg/events"
)

// Outputs names the destination file of each subset.
type Outputs = engine.Outputs

// Result describes a completed split: the run ID, the ratios and seed that
// were used, and how many records went to each output file.
type Result = engine.Result

// Shuffler permutes n elements by calling swap. *math/rand/v2.Rand satisfies
// it, so any seeded generator can be supplied through WithShuffler.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type settings struct {
	ctx      context.Context
	ratios   dataset.Ratios
	seed     *int64
	shuffler Shuffler
	listener events.Listener
	dryRun   bool
}

// Option represents a functional option for configuring a split.
//
// Options follow the functional options pattern, allowing for flexible
// and extensible configuration of the split without changing the
// signature of Split.
type Option func(*settings)

// WithSeed makes the shuffle reproducible. Two splits of the same input with
// the same seed and ratios produce byte-identical output files.
//
// Without a seed every call produces a different split.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.seed = &seed
	}
}

// WithRatios sets the proportion of records assigned to the training and
// validation subsets. The test subset receives whatever is left.
//
// The defaults are 0.8 and 0.15. Ratios are not validated: counts are
// truncated and clamped to the number of records, so a sum above 1 simply
// leaves the later subsets with fewer records.
func WithRatios(train, valid float64) Option {
	return func(s *settings) {
		s.ratios = dataset.Ratios{Train: train, Valid: valid}
	}
}

// WithShuffler replaces the random source used to shuffle the records. It
// takes precedence over WithSeed.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	result, err := engine.Split("data.jsonl", outputs, engine.WithShuffler(rng))
func WithShuffler(shuffler Shuffler) Option {
	return func(s *settings) {
		s.shuffler = shuffler
	}
}

// WithProgressListener creates an Option that receives split events as they
// happen: start, records loaded, records shuffled, each subset written, and
// completion or failure.
//
// Events are delivered synchronously on the calling goroutine.
//
// Example:
//
//	listener := events.ListenerFunc(func(e events.SplitEvent) {
//		fmt.Printf("%s %s\n", e.Type, e.Path)
//	})
//	result, err := engine.Split("data.jsonl", outputs, engine.WithProgressListener(listener))
func WithProgressListener(listener events.Listener) Option {
	return func(s *settings) {
		s.listener = listener
	}
}

// WithContext makes the split stop before the next phase once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(s *settings) {
		s.ctx = ctx
	}
}

// WithDryRun computes the split without writing any output file. The
// returned Result still reports the per-subset counts.
func WithDryRun() Option {
	return func(s *settings) {
		s.dryRun = true
	}
}

// Split reads every line of input, shuffles the lines, and writes them to
// the training, validation and test files named by outputs, in that order.
//
// Each line is an opaque record: blank lines count, JSON is not parsed, and
// leading and trailing whitespace is stripped on output. With n records the
// training file receives floor(n*train) records, the validation file
// floor(n*valid), and the test file the rest.
//
// Parameters:
//   - input: Path to the line-delimited JSON file
//   - outputs: Destination paths of the three subsets
//   - options: Variadic functional options for ratios, seed and progress
//
// Returns:
//   - *Result: The run summary, including the number of records per subset
//   - error: A file-access error wrapping the underlying *fs.PathError, or a
//     context error if the split was interrupted
//
// Nothing is written when the input cannot be read. A failure while writing
// leaves the files written before it in place.
func Split(input string, outputs Outputs, options ...Option) (*Result, error) {
	s := &settings{
		ctx:    context.Background(),
		ratios: dataset.DefaultRatios(),
	}
	for _, option := range options {
		option(s)
	}

	var runnerOptions []engine.RunnerOption
	if s.shuffler != nil {
		shuffler := s.shuffler
		runnerOptions = append(runnerOptions, engine.WithShufflerFunc(func(*int64) dataset.Shuffler {
			return shuffler
		}))
	}

	runner := engine.NewRunner(s.listener, runnerOptions...)

	return runner.Run(execcontext.RunContext{
		Context: s.ctx,
		StdOut:  io.Discard,
		StdErr:  io.Discard,
	}, engine.Request{
		Input:   input,
		Outputs: outputs,
		Ratios:  s.ratios,
		Seed:    s.seed,
		DryRun:  s.dryRun,
	})
}
