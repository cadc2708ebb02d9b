package engine

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/lacquerai/jsonl-split/internal/dataset"
	"github.com/lacquerai/jsonl-split/internal/testhelper"
	"github.com/lacquerai/jsonl-split/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputsIn(dir string) Outputs {
	return Outputs{
		Train: filepath.Join(dir, "train.jsonl"),
		Valid: filepath.Join(dir, "valid.jsonl"),
		Test:  filepath.Join(dir, "test.jsonl"),
	}
}

func TestSplit_Defaults(t *testing.T) {
	dir := t.TempDir()
	input := testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(100))

	result, err := Split(input, outputsIn(dir))
	require.NoError(t, err)

	assert.Equal(t, 100, result.TotalRecords)
	assert.Equal(t, dataset.Counts{Train: 80, Valid: 15, Test: 5}, result.Counts())
	assert.Nil(t, result.Seed)
	assert.NotEmpty(t, result.RunID)
}

func TestSplit_WithSeedAndRatios(t *testing.T) {
	dir := t.TempDir()
	input := testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	outputs := outputsIn(dir)

	_, err := Split(input, outputs, WithSeed(42), WithRatios(0.8, 0.1))
	require.NoError(t, err)
	first := testhelper.ReadLines(t, outputs.Train)

	result, err := Split(input, outputs, WithSeed(42), WithRatios(0.8, 0.1))
	require.NoError(t, err)
	second := testhelper.ReadLines(t, outputs.Train)

	assert.Equal(t, first, second)
	assert.Equal(t, dataset.Counts{Train: 8, Valid: 1, Test: 1}, result.Counts())
	require.NotNil(t, result.Seed)
	assert.Equal(t, int64(42), *result.Seed)
}

func TestSplit_WithShuffler(t *testing.T) {
	dir := t.TempDir()
	input := testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(20))
	outputs := outputsIn(dir)

	_, err := Split(input, outputs, WithShuffler(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	first := testhelper.ReadLines(t, outputs.Train)

	_, err = Split(input, outputs, WithShuffler(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	assert.Equal(t, first, testhelper.ReadLines(t, outputs.Train))
}

func TestSplit_WithProgressListener(t *testing.T) {
	dir := t.TempDir()
	input := testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(5))

	var types []events.EventType
	listener := events.ListenerFunc(func(e events.SplitEvent) {
		types = append(types, e.Type)
	})

	_, err := Split(input, outputsIn(dir), WithProgressListener(listener))
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{
		events.EventSplitStarted,
		events.EventRecordsLoaded,
		events.EventRecordsShuffled,
		events.EventSubsetWritten,
		events.EventSubsetWritten,
		events.EventSubsetWritten,
		events.EventSplitCompleted,
	}, types)
}

func TestSplit_WithDryRun(t *testing.T) {
	dir := t.TempDir()
	input := testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	outputs := outputsIn(dir)

	result, err := Split(input, outputs, WithDryRun())
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 10, result.Counts().Total())

	_, statErr := os.Stat(outputs.Train)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplit_WithCancelledContext(t *testing.T) {
	dir := t.TempDir()
	input := testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	outputs := outputsIn(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Split(input, outputs, WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(outputs.Train)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplit_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := Split(filepath.Join(dir, "nope.jsonl"), outputsIn(dir))
	require.ErrorIs(t, err, os.ErrNotExist)

	var fileErr *dataset.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, dataset.OpRead, fileErr.Op)
}
