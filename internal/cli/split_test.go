package cli

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/lacquerai/jsonl-split/internal/dataset"
	"github.com/lacquerai/jsonl-split/internal/engine"
	"github.com/lacquerai/jsonl-split/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func splitArgs(extra ...string) []string {
	args := []string{
		"--input", "input.jsonl",
		"--train", "train.jsonl",
		"--valid", "valid.jsonl",
		"--test", "test.jsonl",
		"--log-level", "disabled",
	}
	return append(args, extra...)
}

func TestSplit_Default(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(100))

	stdout, _, err := executeCommand(t, splitArgs()...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Split 100 records into train=80 valid=15 test=5")

	train := testhelper.ReadLines(t, filepath.Join(dir, "train.jsonl"))
	valid := testhelper.ReadLines(t, filepath.Join(dir, "valid.jsonl"))
	test := testhelper.ReadLines(t, filepath.Join(dir, "test.jsonl"))
	assert.Len(t, train, 80)
	assert.Len(t, valid, 15)
	assert.Len(t, test, 5)

	all := append(append(append([]string{}, train...), valid...), test...)
	assert.ElementsMatch(t, testhelper.NumberedLines(100), all)
}

func TestSplit_SeedIsReproducible(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))

	read := func() [3]string {
		var out [3]string
		for i, name := range []string{"train.jsonl", "valid.jsonl", "test.jsonl"} {
			data, err := os.ReadFile(filepath.Join(dir, name))
			require.NoError(t, err)
			out[i] = string(data)
		}
		return out
	}

	_, _, err := executeCommand(t, splitArgs("--seed", "42", "--train-ratio", "0.8", "--valid-ratio", "0.1")...)
	require.NoError(t, err)
	first := read()

	_, _, err = executeCommand(t, splitArgs("--seed", "42", "--train-ratio", "0.8", "--valid-ratio", "0.1")...)
	require.NoError(t, err)
	second := read()

	assert.Equal(t, first, second)
	assert.Equal(t, 8, strings.Count(first[0], "\n"))
	assert.Equal(t, 1, strings.Count(first[1], "\n"))
	assert.Equal(t, 1, strings.Count(first[2], "\n"))
}

func TestSplit_SeedFromEnvironment(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	t.Setenv("JSONL_SPLIT_SEED", "7")

	stdout, _, err := executeCommand(t, splitArgs("--output", "json")...)
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.NotNil(t, result.Seed)
	assert.Equal(t, int64(7), *result.Seed)
}

func TestSplit_RatiosFromConfigFile(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	writeProjectConfig(t, dir, "train_ratio: 0.5\nvalid_ratio: 0.3\nseed: 3\n")

	stdout, _, err := executeCommand(t, splitArgs("--output", "yaml")...)
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, dataset.Counts{Train: 5, Valid: 3, Test: 2}, result.Counts())
	assert.Equal(t, dataset.Ratios{Train: 0.5, Valid: 0.3}, result.Ratios)
}

func TestSplit_FlagsOverrideConfigFile(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	writeProjectConfig(t, dir, "train_ratio: 0.5\nvalid_ratio: 0.3\n")

	stdout, _, err := executeCommand(t, splitArgs("--train-ratio", "1.0", "--valid-ratio", "0", "--output", "json")...)
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, dataset.Counts{Train: 10}, result.Counts())
	assert.Nil(t, result.Seed)
}

func TestSplit_IgnoresDatasetConfigJSON(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	testhelper.WriteFile(t, dir, "config.json", `{"train_ratio": 0.1, "seed": 5}`)

	stdout, _, err := executeCommand(t, splitArgs("--output", "json")...)
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Nil(t, result.Seed)
	assert.Equal(t, dataset.DefaultRatios(), result.Ratios)
}

func TestSplit_EmptyInput(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteFile(t, dir, "input.jsonl", "")

	_, _, err := executeCommand(t, splitArgs()...)
	require.NoError(t, err)

	for _, name := range []string{"train.jsonl", "valid.jsonl", "test.jsonl"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	}
}

func TestSplit_MissingInput(t *testing.T) {
	dir := isolate(t)

	_, _, err := executeCommand(t, splitArgs()...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read input")

	_, statErr := os.Stat(filepath.Join(dir, "train.jsonl"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplit_UnwritableOutput(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(5))

	args := splitArgs()
	for i, arg := range args {
		if arg == "valid.jsonl" {
			args[i] = filepath.Join("missing", "valid.jsonl")
		}
	}

	_, _, err := executeCommand(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write valid split")

	_, statErr := os.Stat(filepath.Join(dir, "train.jsonl"))
	assert.NoError(t, statErr, "train split is written before the failure")
}

func TestSplit_RatioWarningIsLogged(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))

	args := []string{
		"--input", "input.jsonl",
		"--train", "train.jsonl",
		"--valid", "valid.jsonl",
		"--test", "test.jsonl",
		"--train-ratio", "0.9",
		"--valid-ratio", "0.5",
	}
	stdout, stderr, err := executeCommand(t, args...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "WRN")
	assert.Contains(t, stdout, "train=9 valid=1 test=0")
}

func TestSplit_DryRun(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))

	stdout, _, err := executeCommand(t, splitArgs("--dry-run", "--verbose", "--seed", "1",
		"--train-ratio", "0.8", "--valid-ratio", "0.1")...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Dry run: Split 10 records into train=8 valid=1 test=1, no files written")
	assert.Contains(t, stdout, "SUBSET")
	assert.Contains(t, stdout, "train.jsonl")
	assert.Contains(t, stdout, "╭")

	for _, name := range []string{"train.jsonl", "valid.jsonl", "test.jsonl"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(statErr), name)
	}
}

func TestSplit_Quiet(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(4))

	stdout, stderr, err := executeCommand(t, splitArgs("--quiet")...)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestSplit_InvalidOutputFormat(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(4))

	_, _, err := executeCommand(t, splitArgs("--output", "xml")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestSplit_MetricsFile(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(20))

	_, _, err := executeCommand(t, splitArgs("--metrics-file", "split.prom")...)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "split.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `jsonl_split_records{subset="train"} 16`)
	assert.Contains(t, string(data), `jsonl_split_records{subset="valid"} 3`)
	assert.Contains(t, string(data), `jsonl_split_records{subset="test"} 1`)
	assert.Contains(t, string(data), "jsonl_split_input_records 20")
}

func TestSplit_Progress(t *testing.T) {
	dir := isolate(t)
	testhelper.WriteLines(t, dir, "input.jsonl", testhelper.NumberedLines(10))
	t.Setenv("JSONL_SPLIT_TEST", "true")

	_, stderr, err := executeCommand(t, splitArgs("--seed", "42", "--train-ratio", "0.8", "--valid-ratio", "0.1")...)
	require.NoError(t, err)

	snaps.MatchSnapshot(t, strings.TrimSpace(stderr))
}
