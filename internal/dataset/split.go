package dataset

import (
	"fmt"
	"math"
)

// Subset identifies one of the three output partitions.
type Subset string

const (
	Train Subset = "train"
	Valid Subset = "valid"
	Test  Subset = "test"
)

// Subsets lists the partitions in the order they are written.
var Subsets = []Subset{Train, Valid, Test}

// Ratios are the requested training and validation proportions. The test
// proportion is whatever remains.
type Ratios struct {
	Train float64 `json:"train" yaml:"train"`
	Valid float64 `json:"valid" yaml:"valid"`
}

// DefaultRatios returns the 0.8 / 0.15 split.
func DefaultRatios() Ratios {
	return Ratios{Train: 0.8, Valid: 0.15}
}

// Test returns the implied test proportion. It is negative when the other two
// sum past 1.
func (r Ratios) Test() float64 {
	return 1 - r.Train - r.Valid
}

// Warnings describes ratio combinations that still split but probably not the
// way the caller meant. Nothing is rejected.
func (r Ratios) Warnings() []string {
	var warnings []string
	for _, c := range []struct {
		name  string
		value float64
	}{{"train ratio", r.Train}, {"valid ratio", r.Valid}} {
		if math.IsNaN(c.value) || c.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s %v is not a proportion; it selects no records", c.name, c.value))
		}
	}
	if sum := r.Train + r.Valid; sum > 1 {
		warnings = append(warnings, fmt.Sprintf("train and valid ratios sum to %v; later subsets receive only what is left", sum))
	}
	return warnings
}

// Counts holds the number of records that land in each subset.
type Counts struct {
	Train int `json:"train" yaml:"train"`
	Valid int `json:"valid" yaml:"valid"`
	Test  int `json:"test" yaml:"test"`
}

// Total returns the number of records across all subsets.
func (c Counts) Total() int {
	return c.Train + c.Valid + c.Test
}

// Counts computes subset sizes for n records. Each count is floor(n*ratio),
// truncated rather than rounded; the cut points are clamped to [0, n] and the
// test subset takes the remainder.
func (r Ratios) Counts(n int) Counts {
	trainEnd := proportion(n, r.Train)
	validEnd := min(trainEnd+proportion(n, r.Valid), n)
	return Counts{
		Train: trainEnd,
		Valid: validEnd - trainEnd,
		Test:  n - validEnd,
	}
}

func proportion(n int, ratio float64) int {
	v := float64(n) * ratio
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(n):
		return n
	default:
		return int(v)
	}
}

// Partition is the three-way split of a record sequence. The slices share
// backing storage with the sequence they were cut from.
type Partition struct {
	Train []Record
	Valid []Record
	Test  []Record
}

// Cut slices records into contiguous training, validation, and test ranges
// without reordering them.
func Cut(records []Record, ratios Ratios) Partition {
	c := ratios.Counts(len(records))
	validEnd := c.Train + c.Valid
	return Partition{
		Train: records[:c.Train:c.Train],
		Valid: records[c.Train:validEnd:validEnd],
		Test:  records[validEnd:],
	}
}

// Get returns the records assigned to subset s.
func (p Partition) Get(s Subset) []Record {
	switch s {
	case Train:
		return p.Train
	case Valid:
		return p.Valid
	case Test:
		return p.Test
	default:
		return nil
	}
}

// Counts reports the size of each subset.
func (p Partition) Counts() Counts {
	return Counts{Train: len(p.Train), Valid: len(p.Valid), Test: len(p.Test)}
}
