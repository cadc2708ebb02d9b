// Package dataset holds the record model and the shuffle-and-slice logic that
// partitions a line-delimited dataset into training, validation, and test
// subsets.
//
// Records are opaque lines of text. Nothing in this package parses JSON; a
// file of arbitrary lines splits the same way.
package dataset
