// Package events provides types and interfaces for observing the progress of
// a dataset split. A split emits an event when it starts, after the input has
// been loaded and shuffled, after each subset file is written, and when it
// finishes or fails.
//
// Events are delivered synchronously on the splitting goroutine, in order. A
// listener that blocks stalls the split.
package events

import (
	"time"
)

// EventType identifies the phase of a split that an event reports on.
type EventType string

const (
	// EventSplitStarted is emitted before the input file is opened.
	EventSplitStarted EventType = "split_started"

	// EventRecordsLoaded is emitted once the input has been read into memory.
	EventRecordsLoaded EventType = "records_loaded"

	// EventRecordsShuffled is emitted after the shuffle, once the cut points are known.
	EventRecordsShuffled EventType = "records_shuffled"

	// EventSubsetWritten is emitted after one output file has been written and closed.
	EventSubsetWritten EventType = "subset_written"

	// EventSplitCompleted is emitted after all three output files exist.
	EventSplitCompleted EventType = "split_completed"

	// EventSplitFailed is emitted when the split stops on an error.
	EventSplitFailed EventType = "split_failed"
)

// SplitEvent describes one step of a split run.
type SplitEvent struct {
	// Type specifies the kind of event.
	Type EventType `json:"type"`
	// Timestamp indicates when the event occurred.
	Timestamp time.Time `json:"timestamp"`
	// RunID is the unique identifier of the split run.
	RunID string `json:"run_id"`
	// Subset is "train", "valid" or "test" for subset events.
	Subset string `json:"subset,omitempty"`
	// Path is the file the event concerns, if any.
	Path string `json:"path,omitempty"`
	// Records is the number of records involved.
	Records int `json:"records,omitempty"`
	// Duration is set on completion events.
	Duration time.Duration `json:"duration,omitempty"`
	// Error contains the error message for EventSplitFailed.
	Error string `json:"error,omitempty"`
}

// Listener receives split events as they happen.
type Listener interface {
	HandleEvent(event SplitEvent)
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(event SplitEvent)

// HandleEvent calls f(event).
func (f ListenerFunc) HandleEvent(event SplitEvent) {
	f(event)
}

// NoopListener is a Listener that ignores every event.
type NoopListener struct{}

// HandleEvent implements Listener.
func (NoopListener) HandleEvent(SplitEvent) {}
