package engine

import (
	"fmt"
	"path/filepath"

	"github.com/lacquerai/jsonl-split/internal/style"
	"github.com/lacquerai/jsonl-split/pkg/events"
)

// CLIProgressTracker drives a spinner from split events.
type CLIProgressTracker struct {
	spinner style.Spinner
}

// NewProgressTracker creates a tracker that animates s.
func NewProgressTracker(s style.Spinner) *CLIProgressTracker {
	return &CLIProgressTracker{spinner: s}
}

// HandleEvent implements events.Listener.
func (pt *CLIProgressTracker) HandleEvent(event events.SplitEvent) {
	switch event.Type {
	case events.EventSplitStarted:
		pt.spinner.SetSuffix(" Reading " + filepath.Base(event.Path))
		pt.spinner.Start()
	case events.EventRecordsLoaded:
		pt.spinner.SetSuffix(" Shuffling " + pluralize(event.Records, "record"))
	case events.EventRecordsShuffled:
		pt.spinner.SetSuffix(" Writing splits")
	case events.EventSubsetWritten:
		pt.spinner.SetSuffix(fmt.Sprintf(" Wrote %s (%s)", filepath.Base(event.Path), pluralize(event.Records, "record")))
	case events.EventSplitCompleted, events.EventSplitFailed:
		pt.spinner.Stop()
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
