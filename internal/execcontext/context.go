package execcontext

import (
	"context"
	"io"
)

// RunContext carries the context and output streams of one command invocation.
type RunContext struct {
	Context context.Context
	StdOut  io.Writer
	StdErr  io.Writer
}

// Background returns a RunContext that discards all output.
func Background() RunContext {
	return RunContext{
		Context: context.Background(),
		StdOut:  io.Discard,
		StdErr:  io.Discard,
	}
}

// Err reports whether the underlying context has been cancelled.
func (rc RunContext) Err() error {
	if rc.Context == nil {
		return nil
	}
	return rc.Context.Err()
}
