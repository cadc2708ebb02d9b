package dataset

import "fmt"

// FileOp names the file operation that failed.
type FileOp string

const (
	OpRead  FileOp = "read"
	OpWrite FileOp = "write"
)

// FileError reports a failure to read the input or write one of the outputs.
// It unwraps to the underlying OS error, so errors.Is(err, fs.ErrNotExist)
// and similar checks work on it.
type FileError struct {
	Op     FileOp
	Subset Subset
	Path   string
	Err    error
}

func (e *FileError) Error() string {
	switch {
	case e.Op == OpWrite && e.Subset != "":
		return fmt.Sprintf("failed to write %s split: %v", e.Subset, e.Err)
	case e.Op == OpRead:
		return fmt.Sprintf("failed to read input: %v", e.Err)
	default:
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}
