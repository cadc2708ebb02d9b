package dataset

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"
)

// Record is one line of the input file exactly as it was read, including any
// trailing newline or whitespace.
type Record string

// Clean returns the record with leading and trailing whitespace removed, the
// form in which it is written to an output file.
func (r Record) Clean() string {
	return strings.TrimFunc(string(r), isSpace)
}

// isSpace matches unicode.IsSpace plus the ASCII file, group, record and unit
// separators (U+001C to U+001F), which also count as line whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// ReadRecords reads every line from r. A line ends at "\n", "\r\n" or a lone
// "\r", and keeps its terminator. Blank lines are records, and a final line
// without a terminator is a record too.
func ReadRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	var records []Record
	for {
		line, err := br.ReadString('\n')
		for _, l := range splitCarriageReturns(line) {
			records = append(records, Record(l))
		}
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// splitCarriageReturns cuts chunk after every "\r" that is not part of a
// "\r\n" pair. chunk holds at most one "\n", at its end.
func splitCarriageReturns(chunk string) []string {
	var lines []string
	for len(chunk) > 0 {
		i := strings.IndexByte(chunk, '\r')
		if i < 0 || i+1 == len(chunk) || chunk[i+1] == '\n' {
			return append(lines, chunk)
		}
		lines = append(lines, chunk[:i+1])
		chunk = chunk[i+1:]
	}
	return lines
}

// ReadFile loads all records from the file at path into memory.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: OpRead, Path: path, Err: err}
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, &FileError{Op: OpRead, Path: path, Err: err}
	}
	return records, nil
}

// WriteRecords writes each record to w in its cleaned form followed by
// exactly one newline.
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(rec.Clean()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates or truncates the file at path and writes records to it.
// The subset is only used to annotate a returned *FileError.
func WriteFile(path string, subset Subset, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: OpWrite, Subset: subset, Path: path, Err: err}
	}

	if err := WriteRecords(f, records); err != nil {
		_ = f.Close()
		return &FileError{Op: OpWrite, Subset: subset, Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &FileError{Op: OpWrite, Subset: subset, Path: path, Err: err}
	}
	return nil
}
