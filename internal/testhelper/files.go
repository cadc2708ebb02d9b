package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// NumberedLines returns n JSON lines of the form {"id":1} ... {"id":n}.
func NumberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf(`{"id":%d}`, i+1)
	}
	return lines
}

// WriteLines writes lines to name inside dir, each terminated by a newline.
func WriteLines(t *testing.T, dir, name string, lines []string) string {
	t.Helper()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return WriteFile(t, dir, name, b.String())
}

// ReadLines returns the newline-terminated lines of the file at path. An
// empty file yields an empty slice.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(data) == 0 {
		return []string{}
	}
	require.True(t, strings.HasSuffix(string(data), "\n"), "%s must end with a newline", path)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
