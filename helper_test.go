package linegather_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// === files ===

// writeFile - writes content to a fresh file in t.TempDir and returns its path.
func writeFile(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// numberedLines - "0\n1\n...\n(n-1)" with an optional trailing newline.
func numberedLines(n int, trailingNewline bool) string {
	var sb strings.Builder
	for i := range n {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i))
	}
	if trailingNewline && n > 0 {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// paddedLines - n lines of varying width so range boundaries land mid-line.
func paddedLines(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "%d:%s\n", i, strings.Repeat("x", i%17))
	}
	return sb.String()
}

// === process funcs ===

func atoi(line string) int {
	i, err := strconv.Atoi(strings.SplitN(line, ":", 2)[0])
	if err != nil {
		return -1
	}
	return i
}

func length(line string) int {
	return len(line)
}
