package config

import (
	"fmt"
	"os"
	"strings"
)

func writeLines(path string, n int) error {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o600)
}
