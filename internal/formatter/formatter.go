// Package formatter runs the appropriate external formatter for a file
// after an edit or write. Formatting is a convenience, not a safety gate:
// every failure mode here is reported and swallowed.
package formatter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// runTimeout bounds a single formatter run.
const runTimeout = 30 * time.Second

// Formatter is one external formatter invocation: program plus the
// arguments that precede the file path.
type Formatter struct {
	Command string
	Args    []string
}

// formatters maps file extension to formatter.
var formatters = map[string]Formatter{
	".ts":   {"npx", []string{"prettier", "--write"}},
	".tsx":  {"npx", []string{"prettier", "--write"}},
	".js":   {"npx", []string{"prettier", "--write"}},
	".jsx":  {"npx", []string{"prettier", "--write"}},
	".json": {"npx", []string{"prettier", "--write"}},
	".css":  {"npx", []string{"prettier", "--write"}},
	".scss": {"npx", []string{"prettier", "--write"}},
	".md":   {"npx", []string{"prettier", "--write"}},
	".yaml": {"npx", []string{"prettier", "--write"}},
	".yml":  {"npx", []string{"prettier", "--write"}},
	".go":   {"gofmt", []string{"-w"}},
	".py":   {"black", nil},
}

// skipPatterns are path components that never get formatted.
var skipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"__pycache__",
	".next",
	"dist",
	"build",
}

// Lookup returns the formatter for a path's extension.
func Lookup(path string) (Formatter, bool) {
	f, ok := formatters[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Skip reports whether the path should never be formatted.
func Skip(path string) bool {
	for _, pattern := range skipPatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// Run formats one file, best-effort. It returns a human-readable status
// line and never a fatal error: a missing file, missing formatter, failed
// run, or timeout all degrade to a skip or a warning.
func Run(ctx context.Context, path string) (status string, warn string) {
	if Skip(path) {
		return "", ""
	}
	if _, err := os.Stat(path); err != nil {
		return "", ""
	}

	f, ok := Lookup(path)
	if !ok {
		return "", ""
	}
	if _, err := exec.LookPath(f.Command); err != nil {
		// Formatter not installed, skip silently.
		return "", ""
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	args := append(append([]string{}, f.Args...), path)
	out, err := exec.CommandContext(ctx, f.Command, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Sprintf("Format timeout: %s", path)
	}
	if err != nil {
		return "", fmt.Sprintf("Format warning: %s", strings.TrimSpace(string(out)))
	}
	return fmt.Sprintf("Formatted: %s", path), ""
}
