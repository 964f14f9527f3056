// Package auditlog appends one line per gate decision so verdicts stay
// auditable after the fact. Logging is best-effort and never affects the
// decision.
package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const maxInputLen = 200

// Entry is one recorded decision.
type Entry struct {
	ToolName string
	Input    string
	WorkDir  string
	Verdict  string
	Domain   string
	Reason   string
}

// Write appends the entry to the decision log. All errors are swallowed.
func Write(e Entry) {
	logDir := defaultDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(filepath.Join(logDir, "decisions.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	input := e.Input
	if len(input) > maxInputLen {
		input = input[:maxInputLen] + "..."
	}

	fmt.Fprintf(f, "[%s] %s %s | tool=%s | dir=%s | domain=%s | input=%s | reason=%s\n",
		time.Now().Format("2006-01-02 15:04:05"), uuid.NewString(), e.Verdict,
		e.ToolName, e.WorkDir, e.Domain, input, e.Reason)
}

func defaultDir() string {
	if dir := os.Getenv("HOOKGUARD_LOG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hookguard")
}
