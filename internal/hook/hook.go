// Package hook reads and normalizes Claude Code tool-use payloads.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Input matches the Claude Code hook input payload delivered on stdin.
type Input struct {
	SessionID  string          `json:"session_id"`
	ToolName   string          `json:"tool_name"`
	ToolInput  json.RawMessage `json:"tool_input"`
	WorkingDir string          `json:"cwd"`
}

// Op is the operation kind of a normalized invocation.
type Op int

const (
	OpShellCommand Op = iota
	OpFileEdit
	OpFileWrite
)

func (o Op) String() string {
	switch o {
	case OpShellCommand:
		return "shell-command"
	case OpFileEdit:
		return "file-edit"
	default:
		return "file-write"
	}
}

// Invocation is one normalized tool-use event. Constructed fresh per run,
// never persisted.
type Invocation struct {
	Kind       Op
	Command    string // set for OpShellCommand
	FilePath   string // set for OpFileEdit / OpFileWrite
	WorkingDir string
}

// Raw returns the substring policy domains match against.
func (inv Invocation) Raw() string {
	if inv.Kind == OpShellCommand {
		return inv.Command
	}
	return inv.FilePath
}

// ReadInput decodes a hook payload. A decode failure is a fatal input error,
// distinct from "not applicable".
func ReadInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading hook input: %w", err)
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing hook input: %w", err)
	}
	return &in, nil
}

// Normalize extracts the operation kind and the relevant substring from the
// payload. ok is false when the tool-use is not a recognized operation kind;
// the caller must allow immediately in that case — unknown tools are never
// gated.
func Normalize(in *Input) (inv Invocation, ok bool) {
	switch in.ToolName {
	case "Bash":
		cmd := commandField(in.ToolInput, "command")
		if strings.TrimSpace(cmd) == "" {
			return Invocation{}, false
		}
		return Invocation{Kind: OpShellCommand, Command: cmd, WorkingDir: in.WorkingDir}, true
	case "Edit", "NotebookEdit":
		path := filePathField(in.ToolName, in.ToolInput)
		if path == "" {
			return Invocation{}, false
		}
		return Invocation{Kind: OpFileEdit, FilePath: path, WorkingDir: in.WorkingDir}, true
	case "Write":
		path := filePathField(in.ToolName, in.ToolInput)
		if path == "" {
			return Invocation{}, false
		}
		return Invocation{Kind: OpFileWrite, FilePath: path, WorkingDir: in.WorkingDir}, true
	}
	return Invocation{}, false
}

func commandField(raw json.RawMessage, key string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		return ""
	}
	return s
}

// filePathField extracts the target path. NotebookEdit uses notebook_path,
// everything else file_path.
func filePathField(toolName string, raw json.RawMessage) string {
	key := "file_path"
	if toolName == "NotebookEdit" {
		key = "notebook_path"
	}
	return commandField(raw, key)
}
