package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mriley/hookguard/internal/formatter"
	"github.com/mriley/hookguard/internal/hook"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Run the formatter matching a file's extension (best-effort)",
	Long: `Runs the external formatter registered for the file's extension.
With no argument, reads a tool-use payload from stdin and formats the
edited file (the PostToolUse hook form).

Formatting is a convenience, not a gate: missing files, missing formatters,
and formatter failures are reported but never change the exit code.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFormat(cmd.Context(), args, os.Stdin, os.Stdout, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func runFormat(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		in, err := hook.ReadInput(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error parsing hook input: %v\n", err)
			return
		}
		inv, ok := hook.Normalize(in)
		if !ok || inv.Kind == hook.OpShellCommand {
			return
		}
		path = inv.FilePath
	}

	status, warn := formatter.Run(ctx, path)
	if status != "" {
		fmt.Fprintln(stdout, status)
	}
	if warn != "" {
		fmt.Fprintln(stderr, warn)
	}
}
