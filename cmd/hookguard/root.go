package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hookguard",
	Short: "Policy gate for agent tool invocations",
	Long: `hookguard mediates tool invocations issued by an automated agent
against operational-safety policies before they execute.

Commands:
  gate     Classify one tool-use payload from stdin (the hook entry point)
  resolve  Resolve which skill documents apply to a file
  format   Run the formatter matching a file's extension (best-effort)
  rules    Print the policy domains and their rule tables

Exit codes of gate:
  0  allowed (silently, or with warnings on stderr)
  1  engine failure (malformed input, not a policy verdict)
  2  blocked (policy verdict; stderr explains why and what to do instead)`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
