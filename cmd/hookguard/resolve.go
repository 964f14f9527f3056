package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mriley/hookguard/internal/config"
	"github.com/mriley/hookguard/internal/skills"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve which skill documents apply to a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResolve(args[0], os.Stdout, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// runResolve prints the matched skill documents, one per line. The resolver
// never rejects: a broken manifest is reported and yields an empty set.
func runResolve(target string, stdout, stderr io.Writer) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "hookguard: %v (using defaults)\n", err)
		cfg = config.Default()
	}

	resolver, err := skills.NewResolver(cfg.Skills.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "hookguard: %v\n", err)
	}

	for _, doc := range resolver.Resolve(target) {
		fmt.Fprintln(stdout, doc)
	}
}
