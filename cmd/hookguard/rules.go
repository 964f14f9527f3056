package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mriley/hookguard/internal/config"
	"github.com/mriley/hookguard/internal/policy"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the policy domains and their rule tables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runRules(os.Stdout, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(stdout, stderr io.Writer) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "hookguard: %v (using defaults)\n", err)
		cfg = config.Default()
	}

	engine := policy.NewEngine(cfg.PolicyOptions())
	for _, d := range engine.Domains() {
		fmt.Fprintf(stdout, "%s (enforcement: %s)\n", d.Name, d.Enforcement)
		printRules(stdout, "escape", d.Escape)
		printRules(stdout, "safe", d.Safe)
		printRules(stdout, "gated", d.Gated)
		printRules(stdout, "exception", d.Exception)
		fmt.Fprintln(stdout)
	}
}

func printRules(w io.Writer, category string, rules []policy.Rule) {
	for _, r := range rules {
		fmt.Fprintf(w, "  %-9s %s\n", category, r.Pattern.String())
	}
}
