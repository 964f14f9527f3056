package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mriley/hookguard/internal/auditlog"
	"github.com/mriley/hookguard/internal/config"
	"github.com/mriley/hookguard/internal/hook"
	"github.com/mriley/hookguard/internal/policy"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Classify one tool-use payload from stdin",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runGate(os.Stdin, os.Stderr); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(gateCmd)
}

// runGate is the dispatcher: payload in, exit code out. Parse failures exit
// 1 (an engine failure, not a policy verdict); a block exits 2; everything
// else, warnings included, exits 0.
func runGate(stdin io.Reader, stderr io.Writer) int {
	in, err := hook.ReadInput(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing hook input: %v\n", err)
		return 1
	}

	inv, ok := hook.Normalize(in)
	if !ok {
		// Not a recognized operation kind. The engine only gates what it
		// understands; unknown tools pass.
		return 0
	}

	if config.Disabled() {
		auditlog.Write(auditlog.Entry{
			ToolName: in.ToolName,
			Input:    inv.Raw(),
			WorkDir:  inv.WorkingDir,
			Verdict:  "ALLOW",
			Domain:   "kill-switch",
			Reason:   "HOOKGUARD_DISABLED=1",
		})
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		// A broken config must not silently weaken enforcement: report it
		// and gate with the shipped defaults.
		fmt.Fprintf(stderr, "hookguard: %v (using defaults)\n", err)
		cfg = config.Default()
	}

	engine := policy.NewEngine(cfg.PolicyOptions())
	res := engine.Dispatch(inv)

	if !cfg.Audit.Disabled {
		logOutcomes(in, inv, res)
	}

	io.WriteString(stderr, res.Stderr)
	return res.ExitCode
}

func logOutcomes(in *hook.Input, inv hook.Invocation, res policy.Result) {
	gated := false
	for _, o := range res.Outcomes {
		if o.Decision.Verdict == policy.Allow {
			continue
		}
		gated = true
		auditlog.Write(auditlog.Entry{
			ToolName: in.ToolName,
			Input:    inv.Raw(),
			WorkDir:  inv.WorkingDir,
			Verdict:  o.Decision.Verdict.String(),
			Domain:   o.Domain,
			Reason:   reasonOf(o.Decision),
		})
	}
	if !gated {
		auditlog.Write(auditlog.Entry{
			ToolName: in.ToolName,
			Input:    inv.Raw(),
			WorkDir:  inv.WorkingDir,
			Verdict:  policy.Allow.String(),
		})
	}
}

func reasonOf(dec policy.Decision) string {
	if dec.Rule == nil {
		return ""
	}
	return dec.Rule.Explanation
}
