package policy

// newCommitDomain nudges commits through the safe-commit skill. The original
// hook only ever warned (it cannot distinguish skill-invoked from manual
// commits), so warn is the shipped enforcement level.
func newCommitDomain(opts Options) *Domain {
	return &Domain{
		Name:        "commit-gate",
		AppliesTo:   shellOnly,
		Enforcement: opts.level("commit-gate", LevelWarn),
		Escape: []Rule{
			rule(`(?i)--dry-run`, "dry runs are fine"),
			rule(`(?i)--no-commit`, "merge without commit"),
			rule(`(?i)git\s+log.*commit`, "viewing commits"),
			rule(`(?i)git\s+show.*commit`, "showing commits"),
			rule(`(?i)git\s+rev-parse`, "parsing commit refs"),
		},
		// Trigger phrases can appear anywhere in a compound command, so the
		// whole command string is the window.
		Gated: []Rule{
			rule(`(?i)\bgit\s+commit\b`, "direct git commit bypasses the safe-commit checks"),
			rule(`(?i)\bgit\s+\S.*\bcommit\b`, "direct git commit bypasses the safe-commit checks"),
		},
		Messages: MessageSet{
			BlockTitle: "DIRECT COMMIT BLOCKED - USE SAFE-COMMIT",
			WarnTitle:  "SAFE-COMMIT REMINDER",
			Remediation: []string{
				"Use the safe-commit skill for commits.",
				"It ensures the security scan, quality check, and tests pass.",
			},
			Examples: []string{
				"/safe-commit",
			},
		},
	}
}
