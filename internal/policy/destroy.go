package policy

// newDestroyDomain flags commands that can permanently destroy work. Like
// the original hook it warns by default: the safe-destroy skill runs after
// the user confirms, so the command itself must be allowed through.
func newDestroyDomain(opts Options) *Domain {
	return &Domain{
		Name:        "destructive-command",
		AppliesTo:   shellOnly,
		Enforcement: opts.level("destructive-command", LevelWarn),
		Escape: []Rule{
			rule(`(?i)--dry-run`, "dry run"),
			rule(`(?i)(^|\s)-n\b`, "dry-run short form"),
		},
		// Matched against the whole command string: destructive phrases can
		// hide behind pipes and && chains.
		Gated: []Rule{
			rule(`(?i)\bgit\s+reset\s+--hard\b`, "git reset --hard destroys uncommitted changes"),
			rule(`(?i)\bgit\s+clean\s+-[fd]+\b`, "git clean permanently deletes untracked files"),
			rule(`(?i)\bgit\s+checkout\s+--\s+\.`, "git checkout -- . discards all changes"),
			rule(`(?i)\bgit\s+restore\s+\.`, "git restore . discards all changes"),
			rule(`(?i)\bgit\s+push\s+.*--force\b`, "git push --force can overwrite remote history"),
			rule(`(?i)\bgit\s+push\s+.*-f\b`, "git push -f can overwrite remote history"),
			rule(`(?i)\brm\s+-rf\b`, "rm -rf permanently deletes files"),
			rule(`(?i)\brm\s+-fr\b`, "rm -fr permanently deletes files"),
			rule(`(?i)\brm\s+.*-r.*-f\b`, "rm with -rf permanently deletes files"),
			rule(`(?i)\bdocker\s+system\s+prune\b`, "docker system prune removes unused data"),
			rule(`(?i)\bdocker\s+volume\s+prune\b`, "docker volume prune removes volumes"),
			rule(`(?i)\bkubectl\s+delete\b`, "kubectl delete removes resources"),
		},
		Messages: MessageSet{
			BlockTitle: "DESTRUCTIVE COMMAND BLOCKED",
			WarnTitle:  "DESTRUCTIVE COMMAND WARNING",
			Remediation: []string{
				"Ensure the safe-destroy skill was used for confirmation.",
				"Prefer recoverable alternatives (git stash, soft reset, trash).",
			},
			Examples: []string{
				"git stash        # instead of git reset --hard",
				"rm -rf --dry-run # preview deletions where supported",
			},
		},
	}
}
