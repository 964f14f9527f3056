package policy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mriley/hookguard/internal/hook"
)

// newBranchDomain gates branch creation on the required name prefix.
// List/delete forms of git branch and the allow-listed branch names are
// escape hatches; rename and copy forms are gated on the new name.
func newBranchDomain(opts Options) *Domain {
	allowed := make([]string, 0, len(opts.AllowedBranches)+1)
	allowed = append(allowed, regexp.QuoteMeta(opts.BranchPrefix)+`\S+`)
	for _, b := range opts.AllowedBranches {
		allowed = append(allowed, regexp.QuoteMeta(b))
	}
	// The git verbs match case-insensitively but the name comparison is
	// case-sensitive: MRILEY/x does not satisfy the mriley/ prefix.
	names := `(?:` + strings.Join(allowed, "|") + `)`
	reason := fmt.Sprintf("branch name must start with %q", opts.BranchPrefix)

	return &Domain{
		Name:        "branch-prefix",
		AppliesTo:   shellOnly,
		Enforcement: opts.level("branch-prefix", LevelBlock),
		Escape: []Rule{
			rule(`(?i:\bgit\s+(?:checkout\s+-b|switch\s+-c|branch)\s+)`+names+`(?:\s|$)`,
				"allow-listed or correctly prefixed branch name"),
			// Rename and copy put the new name last.
			rule(`(?i:\bgit\s+branch\s+(?:-[mMcC]|--move|--copy)\s+)(?:\S+\s+)?`+names+`\s*(?:$|[;&|])`,
				"rename or copy to an allow-listed or correctly prefixed name"),
			// Remaining flag forms of git branch list or delete, never create.
			rule(`(?i)\bgit\s+branch\s+-(?:d\b|-delete\b|a\b|-all\b|r\b|-remotes\b|v{1,2}\b|-verbose\b|-list\b|-show-current\b|-contains\b|-merged\b|-no-merged\b|-format\b|-sort\b)`,
				"git branch flag form (list/delete)"),
		},
		Gated: []Rule{
			rule(`(?i)\bgit\s+checkout\s+-b\s+(\S+)`, reason),
			rule(`(?i)\bgit\s+switch\s+-c\s+(\S+)`, reason),
			rule(`(?i)\bgit\s+branch\s+(?:-[mMcC]|--move|--copy)\s+(?:\S+\s+)?(\S+)`, reason),
			rule(`(?i)\bgit\s+branch\s+([^-\s]\S*)`, reason),
		},
		Messages: MessageSet{
			BlockTitle: "BRANCH PREFIX REQUIRED",
			WarnTitle:  "BRANCH PREFIX REMINDER",
			Remediation: []string{
				fmt.Sprintf("Expected format: %s<type>/<description>", opts.BranchPrefix),
				"Use the manage-branch skill: /manage-branch",
			},
			Examples: []string{
				fmt.Sprintf("git checkout -b %sfeat/new-feature", opts.BranchPrefix),
				fmt.Sprintf("git checkout -b %sfix/bug-description", opts.BranchPrefix),
				fmt.Sprintf("git checkout -b %srefactor/cleanup", opts.BranchPrefix),
			},
		},
	}
}

func shellOnly(op hook.Op) bool { return op == hook.OpShellCommand }
