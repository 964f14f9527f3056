package policy

import "github.com/mriley/hookguard/internal/hook"

// newProtectedFileDomain blocks edits and writes to files that hold secrets,
// are auto-generated, or belong to git internals. Template/example env files
// are explicitly excepted and allowed silently.
func newProtectedFileDomain(opts Options) *Domain {
	return &Domain{
		Name:        "protected-file",
		AppliesTo:   fileOnly,
		Enforcement: opts.level("protected-file", LevelBlock),
		Escape: []Rule{
			rule(`(?i)\.env\.example$`, "example env file contains no secrets"),
			rule(`(?i)\.env\.sample$`, "sample env file contains no secrets"),
			rule(`(?i)\.env\.template$`, "template env file contains no secrets"),
		},
		Gated: []Rule{
			rule(`(?i)\.env($|\.)`, "Environment files contain secrets"),
			rule(`(?i)package-lock\.json$`, "Lock file is auto-generated"),
			rule(`(?i)yarn\.lock$`, "Lock file is auto-generated"),
			rule(`(?i)pnpm-lock\.yaml$`, "Lock file is auto-generated"),
			rule(`(?i)Cargo\.lock$`, "Lock file is auto-generated"),
			rule(`(?i)poetry\.lock$`, "Lock file is auto-generated"),
			rule(`(?i)go\.sum$`, "Lock file is auto-generated"),
			rule(`(?i)Gemfile\.lock$`, "Lock file is auto-generated"),
			rule(`(?i)\.git/`, "Git internal files should not be edited"),
			rule(`(?i)\.git$`, "Git internal files should not be edited"),
			rule(`(?i)\.ssh/`, "SSH keys are sensitive"),
			rule(`(?i)id_rsa`, "SSH private keys are sensitive"),
			rule(`(?i)\.pem$`, "Certificate files are sensitive"),
			rule(`(?i)\.key$`, "Key files are sensitive"),
		},
		Messages: MessageSet{
			BlockTitle: "PROTECTED FILE MODIFICATION BLOCKED",
			WarnTitle:  "PROTECTED FILE MODIFICATION WARNING",
			Remediation: []string{
				"1. Consider if the change is truly necessary",
				"2. Edit the file manually outside of Claude",
				"3. Or request an explicit override",
			},
		},
	}
}

func fileOnly(op hook.Op) bool {
	return op == hook.OpFileEdit || op == hook.OpFileWrite
}
