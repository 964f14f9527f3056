package policy

import (
	"strings"

	"github.com/mriley/hookguard/internal/hook"
)

const banner = "======================================================================"

// ExitBlocked is the reserved exit code for a policy block. The hosting
// agent treats it as "do not execute" and surfaces the stderr text; a
// generic tool failure exits 1 instead.
const ExitBlocked = 2

// Render turns a decision into an exit status and stderr text. Allows are
// silent regardless of which rule produced them; only gated outcomes emit
// explanatory text.
func Render(d *Domain, inv hook.Invocation, dec Decision) (int, string) {
	switch dec.Verdict {
	case Allow:
		return 0, ""
	case Warn:
		if dec.Exception != nil {
			return 0, renderText(d, inv, dec, d.Messages.OverrideTitle,
				overrideReason(d, dec), d.Messages.OverrideRemediation, d.Messages.OverrideExamples)
		}
		return 0, renderText(d, inv, dec, d.Messages.WarnTitle,
			gatedReason(dec), d.Messages.Remediation, d.Messages.Examples)
	default:
		return ExitBlocked, renderText(d, inv, dec, d.Messages.BlockTitle,
			gatedReason(dec), d.Messages.Remediation, d.Messages.Examples)
	}
}

func gatedReason(dec Decision) string {
	if dec.Rule == nil {
		return ""
	}
	return dec.Rule.Explanation
}

// overrideReason prefers the domain's override rationale, falling back to
// the exception rule's explanation.
func overrideReason(d *Domain, dec Decision) string {
	if d.Messages.OverrideReason != "" {
		return d.Messages.OverrideReason
	}
	if dec.Exception != nil {
		return dec.Exception.Explanation
	}
	return ""
}

const maxContextLen = 200

func renderText(d *Domain, inv hook.Invocation, dec Decision, title, reason string, remediation, examples []string) string {
	label := "Command"
	if inv.Kind != hook.OpShellCommand {
		label = "File"
	}
	context := truncate(inv.Raw(), maxContextLen)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(banner + "\n")
	b.WriteString(title + "\n")
	b.WriteString(banner + "\n")
	b.WriteString("\n")
	b.WriteString(label + ": " + context + "\n")
	if m := dec.Context["match"]; m != "" && m != context {
		b.WriteString("Matched: " + m + "\n")
	}
	if reason != "" {
		b.WriteString("Reason: " + reason + "\n")
	}
	if len(remediation) > 0 {
		b.WriteString("\n")
		b.WriteString("Remediation:\n")
		for _, line := range remediation {
			b.WriteString("  " + line + "\n")
		}
	}
	if len(examples) > 0 {
		b.WriteString("\n")
		b.WriteString("Examples:\n")
		for _, line := range examples {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(banner + "\n")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
