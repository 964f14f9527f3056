// Package policy implements the tool-call gating engine: static pattern
// tables grouped into policy domains, one generic classifier with fixed
// precedence, and a renderer that turns decisions into exit codes and
// operator-facing explanations.
package policy

import (
	"regexp"

	"github.com/mriley/hookguard/internal/hook"
)

// Rule is one (matcher, explanation) entry in a domain's pattern table.
// Ordering within a list is significant: first match wins within a category.
type Rule struct {
	Pattern     *regexp.Regexp
	Explanation string

	// Whole forces matching against the full raw text even when the domain
	// narrows gated/safe matching to a verb window.
	Whole bool
}

func rule(pattern, explanation string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Explanation: explanation}
}

func wholeRule(pattern, explanation string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Explanation: explanation, Whole: true}
}

// MessageSet holds the operator-facing text for a domain's gated outcomes.
// Block and enforcement-level warns share the remediation content; the
// override variant is used when an exception rule downgrades a block.
type MessageSet struct {
	BlockTitle  string
	WarnTitle   string
	Remediation []string
	Examples    []string

	OverrideTitle       string
	OverrideReason      string
	OverrideRemediation []string
	OverrideExamples    []string
}

// Domain is one named bundle of gated behavior with its own rule tables.
type Domain struct {
	Name        string
	AppliesTo   func(hook.Op) bool
	Enforcement Level

	Escape    []Rule
	Safe      []Rule
	Gated     []Rule
	Exception []Rule

	// Window narrows the text safe and gated rules match against (e.g. the
	// kubectl verb window). Nil means the whole raw text. Escape and
	// exception rules always see the whole text.
	Window func(raw string) string

	// SafeWindow narrows safe-rule matching further than Window when set.
	// The kubectl domain uses a one-word verb window here so a resource
	// name can never satisfy a read-only verb.
	SafeWindow func(raw string) string

	// Extract pulls the significant token for the rendered message. Nil
	// falls back to the gated rule's first capture group, then the whole
	// match.
	Extract func(raw string) string

	Messages MessageSet
}

// Decision is the classifier's output for one (domain, invocation) pair.
type Decision struct {
	Verdict   Verdict
	Rule      *Rule // matched escape/safe/gated rule, nil when nothing matched
	Exception *Rule // set when an exception rule downgraded a block
	Context   map[string]string
}
