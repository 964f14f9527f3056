package policy

import (
	"strings"

	"github.com/mriley/hookguard/internal/hook"
)

// Options parameterizes the static rule tables. Zero values are filled from
// DefaultOptions.
type Options struct {
	BranchPrefix        string
	AllowedBranches     []string
	BootstrapNamespaces []string

	// Enforcement overrides the per-domain level, keyed by domain name.
	Enforcement map[string]Level
}

// DefaultOptions reproduces the behavior of the original hook set.
func DefaultOptions() Options {
	return Options{
		BranchPrefix:        "mriley/",
		AllowedBranches:     []string{"main", "master", "develop", "dev"},
		BootstrapNamespaces: []string{"argocd", "argo-cd", "argocd-system"},
	}
}

func (o Options) level(domain string, fallback Level) Level {
	if l, ok := o.Enforcement[domain]; ok {
		return l
	}
	return fallback
}

// Engine holds the domain set for one run. Domains run in a fixed order and
// the first block wins; warnings accumulate and never change the exit code.
type Engine struct {
	domains []*Domain
}

// NewEngine constructs all five policy domains from the given options. Every
// run builds its tables fresh; nothing is shared between invocations.
func NewEngine(opts Options) *Engine {
	defaults := DefaultOptions()
	if opts.BranchPrefix == "" {
		opts.BranchPrefix = defaults.BranchPrefix
	}
	if len(opts.AllowedBranches) == 0 {
		opts.AllowedBranches = defaults.AllowedBranches
	}
	if len(opts.BootstrapNamespaces) == 0 {
		opts.BootstrapNamespaces = defaults.BootstrapNamespaces
	}

	return &Engine{domains: []*Domain{
		newBranchDomain(opts),
		newCommitDomain(opts),
		newDestroyDomain(opts),
		newKubectlDomain(opts),
		newProtectedFileDomain(opts),
	}}
}

// Domains exposes the configured domain set for listing and inspection.
func (e *Engine) Domains() []*Domain { return e.domains }

// Outcome records one domain's decision within a dispatch, for auditing.
type Outcome struct {
	Domain   string
	Decision Decision
}

// Result is the aggregate of one dispatch: the process exit code, the
// stderr text, and the per-domain outcomes that produced them.
type Result struct {
	ExitCode int
	Stderr   string
	Outcomes []Outcome
}

// Dispatch runs every applicable domain against the invocation, stopping at
// the first block.
func (e *Engine) Dispatch(inv hook.Invocation) Result {
	var out strings.Builder
	res := Result{}

	for _, d := range e.domains {
		if !d.AppliesTo(inv.Kind) {
			continue
		}
		dec := d.Classify(inv)
		res.Outcomes = append(res.Outcomes, Outcome{Domain: d.Name, Decision: dec})

		code, text := Render(d, inv, dec)
		out.WriteString(text)
		if code == ExitBlocked {
			res.ExitCode = ExitBlocked
			break
		}
	}

	res.Stderr = out.String()
	return res
}
