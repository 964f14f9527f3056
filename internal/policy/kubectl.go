package policy

import (
	"regexp"
	"strings"
)

// kubectlVerbRe extracts the verb window: the first bare word (optionally a
// two-word phrase) after kubectl and any flag tokens. Matching gated verbs
// inside this window keeps substrings in file names (e.g. "applying.yaml")
// from being mistaken for verbs.
var kubectlVerbRe = regexp.MustCompile(`(?i)\bkubectl\s+(?:(?:--?[^\s]+\s+)*)([a-z-]+(?:\s+[a-z-]+)?)`)

// kubectlReadVerbRe is the one-word window used for read-only matching.
// The second word is the resource name, and a resource name must never
// satisfy a read-only verb ("kubectl delete logs-collector" is a mutation).
var kubectlReadVerbRe = regexp.MustCompile(`(?i)\bkubectl\s+(?:(?:--?[^\s]+\s+)*)([a-z-]+)`)

// newKubectlDomain hard-blocks kubectl mutations: cluster changes go through
// the GitOps workflow. Read-only verbs and dry-runs pass; mutations that
// target the ArgoCD bootstrap namespace downgrade to a warn with an
// override path, because ArgoCD cannot sync itself.
func newKubectlDomain(opts Options) *Domain {
	quoted := make([]string, len(opts.BootstrapNamespaces))
	for i, ns := range opts.BootstrapNamespaces {
		quoted[i] = regexp.QuoteMeta(ns)
	}
	namespaces := strings.Join(quoted, "|")

	return &Domain{
		Name:        "kubectl-mutation",
		AppliesTo:   shellOnly,
		Enforcement: opts.level("kubectl-mutation", LevelBlock),
		Window: func(raw string) string {
			m := kubectlVerbRe.FindString(raw)
			return m
		},
		SafeWindow: func(raw string) string {
			return kubectlReadVerbRe.FindString(raw)
		},
		Extract: func(raw string) string {
			m := kubectlVerbRe.FindStringSubmatch(raw)
			if m == nil {
				return "unknown"
			}
			return "kubectl " + m[1]
		},
		Escape: []Rule{
			rule(`(?i)--dry-run\b`, "dry-run operations validate without mutating"),
			rule(`(?i)--dry-run=client\b`, "client dry-run"),
			rule(`(?i)--dry-run=server\b`, "server dry-run"),
		},
		Safe: []Rule{
			rule(`(?i)\bget\b`, "read-only"),
			rule(`(?i)\bdescribe\b`, "read-only"),
			rule(`(?i)\blogs\b`, "read-only"),
			rule(`(?i)\bexplain\b`, "read-only"),
			rule(`(?i)\bdiff\b`, "read-only"),
			rule(`(?i)\bapi-resources\b`, "read-only"),
			rule(`(?i)\bapi-versions\b`, "read-only"),
			rule(`(?i)\bversion\b`, "read-only"),
			rule(`(?i)\bcluster-info\b`, "read-only"),
			rule(`(?i)\btop\b`, "read-only"),
			rule(`(?i)\bauth\s+can-i\b`, "read-only"),
			rule(`(?i)\bconfig\s+view\b`, "view config only"),
			rule(`(?i)\brollout\s+status\b`, "status check only"),
			rule(`(?i)\brollout\s+history\b`, "history view only"),
			rule(`(?i)\bwait\b`, "wait for condition"),
		},
		Gated: []Rule{
			rule(`(?i)\bapply\b`, "kubectl apply mutates cluster state"),
			rule(`(?i)\bcreate\b`, "kubectl create mutates cluster state"),
			rule(`(?i)\bedit\b`, "kubectl edit mutates cluster state"),
			rule(`(?i)\bpatch\b`, "kubectl patch mutates cluster state"),
			rule(`(?i)\bdelete\b`, "kubectl delete removes cluster resources"),
			rule(`(?i)\breplace\b`, "kubectl replace mutates cluster state"),
			rule(`(?i)\bscale\b`, "kubectl scale mutates cluster state"),
			rule(`(?i)\bautoscale\b`, "kubectl autoscale mutates cluster state"),
			rule(`(?i)\brollout\s+(restart|undo|pause|resume)\b`, "kubectl rollout mutates cluster state"),
			rule(`(?i)\bset\b`, "kubectl set mutates cluster state"),
			rule(`(?i)\blabel\b`, "kubectl label mutates cluster state"),
			rule(`(?i)\bannotate\b`, "kubectl annotate mutates cluster state"),
			rule(`(?i)\bexpose\b`, "kubectl expose mutates cluster state"),
			rule(`(?i)\brun\b`, "kubectl run mutates cluster state"),
			rule(`(?i)\bdrain\b`, "kubectl drain mutates cluster state"),
			rule(`(?i)\bcordon\b`, "kubectl cordon mutates cluster state"),
			rule(`(?i)\buncordon\b`, "kubectl uncordon mutates cluster state"),
			rule(`(?i)\btaint\b`, "kubectl taint mutates cluster state"),
			rule(`(?i)\battach\b`, "kubectl attach can modify container state"),
			rule(`(?i)\bexec\b`, "kubectl exec can modify container state"),
			rule(`(?i)\bcp\b`, "kubectl cp can modify files in containers"),
			rule(`(?i)\bport-forward\b`, "port-forward can be used for state modification"),
			// Imperative flags can appear anywhere in the command.
			wholeRule(`(?i)\bkubectl\s+.*--force\b`, "forced operations bypass safety checks"),
			wholeRule(`(?i)\bkubectl\s+.*--grace-period=0\b`, "immediate deletion"),
			wholeRule(`(?i)\bkubectl\s+.*--now\b`, "immediate operations"),
		},
		Exception: []Rule{
			rule(`(?i)-n\s+(`+namespaces+`)\b`, "ArgoCD bootstrap namespace"),
			rule(`(?i)--namespace[=\s]+(`+namespaces+`)\b`, "ArgoCD bootstrap namespace"),
			rule(`(?i)applications?\.argoproj\.io`, "ArgoCD Application CRD"),
			rule(`(?i)applicationsets?\.argoproj\.io`, "ApplicationSet CRD"),
			rule(`(?i)appprojects?\.argoproj\.io`, "AppProject CRD"),
			rule(`(?i)argocd/`, "ArgoCD manifest path"),
		},
		Messages: MessageSet{
			BlockTitle: "KUBECTL MUTATION BLOCKED - GITOPS REQUIRED",
			WarnTitle:  "KUBECTL MUTATION WARNING - GITOPS REQUIRED",
			Remediation: []string{
				"Direct kubectl mutations are forbidden in this environment.",
				"All cluster changes go through the GitOps workflow:",
				"  1. Use the gitops-apply skill",
				"  2. Update the manifest in the git repository",
				"  3. Commit changes with conventional format",
				"  4. ArgoCD/Flux will sync to the cluster",
				"GitOps gives auditable history, peer review, rollback, and disaster recovery.",
			},
			Examples: []string{
				"kubectl get, describe, logs, explain, diff, top   # read-only, allowed",
				"kubectl apply --dry-run=client -f x.yaml          # validation, allowed",
			},
			OverrideTitle:  "ARGOCD BOOTSTRAP DETECTED - OVERRIDE AVAILABLE",
			OverrideReason: "ArgoCD cannot sync itself - bootstrap exception applies.",
			OverrideRemediation: []string{
				"Is this a one-off or needed for future deployments?",
				"ONE-OFF (debugging, temporary, won't repeat):",
				`  Say "one-off bootstrap" to proceed with kubectl directly`,
				"RECOVERY-NEEDED (new clusters, disaster recovery, repeatable):",
				"  1. Add the command to scripts/bootstrap.sh (initial setup)",
				"  2. Add the command to scripts/bootstrap-idempotent.sh (re-runnable)",
				"  3. Commit the bootstrap script changes",
				`  4. Then say "bootstrap updated" to proceed with kubectl`,
			},
			OverrideExamples: []string{
				"kubectl apply -f argocd/install.yaml || true",
				"kubectl wait --for=condition=available deployment/argocd-server -n argocd --timeout=300s",
			},
		},
	}
}
