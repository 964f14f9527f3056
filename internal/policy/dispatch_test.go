package policy

import (
	"strings"
	"testing"

	"github.com/mriley/hookguard/internal/hook"
)

func fileInv(path string) hook.Invocation {
	return hook.Invocation{Kind: hook.OpFileEdit, FilePath: path}
}

func TestDispatchShellCommands(t *testing.T) {
	engine := NewEngine(Options{})

	tests := []struct {
		name     string
		command  string
		wantExit int
		wantText string // substring expected on stderr, "" means silent
	}{
		// ===== unrelated commands pass every domain =====
		{"ls", "ls -la", 0, ""},
		{"cat", "cat main.go", 0, ""},
		{"go test", "go test ./...", 0, ""},
		{"grep", "grep -rn TODO src/", 0, ""},
		{"make", "make build", 0, ""},
		{"docker ps", "docker ps", 0, ""},

		// ===== branch-prefix =====
		{"branch without prefix", "git checkout -b feature-x", 2, "BRANCH PREFIX REQUIRED"},
		{"branch with prefix", "git checkout -b mriley/feat/x", 0, ""},
		{"allow-listed branch", "git checkout -b main", 0, ""},
		{"switch without prefix", "git switch -c quickfix", 2, "BRANCH PREFIX REQUIRED"},
		{"switch with prefix", "git switch -c mriley/fix/y", 0, ""},
		{"git branch create without prefix", "git branch topic", 2, "BRANCH PREFIX REQUIRED"},
		{"git branch delete is not creation", "git branch -D topic", 0, ""},
		{"git branch list", "git branch --list", 0, ""},
		{"prefix is case-insensitive on the verb", "GIT CHECKOUT -B mriley/feat/x", 0, ""},
		{"prefix comparison is case-sensitive", "git checkout -b MRILEY/FEAT/X", 2, "BRANCH PREFIX REQUIRED"},
		{"rename to unprefixed name", "git branch -m old new", 2, "BRANCH PREFIX REQUIRED"},
		{"rename to prefixed name", "git branch -m old mriley/feat/x", 0, ""},
		{"copy to unprefixed name", "git branch -c topic scratch", 2, "BRANCH PREFIX REQUIRED"},

		// ===== commit-gate (warn by default) =====
		{"git commit warns", "git commit -m 'fix: bug'", 0, "SAFE-COMMIT REMINDER"},
		{"git commit dry-run", "git commit --dry-run", 0, ""},
		{"git merge no-commit", "git merge --no-commit topic", 0, ""},
		{"viewing commits", "git log --grep commit", 0, ""},
		{"rev-parse", "git rev-parse HEAD", 0, ""},

		// ===== destructive-command (warn by default) =====
		{"rm -rf warns", "rm -rf build/", 0, "rm -rf permanently deletes files"},
		{"rm -fr warns", "rm -fr /tmp/scratch", 0, "permanently deletes files"},
		{"force push warns", "git push origin main --force", 0, "overwrite remote history"},
		{"force push short flag", "git push origin main -f", 0, "overwrite remote history"},
		{"reset hard warns", "git reset --hard HEAD~1", 0, "destroys uncommitted changes"},
		{"git clean warns", "git clean -fd", 0, "permanently deletes untracked files"},
		{"docker prune warns", "docker system prune", 0, "removes unused data"},
		{"plain rm is fine", "rm notes.txt", 0, ""},
		{"plain push is fine", "git push origin mriley/feat/x", 0, ""},

		// ===== kubectl-mutation (block by default) =====
		{"kubectl get", "kubectl get pods", 0, ""},
		{"kubectl describe", "kubectl describe pod web-1", 0, ""},
		{"kubectl logs", "kubectl logs -f deployment/web", 0, ""},
		{"kubectl rollout status", "kubectl rollout status deployment/web", 0, ""},
		{"kubectl apply blocks", "kubectl apply -f deploy.yaml", 2, "KUBECTL MUTATION BLOCKED"},
		{"kubectl delete blocks", "kubectl delete pod foo", 2, "KUBECTL MUTATION BLOCKED"},
		{"read verb inside resource name", "kubectl delete logs-collector", 2, "KUBECTL MUTATION BLOCKED"},
		{"top inside resource name", "kubectl delete top-secret", 2, "KUBECTL MUTATION BLOCKED"},
		{"exec with logs in pod name", "kubectl exec logs-pod -- sh", 2, "KUBECTL MUTATION BLOCKED"},
		{"logs of a pod named logs", "kubectl logs logs-collector", 0, ""},
		{"kubectl rollout restart blocks", "kubectl rollout restart deployment/web", 2, "KUBECTL MUTATION BLOCKED"},
		{"kubectl scale blocks", "kubectl scale deployment web --replicas=3", 2, "KUBECTL MUTATION BLOCKED"},
		{"dry-run escapes", "kubectl apply -f deploy.yaml --dry-run=client", 0, ""},
		{"server dry-run escapes", "kubectl create ns test --dry-run=server", 0, ""},
		{"argocd bootstrap warns", "kubectl apply -n argocd -f install.yaml", 0, "ARGOCD BOOTSTRAP DETECTED"},
		{"argocd path warns", "kubectl apply -f argocd/install.yaml", 0, "ARGOCD BOOTSTRAP DETECTED"},
		{"apply without argocd blocks", "kubectl apply -f install.yaml", 2, "KUBECTL MUTATION BLOCKED"},
		{"file named like a verb", "cat applying.yaml", 0, ""},
		{"kubectl piped", "cat deploy.yaml | kubectl apply -f -", 2, "KUBECTL MUTATION BLOCKED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Dispatch(shellInv(tt.command))
			if res.ExitCode != tt.wantExit {
				t.Errorf("Dispatch(%q) exit = %d, want %d (stderr: %s)",
					tt.command, res.ExitCode, tt.wantExit, res.Stderr)
			}
			if tt.wantText == "" {
				if tt.wantExit == 0 && res.Stderr != "" {
					t.Errorf("Dispatch(%q) expected silent allow, got stderr: %s", tt.command, res.Stderr)
				}
			} else if !strings.Contains(res.Stderr, tt.wantText) {
				t.Errorf("Dispatch(%q) stderr missing %q:\n%s", tt.command, tt.wantText, res.Stderr)
			}
		})
	}
}

func TestDispatchProtectedFiles(t *testing.T) {
	engine := NewEngine(Options{})

	tests := []struct {
		name     string
		path     string
		wantExit int
	}{
		{"env file", ".env", 2},
		{"env local", ".env.local", 2},
		{"env in subdir", "services/api/.env", 2},
		{"env example allowed", ".env.example", 0},
		{"env sample allowed", "config/.env.sample", 0},
		{"env template allowed", ".env.template", 0},
		{"package lock", "package-lock.json", 2},
		{"yarn lock", "yarn.lock", 2},
		{"go sum", "go.sum", 2},
		{"git internals", ".git/config", 2},
		{"ssh key", "/home/u/.ssh/id_rsa", 2},
		{"pem file", "certs/server.pem", 2},
		{"ordinary source file", "src/main.go", 0},
		{"github workflows are not git internals", ".github/workflows/ci.yml", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Dispatch(fileInv(tt.path))
			if res.ExitCode != tt.wantExit {
				t.Errorf("Dispatch(%q) exit = %d, want %d (stderr: %s)",
					tt.path, res.ExitCode, tt.wantExit, res.Stderr)
			}
		})
	}
}

func TestDispatchStopsAtFirstBlock(t *testing.T) {
	engine := NewEngine(Options{})

	// Triggers both the destructive warn and the kubectl block: the warn
	// text is kept, the block text follows, and later domains never run.
	res := engine.Dispatch(shellInv("kubectl delete deployment web"))
	if res.ExitCode != ExitBlocked {
		t.Fatalf("exit = %d, want %d", res.ExitCode, ExitBlocked)
	}
	if !strings.Contains(res.Stderr, "DESTRUCTIVE COMMAND WARNING") {
		t.Error("accumulated warn text missing")
	}
	if !strings.Contains(res.Stderr, "KUBECTL MUTATION BLOCKED") {
		t.Error("block text missing")
	}
}

func TestDispatchDomainSelection(t *testing.T) {
	engine := NewEngine(Options{})

	res := engine.Dispatch(fileInv("notes.md"))
	for _, o := range res.Outcomes {
		if o.Domain != "protected-file" {
			t.Errorf("file invocation ran shell domain %s", o.Domain)
		}
	}

	res = engine.Dispatch(shellInv("ls"))
	if len(res.Outcomes) != 4 {
		t.Errorf("shell invocation ran %d domains, want 4", len(res.Outcomes))
	}
}

func TestEnforcementOverride(t *testing.T) {
	engine := NewEngine(Options{Enforcement: map[string]Level{
		"destructive-command": LevelBlock,
		"kubectl-mutation":    LevelWarn,
	}})

	res := engine.Dispatch(shellInv("rm -rf build/"))
	if res.ExitCode != ExitBlocked {
		t.Errorf("destructive block override: exit = %d, want %d", res.ExitCode, ExitBlocked)
	}

	res = engine.Dispatch(shellInv("kubectl apply -f deploy.yaml"))
	if res.ExitCode != 0 {
		t.Errorf("kubectl warn override: exit = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "KUBECTL MUTATION WARNING") {
		t.Errorf("kubectl warn override text missing:\n%s", res.Stderr)
	}
}

func TestCustomBranchOptions(t *testing.T) {
	engine := NewEngine(Options{
		BranchPrefix:    "team/",
		AllowedBranches: []string{"trunk"},
	})

	tests := []struct {
		command  string
		wantExit int
	}{
		{"git checkout -b team/feat/x", 0},
		{"git checkout -b trunk", 0},
		{"git checkout -b mriley/feat/x", 2},
	}
	for _, tt := range tests {
		res := engine.Dispatch(shellInv(tt.command))
		if res.ExitCode != tt.wantExit {
			t.Errorf("Dispatch(%q) exit = %d, want %d", tt.command, res.ExitCode, tt.wantExit)
		}
	}
}
