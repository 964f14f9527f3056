// Package config loads hookguard configuration.
// Configuration is loaded from (highest to lowest priority):
// 1. Environment variables (HOOKGUARD_*)
// 2. Project config (.hookguard.yaml in cwd)
// 3. Home config (~/.config/hookguard/config.yaml)
// 4. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mriley/hookguard/internal/policy"
)

// Config holds all hookguard configuration.
type Config struct {
	// Enforcement maps domain name to "warn" or "block". Unset domains keep
	// their shipped defaults.
	Enforcement map[string]string `yaml:"enforcement" json:"enforcement"`

	Branch  BranchConfig  `yaml:"branch" json:"branch"`
	Kubectl KubectlConfig `yaml:"kubectl" json:"kubectl"`
	Skills  SkillsConfig  `yaml:"skills" json:"skills"`
	Audit   AuditConfig   `yaml:"audit" json:"audit"`
}

// BranchConfig holds branch-prefix domain settings.
type BranchConfig struct {
	// RequiredPrefix is the mandatory branch name prefix. Default: mriley/.
	RequiredPrefix string `yaml:"required_prefix" json:"required_prefix"`
	// Allowed lists branch names exempt from the prefix rule.
	Allowed []string `yaml:"allowed" json:"allowed"`
}

// KubectlConfig holds kubectl-mutation domain settings.
type KubectlConfig struct {
	// BootstrapNamespaces are the namespaces whose mutations downgrade to a
	// warn with an override path. Default: argocd, argo-cd, argocd-system.
	BootstrapNamespaces []string `yaml:"bootstrap_namespaces" json:"bootstrap_namespaces"`
}

// SkillsConfig holds skill resolver settings.
type SkillsConfig struct {
	// Dir is the skills directory holding manifest.json and the skill
	// documents. Default: ~/.claude/skills.
	Dir string `yaml:"dir" json:"dir"`
}

// AuditConfig holds decision log settings.
type AuditConfig struct {
	// Disabled turns off the decision log.
	Disabled bool `yaml:"disabled" json:"disabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Enforcement: map[string]string{},
		Branch: BranchConfig{
			RequiredPrefix: "mriley/",
			Allowed:        []string{"main", "master", "develop", "dev"},
		},
		Kubectl: KubectlConfig{
			BootstrapNamespaces: []string{"argocd", "argo-cd", "argocd-system"},
		},
		Skills: SkillsConfig{
			Dir: filepath.Join(home, ".claude", "skills"),
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the home
// config file, then the project config file, then environment variables.
// Missing files are fine; unreadable or malformed files are an error.
func Load() (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err == nil {
		if err := mergeFile(cfg, filepath.Join(home, ".config", "hookguard", "config.yaml")); err != nil {
			return nil, err
		}
	}
	if err := mergeFile(cfg, ".hookguard.yaml"); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HOOKGUARD_BRANCH_PREFIX"); v != "" {
		cfg.Branch.RequiredPrefix = v
	}
	if v := os.Getenv("HOOKGUARD_SKILLS_DIR"); v != "" {
		cfg.Skills.Dir = v
	}
	if os.Getenv("HOOKGUARD_AUDIT_DISABLED") == "1" {
		cfg.Audit.Disabled = true
	}
}

// Disabled reports whether the global kill switch is set. The gate allows
// everything when disabled, so operators can drop enforcement without code
// changes.
func Disabled() bool {
	return os.Getenv("HOOKGUARD_DISABLED") == "1"
}

// PolicyOptions translates the configuration into policy engine options.
func (c *Config) PolicyOptions() policy.Options {
	enforcement := make(map[string]policy.Level, len(c.Enforcement))
	for domain, level := range c.Enforcement {
		enforcement[domain] = policy.ParseLevel(level)
	}
	return policy.Options{
		BranchPrefix:        c.Branch.RequiredPrefix,
		AllowedBranches:     c.Branch.Allowed,
		BootstrapNamespaces: c.Kubectl.BootstrapNamespaces,
		Enforcement:         enforcement,
	}
}
