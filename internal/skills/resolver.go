// Package skills resolves which skill documents apply to a file. It is a
// pure lookup: manifest-driven, side-effect-free, and it never rejects —
// the result is a recommendation set, not a verdict.
package skills

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// contentSampleLen bounds how much of the target file is scanned for
// content hints.
const contentSampleLen = 2000

// Manifest declares the four independent selection mechanisms.
type Manifest struct {
	Always       []string            `json:"always"`
	Extensions   map[string][]string `json:"extensions"`
	Paths        map[string][]string `json:"paths"`
	ContentHints map[string][]string `json:"content_hints"`
}

// Resolver resolves skill documents from a manifest rooted at Dir.
type Resolver struct {
	Dir      string
	manifest Manifest
}

// NewResolver loads Dir/manifest.json. A missing manifest yields an empty
// resolver; a malformed or schema-invalid one is an error so the operator
// can fix it, though callers are expected to degrade to an empty set rather
// than fail the invocation.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{Dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return r, fmt.Errorf("reading manifest: %w", err)
	}

	if errs, err := validateManifest(data); err != nil {
		return r, err
	} else if len(errs) > 0 {
		return r, fmt.Errorf("invalid manifest: %s", strings.Join(errs, "; "))
	}

	if err := json.Unmarshal(data, &r.manifest); err != nil {
		return r, fmt.Errorf("parsing manifest: %w", err)
	}
	return r, nil
}

// Resolve returns the union of all matching skill documents for the target
// path, restricted to markdown files, deduplicated and sorted.
func (r *Resolver) Resolve(target string) []string {
	matched := map[string]bool{}

	add := func(patterns []string) {
		for _, doc := range r.resolvePatterns(patterns) {
			if filepath.Ext(doc) == ".md" {
				matched[doc] = true
			}
		}
	}

	add(r.manifest.Always)

	ext := strings.ToLower(filepath.Ext(target))
	if patterns, ok := r.manifest.Extensions[ext]; ok {
		add(patterns)
	}

	for glob, patterns := range r.manifest.Paths {
		if fnmatch(glob, target) {
			add(patterns)
		}
	}

	if content := contentSample(target); content != "" {
		for pattern, patterns := range r.manifest.ContentHints {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				// Invalid hint patterns are skipped, not fatal.
				continue
			}
			if re.MatchString(content) {
				add(patterns)
			}
		}
	}

	docs := make([]string, 0, len(matched))
	for doc := range matched {
		docs = append(docs, doc)
	}
	sort.Strings(docs)
	return docs
}

// resolvePatterns expands glob patterns and literal filenames relative to
// the skills directory, keeping only files that exist.
func (r *Resolver) resolvePatterns(patterns []string) []string {
	var resolved []string
	for _, pattern := range patterns {
		if strings.Contains(pattern, "*") {
			hits, err := filepath.Glob(filepath.Join(r.Dir, pattern))
			if err != nil {
				continue
			}
			resolved = append(resolved, hits...)
			continue
		}
		path := filepath.Join(r.Dir, pattern)
		if _, err := os.Stat(path); err == nil {
			resolved = append(resolved, path)
		}
	}
	return resolved
}

// contentSample reads a bounded prefix of the target file. Missing or
// unreadable files are treated as empty content, never as an error.
func contentSample(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, contentSampleLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	return string(buf[:n])
}

// fnmatch implements shell-style matching where * crosses path separators,
// matching the resolver's historical path-glob semantics.
func fnmatch(pattern, name string) bool {
	var b strings.Builder
	b.WriteString("^")
	for _, ch := range pattern {
		switch ch {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(name)
}
