package policy

import "github.com/mriley/hookguard/internal/hook"

// Classify evaluates the domain's pattern tables against one invocation in
// fixed precedence order: escape rules, then safe rules, then gated rules
// with exception downgrade. No match at all is an allow — the engine blocks
// only on positive identification of a gated pattern.
func (d *Domain) Classify(inv hook.Invocation) Decision {
	raw := inv.Raw()
	window := raw
	if d.Window != nil {
		window = d.Window(raw)
	}
	safeWindow := window
	if d.SafeWindow != nil {
		safeWindow = d.SafeWindow(raw)
	}

	for i := range d.Escape {
		r := &d.Escape[i]
		if r.Pattern.MatchString(raw) {
			return Decision{Verdict: Allow, Rule: r}
		}
	}

	for i := range d.Safe {
		r := &d.Safe[i]
		if r.Pattern.MatchString(matchTarget(r, raw, safeWindow)) {
			return Decision{Verdict: Allow, Rule: r}
		}
	}

	for i := range d.Gated {
		r := &d.Gated[i]
		m := r.Pattern.FindStringSubmatch(matchTarget(r, raw, window))
		if m == nil {
			continue
		}

		ctx := map[string]string{
			"raw":   raw,
			"match": d.extractToken(raw, m),
		}

		for j := range d.Exception {
			ex := &d.Exception[j]
			if ex.Pattern.MatchString(raw) {
				return Decision{Verdict: Warn, Rule: r, Exception: ex, Context: ctx}
			}
		}

		if d.Enforcement == LevelWarn {
			return Decision{Verdict: Warn, Rule: r, Context: ctx}
		}
		return Decision{Verdict: Block, Rule: r, Context: ctx}
	}

	return Decision{Verdict: Allow}
}

func matchTarget(r *Rule, raw, window string) string {
	if r.Whole {
		return raw
	}
	return window
}

func (d *Domain) extractToken(raw string, m []string) string {
	if d.Extract != nil {
		return d.Extract(raw)
	}
	if len(m) > 1 && m[1] != "" {
		return m[1]
	}
	return m[0]
}
