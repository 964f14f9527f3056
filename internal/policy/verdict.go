package policy

// Verdict is the three-valued outcome of classifying one invocation against
// one policy domain.
type Verdict int

const (
	Allow Verdict = iota
	Warn
	Block
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "ALLOW"
	case Warn:
		return "WARN"
	default:
		return "BLOCK"
	}
}

// Level is a domain's enforcement level for gated matches without an
// exception. LevelBlock is the strict, safety-preserving default; LevelWarn
// keeps the explanatory output but never fails the invocation.
type Level int

const (
	LevelBlock Level = iota
	LevelWarn
)

func (l Level) String() string {
	if l == LevelWarn {
		return "warn"
	}
	return "block"
}

// ParseLevel maps a config string to a Level. Unknown values fall back to
// block, the stricter choice.
func ParseLevel(s string) Level {
	if s == "warn" {
		return LevelWarn
	}
	return LevelBlock
}
