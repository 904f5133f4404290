package ignore

import "strings"

// NameSet decides which directory entries a tree walk skips. Entries are
// matched by name only, never by path.
type NameSet struct {
	patterns         []*Pattern
	negationPatterns []*Pattern
}

// NewNameSet builds a set from patterns, failing on the first invalid one.
func NewNameSet(patterns ...string) (*NameSet, error) {
	ns := &NameSet{}
	for _, p := range patterns {
		if err := ns.AddPattern(p); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// MustNameSet is NewNameSet for patterns known to be valid.
func MustNameSet(patterns ...string) *NameSet {
	ns, err := NewNameSet(patterns...)
	if err != nil {
		panic(err)
	}
	return ns
}

// Add adds a parsed pattern to the set
func (ns *NameSet) Add(pattern *Pattern) {
	if pattern.IsNegation {
		ns.negationPatterns = append(ns.negationPatterns, pattern)
	} else {
		ns.patterns = append(ns.patterns, pattern)
	}
}

// AddPattern parses and adds a single pattern.
func (ns *NameSet) AddPattern(raw string) error {
	p, err := ParsePattern(raw)
	if err != nil {
		return err
	}
	ns.Add(p)
	return nil
}

// AddPatternsFromText adds one pattern per line, skipping blanks and comments.
func (ns *NameSet) AddPatternsFromText(text string) error {
	for _, line := range strings.Split(text, "\n") {
		p, err := FromLine(line)
		if err != nil {
			return err
		}
		if p != nil {
			ns.Add(p)
		}
	}
	return nil
}

// IsIgnored reports whether an entry called name should be skipped.
// A matching negation pattern always keeps the entry.
func (ns *NameSet) IsIgnored(name string, isDirectory bool) bool {
	if ns == nil {
		return false
	}

	ignored := false
	for _, p := range ns.patterns {
		if p.Matches(name, isDirectory) {
			ignored = true
			break
		}
	}
	if !ignored {
		return false
	}

	for _, p := range ns.negationPatterns {
		if p.Matches(name, isDirectory) {
			return false
		}
	}
	return true
}

// Len returns the number of patterns in the set.
func (ns *NameSet) Len() int {
	return len(ns.patterns) + len(ns.negationPatterns)
}

// Patterns returns every pattern as written, ignore patterns first.
func (ns *NameSet) Patterns() []string {
	out := make([]string, 0, ns.Len())
	for _, p := range ns.patterns {
		out = append(out, p.String())
	}
	for _, p := range ns.negationPatterns {
		out = append(out, p.String())
	}
	return out
}
