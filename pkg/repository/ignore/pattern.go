package ignore

import (
	"fmt"
	"path"
	"strings"
)

const (
	NegationPrefix  = '!'
	DirectorySuffix = '/'
	CommentPrefix   = '#'
)

// PatternConfig holds the parsed configuration of an ignore pattern
type PatternConfig struct {
	IsNegation     bool
	IsDirOnly      bool
	CleanedPattern string
}

// NewPatternConfig parses a pattern string and extracts its configuration
func NewPatternConfig(pattern string) PatternConfig {
	var config PatternConfig

	if after, found := strings.CutPrefix(pattern, string(NegationPrefix)); found {
		config.IsNegation = true
		pattern = after
	}

	if before, found := strings.CutSuffix(pattern, string(DirectorySuffix)); found {
		config.IsDirOnly = true
		pattern = before
	}

	config.CleanedPattern = pattern
	return config
}

// Pattern matches a single directory entry name.
//
// Pattern Rules:
//   - ! prefix negates the pattern (keeps entries another pattern drops)
//   - / suffix matches only directories
//   - *, ? and [...] follow path.Match and never cross a '/'
//   - \ escapes the next character
//
// Examples:
//   - target       → skip any entry named target
//   - *.log        → skip every .log file
//   - build/       → skip build directories but not a file named build
//   - !keep.log    → keep keep.log even though *.log matches it
type Pattern struct {
	Pattern         string
	OriginalPattern string
	IsNegation      bool
	IsDirOnly       bool
	isGlob          bool
}

// ParsePattern parses one pattern. The pattern must describe a single path
// component.
func ParsePattern(raw string) (*Pattern, error) {
	line := trimTrailingWhitespace(raw)
	config := NewPatternConfig(line)

	if config.CleanedPattern == "" {
		return nil, fmt.Errorf("ignore pattern %q is empty", raw)
	}
	if strings.ContainsRune(config.CleanedPattern, '/') {
		return nil, fmt.Errorf("ignore pattern %q must be a single path component", raw)
	}

	glob := containsWildcard(config.CleanedPattern)
	cleaned := config.CleanedPattern
	if glob {
		if _, err := path.Match(cleaned, ""); err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", raw, err)
		}
	} else {
		cleaned = unescapePattern(cleaned)
	}

	return &Pattern{
		Pattern:         cleaned,
		OriginalPattern: raw,
		IsNegation:      config.IsNegation,
		IsDirOnly:       config.IsDirOnly,
		isGlob:          glob,
	}, nil
}

// FromLine parses a line of an ignore list. Blank lines and comments yield nil.
func FromLine(line string) (*Pattern, error) {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" || strings.HasPrefix(trimmed, string(CommentPrefix)) {
		return nil, nil
	}
	return ParsePattern(trimmed)
}

// Matches reports whether the entry name matches, ignoring negation.
func (p *Pattern) Matches(name string, isDirectory bool) bool {
	if p.IsDirOnly && !isDirectory {
		return false
	}
	if !p.isGlob {
		return name == p.Pattern
	}
	matched, err := path.Match(p.Pattern, name)
	return err == nil && matched
}

// String returns the pattern as it was written.
func (p *Pattern) String() string {
	return p.OriginalPattern
}

// trimTrailingWhitespace removes trailing whitespace unless escaped with backslash
func trimTrailingWhitespace(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == line {
		return line
	}

	backslashCount := 0
	for i := len(trimmed) - 1; i >= 0 && trimmed[i] == '\\'; i-- {
		backslashCount++
	}

	// An odd run of backslashes escapes the first trailing blank.
	if backslashCount%2 == 1 {
		return line[:len(trimmed)+1]
	}
	return trimmed
}

// unescapePattern removes escape sequences from the pattern
func unescapePattern(pattern string) string {
	if !strings.ContainsRune(pattern, '\\') {
		return pattern
	}

	var result strings.Builder
	result.Grow(len(pattern))
	escaped := false

	for _, ch := range pattern {
		if escaped {
			result.WriteRune(ch)
			escaped = false
		} else if ch == '\\' {
			escaped = true
		} else {
			result.WriteRune(ch)
		}
	}

	return result.String()
}

// containsWildcard checks if the pattern contains glob wildcards
func containsWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
