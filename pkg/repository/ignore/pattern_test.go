package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatternConfig(t *testing.T) {
	tests := []struct {
		pattern string
		want    PatternConfig
	}{
		{"target", PatternConfig{CleanedPattern: "target"}},
		{"!keep.log", PatternConfig{IsNegation: true, CleanedPattern: "keep.log"}},
		{"build/", PatternConfig{IsDirOnly: true, CleanedPattern: "build"}},
		{"!out/", PatternConfig{IsNegation: true, IsDirOnly: true, CleanedPattern: "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPatternConfig(tt.pattern))
		})
	}
}

func TestParsePattern_Invalid(t *testing.T) {
	for _, raw := range []string{"", "!", "/", "a/b", "src/*.go", "[a-"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParsePattern(raw)
			assert.Error(t, err)
		})
	}
}

func TestPattern_Matches(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		isDir   bool
		want    bool
	}{
		{".git", ".git", true, true},
		{".git", ".github", true, false},
		{"target", "target", false, true},
		{"*.log", "debug.log", false, true},
		{"*.log", "log", false, false},
		{"?.txt", "a.txt", false, true},
		{"?.txt", "ab.txt", false, false},
		{"[ab].c", "b.c", false, true},
		{"build/", "build", true, true},
		{"build/", "build", false, false},
		{`a\*b`, "a*b", false, true},
		{`a\*b`, "axb", false, false},
		{`trail\ `, "trail ", false, true},
		{"name   ", "name", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			p, err := ParsePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Matches(tt.name, tt.isDir))
		})
	}
}

func TestFromLine(t *testing.T) {
	p, err := FromLine("# comment")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = FromLine("   ")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = FromLine("  *.tmp")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Matches("x.tmp", false))
}

func TestTrimTrailingWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"abc  \t", "abc"},
		{`abc\ `, `abc\ `},
		{`abc\  `, `abc\ `},
		{`abc\\ `, `abc\\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, trimTrailingWhitespace(tt.in), "input %q", tt.in)
	}
}

func TestUnescapePattern(t *testing.T) {
	assert.Equal(t, "plain", unescapePattern("plain"))
	assert.Equal(t, "a*b", unescapePattern(`a\*b`))
	assert.Equal(t, `a\b`, unescapePattern(`a\\b`))
}
