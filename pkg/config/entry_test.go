package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEntry_AsInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"positive", "42", 42, false},
		{"negative", "-10", -10, false},
		{"float", "3.14", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEntry("test.key", tt.value, UserLevel, "test").AsInt()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConversion(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigEntry_AsBoolean(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"YES", true, false},
		{"1", true, false},
		{"on", true, false},
		{"False", false, false},
		{"no", false, false},
		{"0", false, false},
		{"OFF", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := NewEntry("test.key", tt.value, UserLevel, "test").AsBoolean()
			if tt.wantErr {
				assert.True(t, IsConversion(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigEntry_AsList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"single item", "target", []string{"target"}},
		{"multiple items", ".git,target,debug", []string{".git", "target", "debug"}},
		{"items with spaces", ".git, target , debug", []string{".git", "target", "debug"}},
		{"empty string", "", []string{}},
		{"stray commas", ",a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewEntry("core.ignore", tt.value, UserLevel, "test").AsList())
		})
	}
}

func TestConfigEntry_Clone(t *testing.T) {
	original := NewEntry("user.name", "value", RepositoryLevel, "config.toml")
	clone := original.Clone()

	assert.Equal(t, original, clone)
	assert.NotSame(t, original, clone)

	clone.Value = "changed"
	assert.Equal(t, "value", original.Value)
}

func TestConfigSource(t *testing.T) {
	assert.True(t, CommandLineSource.IsCommandLine())
	assert.True(t, BuiltinSource.IsBuiltin())
	assert.True(t, NewFileSource("/tmp/config.toml").IsFile())
	assert.False(t, ConfigSource("").IsFile())
}

func TestConfigLevel(t *testing.T) {
	for _, level := range []ConfigLevel{CommandLineLevel, RepositoryLevel, UserLevel, BuiltinLevel} {
		parsed, err := ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
		assert.True(t, level.IsValid())
	}

	assert.True(t, RepositoryLevel.CanWrite())
	assert.True(t, UserLevel.CanWrite())
	assert.False(t, BuiltinLevel.CanWrite())
	assert.False(t, CommandLineLevel.CanWrite())

	_, err := ParseLevel("system")
	assert.Error(t, err)
}
