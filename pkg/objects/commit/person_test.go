package commit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerson(t *testing.T) {
	tests := []struct {
		name    string
		pName   string
		email   string
		wantErr bool
	}{
		{"valid", "John Doe", "john@example.com", false},
		{"trims", "  John  ", " john@example.com ", false},
		{"local email", "gitcore", "gitcore@localhost", false},
		{"empty name", "   ", "john@example.com", true},
		{"angle bracket in name", "John <x>", "john@example.com", true},
		{"empty email", "John", "", true},
		{"space in email", "John", "john @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPerson(tt.pName, tt.email, time.Unix(0, 0))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPerson_Format(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"+0000", "John Doe <john@example.com> 1609459200 +0000"},
		{"+0530", "John Doe <john@example.com> 1609459200 +0530"},
		{"-0800", "John Doe <john@example.com> 1609459200 -0800"},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			loc, err := ParseTimezone(tt.tz)
			require.NoError(t, err)
			p, err := NewPerson("John Doe", "john@example.com", time.Unix(1609459200, 0).In(loc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Format())

			back, err := ParsePerson(p.Format())
			require.NoError(t, err)
			assert.True(t, p.Equal(back))
		})
	}
}

func TestParsePerson_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"John Doe john@example.com 1609459200 +0000",
		"John Doe <john@example.com> notanumber +0000",
		"John Doe <john@example.com> 1609459200 0000",
		"<john@example.com> 1609459200 +0000",
	} {
		_, err := ParsePerson(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseTimezone(t *testing.T) {
	loc, err := ParseTimezone("-0230")
	require.NoError(t, err)
	_, offset := time.Unix(0, 0).In(loc).Zone()
	assert.Equal(t, -(2*3600 + 30*60), offset)

	for _, bad := range []string{"", "0000", "+00", "*0100", "+01ab", "+0175"} {
		_, err := ParseTimezone(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
