package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefPath(t *testing.T) {
	tests := []struct {
		ref    RefPath
		valid  bool
		branch bool
		tag    bool
		short  string
	}{
		{"refs/heads/main", true, true, false, "main"},
		{"refs/tags/v1.0.0", true, false, true, "v1.0.0"},
		{"HEAD", true, false, false, "HEAD"},
		{"refs/heads/a..b", false, true, false, "a..b"},
		{".hidden", false, false, false, ".hidden"},
		{"refs/heads/x~1", false, true, false, "x~1"},
	}

	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.ref.IsValid())
			assert.Equal(t, tt.branch, tt.ref.IsBranch())
			assert.Equal(t, tt.tag, tt.ref.IsTag())
			assert.Equal(t, tt.short, tt.ref.ShortName())
		})
	}
	assert.True(t, RefHEAD.IsHEAD())
}

func TestNewBranchAndTagRef(t *testing.T) {
	ref, err := NewBranchRef("feature")
	require.NoError(t, err)
	assert.Equal(t, RefPath("refs/heads/feature"), ref)

	ref, err = NewTagRef("v2")
	require.NoError(t, err)
	assert.Equal(t, RefPath("refs/tags/v2"), ref)

	_, err = NewBranchRef("")
	assert.Error(t, err)
	_, err = NewTagRef("bad name")
	assert.Error(t, err)
}
