package blob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

func TestNewBlob(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		hash string
	}{
		{"empty blob", []byte{}, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"simple text", []byte("hi"), "32f95c0d1244a78b2be1bab8de17906fabb2c4a8"},
		{"with newline", []byte("hello world\n"), "3b18e512dba79e4c8300dd08aeb37f8e728b8dad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBlob(tt.data)
			assert.Equal(t, int64(len(tt.data)), b.Size())
			assert.Equal(t, tt.hash, b.Hash().String())

			h, err := b.Object().Hash()
			require.NoError(t, err)
			assert.Equal(t, b.Hash(), h)
		})
	}
}

func TestOpen_RegularFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/w/a.txt", []byte("hi"), 0o644))

	obj, err := Open(fsys, "/w/a.txt")
	require.NoError(t, err)
	defer obj.Close()

	assert.Equal(t, objects.BlobKind, obj.Kind)
	assert.Equal(t, int64(2), obj.Size)

	h, err := obj.Hash()
	require.NoError(t, err)
	assert.Equal(t, "32f95c0d1244a78b2be1bab8de17906fabb2c4a8", h.String())
}

func TestOpen_Errors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/w/dir", 0o755))

	_, err := Open(fsys, "/w/missing")
	assert.True(t, objects.IsIO(err))

	_, err = Open(fsys, "/w/dir")
	assert.Error(t, err)
}

func TestOpen_Symlink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target.txt"), []byte("payload"), 0o644))
	if err := os.Symlink("target.txt", filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	obj, err := Open(afero.NewOsFs(), filepath.Join(dir, "link"))
	require.NoError(t, err)
	defer obj.Close()

	data, err := obj.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "target.txt", string(data))
}
