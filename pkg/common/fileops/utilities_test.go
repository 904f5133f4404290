package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/w/test.txt", []byte("test"), 0o644))
	require.NoError(t, fsys.MkdirAll("/w/dir", 0o755))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"file exists", "/w/test.txt", true},
		{"directory exists", "/w/dir", true},
		{"missing", "/w/nonexistent.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Exists(fsys, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	fsys := afero.NewMemMapFs()

	require.NoError(t, EnsureDir(fsys, "/a/b/c"))
	isDir, err := IsDirectory(fsys, "/a/b/c")
	require.NoError(t, err)
	assert.True(t, isDir)

	// existing directory is fine
	require.NoError(t, EnsureDir(fsys, "/a/b/c"))
}

func TestReadBytes(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg", []byte("k = 1"), 0o644))

	data, err := ReadBytes(fsys, "/cfg")
	require.NoError(t, err)
	assert.Equal(t, "k = 1", string(data))

	data, err = ReadBytes(fsys, "/missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestIsDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/w/f", []byte("x"), 0o644))

	isDir, err := IsDirectory(fsys, "/w")
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = IsDirectory(fsys, "/w/f")
	require.NoError(t, err)
	assert.False(t, isDir)

	isDir, err = IsDirectory(fsys, "/nope")
	require.NoError(t, err)
	assert.False(t, isDir)
}

func TestLstatAndReadlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("hi"), 0o644))
	if err := os.Symlink("target.txt", link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	fsys := afero.NewOsFs()

	info, err := Lstat(fsys, link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	got, ok, err := Readlink(fsys, link)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "target.txt", got)
}

func TestReadlink_Unsupported(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, ok, err := Readlink(fsys, "/x")
	require.NoError(t, err)
	assert.False(t, ok)
}
