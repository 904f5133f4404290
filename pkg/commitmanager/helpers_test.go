package commitmanager

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitcore/pkg/common/logger"
	"github.com/utkarsh5026/gitcore/pkg/config"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/repository/ignore"
	"github.com/utkarsh5026/gitcore/pkg/store"
)

const (
	testRepo    = "/repo"
	testObjects = "/repo/.source/objects"
)

var errInjected = errors.New("injected failure")

// trackingFs records every path it is asked about and fails Open for
// paths listed in failOpen.
type trackingFs struct {
	afero.Fs
	mu       sync.Mutex
	touched  []string
	failOpen map[string]bool
}

func newTrackingFs(base afero.Fs, failOpen ...string) *trackingFs {
	fails := make(map[string]bool, len(failOpen))
	for _, p := range failOpen {
		fails[p] = true
	}
	return &trackingFs{Fs: base, failOpen: fails}
}

func (t *trackingFs) record(name string) {
	t.mu.Lock()
	t.touched = append(t.touched, name)
	t.mu.Unlock()
}

func (t *trackingFs) Open(name string) (afero.File, error) {
	t.record(name)
	if t.failOpen[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return t.Fs.Open(name)
}

func (t *trackingFs) Stat(name string) (os.FileInfo, error) {
	t.record(name)
	return t.Fs.Stat(name)
}

// specialFs reports the listed paths as pipes, sockets or devices and fails
// any attempt to open them.
type specialFs struct {
	afero.Fs
	modes map[string]os.FileMode
}

type specialInfo struct {
	os.FileInfo
	mode os.FileMode
}

func (s specialInfo) Mode() os.FileMode { return s.mode }

func (s *specialFs) Stat(name string) (os.FileInfo, error) {
	info, err := s.Fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if mode, ok := s.modes[name]; ok {
		return specialInfo{FileInfo: info, mode: mode}, nil
	}
	return info, nil
}

func (s *specialFs) Open(name string) (afero.File, error) {
	if _, ok := s.modes[name]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return s.Fs.Open(name)
}

func (t *trackingFs) touchedUnder(prefix string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []string
	for _, p := range t.touched {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
}

func defaultIgnored() *ignore.NameSet {
	return ignore.MustNameSet(config.DefaultIgnoredNames...)
}

func newTestStore(fsys afero.Fs) *store.FileObjectStore {
	return store.NewFileObjectStore(fsys, testObjects, store.WithLogger(logger.Discard()))
}

func newTestTreeBuilder(fsys afero.Fs, objectStore store.ObjectStore) *TreeBuilder {
	return NewTreeBuilder(fsys, objectStore, defaultIgnored(), logger.Discard())
}

func readAll(t *testing.T, s store.ObjectStore, hash objects.ObjectHash) (objects.ObjectKind, []byte) {
	t.Helper()
	obj, err := s.ReadObject(hash)
	require.NoError(t, err)
	data, err := obj.ReadAll()
	require.NoError(t, err)
	return obj.Kind, data
}
