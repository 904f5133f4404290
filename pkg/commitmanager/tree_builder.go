package commitmanager

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/common/fileops"
	"github.com/utkarsh5026/gitcore/pkg/common/logger"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/blob"
	"github.com/utkarsh5026/gitcore/pkg/objects/tree"
	"github.com/utkarsh5026/gitcore/pkg/repository/ignore"
	"github.com/utkarsh5026/gitcore/pkg/store"
)

const (
	// concurrencyThreshold is the minimum number of subdirectories
	// required before using concurrent processing.
	concurrencyThreshold = 3
)

// TreeBuilder snapshots a directory on disk into tree and blob objects.
//
// For a working directory like:
//
//	README.md
//	src/main.go
//	src/empty/
//	.git/...
//
// it stores a blob for every file, a tree for src, and a root tree:
//
//	root/
//	  ├── README.md (blob)
//	  └── src/ (tree)
//	      └── main.go (blob)
//
// Ignored names (.git here) and directories that end up empty contribute
// nothing.
type TreeBuilder struct {
	fs      afero.Fs
	store   store.ObjectStore
	ignored *ignore.NameSet
	logger  *slog.Logger
	workers int
}

// NewTreeBuilder creates a TreeBuilder. A nil ignored set skips nothing and a
// nil logger uses the package default.
func NewTreeBuilder(fsys afero.Fs, objectStore store.ObjectStore, ignored *ignore.NameSet, log *slog.Logger) *TreeBuilder {
	return &TreeBuilder{
		fs:      fsys,
		store:   objectStore,
		ignored: ignored,
		logger:  logger.OrDefault(log).With("component", "treebuilder"),
		workers: runtime.GOMAXPROCS(0),
	}
}

// BuildTree stores the tree for dir and everything beneath it. ok is false
// when nothing under dir survives ignoring and elision, in which case no
// tree object is written.
//
// Children are persisted before their parent is hashed. An unreadable child
// directory is logged and skipped; a file that cannot be read fails the
// whole build.
func (tb *TreeBuilder) BuildTree(ctx context.Context, dir string) (hash objects.ObjectHash, ok bool, err error) {
	return tb.buildTree(ctx, dir, true)
}

func (tb *TreeBuilder) buildTree(ctx context.Context, dir string, isRoot bool) (objects.ObjectHash, bool, error) {
	if err := ctx.Err(); err != nil {
		return objects.ZeroHash, false, err
	}

	names, err := tb.listDir(dir)
	if err != nil {
		if isRoot {
			return objects.ZeroHash, false, scerr.New(pkgName, scerr.CodeIO, "build_tree", "", err).
				WithContext("path", dir)
		}
		tb.logger.Warn("skipping unreadable directory", "path", dir, "error", err)
		return objects.ZeroHash, false, nil
	}

	entries := make([]*tree.TreeEntry, 0, len(names))
	var subdirs []string

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return objects.ZeroHash, false, err
		}

		path := filepath.Join(dir, name)
		info, err := fileops.Lstat(tb.fs, path)
		if err != nil {
			tb.logger.Warn("skipping entry without metadata", "path", path, "error", err)
			continue
		}

		if tb.ignored.IsIgnored(name, info.IsDir()) {
			continue
		}

		if info.IsDir() {
			subdirs = append(subdirs, name)
			continue
		}

		if !objects.IsStorable(info.Mode()) {
			tb.logger.Warn("skipping special file", "path", path, "mode", info.Mode().String())
			continue
		}

		entry, err := tb.buildFileEntry(path, name, objects.FromOSFileMode(info.Mode()))
		if err != nil {
			return objects.ZeroHash, false, err
		}
		entries = append(entries, entry)
	}

	subdirEntries, err := tb.buildSubdirectoryEntries(ctx, dir, subdirs)
	if err != nil {
		return objects.ZeroHash, false, err
	}
	entries = append(entries, subdirEntries...)

	if len(entries) == 0 {
		return objects.ZeroHash, false, nil
	}

	hash, err := tb.writeTreeObject(entries)
	if err != nil {
		return objects.ZeroHash, false, err
	}
	return hash, true, nil
}

// listDir returns the names directly inside dir.
func (tb *TreeBuilder) listDir(dir string) ([]string, error) {
	f, err := tb.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdirnames(-1)
}

// buildFileEntry stores the blob for a file or symlink and returns its entry
func (tb *TreeBuilder) buildFileEntry(path, name string, mode objects.FileMode) (*tree.TreeEntry, error) {
	obj, err := blob.Open(tb.fs, path)
	if err != nil {
		return nil, fmt.Errorf("hash file %s: %w", path, err)
	}
	defer obj.Close()

	hash, err := tb.store.WriteObject(obj)
	if err != nil {
		return nil, fmt.Errorf("write blob for %s: %w", path, err)
	}

	entry, err := tree.NewTreeEntry(mode, name, hash)
	if err != nil {
		return nil, fmt.Errorf("create tree entry for file %s: %w", path, err)
	}
	return entry, nil
}

// buildSubdirectoryEntries builds the subtrees of dir. Elided subtrees
// produce no entry.
//
// Directories with at least concurrencyThreshold subdirectories build them
// in parallel; fewer are built sequentially to avoid goroutine overhead.
func (tb *TreeBuilder) buildSubdirectoryEntries(ctx context.Context, dir string, names []string) ([]*tree.TreeEntry, error) {
	if len(names) == 0 {
		return nil, nil
	}

	results := make([]*tree.TreeEntry, len(names))

	if len(names) < concurrencyThreshold {
		for i, name := range names {
			entry, err := tb.buildSubdirectoryEntry(ctx, dir, name)
			if err != nil {
				return nil, err
			}
			results[i] = entry
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(tb.workers)
		for i, name := range names {
			g.Go(func() error {
				entry, err := tb.buildSubdirectoryEntry(gctx, dir, name)
				if err != nil {
					return err
				}
				results[i] = entry
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	entries := make([]*tree.TreeEntry, 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// buildSubdirectoryEntry builds a single subdirectory tree and creates its
// entry. It returns nil when the subtree is elided.
func (tb *TreeBuilder) buildSubdirectoryEntry(ctx context.Context, dir, name string) (*tree.TreeEntry, error) {
	hash, ok, err := tb.buildTree(ctx, filepath.Join(dir, name), false)
	if err != nil || !ok {
		return nil, err
	}

	entry, err := tree.NewTreeEntry(objects.FileModeDirectory, name, hash)
	if err != nil {
		return nil, fmt.Errorf("create tree entry for directory %s: %w", name, err)
	}
	return entry, nil
}

// writeTreeObject sorts entries canonically and persists the tree
func (tb *TreeBuilder) writeTreeObject(entries []*tree.TreeEntry) (objects.ObjectHash, error) {
	t := tree.NewTree(entries)
	hash, err := tb.store.WriteObject(t.Object())
	if err != nil {
		return objects.ZeroHash, fmt.Errorf("write tree: %w", err)
	}
	return hash, nil
}
