package sourcerepo

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/gitcore/pkg/commitmanager"
	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/common/logger"
	"github.com/utkarsh5026/gitcore/pkg/config"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/blob"
	"github.com/utkarsh5026/gitcore/pkg/objects/commit"
	"github.com/utkarsh5026/gitcore/pkg/objects/tree"
	"github.com/utkarsh5026/gitcore/pkg/repository/ignore"
	"github.com/utkarsh5026/gitcore/pkg/repository/refs"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
	"github.com/utkarsh5026/gitcore/pkg/store"
)

const pkgName = "sourcerepo"

// SourceRepository wires the object store, configuration, tree builder and
// commit manager of one working directory.
//
// ┌─ <working-directory>/
// │ ├─ .source/
// │ │ ├─ objects/
// │ │ │ ├─ ab/
// │ │ │ │ └─ cdef123...   zlib(<kind> <size>\0<payload>)
// │ │ │ └─ ...
// │ │ ├─ refs/
// │ │ │ ├─ heads/
// │ │ │ └─ tags/
// │ │ ├─ HEAD           ref: refs/heads/master
// │ │ └─ config.toml
// │ ├─ file1.txt
// │ └─ ...
type SourceRepository struct {
	fs          afero.Fs
	workingDir  scpath.RepositoryPath
	sourceDir   scpath.SourcePath
	objectStore *store.FileObjectStore
	resolver    *store.KindResolver
	refs        *refs.RefManager
	config      *config.Manager
	typed       *config.TypedConfig
	treeBuilder *commitmanager.TreeBuilder
	commits     *commitmanager.Manager
	logger      *slog.Logger
}

var _ Repository = (*SourceRepository)(nil)

// newSourceRepository wires every component around an existing .source
// directory and loads its configuration.
func newSourceRepository(ctx context.Context, path scpath.RepositoryPath, o *options) (*SourceRepository, error) {
	log := logger.OrDefault(o.logger).With("repo", path.String())
	sourceDir := path.SourcePath()

	cfg := config.NewManager(o.fs, sourceDir, o.configOptions()...)
	for key, value := range o.overrides {
		cfg.SetCommandLine(key, value)
	}
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}
	typed := config.NewTypedConfig(cfg)

	ignored, err := ignore.NewNameSet(typed.IgnoredNames()...)
	if err != nil {
		return nil, NewRepoError("open", path, err)
	}
	// The metadata directory is never snapshotted, whatever the config says.
	if err := ignored.AddPattern(scpath.SourceDir); err != nil {
		return nil, NewRepoError("open", path, err)
	}

	objectStore := store.NewFileObjectStore(o.fs, sourceDir.ObjectsPath(),
		store.WithLogger(log), store.WithVerify(o.verify))

	resolver, err := store.NewKindResolver(objectStore, o.cacheSize)
	if err != nil {
		return nil, NewRepoError("open", path, err)
	}

	return &SourceRepository{
		fs:          o.fs,
		workingDir:  path,
		sourceDir:   sourceDir,
		objectStore: objectStore,
		resolver:    resolver,
		refs:        refs.NewRefManager(o.fs, sourceDir),
		config:      cfg,
		typed:       typed,
		treeBuilder: commitmanager.NewTreeBuilder(o.fs, objectStore, ignored, log),
		commits:     commitmanager.NewManager(objectStore, typed, o.clock, log),
		logger:      log,
	}, nil
}

// WorkingDirectory returns the path to the repository's working directory
func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath {
	return sr.workingDir
}

// SourceDirectory returns the path to the .source directory
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath {
	return sr.sourceDir
}

// ObjectStore returns the object store for this repository
func (sr *SourceRepository) ObjectStore() store.ObjectStore {
	return sr.objectStore
}

// Config returns the configuration manager loaded for this repository
func (sr *SourceRepository) Config() *config.Manager {
	return sr.config
}

// TypedConfig returns typed accessors over Config
func (sr *SourceRepository) TypedConfig() *config.TypedConfig {
	return sr.typed
}

// Refs returns the reference manager for this repository
func (sr *SourceRepository) Refs() *refs.RefManager {
	return sr.refs
}

// ObjectCount returns the number of stored objects
func (sr *SourceRepository) ObjectCount() (int, error) {
	return sr.objectStore.ObjectCount()
}

// WriteBlob stores the file at path as a blob. Relative paths are taken
// from the working directory.
func (sr *SourceRepository) WriteBlob(path string) (objects.ObjectHash, error) {
	obj, err := blob.Open(sr.fs, sr.resolve(path))
	if err != nil {
		return objects.ZeroHash, err
	}
	defer obj.Close()

	return sr.objectStore.WriteObject(obj)
}

// HashBlob computes the blob hash of the file at path without touching the
// store.
func (sr *SourceRepository) HashBlob(path string) (objects.ObjectHash, error) {
	obj, err := blob.Open(sr.fs, sr.resolve(path))
	if err != nil {
		return objects.ZeroHash, err
	}
	defer obj.Close()

	return obj.Hash()
}

// ReadObject opens a stored object. The caller must Close it.
func (sr *SourceRepository) ReadObject(hash objects.ObjectHash) (*objects.Object, error) {
	return sr.objectStore.ReadObject(hash)
}

// ReadTree decodes the tree stored under hash. Every entry's kind is
// resolved through the store, so entries whose objects are missing fail.
func (sr *SourceRepository) ReadTree(hash objects.ObjectHash) (*tree.Tree, error) {
	obj, err := sr.objectStore.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return tree.FromObject(obj, sr.resolver)
}

// ReadCommit decodes the commit stored under hash.
func (sr *SourceRepository) ReadCommit(ctx context.Context, hash objects.ObjectHash) (*commit.Commit, error) {
	return sr.commits.GetCommit(ctx, hash)
}

// BuildTree snapshots dir into the store. Relative paths are taken from
// the working directory.
func (sr *SourceRepository) BuildTree(ctx context.Context, dir string) (objects.ObjectHash, bool, error) {
	return sr.treeBuilder.BuildTree(ctx, sr.resolve(dir))
}

// BuildCommit stores a commit of treeHash with an optional parent, signed
// with the configured identity.
func (sr *SourceRepository) BuildCommit(ctx context.Context, treeHash objects.ObjectHash, parentHash *objects.ObjectHash, message string) (objects.ObjectHash, error) {
	return sr.commits.BuildCommit(ctx, treeHash, parentHash, message)
}

// ResolveObjectName turns a full hex object name or a reference name (HEAD,
// refs/..., a branch or a tag) into a hash.
func (sr *SourceRepository) ResolveObjectName(name string) (objects.ObjectHash, error) {
	if len(name) == objects.HashLength {
		if hash, err := objects.ParseObjectHash(name); err == nil {
			return hash, nil
		}
	}
	return sr.refs.ResolveName(name)
}

// UpdateRef points ref at hash. The object must already be stored.
func (sr *SourceRepository) UpdateRef(ref refs.RefPath, hash objects.ObjectHash) error {
	ok, err := sr.objectStore.Exists(hash)
	if err != nil {
		return err
	}
	if !ok {
		return scerr.NotFound(pkgName, "update_ref", fmt.Sprintf("object %s does not exist", hash), nil).
			WithContext("hash", hash.String())
	}

	if err := sr.refs.UpdateRef(ref, hash); err != nil {
		return err
	}
	sr.logger.Debug("updated reference", "ref", ref.String(), "hash", hash.String())
	return nil
}

func (sr *SourceRepository) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return sr.workingDir.Join(path)
}
