package refs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/common/fileops"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
)

const pkgName = "refs"

const (
	// SymbolicRefPrefix is the prefix for symbolic references
	SymbolicRefPrefix = "ref: "

	// MaxRefDepth is the maximum depth for resolving symbolic references
	MaxRefDepth = 10
)

// RefManager reads and writes reference files: HEAD and everything under
// refs/. A reference holds either a hash or "ref: <other ref>".
type RefManager struct {
	fs       afero.Fs
	refsPath scpath.SourcePath
	headPath scpath.SourcePath
}

// NewRefManager creates a reference manager for the given .source directory
func NewRefManager(fsys afero.Fs, sourceDir scpath.SourcePath) *RefManager {
	return &RefManager{
		fs:       fsys,
		refsPath: sourceDir.RefsPath(),
		headPath: sourceDir.HeadPath(),
	}
}

// Init creates refs/heads and refs/tags and points HEAD at the default
// branch, which stays unborn until something updates it.
func (rm *RefManager) Init() error {
	for _, dir := range []string{"heads", "tags"} {
		if err := fileops.EnsureDir(rm.fs, rm.refsPath.Join(dir).String()); err != nil {
			return scerr.IO(pkgName, "init", err)
		}
	}

	head := SymbolicRefPrefix + headsPrefix + DefaultBranch + "\n"
	if err := fileops.AtomicWrite(rm.fs, rm.headPath.String(), []byte(head), 0o644); err != nil {
		return scerr.IO(pkgName, "init", err)
	}
	return nil
}

// ReadRef returns the trimmed content of a reference file
func (rm *RefManager) ReadRef(ref RefPath) (string, error) {
	data, err := fileops.ReadBytes(rm.fs, rm.resolveReferencePath(ref).String())
	if err != nil {
		return "", scerr.IO(pkgName, "read_ref", err)
	}
	if data == nil {
		return "", scerr.NotFound(pkgName, "read_ref", fmt.Sprintf("reference %s does not exist", ref), nil).
			WithContext("ref", ref.String())
	}
	return strings.TrimSpace(string(data)), nil
}

// UpdateRef points ref at hash. Updating a symbolic reference such as
// HEAD updates the reference it names.
func (rm *RefManager) UpdateRef(ref RefPath, hash objects.ObjectHash) error {
	if !ref.IsValid() {
		return scerr.New(pkgName, scerr.CodeInvalidInput, "update_ref", fmt.Sprintf("invalid reference name %q", ref), nil)
	}
	if hash.IsZero() {
		return scerr.New(pkgName, scerr.CodeInvalidInput, "update_ref", "cannot point a reference at the zero hash", nil)
	}

	target, err := rm.symbolicTarget(ref)
	if err != nil {
		return err
	}

	fullPath := rm.resolveReferencePath(target).String()
	if err := fileops.EnsureDir(rm.fs, filepath.Dir(fullPath)); err != nil {
		return scerr.IO(pkgName, "update_ref", err)
	}

	content := hash.String() + "\n"
	if err := fileops.AtomicWrite(rm.fs, fullPath, []byte(content), 0o644); err != nil {
		return scerr.IO(pkgName, "update_ref", err)
	}
	return nil
}

// ResolveToHash resolves a reference to a hash, following symbolic refs.
// A branch that HEAD names but that was never written is NOT_FOUND.
func (rm *RefManager) ResolveToHash(ref RefPath) (objects.ObjectHash, error) {
	currentRef := ref

	for range MaxRefDepth {
		content, err := rm.ReadRef(currentRef)
		if err != nil {
			return objects.ZeroHash, err
		}

		if after, ok := strings.CutPrefix(content, SymbolicRefPrefix); ok {
			currentRef = RefPath(strings.TrimSpace(after))
			continue
		}

		hash, err := objects.ParseObjectHash(content)
		if err != nil {
			return objects.ZeroHash, scerr.InvalidFormat(pkgName, "resolve", fmt.Sprintf("reference %s holds %q", currentRef, content), err)
		}
		return hash, nil
	}

	return objects.ZeroHash, scerr.InvalidFormat(pkgName, "resolve", fmt.Sprintf("reference depth exceeded for %s", ref), nil)
}

// ResolveName resolves a user-supplied name: HEAD, a full refs/ path, or a
// short branch or tag name, in that order.
func (rm *RefManager) ResolveName(name string) (objects.ObjectHash, error) {
	for _, ref := range candidates(name) {
		if !ref.IsValid() {
			continue
		}
		ok, err := rm.Exists(ref)
		if err != nil {
			return objects.ZeroHash, err
		}
		if ok {
			return rm.ResolveToHash(ref)
		}
	}
	return objects.ZeroHash, scerr.NotFound(pkgName, "resolve", fmt.Sprintf("unknown revision %q", name), nil).
		WithContext("ref", name)
}

// DeleteRef deletes a reference. It reports whether the reference existed.
func (rm *RefManager) DeleteRef(ref RefPath) (bool, error) {
	fullPath := rm.resolveReferencePath(ref).String()

	exists, err := fileops.Exists(rm.fs, fullPath)
	if err != nil {
		return false, scerr.IO(pkgName, "delete_ref", err)
	}
	if !exists {
		return false, nil
	}

	if err := rm.fs.Remove(fullPath); err != nil {
		return false, scerr.IO(pkgName, "delete_ref", err)
	}
	return true, nil
}

// Exists checks if a reference exists
func (rm *RefManager) Exists(ref RefPath) (bool, error) {
	ok, err := fileops.Exists(rm.fs, rm.resolveReferencePath(ref).String())
	if err != nil {
		return false, scerr.IO(pkgName, "exists", err)
	}
	return ok, nil
}

// HeadPath returns the full path to the HEAD file
func (rm *RefManager) HeadPath() scpath.SourcePath {
	return rm.headPath
}

// symbolicTarget follows symbolic references from ref to the reference
// that holds a hash, or would once written.
func (rm *RefManager) symbolicTarget(ref RefPath) (RefPath, error) {
	current := ref
	for range MaxRefDepth {
		content, err := rm.ReadRef(current)
		if err != nil {
			if scerr.IsCode(err, scerr.CodeNotFound) {
				return current, nil
			}
			return "", err
		}
		after, ok := strings.CutPrefix(content, SymbolicRefPrefix)
		if !ok {
			return current, nil
		}
		current = RefPath(strings.TrimSpace(after))
	}
	return "", scerr.InvalidFormat(pkgName, "update_ref", fmt.Sprintf("reference depth exceeded for %s", ref), nil)
}

// resolveReferencePath maps a RefPath to its file
func (rm *RefManager) resolveReferencePath(ref RefPath) scpath.SourcePath {
	refStr := strings.TrimSpace(ref.String())

	if refStr == scpath.HeadFile {
		return rm.headPath
	}

	if after, ok := strings.CutPrefix(refStr, scpath.RefsDir+"/"); ok {
		return rm.refsPath.Join(after)
	}

	return rm.refsPath.Join(refStr)
}
