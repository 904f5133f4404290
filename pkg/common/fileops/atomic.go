package fileops

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// TempPattern is the name pattern of staging files. The '*' is replaced by a
// random suffix, so every write gets its own staging file and concurrent
// writers never share one.
const TempPattern = ".tmp-*"

// AtomicWrite writes data to a file atomically by using a temporary file and rename.
// The temporary file lives next to the target, so the target's directory
// must already exist. The file is never visible in a partial state.
func AtomicWrite(fsys afero.Fs, targetPath string, data []byte, mode os.FileMode) error {
	return StagedWrite(fsys, filepath.Dir(targetPath), mode, func(w io.Writer) (string, error) {
		if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
			return "", err
		}
		return targetPath, nil
	})
}

// StagedWrite streams content produced by fn into a uniquely named staging
// file inside stageDir and then renames it to the path fn returns. fn learns
// the final path only after it has written everything, which is how
// content-addressed writers stage data before knowing its hash.
//
// The parent directory of the returned path is created if missing. On any
// failure the staging file is removed.
func StagedWrite(fsys afero.Fs, stageDir string, mode os.FileMode, fn func(w io.Writer) (string, error)) error {
	tmpFile, err := afero.TempFile(fsys, stageDir, TempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmpFile.Name()

	defer func() {
		tmpFile.Close()
		fsys.Remove(tmpName)
	}()

	targetPath, err := fn(tmpFile)
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := syncAndClose(tmpFile); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	return renameTempFile(fsys, tmpName, targetPath, mode)
}

// syncAndClose flushes the staging file to storage and closes it.
func syncAndClose(tmpFile afero.File) error {
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// renameTempFile applies the final mode to the staging file and renames it
// over the target. Rename is the atomicity boundary.
func renameTempFile(fsys afero.Fs, tmpPath string, targetPath string, mode os.FileMode) error {
	if err := fsys.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	if err := fsys.Rename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
