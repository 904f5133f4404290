package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitcore/pkg/common"
)

// cliHelper runs the CLI against a temporary working directory.
type cliHelper struct {
	t   *testing.T
	dir string
}

func newCLIHelper(t *testing.T) *cliHelper {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	prev := commitClock
	commitClock = common.NewFixedClock(1700000000)
	t.Cleanup(func() { commitClock = prev })

	return &cliHelper{t: t, dir: t.TempDir()}
}

func (h *cliHelper) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes gitcore with -C pointing at the helper's directory.
func (h *cliHelper) run(args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"-C", h.dir}, args...), &out, &errOut)
	return out.String(), errOut.String(), code
}

// mustRun executes gitcore and fails the test on a non-zero exit.
func (h *cliHelper) mustRun(args ...string) string {
	h.t.Helper()
	out, errOut, code := h.run(args...)
	require.Equalf(h.t, 0, code, "gitcore %s: %s", strings.Join(args, " "), errOut)
	return out
}

func (h *cliHelper) scenario() {
	h.t.Helper()
	h.mustRun("init")
	h.writeFile("a.txt", "hi")
	h.writeFile("sub/b.txt", "yo")
}
