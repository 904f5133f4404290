package sourcerepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitcore/pkg/common"
	"github.com/utkarsh5026/gitcore/pkg/common/logger"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/commit"
	"github.com/utkarsh5026/gitcore/pkg/repository/refs"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
)

const testWork = scpath.RepositoryPath("/work")

var (
	hiBlob   = objects.MustParseObjectHash("32f95c0d1244a78b2be1bab8de17906fabb2c4a8")
	yoBlob   = objects.MustParseObjectHash("b920295f69a539ff6e22454082c706636917554f")
	subTree  = objects.MustParseObjectHash("cd7b054db7cea2a970eabcad2895a2573a521732")
	rootTree = objects.MustParseObjectHash("4eabb0fdcc6c0bef8c6000ad9ebf816246317c20")
)

func testOptions(fsys afero.Fs, extra ...Option) []Option {
	return append([]Option{
		WithFs(fsys),
		WithLogger(logger.Discard()),
		WithUserConfigPath(""),
		WithClock(common.NewFixedClock(1700000000)),
	}, extra...)
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func initScenario(t *testing.T, extra ...Option) (*SourceRepository, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/a.txt", "hi")
	writeFile(t, fsys, "/work/sub/b.txt", "yo")

	repo, err := Initialize(context.Background(), testWork, testOptions(fsys, extra...)...)
	require.NoError(t, err)
	return repo, fsys
}

func TestInitialize(t *testing.T) {
	repo, fsys := initScenario(t)

	assert.Equal(t, testWork, repo.WorkingDirectory())
	assert.Equal(t, scpath.SourcePath("/work/.source"), repo.SourceDirectory())

	ok, err := afero.DirExists(fsys, "/work/.source/objects")
	require.NoError(t, err)
	assert.True(t, ok)

	exists, err := RepositoryExists(fsys, testWork)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.ObjectCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInitialize_AlreadyExists(t *testing.T) {
	_, fsys := initScenario(t)

	_, err := Initialize(context.Background(), testWork, testOptions(fsys)...)
	require.Error(t, err)
	assert.True(t, IsAlreadyInitialized(err))
}

func TestOpen_NotARepository(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/elsewhere", 0o755))

	_, err := Open(context.Background(), "/elsewhere", testOptions(fsys)...)
	require.Error(t, err)
	assert.True(t, IsNotRepository(err))
}

func TestFindRepository_WalksUp(t *testing.T) {
	_, fsys := initScenario(t)

	repo, err := FindRepository(context.Background(), "/work/sub", testOptions(fsys)...)
	require.NoError(t, err)
	assert.Equal(t, testWork, repo.WorkingDirectory())

	_, err = FindRepository(context.Background(), "/nowhere/deep", testOptions(fsys)...)
	require.Error(t, err)
	assert.True(t, IsNotRepository(err))
}

func TestHashBlob_DoesNotStore(t *testing.T) {
	repo, _ := initScenario(t)

	hash, err := repo.HashBlob("a.txt")
	require.NoError(t, err)
	assert.Equal(t, hiBlob, hash)

	exists, err := repo.ObjectStore().Exists(hash)
	require.NoError(t, err)
	assert.False(t, exists)

	written, err := repo.WriteBlob("/work/a.txt")
	require.NoError(t, err)
	assert.Equal(t, hiBlob, written)

	obj, err := repo.ReadObject(written)
	require.NoError(t, err)
	defer obj.Close()
	data, err := obj.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, objects.BlobKind, obj.Kind)
	assert.Equal(t, "hi", string(data))
}

func TestWriteBlob_Missing(t *testing.T) {
	repo, _ := initScenario(t)

	_, err := repo.WriteBlob("missing.txt")
	require.Error(t, err)
	assert.True(t, objects.IsIO(err))
}

func TestEndToEnd_TreeAndCommits(t *testing.T) {
	repo, _ := initScenario(t)
	ctx := context.Background()

	root, ok, err := repo.BuildTree(ctx, ".")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rootTree, root)

	count, err := repo.ObjectCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	listed, err := repo.ReadTree(root)
	require.NoError(t, err)
	require.Equal(t, 2, listed.Len())
	assert.Equal(t, objects.BlobKind, listed.Entries()[0].Kind())
	assert.Equal(t, hiBlob, listed.Entries()[0].Hash())
	assert.Equal(t, objects.TreeKind, listed.Entries()[1].Kind())
	assert.Equal(t, subTree, listed.Entries()[1].Hash())

	first, err := repo.BuildCommit(ctx, root, nil, "init")
	require.NoError(t, err)
	assert.Equal(t, "5203a89560d5b6f47ecd834f5da465f89e8c8368", first.String())

	second, err := Open(ctx, testWork, testOptions(repo.fs, WithClock(common.NewFixedClock(1700000100)))...)
	require.NoError(t, err)
	child, err := second.BuildCommit(ctx, root, &first, "second")
	require.NoError(t, err)
	assert.Equal(t, "c5c3aec4f1618685da993182b04285294f04c3ee", child.String())

	c, err := second.ReadCommit(ctx, child)
	require.NoError(t, err)
	assert.Equal(t, root, c.TreeHash)
	require.NotNil(t, c.ParentHash)
	assert.Equal(t, first, *c.ParentHash)
}

func TestReadTree_WrongKind(t *testing.T) {
	repo, _ := initScenario(t)

	hash, err := repo.WriteBlob("a.txt")
	require.NoError(t, err)

	_, err = repo.ReadTree(hash)
	require.Error(t, err)
	assert.True(t, objects.IsValidation(err))
}

func TestBuildTree_EmptyDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work/empty", 0o755))
	repo, err := Initialize(context.Background(), testWork, testOptions(fsys)...)
	require.NoError(t, err)

	_, ok, err := repo.BuildTree(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfig_RepositoryFile(t *testing.T) {
	repo, fsys := initScenario(t)
	writeFile(t, fsys, "/work/.git/HEAD", "ref: refs/heads/master\n")
	writeFile(t, fsys, "/work/build/out.o", "obj")
	writeFile(t, fsys, "/work/.source/config.toml", `
[user]
name = "Ada"
email = "ada@example.com"
timezone = "+0100"

[core]
ignore = ["build"]
`)

	reopened, err := Open(context.Background(), repo.WorkingDirectory(), testOptions(fsys)...)
	require.NoError(t, err)

	id, err := reopened.TypedConfig().Identity()
	require.NoError(t, err)
	assert.Equal(t, "Ada", id.Name)
	assert.Equal(t, "+0100", id.Timezone)

	root, ok, err := reopened.BuildTree(context.Background(), ".")
	require.NoError(t, err)
	require.True(t, ok)

	listed, err := reopened.ReadTree(root)
	require.NoError(t, err)
	var names []string
	for _, e := range listed.Entries() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{".git", "a.txt", "sub"}, names, "configured ignores replace the defaults, .source stays hidden")

	hash, err := reopened.BuildCommit(context.Background(), root, nil, "configured")
	require.NoError(t, err)
	c, err := reopened.ReadCommit(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Author.Name)
	assert.Equal(t, "+0100", commit.FormatTimezone(c.Author.When))
}

func TestConfig_CommandLineOverride(t *testing.T) {
	repo, _ := initScenario(t, WithConfig("user.name", "Override"))

	id, err := repo.TypedConfig().Identity()
	require.NoError(t, err)
	assert.Equal(t, "Override", id.Name)
	assert.Equal(t, "gitcore@localhost", id.Email)
}

func TestConfig_Malformed(t *testing.T) {
	_, fsys := initScenario(t)
	writeFile(t, fsys, "/work/.source/config.toml", "[user\nname=")

	_, err := Open(context.Background(), testWork, testOptions(fsys)...)
	require.Error(t, err)
}

func TestOsFs_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("yo"), 0o644))

	path, err := scpath.NewRepositoryPath(dir)
	require.NoError(t, err)

	repo, err := Initialize(context.Background(), path, testOptions(afero.NewOsFs(), WithVerify(true))...)
	require.NoError(t, err)

	root, ok, err := repo.BuildTree(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rootTree, root)

	info, err := os.Stat(repo.ObjectStore().PathFor(hiBlob))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(dir, scpath.SourceDir, scpath.ObjectsDir, "32"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no staging files are left behind")
}

func TestInitialize_WritesHead(t *testing.T) {
	repo, fsys := initScenario(t)

	data, err := afero.ReadFile(fsys, "/work/.source/HEAD")
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", string(data))

	_, err = repo.ResolveObjectName("HEAD")
	require.Error(t, err, "HEAD is unborn")
	assert.True(t, objects.IsNotFound(err))
}

func TestUpdateRefAndResolve(t *testing.T) {
	repo, _ := initScenario(t)
	ctx := context.Background()

	root, _, err := repo.BuildTree(ctx, ".")
	require.NoError(t, err)
	first, err := repo.BuildCommit(ctx, root, nil, "init")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRef(refs.RefHEAD, first))

	for _, name := range []string{"HEAD", "master", "refs/heads/master", first.String()} {
		got, err := repo.ResolveObjectName(name)
		require.NoError(t, err, name)
		assert.Equal(t, first, got, name)
	}

	err = repo.UpdateRef("refs/heads/ghost", yoBlob)
	require.Error(t, err)
	assert.True(t, objects.IsNotFound(err), "the target object must be stored")

	_, err = repo.ResolveObjectName("ghost")
	assert.True(t, objects.IsNotFound(err))
}
