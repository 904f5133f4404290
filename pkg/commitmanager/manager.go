package commitmanager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utkarsh5026/gitcore/pkg/common"
	"github.com/utkarsh5026/gitcore/pkg/common/logger"
	"github.com/utkarsh5026/gitcore/pkg/config"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/commit"
	"github.com/utkarsh5026/gitcore/pkg/store"
)

// IdentityProvider supplies the author and committer of new commits.
// config.TypedConfig implements it.
type IdentityProvider interface {
	Identity() (config.Identity, error)
}

// Manager creates commit objects on top of an object store.
//
// A commit is built in three steps:
//  1. Check that the tree (and parent, if any) exist with the right kind
//  2. Stamp the configured identity with the current time
//  3. Serialise the commit text and persist it
//
// Manager holds no mutable state and is safe for concurrent use when its
// collaborators are.
type Manager struct {
	store    store.ObjectStore
	identity IdentityProvider
	clock    common.Clock
	logger   *slog.Logger
}

// NewManager creates a commit Manager. A nil clock reads the system clock
// and a nil logger uses the package default.
func NewManager(objectStore store.ObjectStore, identity IdentityProvider, clock common.Clock, log *slog.Logger) *Manager {
	if clock == nil {
		clock = common.SystemClock{}
	}
	return &Manager{
		store:    objectStore,
		identity: identity,
		clock:    clock,
		logger:   logger.OrDefault(log).With("component", "commitmanager"),
	}
}

// BuildCommit stores a commit pointing at treeHash with an optional parent
// and returns its hash.
//
// The tree must be a stored tree and the parent a stored commit; a wrong
// kind fails with a validation error and a missing object with NotFound.
// The message is stored followed by a single newline.
func (m *Manager) BuildCommit(ctx context.Context, treeHash objects.ObjectHash, parentHash *objects.ObjectHash, message string) (objects.ObjectHash, error) {
	if err := ctx.Err(); err != nil {
		return objects.ZeroHash, err
	}

	if err := m.requireKind(treeHash, objects.TreeKind); err != nil {
		return objects.ZeroHash, err
	}
	if parentHash != nil {
		if err := m.requireKind(*parentHash, objects.CommitKind); err != nil {
			return objects.ZeroHash, err
		}
	}

	person, err := m.currentPerson()
	if err != nil {
		return objects.ZeroHash, NewCommitError("identity", err, "")
	}

	builder := commit.NewCommitBuilder().
		Tree(treeHash).
		Author(person).
		Committer(person).
		Message(message)
	if parentHash != nil {
		builder.Parent(*parentHash)
	}

	c, err := builder.Build()
	if err != nil {
		return objects.ZeroHash, NewCommitError("build commit", err, "")
	}

	hash, err := m.store.WriteObject(c.Object())
	if err != nil {
		m.logger.Error("failed to write commit", "tree", treeHash.String(), "error", err)
		return objects.ZeroHash, NewCommitError("write commit", err, "")
	}

	m.logger.Debug("created commit",
		"hash", hash.String(),
		"tree", treeHash.String(),
		"initial", c.IsInitialCommit())

	return hash, nil
}

// GetCommit reads and parses the commit stored at hash.
func (m *Manager) GetCommit(ctx context.Context, hash objects.ObjectHash) (*commit.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obj, err := m.store.ReadObject(hash)
	if err != nil {
		return nil, err
	}

	c, err := commit.FromObject(obj)
	if err != nil {
		return nil, NewCommitError("read commit", err, string(hash.Short()))
	}
	return c, nil
}

// requireKind checks that hash names a stored object of kind want.
func (m *Manager) requireKind(hash objects.ObjectHash, want objects.ObjectKind) error {
	kind, _, err := m.store.ReadHeader(hash)
	if err != nil {
		return err
	}
	if kind != want {
		return kindMismatch("build_commit", hash, want, kind)
	}
	return nil
}

// currentPerson stamps the configured identity with the clock's time in
// the configured timezone.
func (m *Manager) currentPerson() (*commit.Person, error) {
	id, err := m.identity.Identity()
	if err != nil {
		return nil, err
	}

	loc, err := commit.ParseTimezone(id.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", id.Timezone, err)
	}

	when := time.Unix(common.NowUnixSeconds(m.clock), 0).In(loc)
	return commit.NewPerson(id.Name, id.Email, when)
}
