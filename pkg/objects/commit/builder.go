package commit

import (
	"errors"
	"fmt"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// CommitBuilder provides a fluent interface for building commits
type CommitBuilder struct {
	commit *Commit
	errs   []error
}

// NewCommitBuilder creates a new CommitBuilder
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{commit: &Commit{}}
}

// Tree sets the root tree of the commit
func (b *CommitBuilder) Tree(hash objects.ObjectHash) *CommitBuilder {
	if hash.IsZero() {
		b.errs = append(b.errs, fmt.Errorf("tree hash cannot be zero"))
	} else {
		b.commit.TreeHash = hash
	}
	return b
}

// Parent sets the parent commit. A commit has at most one parent.
func (b *CommitBuilder) Parent(hash objects.ObjectHash) *CommitBuilder {
	switch {
	case hash.IsZero():
		b.errs = append(b.errs, fmt.Errorf("parent hash cannot be zero"))
	case b.commit.ParentHash != nil:
		b.errs = append(b.errs, fmt.Errorf("parent already set to %s", b.commit.ParentHash))
	default:
		b.commit.ParentHash = &hash
	}
	return b
}

// Author sets the author of the commit
func (b *CommitBuilder) Author(author *Person) *CommitBuilder {
	if author == nil {
		b.errs = append(b.errs, fmt.Errorf("author cannot be nil"))
	} else {
		b.commit.Author = author
	}
	return b
}

// Committer sets the committer of the commit
func (b *CommitBuilder) Committer(committer *Person) *CommitBuilder {
	if committer == nil {
		b.errs = append(b.errs, fmt.Errorf("committer cannot be nil"))
	} else {
		b.commit.Committer = committer
	}
	return b
}

// Message sets the commit message
func (b *CommitBuilder) Message(message string) *CommitBuilder {
	b.commit.Message = message
	return b
}

// Build creates the Commit, returning an error if validation fails
func (b *CommitBuilder) Build() (*Commit, error) {
	if err := b.commit.Validate(); err != nil {
		b.errs = append(b.errs, err)
	}
	if len(b.errs) > 0 {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "build", "invalid commit", errors.Join(b.errs...))
	}
	return b.commit, nil
}
