package commit

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

const pkgName = "commit"

// Commit is one commit record: a root tree, at most one parent, authorship
// and a message.
//
// Commit Object Structure:
// ┌─────────────────────────────────────────────────────────────────┐
// │ Header: "commit" SPACE size NULL                                │
// │ "tree" SPACE tree-hash LF                                       │
// │ "parent" SPACE parent-hash LF (optional)                        │
// │ "author" SPACE name SPACE <email> SPACE timestamp SPACE tz LF   │
// │ "committer" SPACE name SPACE <email> SPACE timestamp SPACE tz LF│
// │ LF                                                              │
// │ message LF                                                      │
// └─────────────────────────────────────────────────────────────────┘
//
// The stored message is always followed by exactly one newline, which Parse
// strips again.
type Commit struct {
	TreeHash   objects.ObjectHash
	ParentHash *objects.ObjectHash
	Author     *Person
	Committer  *Person
	Message    string
}

// Validate checks that all required fields are present
func (c *Commit) Validate() error {
	if c.TreeHash.IsZero() {
		return fmt.Errorf("tree hash is required")
	}
	if c.Author == nil {
		return fmt.Errorf("author is required")
	}
	if c.Committer == nil {
		return fmt.Errorf("committer is required")
	}
	return nil
}

// Bytes returns the commit text (the object payload).
func (c *Commit) Bytes() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash)
	if c.ParentHash != nil {
		fmt.Fprintf(&buf, "parent %s\n", c.ParentHash)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author.Format())
	fmt.Fprintf(&buf, "committer %s\n", c.Committer.Format())
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	buf.WriteByte('\n')

	return buf.Bytes()
}

// Hash returns the hash of the commit object
func (c *Commit) Hash() objects.ObjectHash {
	return objects.HashBytes(objects.CommitKind, c.Bytes())
}

// Object wraps the commit text as a commit object.
func (c *Commit) Object() *objects.Object {
	return objects.NewObjectFromBytes(objects.CommitKind, c.Bytes())
}

// IsInitialCommit returns true if this commit has no parent
func (c *Commit) IsInitialCommit() bool {
	return c.ParentHash == nil
}

// String returns a human-readable representation
func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, initial: %t, message: %.50s}",
		c.Hash().Short(), c.TreeHash.Short(), c.IsInitialCommit(), c.Message)
}

// Equal compares two commits for equality
func (c *Commit) Equal(other *Commit) bool {
	if other == nil {
		return false
	}
	if c.TreeHash != other.TreeHash {
		return false
	}
	if (c.ParentHash == nil) != (other.ParentHash == nil) {
		return false
	}
	if c.ParentHash != nil && *c.ParentHash != *other.ParentHash {
		return false
	}
	return c.Author.Equal(other.Author) &&
		c.Committer.Equal(other.Committer) &&
		c.Message == other.Message
}

// FromObject decodes a commit object and closes it. Objects of any other
// kind are a validation error.
func FromObject(obj *objects.Object) (*Commit, error) {
	defer obj.Close()

	if obj.Kind != objects.CommitKind {
		return nil, scerr.Validation(pkgName, "from_object", fmt.Sprintf("expected commit, got %s", obj.Kind), nil)
	}
	return Parse(obj.Content)
}

// Parse decodes commit text. Header lines must come in order: tree, an
// optional parent, author, committer, then a blank line and the message.
func Parse(r io.Reader) (*Commit, error) {
	br := bufio.NewReader(r)
	c := &Commit{}

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	treeHex, ok := strings.CutPrefix(line, "tree ")
	if !ok {
		return nil, parseError(fmt.Sprintf("expected tree line, got %q", line), nil)
	}
	if c.TreeHash, err = objects.ParseObjectHash(treeHex); err != nil {
		return nil, err
	}

	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if parentHex, ok := strings.CutPrefix(line, "parent "); ok {
		parent, err := objects.ParseObjectHash(parentHex)
		if err != nil {
			return nil, err
		}
		c.ParentHash = &parent
		if line, err = readLine(br); err != nil {
			return nil, err
		}
	}

	if c.Author, err = parsePersonLine(line, "author "); err != nil {
		return nil, err
	}

	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if c.Committer, err = parsePersonLine(line, "committer "); err != nil {
		return nil, err
	}

	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if line != "" {
		return nil, parseError(fmt.Sprintf("expected blank line before message, got %q", line), nil)
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, readError(err)
	}
	if !utf8.Valid(rest) {
		return nil, parseError("message is not valid UTF-8", nil)
	}
	c.Message = strings.TrimSuffix(string(rest), "\n")

	return c, nil
}

func parsePersonLine(line, prefix string) (*Person, error) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return nil, parseError(fmt.Sprintf("expected %sline, got %q", prefix, line), nil)
	}
	p, err := ParsePerson(rest)
	if err != nil {
		return nil, parseError("invalid "+strings.TrimSpace(prefix), err)
	}
	return p, nil
}

// readLine returns the next LF-terminated header line without its newline.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", parseError("truncated commit header", nil)
		}
		return "", readError(err)
	}
	line = strings.TrimSuffix(line, "\n")
	if !utf8.ValidString(line) {
		return "", parseError("header line is not valid UTF-8", nil)
	}
	return line, nil
}

func parseError(msg string, err error) error {
	return scerr.InvalidFormat(pkgName, "parse", msg, err)
}

func readError(err error) error {
	var se *scerr.Error
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return parseError("payload shorter than declared size", err)
	}
	return scerr.IO(pkgName, "parse", err)
}
