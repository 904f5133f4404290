package refs

import (
	"fmt"
	"strings"
)

// RefPath is a reference name relative to the .source directory.
// Examples: "refs/heads/master", "refs/tags/v1.0.0", "HEAD"
type RefPath string

const (
	// RefHEAD is the reference naming the current branch
	RefHEAD RefPath = "HEAD"

	headsPrefix = "refs/heads/"
	tagsPrefix  = "refs/tags/"
)

// DefaultBranch is the branch HEAD points to in a new repository.
const DefaultBranch = "master"

// String returns the reference path as a string
func (rp RefPath) String() string {
	return string(rp)
}

// IsValid checks if this is a valid reference path
func (rp RefPath) IsValid() bool {
	s := string(rp)
	if len(s) == 0 {
		return false
	}

	invalidChars := []string{" ", "~", "^", ":", "?", "*", "[", "\\", "..", "@{", "//", "\x00", "\n"}
	for _, invalid := range invalidChars {
		if strings.Contains(s, invalid) {
			return false
		}
	}

	if strings.HasSuffix(s, ".lock") || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "/") {
		return false
	}

	return !strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "/")
}

// IsBranch checks if this is a branch reference
func (rp RefPath) IsBranch() bool {
	return strings.HasPrefix(string(rp), headsPrefix)
}

// IsTag checks if this is a tag reference
func (rp RefPath) IsTag() bool {
	return strings.HasPrefix(string(rp), tagsPrefix)
}

// IsHEAD checks if this is the HEAD reference
func (rp RefPath) IsHEAD() bool {
	return rp == RefHEAD
}

// ShortName returns the short name of the reference
// "refs/heads/main" -> "main"
// "refs/tags/v1.0.0" -> "v1.0.0"
// "HEAD" -> "HEAD"
func (rp RefPath) ShortName() string {
	s := string(rp)
	if rp.IsBranch() {
		return strings.TrimPrefix(s, headsPrefix)
	}
	if rp.IsTag() {
		return strings.TrimPrefix(s, tagsPrefix)
	}
	return s
}

// NewBranchRef creates a branch reference path
func NewBranchRef(name string) (RefPath, error) {
	if len(name) == 0 {
		return "", fmt.Errorf("branch name cannot be empty")
	}
	refPath := RefPath(headsPrefix + name)
	if !refPath.IsValid() {
		return "", fmt.Errorf("invalid branch name: %s", name)
	}
	return refPath, nil
}

// NewTagRef creates a tag reference path
func NewTagRef(name string) (RefPath, error) {
	if len(name) == 0 {
		return "", fmt.Errorf("tag name cannot be empty")
	}
	refPath := RefPath(tagsPrefix + name)
	if !refPath.IsValid() {
		return "", fmt.Errorf("invalid tag name: %s", name)
	}
	return refPath, nil
}

// candidates lists the references a short name may denote, in lookup order.
func candidates(name string) []RefPath {
	if name == RefHEAD.String() || strings.HasPrefix(name, "refs/") {
		return []RefPath{RefPath(name)}
	}
	return []RefPath{RefPath(headsPrefix + name), RefPath(tagsPrefix + name)}
}
