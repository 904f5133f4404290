package scpath

const (
	// SourceDir is the name of the repository directory inside a working tree
	SourceDir = ".source"

	// ObjectsDir is the name of the objects directory
	ObjectsDir = "objects"

	// ConfigFile is the name of the repository config file
	ConfigFile = "config.toml"

	// RefsDir is the name of the references directory
	RefsDir = "refs"

	// HeadFile is the name of the HEAD file
	HeadFile = "HEAD"
)
