package config

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/gitcore/pkg/common/fileops"
)

// Store handles reading and writing one TOML configuration file.
// Writes go through a staging file and a rename.
type Store struct {
	fs      afero.Fs
	path    string
	level   ConfigLevel
	entries map[string][]*ConfigEntry
	parser  *Parser
}

// NewStore creates a new configuration store for a specific file and level
func NewStore(fsys afero.Fs, path string, level ConfigLevel) *Store {
	return &Store{
		fs:      fsys,
		path:    path,
		level:   level,
		entries: make(map[string][]*ConfigEntry),
		parser:  &Parser{},
	}
}

// Load reads and parses the configuration file.
// A missing file is an empty configuration.
func (s *Store) Load() error {
	content, err := fileops.ReadBytes(s.fs, s.path)
	if err != nil {
		return NewConfigError("load", CodeIOErr, "", s.path, s.level.String(), err)
	}
	if content == nil {
		s.entries = make(map[string][]*ConfigEntry)
		return nil
	}

	entries, err := s.parser.Parse(content, NewFileSource(s.path), s.level)
	if err != nil {
		return err
	}

	s.entries = entries
	return nil
}

// Save writes the configuration to disk atomically
func (s *Store) Save() error {
	content, err := s.parser.Serialize(s.entries)
	if err != nil {
		return err
	}

	if err := fileops.EnsureDir(s.fs, filepath.Dir(s.path)); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path, s.level.String(), err)
	}

	if err := fileops.AtomicWrite(s.fs, s.path, content, 0o644); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path, s.level.String(), err)
	}

	return nil
}

// GetEntries returns all entries for a specific key
func (s *Store) GetEntries(key string) []*ConfigEntry {
	entries, exists := s.entries[key]
	if !exists {
		return []*ConfigEntry{}
	}

	result := make([]*ConfigEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry.Clone()
	}
	return result
}

// GetAllEntries returns a copy of all entries
func (s *Store) GetAllEntries() map[string][]*ConfigEntry {
	result := make(map[string][]*ConfigEntry, len(s.entries))
	for key := range s.entries {
		result[key] = s.GetEntries(key)
	}
	return result
}

// Set replaces all values for a key with a single value
func (s *Store) Set(key, value string) {
	s.entries[key] = []*ConfigEntry{NewEntry(key, value, s.level, NewFileSource(s.path))}
}

// Add appends a value to a multi-value key
func (s *Store) Add(key, value string) {
	s.entries[key] = append(s.entries[key], NewEntry(key, value, s.level, NewFileSource(s.path)))
}

// Unset removes all values for a key
func (s *Store) Unset(key string) {
	delete(s.entries, key)
}

// ToTOML renders the effective values of this store.
func (s *Store) ToTOML() (string, error) {
	out, err := s.parser.FormatForDisplay(s.entries)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Path returns the file path for this store
func (s *Store) Path() string {
	return s.path
}

// Level returns the configuration level for this store
func (s *Store) Level() ConfigLevel {
	return s.level
}

// HasKey returns true if the store has any entries for the given key
func (s *Store) HasKey(key string) bool {
	return len(s.entries[key]) > 0
}

// Clear removes all entries from the store
func (s *Store) Clear() {
	s.entries = make(map[string][]*ConfigEntry)
}
