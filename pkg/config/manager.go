package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
)

// Well-known keys
const (
	KeyUserName     = "user.name"
	KeyUserEmail    = "user.email"
	KeyUserTimezone = "user.timezone"
	KeyCoreIgnore   = "core.ignore"
)

// Builtin defaults
const (
	DefaultUserName     = "gitcore"
	DefaultUserEmail    = "gitcore@localhost"
	DefaultUserTimezone = "+0000"
)

// DefaultIgnoredNames are the directory entries the tree builder skips
// unless configuration says otherwise.
var DefaultIgnoredNames = []string{scpath.SourceDir, ".git", "target", "debug"}

// UserConfigPath returns $HOME/.config/gitcore/config.toml, or a path
// relative to the working directory when the home directory is unknown.
func UserConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "gitcore", scpath.ConfigFile)
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithUserConfigPath overrides the user-level config file location. An
// empty path disables the user level.
func WithUserConfigPath(path string) ManagerOption {
	return func(m *Manager) {
		m.userPath = path
	}
}

// Manager is the central configuration manager that handles the hierarchy of config files
// It is thread-safe and can be used concurrently
type Manager struct {
	mu              sync.RWMutex
	fs              afero.Fs
	userPath        string
	stores          map[ConfigLevel]*Store
	commandLine     map[string]string
	builtinDefaults map[string][]string
	parser          *Parser
}

// NewManager creates a new configuration manager.
// If sourcePath is set, the repository level reads <sourcePath>/config.toml.
func NewManager(fsys afero.Fs, sourcePath scpath.SourcePath, opts ...ManagerOption) *Manager {
	m := &Manager{
		fs:              fsys,
		userPath:        UserConfigPath(),
		stores:          make(map[ConfigLevel]*Store),
		commandLine:     make(map[string]string),
		builtinDefaults: make(map[string][]string),
		parser:          &Parser{},
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeStores(sourcePath)
	m.loadBuiltinDefaults()

	return m
}

// Load loads all configuration files from disk
// This is typically called once during initialization
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	for _, store := range m.stores {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return store.Load()
		})
	}

	return g.Wait()
}

// Get retrieves a configuration value, respecting the hierarchy
// Returns the highest precedence value, or nil if not found
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

// GetAll returns the values of the highest level that defines key. Lower
// levels do not merge into a multi-valued key.
func (m *Manager) GetAll(key string) []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getAllUnsafe(key)
}

func (m *Manager) getAllUnsafe(key string) []*ConfigEntry {
	if value, exists := m.commandLine[key]; exists {
		return []*ConfigEntry{NewCommandLineEntry(key, value)}
	}

	if entries := m.findInStores(key); len(entries) > 0 {
		return entries
	}

	values := m.builtinDefaults[key]
	entries := make([]*ConfigEntry, len(values))
	for i, v := range values {
		entries[i] = NewBuiltinEntry(key, v)
	}
	return entries
}

// Set sets a configuration value at a specific level
// Returns an error if the level is not writable or doesn't exist
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("set", key, value, level)
	if err != nil {
		return err
	}

	store.Set(key, value)
	return store.Save()
}

// Add adds a value to a multi-value configuration key
func (m *Manager) Add(key, value string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("add", key, value, level)
	if err != nil {
		return err
	}

	store.Add(key, value)
	return store.Save()
}

// Unset removes a configuration key at a specific level
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.storeFor("unset", key, level)
	if err != nil {
		return err
	}

	store.Unset(key)
	return store.Save()
}

func (m *Manager) validateStore(operation, key, value string, level ConfigLevel) (*Store, error) {
	store, err := m.storeFor(operation, key, level)
	if err != nil {
		return nil, err
	}

	if err := (&Validator{}).ValidateKeyValue(key, value); err != nil {
		return nil, err
	}
	return store, nil
}

func (m *Manager) storeFor(operation, key string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, NewConfigError(operation, CodeReadOnlyErr, key, "", level.String(), ErrReadOnly)
	}

	store, exists := m.stores[level]
	if !exists {
		return nil, NewConfigError(operation, CodeNotFoundErr, key, "", level.String(), fmt.Errorf("store does not exist for level"))
	}

	return store, nil
}

// SetCommandLine sets a command-line configuration value
func (m *Manager) SetCommandLine(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
}

// List returns all effective configuration entries (respecting hierarchy)
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.listUnsafe()
}

func (m *Manager) collectAllKeys() map[string]bool {
	allKeys := make(map[string]bool)

	for key := range m.commandLine {
		allKeys[key] = true
	}
	for _, store := range m.stores {
		for key := range store.entries {
			allKeys[key] = true
		}
	}
	for key := range m.builtinDefaults {
		allKeys[key] = true
	}

	return allKeys
}

// ExportTOML exports configuration as a TOML document.
// If level is specified, only exports that level
// Otherwise exports all effective configuration
func (m *Manager) ExportTOML(level *ConfigLevel) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if level != nil {
		store, exists := m.stores[*level]
		if !exists {
			return "", nil
		}
		return store.ToTOML()
	}

	entriesMap := make(map[string][]*ConfigEntry)
	for key := range m.collectAllKeys() {
		entriesMap[key] = m.getAllUnsafe(key)
	}

	out, err := m.parser.Serialize(entriesMap)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GetStore returns the store for a specific level
// Returns nil if the store doesn't exist
func (m *Manager) GetStore(level ConfigLevel) *Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores[level]
}

// initializeStores creates stores for different configuration levels
func (m *Manager) initializeStores(sourcePath scpath.SourcePath) {
	if m.userPath != "" {
		m.stores[UserLevel] = NewStore(m.fs, m.userPath, UserLevel)
	}

	if sourcePath.IsValid() {
		m.stores[RepositoryLevel] = NewStore(m.fs, sourcePath.ConfigPath().String(), RepositoryLevel)
	}
}

// loadBuiltinDefaults initializes hardcoded default values
func (m *Manager) loadBuiltinDefaults() {
	m.builtinDefaults[KeyUserName] = []string{DefaultUserName}
	m.builtinDefaults[KeyUserEmail] = []string{DefaultUserEmail}
	m.builtinDefaults[KeyUserTimezone] = []string{DefaultUserTimezone}
	m.builtinDefaults[KeyCoreIgnore] = append([]string(nil), DefaultIgnoredNames...)
}

// getUnsafe is the internal implementation of Get without locking
// Caller must hold at least read lock
func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if value, exists := m.commandLine[key]; exists {
		return NewCommandLineEntry(key, value)
	}

	entries := m.findInStores(key)
	if len(entries) > 0 {
		return entries[len(entries)-1]
	}

	if values := m.builtinDefaults[key]; len(values) > 0 {
		return NewBuiltinEntry(key, values[len(values)-1])
	}

	return nil
}

// listUnsafe is the internal implementation of List without locking
// Caller must hold at least read lock
func (m *Manager) listUnsafe() []*ConfigEntry {
	var entries []*ConfigEntry
	for key := range m.collectAllKeys() {
		if entry := m.getUnsafe(key); entry != nil {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries
}

func (m *Manager) findInStores(key string) []*ConfigEntry {
	for _, level := range []ConfigLevel{RepositoryLevel, UserLevel} {
		store, exists := m.stores[level]
		if !exists {
			continue
		}

		if entries := store.GetEntries(key); len(entries) > 0 {
			return entries
		}
	}
	return nil
}
