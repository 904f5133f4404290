package config

import "errors"

// Identity is the author and committer recorded on new commits.
type Identity struct {
	Name     string
	Email    string
	Timezone string
}

// TypedConfig provides type-safe access to common configuration values
// It wraps a Manager and provides convenient getter methods
type TypedConfig struct {
	manager *Manager
}

// NewTypedConfig creates a new TypedConfig wrapper around a Manager
func NewTypedConfig(manager *Manager) *TypedConfig {
	return &TypedConfig{
		manager: manager,
	}
}

// UserName returns the configured user name
func (tc *TypedConfig) UserName() string {
	return tc.GetString(KeyUserName)
}

// UserEmail returns the configured user email
func (tc *TypedConfig) UserEmail() string {
	return tc.GetString(KeyUserEmail)
}

// Timezone returns the configured "+HHMM" offset
func (tc *TypedConfig) Timezone() string {
	return tc.GetString(KeyUserTimezone)
}

// Identity returns the configured identity, failing with a validation error
// when any part of it would produce an unparseable commit.
func (tc *TypedConfig) Identity() (Identity, error) {
	id := Identity{
		Name:     tc.UserName(),
		Email:    tc.UserEmail(),
		Timezone: tc.Timezone(),
	}

	v := &Validator{}
	if err := errors.Join(
		v.ValidateName(id.Name),
		v.ValidateEmail(id.Email),
		v.ValidateTimezone(id.Timezone),
	); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// IgnoredNames returns the core.ignore entries in effect. A single value
// may hold a comma-separated list, as command-line overrides do.
func (tc *TypedConfig) IgnoredNames() []string {
	var names []string
	for _, entry := range tc.manager.GetAll(KeyCoreIgnore) {
		names = append(names, entry.AsList()...)
	}
	return names
}

// GetString returns a configuration value as a string
func (tc *TypedConfig) GetString(key string) string {
	entry := tc.manager.Get(key)
	if entry == nil {
		return ""
	}
	return entry.AsString()
}

// GetInt returns a configuration value as an integer
func (tc *TypedConfig) GetInt(key string) (int, error) {
	entry := tc.manager.Get(key)
	if entry == nil {
		return 0, NewNotFoundError(key, "")
	}
	return entry.AsInt()
}

// GetBool returns a configuration value as a boolean
func (tc *TypedConfig) GetBool(key string) (bool, error) {
	entry := tc.manager.Get(key)
	if entry == nil {
		return false, NewNotFoundError(key, "")
	}
	return entry.AsBoolean()
}

// GetList returns a configuration value as a list of strings
func (tc *TypedConfig) GetList(key string) []string {
	entry := tc.manager.Get(key)
	if entry == nil {
		return []string{}
	}
	return entry.AsList()
}

// GetAll returns all values for a multi-value configuration key
func (tc *TypedConfig) GetAll(key string) []string {
	entries := tc.manager.GetAll(key)
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.AsString())
	}
	return result
}
