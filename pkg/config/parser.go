package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Parser handles parsing and serialization of TOML configuration files.
// Tables nest by key segment: [user] name = "x" is the key "user.name".
// Arrays become multi-valued keys.
type Parser struct{}

// Parse decodes TOML content into entries keyed by their dotted name.
func (p *Parser) Parse(content []byte, source ConfigSource, level ConfigLevel) (map[string][]*ConfigEntry, error) {
	result := make(map[string][]*ConfigEntry)

	if len(bytes.TrimSpace(content)) == 0 {
		return result, nil
	}

	var data map[string]any
	if _, err := toml.NewDecoder(bytes.NewReader(content)).Decode(&data); err != nil {
		return nil, NewInvalidFormatError("parse", source.String(), err)
	}

	if err := p.parseSection(data, result, source, level, ""); err != nil {
		return nil, err
	}
	return result, nil
}

// Serialize encodes entries as TOML. Keys with several values are written
// as arrays.
func (p *Parser) Serialize(entries map[string][]*ConfigEntry) ([]byte, error) {
	root := make(map[string]any)

	for _, key := range sortedKeys(entries) {
		list := entries[key]
		if len(list) == 0 {
			continue
		}

		var value any
		if len(list) == 1 {
			value = list[0].Value
		} else {
			values := make([]string, len(list))
			for i, e := range list {
				values[i] = e.Value
			}
			value = values
		}

		if err := setNested(root, key, value); err != nil {
			return nil, NewInvalidFormatError("serialize", "", err)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(root); err != nil {
		return nil, NewInvalidFormatError("serialize", "", err)
	}
	return buf.Bytes(), nil
}

// FormatForDisplay renders only the effective (last) value of each key.
func (p *Parser) FormatForDisplay(entries map[string][]*ConfigEntry) ([]byte, error) {
	effective := make(map[string][]*ConfigEntry, len(entries))
	for key, list := range entries {
		if len(list) > 0 {
			effective[key] = list[len(list)-1:]
		}
	}
	return p.Serialize(effective)
}

// parseSection recursively flattens tables into dotted keys
func (p *Parser) parseSection(
	section map[string]any,
	result map[string][]*ConfigEntry,
	source ConfigSource,
	level ConfigLevel,
	keyPrefix string,
) error {
	for key, value := range section {
		if err := p.processConfigValue(buildFullKey(keyPrefix, key), value, result, source, level); err != nil {
			return err
		}
	}
	return nil
}

// processConfigValue processes a configuration value based on its type
func (p *Parser) processConfigValue(
	key string,
	value any,
	result map[string][]*ConfigEntry,
	source ConfigSource,
	level ConfigLevel,
) error {
	switch v := value.(type) {
	case map[string]any:
		return p.parseSection(v, result, source, level, key)
	case []map[string]any:
		return NewInvalidFormatError("parse", source.String(),
			fmt.Errorf("key %q: arrays of tables are not supported", key))
	case []any:
		for _, item := range v {
			if _, nested := item.(map[string]any); nested {
				return NewInvalidFormatError("parse", source.String(),
					fmt.Errorf("key %q: arrays cannot contain tables", key))
			}
			addEntry(result, key, scalarString(item), source, level)
		}
		return nil
	default:
		addEntry(result, key, scalarString(v), source, level)
		return nil
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func addEntry(entryMap map[string][]*ConfigEntry, key, value string, source ConfigSource, level ConfigLevel) {
	entryMap[key] = append(entryMap[key], NewEntry(key, value, level, source))
}

func buildFullKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// setNested places value at the dotted key, creating tables on the way.
func setNested(root map[string]any, key string, value any) error {
	parts := strings.Split(key, ".")
	current := root

	for _, part := range parts[:len(parts)-1] {
		next, exists := current[part]
		if !exists {
			table := make(map[string]any)
			current[part] = table
			current = table
			continue
		}
		table, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q conflicts with value at %q", key, part)
		}
		current = table
	}

	last := parts[len(parts)-1]
	if _, isTable := current[last].(map[string]any); isTable {
		return fmt.Errorf("key %q conflicts with an existing table", key)
	}
	current[last] = value
	return nil
}

func sortedKeys(entries map[string][]*ConfigEntry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
