package config

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/utkarsh5026/gitcore/pkg/repository/ignore"
)

var timezonePattern = regexp.MustCompile(`^[+-]\d{4}$`)

// Validator provides semantic validation for configuration values
type Validator struct{}

// ValidateKeyValue validates a configuration key-value pair
// Returns nil if valid, or an error describing the validation failure
func (v *Validator) ValidateKeyValue(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) < 2 || slices.Contains(parts, "") {
		return NewValidationError(key, fmt.Errorf("configuration key must have at least section.name format"))
	}

	switch key {
	case KeyUserName:
		return v.ValidateName(value)
	case KeyUserEmail:
		return v.ValidateEmail(value)
	case KeyUserTimezone:
		return v.ValidateTimezone(value)
	case KeyCoreIgnore:
		return v.ValidateIgnorePattern(value)
	}
	return nil
}

// ValidateName checks an identity name: non-empty, no angle brackets or newlines.
func (v *Validator) ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError(KeyUserName, fmt.Errorf("name cannot be empty"))
	}
	if strings.ContainsAny(name, "<>\n") {
		return NewValidationError(KeyUserName, fmt.Errorf("name %q contains '<', '>' or a newline", name))
	}
	return nil
}

// ValidateEmail checks an identity email: non-empty, no angle brackets,
// whitespace or newlines.
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError(KeyUserEmail, fmt.Errorf("email cannot be empty"))
	}
	if strings.ContainsAny(email, "<> \t\n") {
		return NewValidationError(KeyUserEmail, fmt.Errorf("email %q contains invalid characters", email))
	}
	return nil
}

// ValidateTimezone checks a "+HHMM" or "-HHMM" offset.
func (v *Validator) ValidateTimezone(tz string) error {
	if !timezonePattern.MatchString(tz) {
		return NewValidationError(KeyUserTimezone, fmt.Errorf("timezone %q must look like +HHMM", tz))
	}
	minutes, _ := strconv.Atoi(tz[3:])
	if minutes >= 60 {
		return NewValidationError(KeyUserTimezone, fmt.Errorf("timezone %q has minutes out of range", tz))
	}
	return nil
}

// ValidateIgnorePattern checks that an ignore entry parses as a name pattern.
func (v *Validator) ValidateIgnorePattern(pattern string) error {
	if _, err := ignore.ParsePattern(pattern); err != nil {
		return NewValidationError(KeyCoreIgnore, err)
	}
	return nil
}
