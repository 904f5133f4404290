package commit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Person represents author or committer information in a commit.
//
// Person Structure:
// ┌─────────────────────────────────────────────────────────────────┐
// │ Name <email> timestamp timezone                                 │
// └─────────────────────────────────────────────────────────────────┘
//
// Example: "John Doe <john@example.com> 1609459200 +0000"
type Person struct {
	Name  string
	Email string
	When  time.Time
}

// personPattern is the regex pattern for parsing the person format
// Pattern: "Name <email> timestamp timezone"
var personPattern = regexp.MustCompile(`^(.+) <([^<>]+)> (\d+) ([+-]\d{4})$`)

// NewPerson creates a new Person with validation
func NewPerson(name, email string, when time.Time) (*Person, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Person{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		When:  when,
	}, nil
}

// Format renders "Name <email> timestamp timezone".
func (p *Person) Format() string {
	return fmt.Sprintf("%s <%s> %d %s", p.Name, p.Email, p.When.Unix(), FormatTimezone(p.When))
}

// ParsePerson parses person information.
// Format: "Name <email> timestamp timezone"
// Example: "John Doe <john@example.com> 1609459200 +0000"
func ParsePerson(s string) (*Person, error) {
	matches := personPattern.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid person format: %q", s)
	}

	timestamp, err := strconv.ParseInt(matches[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	location, err := ParseTimezone(matches[4])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	return NewPerson(matches[1], matches[2], time.Unix(timestamp, 0).In(location))
}

// String returns a human-readable representation
func (p *Person) String() string {
	return fmt.Sprintf("%s <%s> at %s", p.Name, p.Email, p.When.Format(time.RFC3339))
}

// Equal compares two Person instances for equality
func (p *Person) Equal(other *Person) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name &&
		p.Email == other.Email &&
		p.When.Unix() == other.When.Unix() &&
		FormatTimezone(p.When) == FormatTimezone(other.When)
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(trimmed, "<>\n") {
		return fmt.Errorf("invalid characters in name: %q", name)
	}
	return nil
}

func validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if strings.ContainsAny(trimmed, "<>\n ") {
		return fmt.Errorf("invalid characters in email: %q", email)
	}
	return nil
}

// FormatTimezone renders the UTC offset of t as +HHMM or -HHMM.
func FormatTimezone(t time.Time) string {
	_, offset := t.Zone()

	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d%02d", sign, offset/3600, (offset%3600)/60)
}

// ParseTimezone parses timezone string like "+0530" or "-0800" and returns a Location
func ParseTimezone(tz string) (*time.Location, error) {
	if len(tz) != 5 {
		return nil, fmt.Errorf("invalid timezone length: %q", tz)
	}

	sign := tz[0]
	if sign != '+' && sign != '-' {
		return nil, fmt.Errorf("invalid timezone sign: %c", sign)
	}

	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone hours: %w", err)
	}

	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil || minutes >= 60 {
		return nil, fmt.Errorf("invalid timezone minutes: %q", tz[3:5])
	}

	offsetSeconds := hours*3600 + minutes*60
	if sign == '-' {
		offsetSeconds = -offsetSeconds
	}

	return time.FixedZone(tz, offsetSeconds), nil
}
