package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds pod names and node labels.
const MaxNameLength = 256

// ValidateName validates a pod name or node label before it becomes a
// YAML mapping key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No leading or trailing whitespace
//   - No control characters (including newlines and null bytes)
//   - Maximum length of MaxNameLength bytes
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", MaxNameLength)
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidName, "name %q has leading or trailing whitespace", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePropertyName validates a property key. The "needs" key is
// reserved for dependencies and is rejected.
func ValidatePropertyName(name string) error {
	if err := ValidateName(name); err != nil {
		return Wrap(ErrCodeInvalidProperty, err, "invalid property name")
	}
	if name == "needs" {
		return New(ErrCodeInvalidProperty, "property name %q is reserved", name)
	}
	return nil
}
