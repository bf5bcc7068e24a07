package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientData marks a degraded-but-usable outcome: fewer items
// than requested. Selection and recommendation return short results
// instead of raising it; callers that need the distinction can errors.Is.
var ErrInsufficientData = errors.New("insufficient data")

// ErrVersionConflict is returned when an optimistic version check fails
// during a subscription read-modify-write.
var ErrVersionConflict = errors.New("subscription was modified concurrently")

// ConfigError reports an unrecognized enum value or structurally invalid
// input. It always fails fast; nothing downstream computes with an
// unknown key.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func NewConfigError(field, value string) *ConfigError {
	return &ConfigError{Field: field, Value: value}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
