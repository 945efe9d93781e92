package errors

import "fmt"

// ConfigError reports an invalid configuration value supplied by the
// caller (Monte Carlo iteration count, weight mode, bandwidth). Unlike
// input degeneracies, these are never answered with a neutral result.
type ConfigError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// NewConfigError creates a ConfigError for the given field and value
func NewConfigError(field string, value interface{}, message string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Message: message}
}
