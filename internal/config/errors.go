package config

import "fmt"

// ErrorKind classifies fatal configuration failures.
type ErrorKind string

const (
	// KindRequiredCredential marks a service-specific credential that is
	// absent after secret resolution.
	KindRequiredCredential ErrorKind = "required_credential"
	// KindSchemaValidation marks a merged document that fails type or shape
	// validation.
	KindSchemaValidation ErrorKind = "schema_validation"
)

// ConfigError is a fatal configuration failure. Anything that produces one
// prevents the process from starting; there is no partial-startup mode.
type ConfigError struct {
	Kind    ErrorKind
	Service string
	Field   string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("configuration error (%s)", e.Kind)
	if e.Service != "" {
		msg += fmt.Sprintf(" for service %q", e.Service)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
