package services

import "fmt"

// ConfigError means a required external credential is missing. The search
// adapters absorb this into their fallback path; the itinerary generator
// surfaces it before any request is attempted.
type ConfigError struct {
	Service string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: required credential not configured", e.Service)
}

// ProviderError is a non-success response from an upstream service.
type ProviderError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: upstream error (%d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: upstream error: %s", e.Service, e.Message)
}

// ParseError is a malformed upstream payload.
type ParseError struct {
	Service string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse upstream response: %v", e.Service, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is invalid caller input, rejected before any external call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a trip-store failure. The underlying driver error
// is surfaced verbatim through Unwrap, so sentinel checks like
// errors.Is(err, sql.ErrNoRows) keep working.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("trip store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// InvalidDateError is returned when a date string cannot be parsed as a
// calendar date in any accepted layout.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Input)
}
