package apperr

import (
	"fmt"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ConfigurationError is returned before any I/O when required settings are absent.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error: %s (%s)", e.Message, e.Key)
	}
	return "configuration error: " + e.Message
}

func NewConfiguration(key, msg string) *ConfigurationError {
	return &ConfigurationError{Key: key, Message: msg}
}

// TransportError covers network failures and non-2xx provider responses.
// StatusCode is 0 when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s returned status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
	}
	return "transport error: " + e.URL
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransport(url string, status int, err error) *TransportError {
	return &TransportError{URL: url, StatusCode: status, Err: err}
}

// FormatError is returned when a provider body does not carry the expected record array.
type FormatError struct {
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "format error: " + e.Message + ": " + e.Err.Error()
	}
	return "format error: " + e.Message
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func NewFormat(msg string, err error) *FormatError {
	return &FormatError{Message: msg, Err: err}
}

// PersistenceError wraps a storage fault. Code holds the SQLSTATE when the
// backing store reports one.
type PersistenceError struct {
	Op   string
	Code string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("persistence error: %s (sqlstate %s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// PipelineError is what an ingestion run returns after rolling back.
// Err is the first fault the run encountered.
type PipelineError struct {
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewPipeline(msg string, err error) *PipelineError {
	return &PipelineError{Message: msg, Err: err}
}
