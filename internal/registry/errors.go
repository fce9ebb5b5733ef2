package registry

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the Client matches exactly one of these with errors.Is.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrAuthentication = errors.New("authentication failed")
	ErrHTTPStatus     = errors.New("unexpected HTTP status")
	ErrTransport      = errors.New("transport failure")
)

// ConfigurationError reports a required setting that is missing or unusable.
type ConfigurationError struct {
	// Variable is the environment variable that backs the setting
	Variable string
	// Reason overrides the default "is not set" message when non-empty
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s environment variable %s", e.Variable, e.Reason)
	}
	return fmt.Sprintf("%s environment variable is not set", e.Variable)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// AuthenticationError is returned when the registry answers 401.
type AuthenticationError struct {
	URL string
}

func (e *AuthenticationError) Error() string {
	return "Authentication failed"
}

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// HTTPError carries any non-2xx status other than the ones the client handles itself.
type HTTPError struct {
	StatusCode int
	Reason     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Reason)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// TransportError wraps network failures, timeouts and undecodable response bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
