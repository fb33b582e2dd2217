package iam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cxp-platform/cxp-cli/internal/config"
)

// UsageError reports an invalid command-line argument. It is raised before
// any file or network I/O happens.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ConfigError reports a required configuration field that is missing or empty.
type ConfigError struct {
	Field string
	Err   error
}

// NewConfigError wraps err, taking the field from a *config.FieldError
func NewConfigError(err error) *ConfigError {
	var fe *config.FieldError
	if errors.As(err, &fe) {
		return &ConfigError{Field: fe.Field, Err: fe}
	}
	return &ConfigError{Err: err}
}

func (e *ConfigError) Error() string {
	// a field error already names its field
	var fe *config.FieldError
	if e.Err != nil && (e.Field == "" || (errors.As(e.Err, &fe) && fe.Field == e.Field)) {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid config field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("missing required config field %q", e.Field)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RequestError reports a transport failure or a non-2xx response from IAM.
type RequestError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(" failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
		if body := strings.TrimSpace(e.Body); body != "" {
			fmt.Fprintf(&b, ": %s", body)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ErrorKind names the class of a failure for user-facing messages.
type ErrorKind string

const (
	KindUsage   ErrorKind = "usage"
	KindConfig  ErrorKind = "config"
	KindRequest ErrorKind = "request"
	KindOther   ErrorKind = "error"
)

// KindOf classifies err against the registration error taxonomy.
func KindOf(err error) ErrorKind {
	var usageErr *UsageError
	var configErr *ConfigError
	var requestErr *RequestError
	switch {
	case errors.As(err, &usageErr):
		return KindUsage
	case errors.As(err, &configErr):
		return KindConfig
	case errors.As(err, &requestErr):
		return KindRequest
	default:
		return KindOther
	}
}

// ExitCode maps an error returned by a command to the process exit status.
// Every failure kind is terminal and exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
