// Package errors defines the error values shared across extasset and the
// helpers used to add context to them.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrConfigFileChmod   = fmt.Errorf("failed to set config file permissions")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config")
	ErrConfigEnv         = fmt.Errorf("invalid environment override")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrVersionConstraint = fmt.Errorf("version constraint not satisfied")

	// Download errors.
	ErrDownloadFailed = fmt.Errorf("download failed")
	ErrTransport      = fmt.Errorf("transport error")
	ErrStatus         = fmt.Errorf("unexpected response status")

	// Workspace and publishing errors.
	ErrInvalidPath = fmt.Errorf("invalid path")
	ErrWorkspace   = fmt.Errorf("workspace error")
	ErrPublish     = fmt.Errorf("failed to publish asset")
	ErrStorage     = fmt.Errorf("storage error")
)

// DownloadError reports a failed fetch. StatusCode is set when the server
// answered with something other than 200; Err is set for transport and
// stream failures.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrDownloadFailed.Error()
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Is makes a DownloadError match ErrDownloadFailed and, depending on its
// kind, ErrStatus or ErrTransport.
func (e *DownloadError) Is(target error) bool {
	switch target {
	case ErrDownloadFailed:
		return true
	case ErrStatus:
		return e.StatusCode != 0
	case ErrTransport:
		return e.StatusCode == 0
	}
	return false
}

// NewStatusError returns a DownloadError for a non-200 response.
func NewStatusError(url string, code int) *DownloadError {
	return &DownloadError{URL: url, StatusCode: code}
}

// NewTransportError returns a DownloadError wrapping a transport or stream failure.
func NewTransportError(url string, err error) *DownloadError {
	return &DownloadError{URL: url, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
