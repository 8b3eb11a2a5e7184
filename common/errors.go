// Package common provides shared constants, types, and utilities
// used across the XFCE Gala Settings application.
package common

import "errors"

// Sentinel errors for settings operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Startup errors. The session config cannot be established without them.
	ErrMissingEnvironment = errors.New("required environment variable is not set")
	ErrTemplateMissing    = errors.New("session config template does not exist")
	ErrCopyFailed         = errors.New("failed to copy session config template")

	// Session config errors. The pending toggle is aborted.
	ErrReadFailed  = errors.New("failed to read session config")
	ErrWriteFailed = errors.New("failed to write session config")

	// Apply errors. Reported, never fatal.
	ErrProcessSpawnFailed = errors.New("failed to start window manager")
	ErrPreferenceWrite    = errors.New("failed to write preference")

	// Preference read errors. Callers default to false.
	ErrPreferenceUnset   = errors.New("preference is not set")
	ErrPreferenceInvalid = errors.New("preference is not a boolean")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// ErrAlreadyRunning is returned when another panel holds the instance lock.
	ErrAlreadyRunning = errors.New("another instance is already running")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

// IsFatal reports whether err prevents the panel from starting.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingEnvironment) ||
		errors.Is(err, ErrTemplateMissing) ||
		errors.Is(err, ErrCopyFailed)
}
