// Package errors defines the error taxonomy shared across the bumper
// system: sentinel values for errors.Is checks, typed errors carrying
// context about what failed, and wrapping helpers for the common cases.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors. Typed errors below map onto these through their Is
// methods, so callers can test broad categories without knowing the
// concrete type.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrRateLimited     = errors.New("rate limited")
	ErrRepoUnavailable = errors.New("repository unavailable")
	ErrTimeout         = errors.New("operation timed out")
	ErrCanceled        = errors.New("operation canceled")
)

// ManifestError is a fatal problem with the local package manifest.
// Unlike per-repository fetch failures, a ManifestError aborts the run.
type ManifestError struct {
	Path    string
	Message string
	Err     error
}

func (e *ManifestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("manifest error in %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("manifest error: %s", e.Message)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// NewManifestError creates a ManifestError for the manifest at path.
func NewManifestError(path, message string, err error) *ManifestError {
	return &ManifestError{Path: path, Message: message, Err: err}
}

// APIError is an error response from the GitHub API for one repository.
// Its Is method classifies the failure: 429 is ErrRateLimited, 404 is
// ErrNotFound, 5xx is ErrRepoUnavailable, and transport failures caused
// by the context ending match ErrCanceled or ErrTimeout.
type APIError struct {
	Repo       string // Repository in owner/name form
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Repo, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Repo, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRepoUnavailable:
		return e.StatusCode >= 500
	case ErrCanceled:
		return errors.Is(e.Err, context.Canceled)
	case ErrTimeout:
		var nerr net.Error
		return errors.As(e.Err, &nerr) && nerr.Timeout()
	}
	return false
}

// NewAPIError creates an APIError from a status line.
func NewAPIError(repo string, statusCode int, message string) *APIError {
	return &APIError{Repo: repo, StatusCode: statusCode, Message: message}
}

// ParseError is a failure decoding a data format such as JSON or base64.
type ParseError struct {
	Format  string // "json", "yaml", etc.
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a ParseError for the given format and file.
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError is a filesystem or request construction failure.
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an IOError, taking its message from err when set.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ConfigError is an invalid or unusable configuration value.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError scoped to a component.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ValidationError is a rejected input value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError reports a missing resource by kind and identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited reports whether err is an API rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout reports whether err was caused by a timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled reports whether err was caused by cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsRepoUnavailable reports whether err indicates a repository outage.
func IsRepoUnavailable(err error) bool {
	return errors.Is(err, ErrRepoUnavailable)
}

// IsManifestError reports whether err is a fatal manifest error.
func IsManifestError(err error) bool {
	var me *ManifestError
	return errors.As(err, &me)
}

// WrapValidation wraps err as a ValidationError on field.
// A nil err returns nil, as with all the Wrap helpers.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps err as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps err as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps err as an APIError for repo.
func WrapAPI(repo string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Repo:       repo,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// WrapManifest wraps err as a ManifestError for the manifest at path.
func WrapManifest(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewManifestError(path, err.Error(), err)
}
