// Package errors provides standardized error handling for espedit.
// It defines the error kinds shared by the parser, the file-system
// collaborator, and the edit sessions, along with helpers for
// consistent creation, wrapping, and classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Parse error kinds
	Malformed
	TypeMismatch
	// File error kinds
	FileNotFound
	PermissionDenied
	FileOperationFailed
	// Naming and session error kinds
	InvalidFileName
	InvalidDirectory
	SessionNotLoaded
	ValidationBlocked
	ConflictPending
)

// ApplicationError is the base error type for all espedit errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ParseError represents a failure to decode a YAML document.
// Key names the offending known key when the kind is TypeMismatch,
// so the presentation layer can point the user at the right field.
type ParseError struct {
	ApplicationError
	key string
}

// NewParseError creates a new parse error
func NewParseError(msg string, key string, kind ErrorKind, err error) *ParseError {
	return &ParseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		key: key,
	}
}

// Error returns the parse error message
func (e *ParseError) Error() string {
	if e.key != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: key %q: %v", e.msg, e.key, e.err)
		}
		return fmt.Sprintf("%s: key %q", e.msg, e.key)
	}
	return e.ApplicationError.Error()
}

// Key returns the YAML key associated with the error
func (e *ParseError) Key() string {
	return e.key
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error with an explicit kind
func NewKind(msg string, kind ErrorKind) error {
	return &ApplicationError{
		msg:  msg,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: KindOf(err),
	}
}

// kinder is implemented by every error type in this package
type kinder interface {
	Kind() ErrorKind
}

// KindOf reports the kind of the first classified error in the chain,
// or Unknown when none is found.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinder); ok {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsMalformed checks if the error is a malformed-document parse error
func IsMalformed(err error) bool {
	return KindOf(err) == Malformed
}

// IsTypeMismatch checks if the error is a type-mismatch parse error
func IsTypeMismatch(err error) bool {
	return KindOf(err) == TypeMismatch
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return KindOf(err) == FileNotFound
}

// IsPermissionDenied checks if the error is a permission error
func IsPermissionDenied(err error) bool {
	return KindOf(err) == PermissionDenied
}

// IsValidationBlocked checks if the error reports a save refused by
// Error-severity validation issues
func IsValidationBlocked(err error) bool {
	return KindOf(err) == ValidationBlocked
}

// IsConflictPending checks if the error reports an unresolved
// external change on disk
func IsConflictPending(err error) bool {
	return KindOf(err) == ConflictPending
}
