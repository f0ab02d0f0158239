package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the download core reports
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindValidation ErrorKind = "ValidationError"
	KindProbe      ErrorKind = "ProbeError"
	KindShape      ErrorKind = "ShapeMismatch"
	KindFilesystem ErrorKind = "FilesystemError"
	KindFetch      ErrorKind = "FetchError"
	KindCancelled  ErrorKind = "Cancelled"
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	return string(k)
}

// Sentinels for errors.Is matching by kind
var (
	ErrValidation = &DownloadError{Kind: KindValidation}
	ErrProbe      = &DownloadError{Kind: KindProbe}
	ErrShape      = &DownloadError{Kind: KindShape}
	ErrFilesystem = &DownloadError{Kind: KindFilesystem}
	ErrFetch      = &DownloadError{Kind: KindFetch}
	ErrCancelled  = &DownloadError{Kind: KindCancelled}
)

// DownloadError carries a kind, a human readable message and an optional cause
type DownloadError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError creates a DownloadError of the given kind
func NewError(kind ErrorKind, err error, format string, args ...any) *DownloadError {
	return &DownloadError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *DownloadError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Is matches any DownloadError of the same kind
func (e *DownloadError) Is(target error) bool {
	var t *DownloadError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind of err, or KindNone
func KindOf(err error) ErrorKind {
	var de *DownloadError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindNone
}
