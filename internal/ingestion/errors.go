package ingestion

import (
	"errors"
	"fmt"
)

// Sentinel errors for document extraction failures. All but
// ErrConverterUnavailable are unrecoverable for the given upload; the caller
// must supply a different file.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("corrupt document")
	ErrFileTooLarge      = errors.New("file too large")

	// ErrConverterUnavailable means the host lacks an external tool needed for
	// the format. The document itself may be fine.
	ErrConverterUnavailable = errors.New("document converter unavailable")
)

// ExtractionError describes why a document could not be turned into text.
// errors.Is matches it against its Kind sentinel.
type ExtractionError struct {
	Kind     error
	MIMEType string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the error's Kind.
func (e *ExtractionError) Is(target error) bool {
	return target == e.Kind
}

func corrupt(mimeType, message string, cause error) error {
	return &ExtractionError{Kind: ErrCorruptDocument, MIMEType: mimeType, Message: message, Cause: cause}
}
