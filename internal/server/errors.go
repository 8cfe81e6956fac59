package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		maxBytesErr *http.MaxBytesError
		fieldErrs   validator.ValidationErrors
		requestErr  *ErrValidation
		parseErr    *parsing.ParseError
		profileErr  *parsing.ValidationError
		catalogErr  *catalog.LoadError
		fetchErr    *fetch.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrFileTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingestion.ErrCorruptDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrConverterUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, fetch.ErrForbiddenDestination):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &requestErr), errors.As(err, &fieldErrs),
		errors.As(err, &parseErr), errors.As(err, &profileErr), errors.As(err, &catalogErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		if fetchErr.StatusCode == 0 && !fetchErr.Temporary {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing message for err. Server-side
// failures get a generic message.
func ErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	switch status := HTTPStatus(err); {
	case status == http.StatusRequestEntityTooLarge:
		return "file too large"
	case status == http.StatusForbidden:
		return "document source not allowed"
	case status == http.StatusServiceUnavailable:
		return "this document format cannot be converted on this server"
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		return fmt.Sprintf("invalid request: %s failed %q", fe.Namespace(), fe.Tag())
	case status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusGatewayTimeout:
		return "internal server error"
	default:
		return err.Error()
	}
}

var validate = validator.New()
