package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unsupported", &ingestion.ExtractionError{Kind: ingestion.ErrUnsupportedFormat}, http.StatusUnsupportedMediaType},
		{"too large", &ingestion.ExtractionError{Kind: ingestion.ErrFileTooLarge}, http.StatusRequestEntityTooLarge},
		{"body limit", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"corrupt", &ingestion.ExtractionError{Kind: ingestion.ErrCorruptDocument}, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("posting x: %w", catalog.ErrNotFound), http.StatusNotFound},
		{"request", &ErrValidation{Field: "sort", Message: "bad"}, http.StatusBadRequest},
		{"struct", (&types.MatchRequest{}).Validate(), http.StatusBadRequest},
		{"profile", &parsing.ValidationError{Message: "invalid profile"}, http.StatusBadRequest},
		{"parse", &parsing.ParseError{Message: "bad json"}, http.StatusBadRequest},
		{"catalog", &catalog.LoadError{Message: "bad catalog"}, http.StatusBadRequest},
		{"fetch invalid ref", &fetch.Error{Ref: "ftp://x", Message: "unsupported scheme"}, http.StatusBadRequest},
		{"fetch upstream", &fetch.Error{Ref: "https://x", StatusCode: 404}, http.StatusBadGateway},
		{"fetch forbidden", &fetch.Error{Ref: "http://10.0.0.1/cv.pdf", Message: "destination not allowed", Cause: fetch.ErrForbiddenDestination}, http.StatusForbidden},
		{"doc converter missing", &ingestion.ExtractionError{Kind: ingestion.ErrConverterUnavailable}, http.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "internal server error", ErrorMessage(errors.New("db password leaked")))
	assert.Equal(t, "document source not allowed", ErrorMessage(&fetch.Error{Ref: "http://127.0.0.1", Cause: fetch.ErrForbiddenDestination}))
	assert.Equal(t, "validation error: sort - bad", ErrorMessage(&ErrValidation{Field: "sort", Message: "bad"}))
	assert.Equal(t, `invalid request: MatchRequest.Profile failed "required"`, ErrorMessage((&types.MatchRequest{}).Validate()))
	assert.Equal(t, "file too large", ErrorMessage(&http.MaxBytesError{Limit: 10}))
}
