// Package schemas validates job catalog files and serialized candidate profiles
// against embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed job_catalog.schema.json
	jobCatalogSchema string

	//go:embed candidate_profile.schema.json
	candidateProfileSchema string
)

// Document kinds reported in errors.
const (
	DocumentCatalog = "job catalog"
	DocumentProfile = "candidate profile"
)

// maxReportedErrors bounds the failures listed in ValidationError.Error.
const maxReportedErrors = 5

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError is one violation. Field is a dotted path such as "postings.0.title".
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s does not match schema", ve.Document)
	for i, fe := range ve.Errors {
		if i == maxReportedErrors {
			fmt.Fprintf(&sb, "; and %d more", len(ve.Errors)-i)
			break
		}
		fmt.Fprintf(&sb, "; %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// Fields returns the paths of the violating fields in report order.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

// DocumentError means the document could not be read as JSON at all.
type DocumentError struct {
	Document string
	Cause    error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %v", e.Document, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// ValidateCatalogJSON validates a job catalog document ({"postings": [...]}).
func ValidateCatalogJSON(data []byte) error {
	return validate(DocumentCatalog, jobCatalogSchema, data)
}

// ValidateProfileJSON validates a serialized candidate profile.
func ValidateProfileJSON(data []byte) error {
	return validate(DocumentProfile, candidateProfileSchema, data)
}

func validate(document, schema string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return &DocumentError{Document: document, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Document: document, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
