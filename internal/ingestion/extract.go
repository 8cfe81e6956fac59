// Package ingestion turns uploaded resume documents into normalized text.
package ingestion

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMaxBytes is the upload limit enforced before any parsing.
const DefaultMaxBytes int64 = 10 << 20

// Extractor converts ResumeDocuments into NormalizedText.
type Extractor struct {
	maxBytes int64
	logger   *zap.Logger
}

// NewExtractor creates an extractor. A non-positive maxBytes selects DefaultMaxBytes.
func NewExtractor(maxBytes int64, logger *zap.Logger) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{maxBytes: maxBytes, logger: logger}
}

// MaxBytes returns the configured size limit.
func (e *Extractor) MaxBytes() int64 {
	return e.maxBytes
}

// Extract validates the document's size and format, decodes it, and
// normalizes the text. Size is checked before the format is even inspected.
func (e *Extractor) Extract(ctx context.Context, doc types.ResumeDocument) (*types.NormalizedText, error) {
	if doc.Size() > e.maxBytes {
		return nil, &ExtractionError{
			Kind:     ErrFileTooLarge,
			MIMEType: doc.MIMEType,
			Message:  fmt.Sprintf("%d bytes exceeds the %d byte limit", doc.Size(), e.maxBytes),
		}
	}

	format, err := FormatFromMIME(doc.MIMEType)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := decode(format, doc.Data)
	if err != nil {
		e.logger.Debug("document decode failed",
			zap.String("mime_type", doc.MIMEType),
			zap.Int64("size_bytes", doc.Size()),
			zap.Error(err))
		return nil, err
	}

	normalized := Normalize(raw)
	if strings.TrimSpace(normalized.Text) == "" {
		return nil, corrupt(doc.MIMEType, "no text content found", nil)
	}

	e.logger.Debug("document extracted",
		zap.String("format", string(format)),
		zap.Int64("size_bytes", doc.Size()),
		zap.Int("chars", len(normalized.Text)),
		zap.Int("sections", len(normalized.Sections)))
	return &normalized, nil
}

// Normalize cleans raw text and detects its sections.
func Normalize(raw string) types.NormalizedText {
	text := CleanText(raw)
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return types.NormalizedText{Text: text, Sections: DetectSections(lines)}
}

func decode(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatDOC:
		return extractDOC(data)
	}
	return "", &ExtractionError{Kind: ErrUnsupportedFormat, Message: string(format)}
}
