package ingestion

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"
)

// Accepted MIME types.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeDOC  = "application/msword"
)

// Format is a supported document container.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
)

var (
	pdfMagic  = []byte("%PDF-")
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// FormatFromMIME maps a declared MIME type (parameters allowed) to a Format.
func FormatFromMIME(mimeType string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", &ExtractionError{Kind: ErrUnsupportedFormat, MIMEType: mimeType, Message: "invalid MIME type"}
	}
	switch strings.ToLower(mediaType) {
	case MIMETypePDF, "application/x-pdf":
		return FormatPDF, nil
	case MIMETypeDOCX:
		return FormatDOCX, nil
	case MIMETypeDOC:
		return FormatDOC, nil
	}
	return "", &ExtractionError{
		Kind:     ErrUnsupportedFormat,
		MIMEType: mimeType,
		Message:  "only PDF, DOC and DOCX files are accepted",
	}
}

// MIMETypeFromFilename guesses the MIME type from a file extension.
// It returns an empty string for unknown extensions.
func MIMETypeFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MIMETypePDF
	case ".docx":
		return MIMETypeDOCX
	case ".doc":
		return MIMETypeDOC
	}
	return ""
}

// ResolveMIMEType prefers the declared type and falls back to the filename
// when the declared type is missing or generic.
func ResolveMIMEType(declared, filename string) string {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err == nil && mediaType != "application/octet-stream" {
		return declared
	}
	if guessed := MIMETypeFromFilename(filename); guessed != "" {
		return guessed
	}
	return declared
}

func hasMagic(data, magic []byte) bool {
	return bytes.HasPrefix(data, magic)
}
