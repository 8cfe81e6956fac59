package ingestion

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Metadata describes an ingested document without retaining its bytes.
type Metadata struct {
	Filename  string               `json:"filename,omitempty"`
	MIMEType  string               `json:"mime_type"`
	SizeBytes int64                `json:"size_bytes"`
	Hash      string               `json:"hash"` // SHA256 hex digest of MIME type and bytes
	Sections  []types.SectionLabel `json:"sections,omitempty"`
}

// NewMetadata summarizes a document and, if available, its extracted sections.
func NewMetadata(doc types.ResumeDocument, text *types.NormalizedText) *Metadata {
	m := &Metadata{
		Filename:  doc.Filename,
		MIMEType:  doc.MIMEType,
		SizeBytes: doc.Size(),
		Hash:      DocumentHash(doc),
	}
	if text != nil {
		m.Sections = text.Labels()
	}
	return m
}

// DocumentHash computes the SHA256 of the declared MIME type and content.
// Identical uploads always hash identically.
func DocumentHash(doc types.ResumeDocument) string {
	h := sha256.New()
	h.Write([]byte(doc.MIMEType))
	h.Write([]byte{0})
	h.Write(doc.Data)
	return hex.EncodeToString(h.Sum(nil))
}
