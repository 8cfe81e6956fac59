package ingestion

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/testutil"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestExtract_FileTooLargeBeforeParsing(t *testing.T) {
	extractor := NewExtractor(0, nil)
	doc := types.ResumeDocument{
		// 12MB of bytes that are neither a valid PDF nor any supported format.
		Data:     bytes.Repeat([]byte{'x'}, 12<<20),
		MIMEType: "image/png",
	}

	_, err := extractor.Extract(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileTooLarge))
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtract_ExactlyAtLimitIsAccepted(t *testing.T) {
	extractor := NewExtractor(16, nil)
	_, err := extractor.Extract(context.Background(), types.ResumeDocument{
		Data:     bytes.Repeat([]byte{'x'}, 16),
		MIMEType: MIMETypePDF,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptDocument))
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	extractor := NewExtractor(0, nil)
	for _, mimeType := range []string{"text/plain", "image/png", "", "not a mime type;;"} {
		t.Run(mimeType, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), types.ResumeDocument{Data: []byte("hello"), MIMEType: mimeType})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat))
		})
	}
}

func TestExtract_CorruptDocuments(t *testing.T) {
	extractor := NewExtractor(0, nil)
	tests := []struct {
		name     string
		mimeType string
		data     []byte
	}{
		{"pdf without header", MIMETypePDF, []byte("this is not a pdf")},
		{"pdf with header but no structure", MIMETypePDF, []byte("%PDF-1.4\ngarbage garbage garbage")},
		{"docx that is not a zip", MIMETypeDOCX, []byte("plain text")},
		{"docx zip header but truncated", MIMETypeDOCX, []byte("PK\x03\x04truncated")},
		{"doc without ole2 header", MIMETypeDOC, []byte("plain text")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), types.ResumeDocument{Data: tt.data, MIMEType: tt.mimeType})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptDocument), "got %v", err)

			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.Equal(t, tt.mimeType, extractionErr.MIMEType)
		})
	}
}

func TestExtract_DOCX(t *testing.T) {
	data, err := testutil.BuildDOCX(testutil.SampleResume...)
	require.NoError(t, err)

	extractor := NewExtractor(0, nil)
	text, err := extractor.Extract(context.Background(), types.ResumeDocument{Data: data, MIMEType: MIMETypeDOCX})
	require.NoError(t, err)

	assert.Contains(t, text.Text, "Senior Software Engineer at Acme Corp")
	assert.Equal(t, []types.SectionLabel{
		types.SectionSummary, types.SectionExperience, types.SectionEducation, types.SectionSkills,
	}, text.Labels())
	assert.Contains(t, text.SectionText(types.SectionSkills), "Kubernetes")
}

func TestExtract_DOCXWithoutText(t *testing.T) {
	data, err := testutil.BuildDOCX("", "   ")
	require.NoError(t, err)

	extractor := NewExtractor(0, nil)
	_, err = extractor.Extract(context.Background(), types.ResumeDocument{Data: data, MIMEType: MIMETypeDOCX})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptDocument))
	assert.Contains(t, err.Error(), "no text content found")
}

func TestExtract_Deterministic(t *testing.T) {
	data, err := testutil.BuildDOCX(testutil.SampleResume...)
	require.NoError(t, err)

	extractor := NewExtractor(0, nil)
	doc := types.ResumeDocument{Data: data, MIMEType: MIMETypeDOCX + "; charset=binary"}
	first, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtract_CanceledContext(t *testing.T) {
	data, err := testutil.BuildDOCX("Experience")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewExtractor(0, nil).Extract(ctx, types.ResumeDocument{Data: data, MIMEType: MIMETypeDOCX})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocumentXMLText(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>R&amp;D</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t>Lead</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Line</w:t><w:br/><w:t>Break</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr></w:p>` +
		`</w:body></w:document>`

	text, err := documentXMLText(body)
	require.NoError(t, err)
	assert.Equal(t, "R&D\tLead\nLine\nBreak\n\n", text)

	_, err = documentXMLText("<w:document><w:body>")
	assert.Error(t, err)
}

func TestFormatFromMIME(t *testing.T) {
	format, err := FormatFromMIME("Application/PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)

	format, err = FormatFromMIME(MIMETypeDOC)
	require.NoError(t, err)
	assert.Equal(t, FormatDOC, format)

	_, err = FormatFromMIME("text/html")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestResolveMIMEType(t *testing.T) {
	assert.Equal(t, MIMETypePDF, ResolveMIMEType("", "resume.PDF"))
	assert.Equal(t, MIMETypeDOCX, ResolveMIMEType("application/octet-stream", "cv.docx"))
	assert.Equal(t, MIMETypeDOC, ResolveMIMEType(MIMETypeDOC, "cv.pdf"))
	assert.Equal(t, "", ResolveMIMEType("", "notes.txt"))
}

func TestDocumentHash(t *testing.T) {
	a := types.ResumeDocument{Data: []byte("abc"), MIMEType: MIMETypePDF}
	b := types.ResumeDocument{Data: []byte("abc"), MIMEType: MIMETypeDOCX}

	assert.Equal(t, DocumentHash(a), DocumentHash(a))
	assert.NotEqual(t, DocumentHash(a), DocumentHash(b))
	assert.Len(t, DocumentHash(a), 64)

	meta := NewMetadata(a, &types.NormalizedText{Sections: []types.Section{{Label: types.SectionSkills}}})
	assert.Equal(t, int64(3), meta.SizeBytes)
	assert.Equal(t, []types.SectionLabel{types.SectionSkills}, meta.Sections)
}

func TestExtract_PDFLayouts(t *testing.T) {
	layouts := map[string]testutil.PDFLayout{
		"relative Td moves": testutil.LayoutTd,
		"leading and T*":    testutil.LayoutTStar,
		"absolute Tm":       testutil.LayoutTm,
		"per-line cm":       testutil.LayoutCM,
	}
	extractor := NewExtractor(0, nil)
	for name, layout := range layouts {
		t.Run(name, func(t *testing.T) {
			data := testutil.BuildPDF(testutil.PDFContent(layout, testutil.SampleResume...))
			text, err := extractor.Extract(context.Background(), types.ResumeDocument{Data: data, MIMEType: MIMETypePDF})
			require.NoError(t, err)

			assert.Equal(t, []types.SectionLabel{
				types.SectionSummary, types.SectionExperience, types.SectionEducation, types.SectionSkills,
			}, text.Labels())
			assert.Equal(t, []string{
				"Senior Software Engineer at Acme Corp",
				"Jan 2020 - Dec 2023",
			}, text.SectionLines(types.SectionExperience)[:2])
			assert.Contains(t, text.SectionText(types.SectionSkills), "Kubernetes")
		})
	}
}

func TestExtract_PDFMultiplePages(t *testing.T) {
	data := testutil.BuildPDF(
		testutil.PDFContent(testutil.LayoutTd, "Experience", "Engineer at Acme", "2019 - 2021"),
		testutil.PDFContent(testutil.LayoutTd, "Education", "BS Computer Science"),
	)
	text, err := NewExtractor(0, nil).Extract(context.Background(), types.ResumeDocument{Data: data, MIMEType: MIMETypePDF})
	require.NoError(t, err)
	assert.Equal(t, []types.SectionLabel{types.SectionExperience, types.SectionEducation}, text.Labels())
	assert.Equal(t, "BS Computer Science", text.SectionText(types.SectionEducation))
}

func TestExtractPDF_WordSpacing(t *testing.T) {
	content := "BT /F1 11 Tf 72 720 Td\n" +
		"[(Soft)-20(ware)-333(Engineer)] TJ\n" +
		"0 -14 Td (Python,) Tj 80 0 Td (Go) Tj\n" +
		"-80 -14 Td (Lang) Tj (uages) Tj\n" +
		"ET\n"
	raw, err := extractPDF(testutil.BuildPDF(content))
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer\nPython, Go\nLanguages\n\n", raw)
}

func TestExtractPDF_EmptyPage(t *testing.T) {
	raw, err := extractPDF(testutil.BuildPDF(""))
	require.NoError(t, err)
	assert.Equal(t, "\n", raw)
}

func TestExtract_DOC(t *testing.T) {
	if _, err := exec.LookPath("wvText"); err != nil {
		t.Skip("wvText not installed")
	}
	data, err := os.ReadFile(filepath.Join("testdata", "word97.doc"))
	require.NoError(t, err)

	text, err := NewExtractor(0, nil).Extract(context.Background(), types.ResumeDocument{Data: data, MIMEType: MIMETypeDOC})
	require.NoError(t, err)
	assert.Contains(t, text.Text, "test")
}

func TestExtract_DOCWithoutConverter(t *testing.T) {
	original := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	t.Cleanup(func() { lookPath = original })

	data, err := os.ReadFile(filepath.Join("testdata", "word97.doc"))
	require.NoError(t, err)

	_, err = NewExtractor(0, nil).Extract(context.Background(), types.ResumeDocument{Data: data, MIMEType: MIMETypeDOC})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConverterUnavailable)
	assert.NotErrorIs(t, err, ErrCorruptDocument)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), "wvText")
}
