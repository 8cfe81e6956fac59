package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// PDFLayout selects how BuildPDF positions successive lines.
type PDFLayout int

// Line positioning styles seen in real PDF producers.
const (
	// LayoutTd moves with relative "0 -14 Td" steps (pdfTeX, most LaTeX output).
	LayoutTd PDFLayout = iota
	// LayoutTStar sets a leading once and advances with T*.
	LayoutTStar
	// LayoutTm places every line with an absolute text matrix.
	LayoutTm
	// LayoutCM wraps each line in its own q/cm/BT block.
	LayoutCM
)

const (
	pdfLeft     = 72
	pdfTop      = 720
	pdfLeading  = 14
	pdfFontSize = 11
)

// PDFContent renders lines as a page content stream in the given layout.
func PDFContent(layout PDFLayout, lines ...string) string {
	var b strings.Builder
	switch layout {
	case LayoutTd:
		fmt.Fprintf(&b, "BT /F1 %d Tf %d %d Td\n", pdfFontSize, pdfLeft, pdfTop)
		for i, line := range lines {
			if i > 0 {
				fmt.Fprintf(&b, "0 -%d Td\n", pdfLeading)
			}
			fmt.Fprintf(&b, "(%s) Tj\n", EscapePDFString(line))
		}
		b.WriteString("ET\n")
	case LayoutTStar:
		fmt.Fprintf(&b, "BT /F1 %d Tf %d TL %d %d Td\n", pdfFontSize, pdfLeading, pdfLeft, pdfTop)
		for i, line := range lines {
			if i > 0 {
				b.WriteString("T*\n")
			}
			fmt.Fprintf(&b, "(%s) Tj\n", EscapePDFString(line))
		}
		b.WriteString("ET\n")
	case LayoutTm:
		fmt.Fprintf(&b, "BT /F1 %d Tf\n", pdfFontSize)
		for i, line := range lines {
			fmt.Fprintf(&b, "1 0 0 1 %d %d Tm (%s) Tj\n", pdfLeft, pdfTop-i*pdfLeading, EscapePDFString(line))
		}
		b.WriteString("ET\n")
	case LayoutCM:
		for i, line := range lines {
			fmt.Fprintf(&b, "q 1 0 0 1 %d %d cm BT /F1 %d Tf (%s) Tj ET Q\n",
				pdfLeft, pdfTop-i*pdfLeading, pdfFontSize, EscapePDFString(line))
		}
	}
	return b.String()
}

// EscapePDFString escapes a literal for use inside a PDF (...) string.
func EscapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// BuildPDF returns an uncompressed PDF with one page per content stream. Every
// page uses a WinAnsi Helvetica font named /F1.
func BuildPDF(contents ...string) []byte {
	var objects []string
	// 1: catalog, 2: page tree, 3: font, then a page and content pair per page.
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>", "", "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	var kids []string
	for i, content := range contents {
		pageID := 4 + 2*i
		contentID := pageID + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageID))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentID),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
