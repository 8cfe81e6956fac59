package ingestion

import (
	"bytes"
	"os/exec"

	"code.sajari.com/docconv"
)

// wvTextCommand is the external converter docconv runs for Word 97-2003 files.
const wvTextCommand = "wvText"

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// extractDOC converts a legacy Word 97-2003 document with docconv, which shells
// out to wvText. Input without an OLE2 signature never reaches the converter.
// A host without wvText yields ErrConverterUnavailable rather than a corrupt
// document, since docconv would otherwise fall back to the DOCX reader and fail
// on every valid file.
func extractDOC(data []byte) (string, error) {
	if !hasMagic(data, ole2Magic) {
		return "", corrupt(MIMETypeDOC, "missing OLE2 compound file header", nil)
	}
	if _, err := lookPath(wvTextCommand); err != nil {
		return "", &ExtractionError{
			Kind:     ErrConverterUnavailable,
			MIMEType: MIMETypeDOC,
			Message:  wvTextCommand + " is not installed",
			Cause:    err,
		}
	}

	text, _, err := docconv.ConvertDoc(bytes.NewReader(data))
	if err != nil {
		return "", corrupt(MIMETypeDOC, "failed to convert DOC", err)
	}
	return text, nil
}
