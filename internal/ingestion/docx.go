package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractDOCX opens the OOXML package and flattens word/document.xml into
// text, one paragraph per line.
func extractDOCX(data []byte) (string, error) {
	if !hasMagic(data, zipMagic) {
		return "", corrupt(MIMETypeDOCX, "not a zip container", nil)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", corrupt(MIMETypeDOCX, "failed to open DOCX package", err)
	}
	defer func() { _ = doc.Close() }()

	text, err := documentXMLText(doc.Editable().GetContent())
	if err != nil {
		return "", corrupt(MIMETypeDOCX, "malformed document.xml", err)
	}
	return text, nil
}

// documentXMLText walks WordprocessingML and keeps run text (w:t), tabs,
// and breaks, ending a line at every paragraph.
func documentXMLText(body string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
	return b.String(), nil
}
