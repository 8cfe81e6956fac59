package ingestion

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF returns the text of every page in content-stream order, one line
// per visual text line.
// The PDF parser panics on some malformed inputs; those become corrupt-document errors.
func extractPDF(data []byte) (text string, err error) {
	if !hasMagic(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return "", corrupt(MIMETypePDF, "missing %PDF header", nil)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = corrupt(MIMETypePDF, fmt.Sprintf("unreadable PDF structure: %v", r), nil)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", corrupt(MIMETypePDF, "failed to open PDF", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, line := range pageLines(page) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// pdfMatrix is an affine transform [a b c d e f] in PDF row-vector convention.
type pdfMatrix [6]float64

var identityMatrix = pdfMatrix{1, 0, 0, 1, 0, 0}

func translation(tx, ty float64) pdfMatrix {
	return pdfMatrix{1, 0, 0, 1, tx, ty}
}

// mul returns m×n.
func (m pdfMatrix) mul(n pdfMatrix) pdfMatrix {
	return pdfMatrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

const (
	// A vertical move larger than this fraction of the font height starts a new line.
	lineBreakRatio = 0.5
	// A horizontal gap larger than this fraction of the font height becomes a space.
	wordGapRatio = 0.15
	// TJ adjustments at or below this value (thousandths of an em) separate words.
	tjWordGap = -200
)

// pageText rebuilds reading lines from a page content stream. It tracks the
// text and graphics matrices itself so that Td, TD, T*, ' and " moves are
// seen as line changes.
type pageText struct {
	page  pdf.Page
	lines []string
	line  strings.Builder

	font        pdf.Font
	enc         pdf.TextEncoding
	size        float64
	leading     float64
	charSpacing float64
	wordSpacing float64
	hScale      float64

	tm, tlm, ctm pdfMatrix
	saved        []pdfMatrix

	started bool
	newLine bool
	lastY   float64
	endX    float64
}

func pageLines(page pdf.Page) []string {
	if page.V.Key("Contents").Kind() == pdf.Null {
		return nil
	}
	pt := &pageText{
		page:   page,
		hScale: 1,
		tm:     identityMatrix,
		tlm:    identityMatrix,
		ctm:    identityMatrix,
	}
	pdf.Interpret(page.V.Key("Contents"), pt.do)
	pt.flush()
	return pt.lines
}

func (pt *pageText) do(stk *pdf.Stack, op string) {
	n := stk.Len()
	args := make([]pdf.Value, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = stk.Pop()
	}
	num := func(i int) float64 {
		if i < len(args) {
			return args[i].Float64()
		}
		return 0
	}

	switch op {
	case "q":
		pt.saved = append(pt.saved, pt.ctm)
	case "Q":
		if last := len(pt.saved) - 1; last >= 0 {
			pt.ctm = pt.saved[last]
			pt.saved = pt.saved[:last]
		}
	case "cm":
		if len(args) == 6 {
			pt.ctm = pdfMatrix{num(0), num(1), num(2), num(3), num(4), num(5)}.mul(pt.ctm)
		}
	case "BT":
		pt.tm, pt.tlm = identityMatrix, identityMatrix
	case "Tf":
		if len(args) == 2 {
			pt.font = pt.page.Font(args[0].Name())
			pt.enc = pt.font.Encoder()
			pt.size = num(1)
		}
	case "TL":
		pt.leading = num(0)
	case "Tc":
		pt.charSpacing = num(0)
	case "Tw":
		pt.wordSpacing = num(0)
	case "Tz":
		pt.hScale = num(0) / 100
	case "Td":
		pt.moveText(num(0), num(1))
	case "TD":
		pt.leading = -num(1)
		pt.moveText(num(0), num(1))
	case "Tm":
		if len(args) == 6 {
			pt.tlm = pdfMatrix{num(0), num(1), num(2), num(3), num(4), num(5)}
			pt.tm = pt.tlm
		}
	case "T*":
		pt.nextLine()
	case "'":
		pt.nextLine()
		if len(args) == 1 {
			pt.show(args[0].RawString(), true)
		}
	case "\"":
		if len(args) == 3 {
			pt.wordSpacing = num(0)
			pt.charSpacing = num(1)
			pt.nextLine()
			pt.show(args[2].RawString(), true)
		}
	case "Tj":
		if len(args) == 1 {
			pt.show(args[0].RawString(), true)
		}
	case "TJ":
		if len(args) == 1 {
			pt.showArray(args[0])
		}
	}
}

func (pt *pageText) moveText(tx, ty float64) {
	pt.tlm = translation(tx, ty).mul(pt.tlm)
	pt.tm = pt.tlm
}

func (pt *pageText) nextLine() {
	pt.moveText(0, -pt.leading)
	pt.newLine = true
}

func (pt *pageText) showArray(v pdf.Value) {
	first := true
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		switch item.Kind() {
		case pdf.String:
			pt.show(item.RawString(), first)
			first = false
		case pdf.Integer, pdf.Real:
			adjust := item.Float64()
			pt.tm = translation(-adjust/1000*pt.size*pt.hScale, 0).mul(pt.tm)
			if adjust <= tjWordGap && pt.started {
				pt.space()
			}
		}
	}
}

// show appends one text run. When positioned is true the run's location is
// compared with the previous run to decide between a line break, a space, or
// direct continuation.
func (pt *pageText) show(raw string, positioned bool) {
	if raw == "" {
		return
	}
	origin := pt.tm.mul(pt.ctm)
	x, y := origin[4], origin[5]
	height := math.Abs(pt.size * origin[3])
	if height == 0 {
		height = 1
	}

	if pt.started && positioned {
		switch {
		case pt.newLine || math.Abs(y-pt.lastY) > height*lineBreakRatio:
			pt.flush()
		case x-pt.endX > height*wordGapRatio:
			pt.space()
		}
	}
	pt.newLine = false

	text := raw
	if pt.enc != nil {
		text = pt.enc.Decode(raw)
	}
	pt.line.WriteString(text)

	for i := 0; i < len(raw); i++ {
		advance := pt.font.Width(int(raw[i]))/1000*pt.size + pt.charSpacing
		if raw[i] == ' ' {
			advance += pt.wordSpacing
		}
		pt.tm = translation(advance*pt.hScale, 0).mul(pt.tm)
	}

	end := pt.tm.mul(pt.ctm)
	pt.endX = end[4]
	pt.lastY = y
	pt.started = true
}

func (pt *pageText) space() {
	s := pt.line.String()
	if s != "" && !strings.HasSuffix(s, " ") {
		pt.line.WriteString(" ")
	}
}

func (pt *pageText) flush() {
	if pt.line.Len() > 0 {
		pt.lines = append(pt.lines, pt.line.String())
	}
	pt.line.Reset()
	pt.started = false
}
