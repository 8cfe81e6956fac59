package ingestion

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
	bulletPrefixes = []string{"•", "·", "▪", "◦", "●", "■", "➢", "►", "*", "–"}
)

// CleanText normalizes extracted document text: line endings are unified,
// control and format characters removed, runs of whitespace collapsed within
// each line, bullet glyphs rewritten to "- ", and blank-line runs reduced to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")
	content = stripControl(content)

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// stripControl drops control characters other than newline and tab, and
// invisible format characters such as BOMs and zero-width spaces.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t' || r == ' ':
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		case r == unicode.ReplacementChar:
			return -1
		}
		return r
	}, s)
}

// cleanLine collapses whitespace and normalizes bullet markers.
func cleanLine(line string) string {
	line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	for _, prefix := range bulletPrefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return ""
			}
			return "- " + rest
		}
	}
	return line
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ")
}
