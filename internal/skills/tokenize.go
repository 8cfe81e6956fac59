package skills

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// token is one word of input text in its original, lowercased, and stemmed forms.
type token struct {
	raw   string
	lower string
	stem  string
}

// tokenize splits text into word tokens. Letters and digits form words; '+'
// and '#' are kept after a word (C++, C#), and '.' is kept when followed by a
// letter or digit inside a word or at its start (Node.js, ASP.NET, .net).
// Everything else separates tokens.
func tokenize(text string) []token {
	runes := []rune(text)
	var tokens []token
	var cur []rune

	flush := func() {
		if len(cur) == 0 {
			return
		}
		raw := string(cur)
		lower := strings.ToLower(raw)
		tokens = append(tokens, token{raw: raw, lower: lower, stem: english.Stem(lower, false)})
		cur = cur[:0]
	}

	for i, r := range runes {
		switch {
		case isWordRune(r):
			cur = append(cur, r)
		case (r == '+' || r == '#') && len(cur) > 0:
			cur = append(cur, r)
		case r == '.' && i+1 < len(runes) && isWordRune(runes[i+1]) &&
			(len(cur) > 0 || i == 0 || unicode.IsSpace(runes[i-1])):
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// phraseKey joins lowercased tokens for identity comparisons.
func phraseKey(tokens []token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.lower
	}
	return strings.Join(parts, " ")
}

// countPhrase counts the positions where phrase occurs in tokens, comparing
// the field selected by key.
func countPhrase(tokens, phrase []token, key func(token) string) int {
	n := len(phrase)
	if n == 0 || n > len(tokens) {
		return 0
	}
	count := 0
	for i := 0; i+n <= len(tokens); i++ {
		matched := true
		for j := 0; j < n; j++ {
			if key(tokens[i+j]) != key(phrase[j]) {
				matched = false
				break
			}
		}
		if matched {
			count++
		}
	}
	return count
}

func rawKey(t token) string   { return t.raw }
func lowerKey(t token) string { return t.lower }
func stemKey(t token) string  { return t.stem }
