package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true, "sr": true, "jr": true,
	"st": true, "vs": true, "etc": true, "e.g": true, "i.e": true, "cf": true, "al": true,
	"inc": true, "ltd": true, "co": true, "corp": true, "no": true, "fig": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true, "jul": true,
	"aug": true, "sep": true, "sept": true, "oct": true, "nov": true, "dec": true,
	"u.s": true, "u.k": true,
}

// splitSentences cuts text into sentences. Each sentence keeps the whitespace
// that follows it, so joining the result gives back text minus any leading
// whitespace.
func splitSentences(text string) []string {
	runes := []rune(text)
	start := 0
	for start < len(runes) && unicode.IsSpace(runes[start]) {
		start++
	}
	var out []string
	for i := start; i < len(runes); i++ {
		next, ok := sentenceEnd(runes, i)
		if !ok {
			continue
		}
		if next >= len(runes) {
			break
		}
		out = append(out, string(runes[start:next]))
		start = next
		i = next - 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// sentenceEnd reports whether the rune at pos terminates a sentence and, if
// so, the index where the next sentence starts.
func sentenceEnd(runes []rune, pos int) (int, bool) {
	r := runes[pos]
	if r != '.' && r != '!' && r != '?' {
		return 0, false
	}
	if r == '.' {
		if pos+1 < len(runes) && runes[pos+1] == '.' {
			return 0, false
		}
		if pos > 0 && unicode.IsDigit(runes[pos-1]) && pos+1 < len(runes) && unicode.IsDigit(runes[pos+1]) {
			return 0, false
		}
		if isAbbreviation(runes, pos) {
			return 0, false
		}
	}
	next := pos + 1
	for next < len(runes) && strings.ContainsRune(`"')]}`, runes[next]) {
		next++
	}
	if next < len(runes) && !unicode.IsSpace(runes[next]) {
		return 0, false
	}
	for next < len(runes) && unicode.IsSpace(runes[next]) {
		next++
	}
	if next >= len(runes) {
		return next, true
	}
	c := runes[next]
	if unicode.IsUpper(c) || unicode.IsDigit(c) || strings.ContainsRune(`"'([`, c) {
		return next, true
	}
	return 0, false
}

func isAbbreviation(runes []rune, pos int) bool {
	start := pos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	word := strings.TrimLeft(string(runes[start:pos]), `"'([`)
	if word == "" {
		return false
	}
	w := []rune(word)
	if len(w) == 1 && unicode.IsUpper(w[0]) {
		return true
	}
	return abbreviations[strings.ToLower(word)]
}

var clausePattern = regexp.MustCompile(`[^,.;。？！]+[,.;。？！]?`)

func splitClauses(text string) []string {
	return clausePattern.FindAllString(text, -1)
}

// splitKeepSeparator splits on sep and prefixes every piece but the first
// with it, dropping empty pieces.
func splitKeepSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = sep + p
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitChars(text string) []string {
	out := make([]string, 0, len(text))
	for _, r := range text {
		out = append(out, string(r))
	}
	return out
}
