package paste

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/lingbao-market/client/internal/model"
)

// bracketPatterns are tried in order; the first style that matches wins.
// Captures are capped at 64 runes.
var bracketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`【([^【】]{1,64})】`),
	regexp.MustCompile(`\[([^\[\]]{1,64})\]`),
	regexp.MustCompile(`（([^（）]{1,64})）`),
	regexp.MustCompile(`\(([^()]{1,64})\)`),
	regexp.MustCompile(`《([^《》]{1,64})》`),
}

func extractCode(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	if code, ok := bracketCode(text); ok {
		return code, true
	}

	tokens := codeTokens(text)

	// Listing codes mix letters and digits, so prefer such a token before
	// settling for any token with a code character.
	for i := len(tokens) - 1; i >= 0; i-- {
		if fitsCode(tokens[i]) && isMixed(tokens[i]) {
			return tokens[i], true
		}
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if fitsCode(tokens[i]) && hasCodeChar(tokens[i]) {
			return tokens[i], true
		}
	}

	whole := normalizeCode(text)
	if whole != "" && fitsCode(whole) {
		return whole, true
	}
	return "", false
}

func bracketCode(text string) (string, bool) {
	for _, re := range bracketPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if code := truncateRunes(normalizeCode(m[1]), model.MaxCodeLength); code != "" {
			return code, true
		}
	}
	return "", false
}

// codeTokens splits text on pipes and whitespace and normalizes each piece,
// dropping the ones that normalize to nothing.
func codeTokens(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '|' || r == '｜' || unicode.IsSpace(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if t := normalizeCode(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// normalizeCode folds full-width forms, uppercases, and keeps only letters
// and digits. Uppercasing can lengthen the code (ß becomes SS), so callers
// truncate afterwards. Letters with no uppercase form are dropped.
func normalizeCode(s string) string {
	s = cases.Upper(language.Und).String(width.Fold.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (unicode.IsLetter(r) || unicode.IsDigit(r)) && !unicode.IsLower(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fitsCode(s string) bool {
	return utf8.RuneCountInString(s) <= model.MaxCodeLength
}

func hasCodeChar(s string) bool {
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) || isDigit(s[i]) {
			return true
		}
	}
	return false
}

func isMixed(s string) bool {
	var letter, digit bool
	for i := 0; i < len(s); i++ {
		switch {
		case isUpper(s[i]):
			letter = true
		case isDigit(s[i]):
			digit = true
		}
	}
	return letter && digit
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
