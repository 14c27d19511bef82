// Package pairs holds the translation pair cache and the fuzzy text
// comparison used to recognise a translation when an editor reads it back
// with different punctuation, casing or spacing.
package pairs

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minContainmentRunes is the shortest loose key that may match by substring.
const minContainmentRunes = 4

// Normalize returns the cache key form of text
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// LooseKey folds text down to lowercase letters and digits separated by
// single spaces. Punctuation and symbols are dropped without leaving a gap.
func LooseKey(text string) string {
	folded := norm.NFKC.String(Normalize(text))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// LooksEquivalent reports whether a and b are the same logical content
func LooksEquivalent(a, b string) bool {
	left, right := Normalize(a), Normalize(b)
	if left == "" || right == "" {
		return false
	}
	if left == right {
		return true
	}
	return looseEquivalent(LooseKey(left), LooseKey(right))
}

func looseEquivalent(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	if left == right {
		return true
	}
	if utf8.RuneCountInString(left) < minContainmentRunes || utf8.RuneCountInString(right) < minContainmentRunes {
		return false
	}
	return strings.Contains(left, right) || strings.Contains(right, left)
}
