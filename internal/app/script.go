package app

import (
	"strings"

	"github.com/petems/triplespace/internal/translator"
)

const triggerChar = ' '

// stripTrigger removes exactly count trailing trigger characters. Text that
// ends with fewer of them is returned unchanged.
func stripTrigger(text string, count int) string {
	if count <= 0 {
		return text
	}
	trimmed := text
	for i := 0; i < count; i++ {
		if !strings.HasSuffix(trimmed, string(triggerChar)) {
			return text
		}
		trimmed = trimmed[:len(trimmed)-1]
	}
	return trimmed
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x3400 && r <= 0x4DBF, // Extension A
		r >= 0x4E00 && r <= 0x9FFF,   // Unified Ideographs
		r >= 0xF900 && r <= 0xFAFF,   // Compatibility Ideographs
		r >= 0x20000 && r <= 0x2A6DF, // Extension B
		r >= 0x2A700 && r <= 0x2B73F, // Extension C
		r >= 0x2B740 && r <= 0x2B81F, // Extension D
		r >= 0x2B820 && r <= 0x2CEAF: // Extension E/F
		return true
	}
	return false
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// DetectDirection picks the translation direction from the dominant script.
// Ties go to Chinese->target; ok is false when neither script is present.
func DetectDirection(text string) (dir translator.Direction, ok bool) {
	var cjk, latin int
	for _, r := range text {
		switch {
		case isCJK(r):
			cjk++
		case isASCIILetter(r):
			latin++
		}
	}
	if cjk == 0 && latin == 0 {
		return translator.ToTarget, false
	}
	if cjk >= latin {
		return translator.ToTarget, true
	}
	return translator.ToSource, true
}
