// Package translator talks to the translation backends. Every backend
// translates between one configured language pair in either direction.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Direction selects which way across the language pair a text is translated
type Direction int

const (
	// ToTarget translates from the source language (Chinese by default) to the target language
	ToTarget Direction = iota
	// ToSource translates back from the target language to the source language
	ToSource
)

func (d Direction) String() string {
	switch d {
	case ToTarget:
		return "to-target"
	case ToSource:
		return "to-source"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

var (
	// ErrEmptyTranslation is returned when a backend answers with no text
	ErrEmptyTranslation = errors.New("translator returned empty text")
	// ErrMissingAPIKey is returned by backends that cannot run without credentials
	ErrMissingAPIKey = errors.New("api key is empty")
)

// Translator translates text across the configured language pair
type Translator interface {
	Translate(ctx context.Context, text string, dir Direction) (string, error)
}

// Languages is the configured pair, e.g. zh-CN and en
type Languages struct {
	Source string
	Target string
}

// Resolve returns the from/to language codes for a direction
func (l Languages) Resolve(dir Direction) (from, to string) {
	if dir == ToSource {
		return l.Target, l.Source
	}
	return l.Source, l.Target
}

// Label returns a human readable language name for prompts and statuses
func Label(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "zh", "zh-cn", "zh-hans", "zh_cn":
		return "Chinese"
	case "zh-tw", "zh-hant":
		return "Traditional Chinese"
	case "en", "en-us", "en-gb":
		return "English"
	case "ja", "ja-jp":
		return "Japanese"
	default:
		return lang
	}
}

// shortCode trims region suffixes for backends that only know bare codes
func shortCode(lang string) string {
	v := strings.ToLower(strings.TrimSpace(lang))
	if strings.HasPrefix(v, "zh") {
		return "zh"
	}
	if i := strings.IndexAny(v, "-_"); i > 0 {
		return v[:i]
	}
	return v
}

// StatusError is a non-2xx answer from a backend
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed (%d): %s", e.Provider, e.Code, abbreviate(e.Body, 500))
}

// Temporary reports whether retrying may help
func (e *StatusError) Temporary() bool {
	return e.Code == 429 || e.Code >= 500
}

// abbreviate shortens s to at most n bytes without splitting a rune
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	suffix := "..."
	if n <= len(suffix) {
		suffix = ""
	}
	cut := n - len(suffix)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + suffix
}
