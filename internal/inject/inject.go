package inject

import (
	"context"
	"errors"
)

var (
	// ErrNoFocusedText means neither copy nor cut produced any text
	ErrNoFocusedText = errors.New("no editable focused input")
	// ErrReplaceFailed means the focused control did not accept the new text
	ErrReplaceFailed = errors.New("focused input rejected replacement")
)

// Capture is the text read from the focused field. Destructive captures
// removed the text from the field and must be restored on any failure.
type Capture struct {
	Text        string
	Destructive bool
}

// TextCapture reads and replaces the whole text of the focused input
type TextCapture interface {
	ReadFocused(ctx context.Context) (Capture, error)
	Replace(ctx context.Context, text string) error
}

// Shortcut is an editing chord sent to the focused application
type Shortcut int

const (
	SelectAll Shortcut = iota
	Copy
	Cut
	Paste
)

func (s Shortcut) String() string {
	switch s {
	case SelectAll:
		return "select-all"
	case Copy:
		return "copy"
	case Cut:
		return "cut"
	case Paste:
		return "paste"
	default:
		return "unknown"
	}
}

// Clipboard is the system text clipboard
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Keyboard synthesizes key presses into the focused application
type Keyboard interface {
	Shortcut(s Shortcut) error
	// CollapseSelection moves the caret to the end of a selection
	CollapseSelection() error
}
