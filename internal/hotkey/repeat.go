package hotkey

// RepeatFilter turns key transitions into presses. Auto-repeat delivers
// several downs without an up in between; only the first one counts.
type RepeatFilter struct {
	held bool
}

// Accept returns true when ev is a fresh press
func (f *RepeatFilter) Accept(ev KeyEvent) bool {
	if !ev.Down {
		f.held = false
		return false
	}
	if f.held {
		return false
	}
	f.held = true
	return true
}

// Reset forgets a held key, e.g. after the hook was restarted
func (f *RepeatFilter) Reset() {
	f.held = false
}
