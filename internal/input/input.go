package input

import "errors"

var ErrCancelled = errors.New("selection cancelled")

type Chooser interface {
	// Choose prints a numbered menu and returns the 0-based index picked
	Choose(title string, options []string) (int, error)
}

// OptionIndex maps the digit typed for a 1-based menu entry to an index.
func OptionIndex(r rune, n int) (int, bool) {
	if r < '1' || r > '9' {
		return -1, false
	}
	idx := int(r - '1')
	if idx >= n {
		return -1, false
	}
	return idx, true
}
