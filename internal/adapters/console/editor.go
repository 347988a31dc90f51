package console

import (
	"sync"
	"unicode"
)

// KeyAction classifies what a keystroke did to the pending input line.
type KeyAction int

const (
	// KeyNoop: ignored keystroke (unprintable, or backspace on an empty line).
	KeyNoop KeyAction = iota
	// KeyAppend: the rune was appended to the line and should be echoed.
	KeyAppend
	// KeyErase: the last rune was removed from the line.
	KeyErase
	// KeySubmit: the line was completed and the buffer drained.
	KeySubmit
)

// LineEditor holds the operator's not-yet-submitted keystrokes. It has
// its own lock, independent of the board's, and is the single source of
// truth for what the pending input line contains.
type LineEditor struct {
	mu  sync.Mutex
	buf []rune
}

// Key feeds one keystroke through the editor. On KeySubmit the completed
// line is returned and the buffer is drained.
func (e *LineEditor) Key(r rune) (string, KeyAction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case r == '\r' || r == '\n':
		line := string(e.buf)
		e.buf = e.buf[:0]
		return line, KeySubmit
	case r == asciiBS || r == asciiDEL:
		if len(e.buf) == 0 {
			return "", KeyNoop
		}
		e.buf = e.buf[:len(e.buf)-1]
		return "", KeyErase
	case unicode.IsPrint(r):
		e.buf = append(e.buf, r)
		return "", KeyAppend
	default:
		return "", KeyNoop
	}
}

// Pending returns a copy of the buffered input.
func (e *LineEditor) Pending() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.buf)
}
