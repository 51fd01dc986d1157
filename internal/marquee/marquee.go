// Package marquee produces fixed-width windows of text for the status bar.
//
// Text that fits is right-padded. Longer text scrolls left one character per
// call, running fully off the field through a tail of blanks before looping.
package marquee

import (
	"strings"
	"unicode/utf8"
)

// Marquee holds the scroll cursor for one text at a time.
// The zero value is not usable; create one with New.
type Marquee struct {
	width  int
	text   []rune // text plus width trailing blanks
	source string // text the sequence was built from
	cursor int
	active bool
}

// New creates a marquee for a field of width characters
func New(width int) *Marquee {
	return &Marquee{width: width}
}

// Width returns the field width
func (m *Marquee) Width() int {
	return m.width
}

// Next returns the window for this tick and advances the cursor.
// restarted is true when the sequence begins again at offset 0, either
// because text differs from the running sequence or because the previous
// sequence was exhausted.
func (m *Marquee) Next(text string) (window string, restarted bool) {
	if !m.active || text != m.source {
		m.start(text)
		restarted = true
	} else if m.cursor >= m.frames() {
		m.cursor = 0
		restarted = true
	}

	window = m.window(m.cursor)
	m.cursor++
	return window, restarted
}

// Reset drops the running sequence
func (m *Marquee) Reset() {
	m.active = false
	m.source = ""
	m.text = nil
	m.cursor = 0
}

// Active reports whether a sequence is in progress
func (m *Marquee) Active() bool {
	return m.active
}

// Cursor returns the offset of the next window
func (m *Marquee) Cursor() int {
	return m.cursor
}

// Frames returns every window of the sequence for text, in order
func Frames(text string, width int) []string {
	m := New(width)
	m.start(text)

	out := make([]string, 0, m.frames())
	for i := 0; i < m.frames(); i++ {
		out = append(out, m.window(i))
	}
	return out
}

func (m *Marquee) start(text string) {
	m.source = text
	m.text = append([]rune(text), []rune(strings.Repeat(" ", max(m.width, 0)))...)
	m.cursor = 0
	m.active = true
}

// frames is len(source)+1
func (m *Marquee) frames() int {
	return len(m.text) - max(m.width, 0) + 1
}

func (m *Marquee) window(i int) string {
	if m.width <= 0 {
		return ""
	}
	return string(m.text[i : i+m.width])
}

// Len returns the length of text in characters
func Len(text string) int {
	return utf8.RuneCountInString(text)
}

// Head returns the first width characters of text
func Head(text string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width])
}

// Pad right-pads text with spaces to width characters.
// Longer text is returned unchanged.
func Pad(text string, width int) string {
	n := Len(text)
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}

// Fit truncates text to width characters, then pads it
func Fit(text string, width int) string {
	return Pad(Head(text, width), width)
}
