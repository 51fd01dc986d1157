package emitter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/genricoloni/marquee/internal/domain"
	"github.com/genricoloni/marquee/internal/marquee"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// Formatter builds the Pango markup shown by the widget
type Formatter struct {
	fontFamily string
	errorGlyph string
	width      int
	escape     bool
}

// NewFormatter creates a formatter from configuration
func NewFormatter(cfg domain.Config) *Formatter {
	return &Formatter{
		fontFamily: cfg.GlyphFontFamily(),
		errorGlyph: cfg.ErrorGlyph(),
		width:      cfg.DisplayWidth(),
		escape:     cfg.EscapeMarkup(),
	}
}

// Record returns the glyph span followed by a space and the display text
func (f *Formatter) Record(glyph, text string) domain.Record {
	return domain.Record{Text: f.span(glyph) + " " + f.text(text)}
}

// Error returns a record carrying err, padded to the display width
func (f *Formatter) Error(err error) domain.Record {
	msg := marquee.Pad("Error: "+err.Error(), f.width)
	return domain.Record{Text: f.span(f.errorGlyph) + " " + f.text(msg)}
}

func (f *Formatter) span(glyph string) string {
	return fmt.Sprintf("<span font_family='%s'>%s</span>",
		markupEscaper.Replace(f.fontFamily), markupEscaper.Replace(glyph))
}

func (f *Formatter) text(s string) string {
	if !f.escape {
		return s
	}
	return markupEscaper.Replace(s)
}

// JSONEmitter writes one JSON object per line
type JSONEmitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONEmitter creates an emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	enc := json.NewEncoder(w)
	// Markup must reach the host as written, not as \u003c escapes
	enc.SetEscapeHTML(false)
	return &JSONEmitter{enc: enc}
}

// Emit writes rec followed by a newline
func (e *JSONEmitter) Emit(rec domain.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}
