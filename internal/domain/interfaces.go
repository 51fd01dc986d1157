package domain

import (
	"context"
	"time"
)

// Poller queries the media player once per tick.
// Implementations never fail: any error while talking to the player is
// mapped to StatusStopped with no track info.
type Poller interface {
	Poll(ctx context.Context) Snapshot
}

// CommandRunner executes external commands
//
//go:generate mockgen -destination=../executor/mocks/command_runner_mock.go -package=mocks github.com/genricoloni/marquee/internal/domain CommandRunner
type CommandRunner interface {
	// Run executes name with args and returns its standard output.
	// A non-zero exit status is reported as an error.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Emitter writes records to the status-bar host
type Emitter interface {
	// Emit writes exactly one newline-terminated record
	Emit(rec Record) error
}

// Config defines the interface for application configuration
type Config interface {
	// Glyph returns the glyph for status, or the default glyph
	Glyph(status PlaybackStatus) string

	// ErrorGlyph returns the glyph shown in error records
	ErrorGlyph() string

	// GlyphFontFamily returns the font family used for the glyph span
	GlyphFontFamily() string

	// StoppedText returns the text shown when nothing is playing
	StoppedText() string

	// DisplayWidth returns the width in characters of the scrolling field
	DisplayWidth() int

	// TickInterval returns the base polling interval
	TickInterval() time.Duration

	// ResetPause returns the extra delay after a marquee reset
	ResetPause() time.Duration

	// ToolPath returns the path to the media-control binary
	ToolPath() string

	// QueryTimeout bounds each external query
	QueryTimeout() time.Duration

	// Source returns the poller backend name
	Source() string

	// Player returns the optional player name filter
	Player() string

	// FallbackOnStopped reports whether the stopped text replaces a stale display
	FallbackOnStopped() bool

	// EscapeMarkup reports whether display text is escaped for Pango markup
	EscapeMarkup() bool
}
