package composer

import "github.com/genricoloni/marquee/internal/domain"

// Composer keeps the last "title -- artist" string built from a poll.
// A poll without both fields leaves the previous text in place.
type Composer struct {
	combined string
}

// New creates a composer with no text
func New() *Composer {
	return &Composer{}
}

// Update folds snap into the combined text and returns it
func (c *Composer) Update(snap domain.Snapshot) string {
	if track, ok := snap.Track(); ok {
		c.combined = track.Combined()
	}
	return c.combined
}

// Text returns the combined text without polling
func (c *Composer) Text() string {
	return c.combined
}
