package composer

import (
	"testing"

	"github.com/genricoloni/marquee/internal/domain"
)

func TestComposer_Update(t *testing.T) {
	c := New()

	steps := []struct {
		name     string
		snap     domain.Snapshot
		expected string
	}{
		{"initially empty", domain.Snapshot{Status: domain.StatusStopped}, ""},
		{"full track", domain.Snapshot{Status: domain.StatusPlaying, Title: "Song", Artist: "Artist"}, "Song -- Artist"},
		{"title only keeps previous", domain.Snapshot{Status: domain.StatusPlaying, Title: "Other"}, "Song -- Artist"},
		{"artist only keeps previous", domain.Snapshot{Status: domain.StatusPlaying, Artist: "Other"}, "Song -- Artist"},
		{"poll failure keeps previous", domain.Snapshot{Status: domain.StatusStopped}, "Song -- Artist"},
		{"new track replaces", domain.Snapshot{Status: domain.StatusPaused, Title: "Next", Artist: "Band"}, "Next -- Band"},
	}

	for _, step := range steps {
		got := c.Update(step.snap)
		if got != step.expected {
			t.Errorf("%s: expected %q, got %q", step.name, step.expected, got)
		}
		if c.Text() != got {
			t.Errorf("%s: Text() %q differs from Update() %q", step.name, c.Text(), got)
		}
	}
}
