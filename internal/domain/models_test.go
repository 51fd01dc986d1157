package domain

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected PlaybackStatus
		known    bool
	}{
		{"Playing\n", StatusPlaying, true},
		{"  PAUSED ", StatusPaused, true},
		{"Stopped", StatusStopped, true},
		{"", StatusStopped, true},
		{"   \n", StatusStopped, true},
		{"Buffering", "buffering", false},
	}

	for _, tt := range tests {
		got := ParseStatus(tt.raw)
		if got != tt.expected {
			t.Errorf("ParseStatus(%q): expected %q, got %q", tt.raw, tt.expected, got)
		}
		if got.Known() != tt.known {
			t.Errorf("ParseStatus(%q).Known(): expected %v, got %v", tt.raw, tt.known, got.Known())
		}
	}
}
