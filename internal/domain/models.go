package domain

import "strings"

// PlaybackStatus represents the current state of the media player as reported
// by the media-control tool, lowercased and trimmed
type PlaybackStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlaybackStatus = "playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlaybackStatus = "paused"
	// StatusStopped indicates the media is stopped, or that no player answered
	StatusStopped PlaybackStatus = "stopped"
)

// ParseStatus normalises raw tool output into a PlaybackStatus.
// Empty output maps to StatusStopped. Unrecognised values are kept verbatim
// so that they still take part in the "not paused" branching downstream.
func ParseStatus(raw string) PlaybackStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusStopped
	}
	return PlaybackStatus(s)
}

// Known reports whether the status is one of playing, paused or stopped
func (s PlaybackStatus) Known() bool {
	switch s {
	case StatusPlaying, StatusPaused, StatusStopped:
		return true
	}
	return false
}

// TrackInfo holds the title and artist of the current track
type TrackInfo struct {
	Title  string
	Artist string
}

// Combined returns the "title -- artist" display string
func (t TrackInfo) Combined() string {
	return t.Title + " -- " + t.Artist
}

// Snapshot is the result of one poll of the media player
type Snapshot struct {
	Status PlaybackStatus
	// Title and Artist are empty when the tool returned no data
	Title  string
	Artist string
}

// Track returns the track info, present only when both title and artist are non-empty
func (s Snapshot) Track() (TrackInfo, bool) {
	if s.Title == "" || s.Artist == "" {
		return TrackInfo{}, false
	}
	return TrackInfo{Title: s.Title, Artist: s.Artist}, true
}

// Record is one line of output for the status-bar host
type Record struct {
	Text string `json:"text"`
}
