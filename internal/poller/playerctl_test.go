package poller

import (
	"context"
	"fmt"
	"testing"

	"github.com/genricoloni/marquee/internal/domain"
	"github.com/genricoloni/marquee/internal/executor/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const toolPath = "/usr/bin/playerctl"

func TestPlayerctlPoller_Poll(t *testing.T) {
	tests := []struct {
		name      string
		player    string
		setupMock func(*mocks.MockCommandRunner)
		expected  domain.Snapshot
		hasTrack  bool
	}{
		{
			name: "Success - Playing Track",
			setupMock: func(m *mocks.MockCommandRunner) {
				m.EXPECT().Run(gomock.Any(), toolPath, "status").Return([]byte("Playing\n"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "title").Return([]byte("Song\n"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "artist").Return([]byte("Artist\n"), nil)
			},
			expected: domain.Snapshot{Status: domain.StatusPlaying, Title: "Song", Artist: "Artist"},
			hasTrack: true,
		},
		{
			name: "Success - Paused Mixed Case",
			setupMock: func(m *mocks.MockCommandRunner) {
				m.EXPECT().Run(gomock.Any(), toolPath, "status").Return([]byte("  PaUsEd \n"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "title").Return([]byte("Song"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "artist").Return([]byte("Artist"), nil)
			},
			expected: domain.Snapshot{Status: domain.StatusPaused, Title: "Song", Artist: "Artist"},
			hasTrack: true,
		},
		{
			name: "Failure - All Queries Fail",
			setupMock: func(m *mocks.MockCommandRunner) {
				m.EXPECT().Run(gomock.Any(), toolPath, "status").Return(nil, fmt.Errorf("exit status 1"))
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "title").Return(nil, fmt.Errorf("exit status 1"))
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "artist").Return(nil, fmt.Errorf("exit status 1"))
			},
			expected: domain.Snapshot{Status: domain.StatusStopped},
		},
		{
			name: "Partial - Artist Missing",
			setupMock: func(m *mocks.MockCommandRunner) {
				m.EXPECT().Run(gomock.Any(), toolPath, "status").Return([]byte("Playing"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "title").Return([]byte("Radio Stream"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "artist").Return(nil, fmt.Errorf("no output"))
			},
			expected: domain.Snapshot{Status: domain.StatusPlaying, Title: "Radio Stream"},
		},
		{
			name: "Unknown Status Kept Verbatim",
			setupMock: func(m *mocks.MockCommandRunner) {
				m.EXPECT().Run(gomock.Any(), toolPath, "status").Return([]byte("Buffering"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "title").Return([]byte("Song"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "metadata", "artist").Return([]byte("Artist"), nil)
			},
			expected: domain.Snapshot{Status: "buffering", Title: "Song", Artist: "Artist"},
			hasTrack: true,
		},
		{
			name:   "Player Filter Prepended",
			player: "spotify",
			setupMock: func(m *mocks.MockCommandRunner) {
				m.EXPECT().Run(gomock.Any(), toolPath, "--player=spotify", "status").Return([]byte("Stopped"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "--player=spotify", "metadata", "title").Return([]byte("Song"), nil)
				m.EXPECT().Run(gomock.Any(), toolPath, "--player=spotify", "metadata", "artist").Return([]byte("Artist"), nil)
			},
			expected: domain.Snapshot{Status: domain.StatusStopped, Title: "Song", Artist: "Artist"},
			hasTrack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := mocks.NewMockCommandRunner(ctrl)
			tt.setupMock(runner)

			p := NewPlayerctlPoller(zap.NewNop(), runner, toolPath, tt.player)
			got := p.Poll(context.Background())

			if got != tt.expected {
				t.Errorf("Snapshot mismatch: want %+v, got %+v", tt.expected, got)
			}
			if _, ok := got.Track(); ok != tt.hasTrack {
				t.Errorf("Track presence: want %v, got %v", tt.hasTrack, ok)
			}
		})
	}
}
