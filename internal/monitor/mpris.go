package monitor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/marquee/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	propMetadata    = "org.mpris.MediaPlayer2.Player.Metadata"
	propStatus      = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
)

// MprisPoller reads playback state from the MPRIS interface on the session bus.
// The connection is opened on the first poll and reopened after a bus error.
type MprisPoller struct {
	logger  *zap.Logger
	player  string
	timeout time.Duration
	dial    func() (DBusClient, error)

	mu   sync.Mutex
	conn DBusClient
}

// NewMprisPoller creates a poller. player, when non-empty, selects
// org.mpris.MediaPlayer2.<player>; otherwise the first player on the bus wins.
func NewMprisPoller(logger *zap.Logger, player string, timeout time.Duration) *MprisPoller {
	return &MprisPoller{
		logger:  logger,
		player:  player,
		timeout: timeout,
		dial: func() (DBusClient, error) {
			conn, err := NewStdDBusClient()
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
}

// Poll returns the current snapshot. Any failure maps to stopped with no track.
func (m *MprisPoller) Poll(ctx context.Context) domain.Snapshot {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	snap, err := m.poll(ctx)
	if err != nil {
		m.logger.Debug("MPRIS query returned no data", zap.Error(err))
		return domain.Snapshot{Status: domain.StatusStopped}
	}
	return snap
}

func (m *MprisPoller) poll(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		conn, err := m.dial()
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("session bus connection failed: %w", err)
		}
		m.conn = conn
	}

	names, err := m.conn.ListNames(ctx)
	if err != nil {
		m.resetLocked()
		return domain.Snapshot{}, fmt.Errorf("failed to list bus names: %w", err)
	}

	player, ok := m.selectPlayer(names)
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("no MPRIS player on the bus")
	}

	statusVariant, err := m.conn.GetProperty(ctx, player, mprisObjectPath, propStatus)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to get playback status: %w", err)
	}
	status, _ := statusVariant.Value().(string)

	snap := domain.Snapshot{Status: domain.ParseStatus(status)}

	metaVariant, err := m.conn.GetProperty(ctx, player, mprisObjectPath, propMetadata)
	if err != nil {
		// Status alone is still worth reporting
		m.logger.Debug("Failed to get metadata", zap.String("player", player), zap.Error(err))
		return snap, nil
	}

	// Some players return nil or unexpected types when idle
	if metadata, ok := metaVariant.Value().(map[string]dbus.Variant); ok {
		snap.Title, snap.Artist = parseMetadata(metadata)
	}

	return snap, nil
}

// selectPlayer picks the bus name to query
func (m *MprisPoller) selectPlayer(names []string) (string, bool) {
	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	slices.Sort(players)

	for _, name := range players {
		if m.player == "" {
			return name, true
		}
		// Players may register with an instance suffix, e.g. vlc.instance1234
		short := strings.TrimPrefix(name, mprisPrefix)
		if short == m.player || strings.HasPrefix(short, m.player+".") {
			return name, true
		}
	}
	return "", false
}

// parseMetadata extracts title and the first artist
func parseMetadata(metadata map[string]dbus.Variant) (title, artist string) {
	if v, ok := metadata["xesam:title"]; ok {
		title, _ = v.Value().(string)
	}

	if v, ok := metadata["xesam:artist"]; ok {
		switch artists := v.Value().(type) {
		case []string:
			if len(artists) > 0 {
				artist = artists[0]
			}
		case string:
			// Non-compliant players send a plain string
			artist = artists
		}
	}

	return strings.TrimSpace(title), strings.TrimSpace(artist)
}

// Close releases the bus connection
func (m *MprisPoller) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}

func (m *MprisPoller) resetLocked() {
	if err := m.conn.Close(); err != nil {
		m.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
	}
	m.conn = nil
}
