package poller

import (
	"context"
	"strings"

	"github.com/genricoloni/marquee/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PlayerctlPoller reads playback state by invoking the media-control tool.
// Status, title and artist are three independent invocations.
type PlayerctlPoller struct {
	logger *zap.Logger
	runner domain.CommandRunner
	tool   string
	player string
}

// NewPlayerctlPoller creates a poller for the tool at toolPath.
// player, when non-empty, restricts every query to that player.
func NewPlayerctlPoller(logger *zap.Logger, runner domain.CommandRunner, toolPath, player string) *PlayerctlPoller {
	return &PlayerctlPoller{
		logger: logger,
		runner: runner,
		tool:   toolPath,
		player: player,
	}
}

// Poll queries status, title and artist. Failures become absent values.
func (p *PlayerctlPoller) Poll(ctx context.Context) domain.Snapshot {
	var errs error

	status, err := p.query(ctx, "status")
	errs = multierr.Append(errs, err)

	title, err := p.query(ctx, "metadata", "title")
	errs = multierr.Append(errs, err)

	artist, err := p.query(ctx, "metadata", "artist")
	errs = multierr.Append(errs, err)

	if errs != nil {
		p.logger.Debug("Player query returned no data",
			zap.Int("failures", len(multierr.Errors(errs))),
			zap.Error(errs))
	}

	return domain.Snapshot{
		Status: domain.ParseStatus(status),
		Title:  title,
		Artist: artist,
	}
}

// query runs one tool invocation and returns its trimmed output
func (p *PlayerctlPoller) query(ctx context.Context, args ...string) (string, error) {
	if p.player != "" {
		args = append([]string{"--player=" + p.player}, args...)
	}

	out, err := p.runner.Run(ctx, p.tool, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
