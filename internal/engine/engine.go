package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genricoloni/marquee/internal/composer"
	"github.com/genricoloni/marquee/internal/domain"
	"github.com/genricoloni/marquee/internal/emitter"
	"github.com/genricoloni/marquee/internal/marquee"
	"go.uber.org/zap"
)

// Engine runs the widget loop: poll, compose, scroll, emit, sleep.
// Ticks run strictly one after another; records come out in tick order.
type Engine struct {
	logger    *zap.Logger
	cfg       domain.Config
	poller    domain.Poller
	composer  *composer.Composer
	marquee   *marquee.Marquee
	formatter *emitter.Formatter
	emitter   domain.Emitter
	sleep     func(ctx context.Context, d time.Duration) error

	// window is the display text of the last tick
	window string
	// justReset lengthens the next sleep after the marquee restarts
	justReset bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a new widget engine
func NewEngine(
	logger *zap.Logger,
	cfg domain.Config,
	poller domain.Poller,
	formatter *emitter.Formatter,
	em domain.Emitter,
) *Engine {
	width := cfg.DisplayWidth()
	return &Engine{
		logger:    logger,
		cfg:       cfg,
		poller:    poller,
		composer:  composer.New(),
		marquee:   marquee.New(width),
		formatter: formatter,
		emitter:   em,
		sleep:     sleepContext,
		window:    marquee.Fit(cfg.StoppedText(), width),
		justReset: true,
	}
}

// Start launches the loop in a goroutine and returns immediately.
// The loop outlives ctx; it ends when Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...",
		zap.Duration("tickInterval", e.cfg.TickInterval()),
		zap.Int("displayWidth", e.cfg.DisplayWidth()))

	loopCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	go func() {
		defer close(e.done)
		if err := e.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Error("Engine loop exited", zap.Error(err))
		}
	}()
	return nil
}

// Stop cancels the loop and waits for the current tick to finish
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")
	if e.cancel == nil {
		return nil
	}
	e.cancel()

	select {
	case <-e.done:
		e.logger.Info("Engine loop stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("engine did not stop in time: %w", ctx.Err())
	}
}

// Run ticks until ctx is cancelled
func (e *Engine) Run(ctx context.Context) error {
	for {
		delay := e.Tick(ctx)
		if err := e.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// Tick performs one poll and writes exactly one record.
// It returns how long to wait before the next tick.
func (e *Engine) Tick(ctx context.Context) time.Duration {
	snap := e.poller.Poll(ctx)

	rec, err := e.render(snap)
	if err != nil {
		e.logger.Error("Failed to render widget text", zap.Error(err))
		rec = e.formatter.Error(err)
	}

	if err := e.emitter.Emit(rec); err != nil {
		e.logger.Error("Failed to emit record", zap.Error(err))
	}

	delay := e.cfg.TickInterval()
	if e.justReset {
		delay += e.cfg.ResetPause()
		e.justReset = false
	}
	return delay
}

// render builds this tick's record. A panic while composing is returned as an error.
func (e *Engine) render(snap domain.Snapshot) (rec domain.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("composition failed: %v", r)
		}
	}()

	// Resolved first so a failure here leaves the scroll state untouched
	glyph := e.cfg.Glyph(snap.Status)

	combined := e.composer.Update(snap)
	width := e.marquee.Width()
	_, hasTrack := snap.Track()

	switch {
	case snap.Status == domain.StatusPaused:
		// Frozen on the head of the text; the scroll cursor is left alone.
		// Padded, unlike a bare head slice, so short text keeps the field width.
		e.window = marquee.Fit(combined, width)

	case e.cfg.FallbackOnStopped() && snap.Status == domain.StatusStopped && !hasTrack:
		e.window = marquee.Fit(e.cfg.StoppedText(), width)

	case combined == "":
		// Nothing composed yet: keep showing the previous window

	case marquee.Len(combined) > width:
		window, restarted := e.marquee.Next(combined)
		if restarted {
			e.justReset = true
			e.logger.Debug("Marquee restarted", zap.String("text", combined))
		}
		e.window = window

	default:
		e.window = marquee.Pad(combined, width)
		e.marquee.Reset()
	}

	return e.formatter.Record(glyph, e.window), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
