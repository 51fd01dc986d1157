package config

import (
	"fmt"
	"maps"
	"time"

	"github.com/creasty/defaults"
	"github.com/genricoloni/marquee/internal/domain"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	// SourcePlayerctl polls the media-control command-line tool
	SourcePlayerctl = "playerctl"
	// SourceMpris reads the MPRIS interface over the D-Bus session bus
	SourceMpris = "mpris"
)

// Settings lists every recognised option with its default.
// It is only used to build an AppConfig; nothing reads it at runtime.
type Settings struct {
	GlyphFontFamily   string            `default:"Symbols Nerd Font Mono" validate:"required"`
	Glyphs            map[string]string `validate:"dive,keys,oneof=playing paused stopped,endkeys,required"`
	DefaultGlyph      string            `default:"\uf001" validate:"required"`
	ErrorGlyph        string            `default:"\uf071" validate:"required"`
	StoppedText       string            `default:"Nothing playing right now"`
	DisplayWidth      int               `default:"20" validate:"gt=0"`
	TickInterval      time.Duration     `default:"300ms" validate:"gt=0"`
	ResetPauseTicks   int               `default:"5" validate:"gte=0"`
	ToolPath          string            `default:"/usr/bin/playerctl" validate:"required"`
	QueryTimeout      time.Duration     `default:"1s" validate:"gte=0"`
	Source            string            `default:"playerctl" validate:"oneof=playerctl mpris"`
	Player            string
	FallbackOnStopped bool `default:"true"`
	EscapeMarkup      bool `default:"true"`
}

// SetDefaults fills the glyph table, which struct tags cannot express
func (s *Settings) SetDefaults() {
	if s.Glyphs == nil {
		s.Glyphs = map[string]string{
			string(domain.StatusPlaying): "\uf04b",
			string(domain.StatusPaused):  "\uf04c",
			string(domain.StatusStopped): "\uf04d",
		}
	}
}

// DefaultSettings returns the startup constants
func DefaultSettings() Settings {
	var s Settings
	// Only fails for malformed tags
	if err := defaults.Set(&s); err != nil {
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}
	return s
}

// AppConfig holds application configuration. It is immutable once built.
type AppConfig struct {
	fontFamily        string
	glyphs            map[domain.PlaybackStatus]string
	defaultGlyph      string
	errorGlyph        string
	stoppedText       string
	displayWidth      int
	tickInterval      time.Duration
	resetPauseTicks   int
	toolPath          string
	queryTimeout      time.Duration
	source            string
	player            string
	fallbackOnStopped bool
	escapeMarkup      bool
}

// New validates s and freezes it into an AppConfig
func New(s Settings) (*AppConfig, error) {
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	glyphs := make(map[domain.PlaybackStatus]string, len(s.Glyphs))
	for k, v := range s.Glyphs {
		glyphs[domain.PlaybackStatus(k)] = v
	}

	return &AppConfig{
		fontFamily:        s.GlyphFontFamily,
		glyphs:            glyphs,
		defaultGlyph:      s.DefaultGlyph,
		errorGlyph:        s.ErrorGlyph,
		stoppedText:       s.StoppedText,
		displayWidth:      s.DisplayWidth,
		tickInterval:      s.TickInterval,
		resetPauseTicks:   s.ResetPauseTicks,
		toolPath:          s.ToolPath,
		queryTimeout:      s.QueryTimeout,
		source:            s.Source,
		player:            s.Player,
		fallbackOnStopped: s.FallbackOnStopped,
		escapeMarkup:      s.EscapeMarkup,
	}, nil
}

// NewAppConfig creates the application configuration from the startup defaults
func NewAppConfig(logger *zap.Logger) (*AppConfig, error) {
	cfg, err := New(DefaultSettings())
	if err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("source", cfg.source),
		zap.String("toolPath", cfg.toolPath),
		zap.Int("displayWidth", cfg.displayWidth),
		zap.Duration("tickInterval", cfg.tickInterval),
		zap.Duration("queryTimeout", cfg.queryTimeout))

	return cfg, nil
}

// Glyph returns the glyph for status, falling back to the default glyph
func (c *AppConfig) Glyph(status domain.PlaybackStatus) string {
	if !status.Known() {
		return c.defaultGlyph
	}
	if g, ok := c.glyphs[status]; ok {
		return g
	}
	return c.defaultGlyph
}

// Glyphs returns a copy of the glyph table
func (c *AppConfig) Glyphs() map[domain.PlaybackStatus]string {
	return maps.Clone(c.glyphs)
}

func (c *AppConfig) ErrorGlyph() string          { return c.errorGlyph }
func (c *AppConfig) GlyphFontFamily() string     { return c.fontFamily }
func (c *AppConfig) StoppedText() string         { return c.stoppedText }
func (c *AppConfig) DisplayWidth() int           { return c.displayWidth }
func (c *AppConfig) TickInterval() time.Duration { return c.tickInterval }
func (c *AppConfig) ToolPath() string            { return c.toolPath }
func (c *AppConfig) QueryTimeout() time.Duration { return c.queryTimeout }
func (c *AppConfig) Source() string              { return c.source }
func (c *AppConfig) Player() string              { return c.player }
func (c *AppConfig) FallbackOnStopped() bool     { return c.fallbackOnStopped }
func (c *AppConfig) EscapeMarkup() bool          { return c.escapeMarkup }

// ResetPause returns the extra delay applied after the marquee restarts
func (c *AppConfig) ResetPause() time.Duration {
	return time.Duration(c.resetPauseTicks) * c.tickInterval
}
