package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/marquee/internal/config"
	"github.com/genricoloni/marquee/internal/domain"
	"github.com/genricoloni/marquee/internal/emitter"
	"github.com/genricoloni/marquee/internal/engine"
	"github.com/genricoloni/marquee/internal/executor"
	"github.com/genricoloni/marquee/internal/monitor"
	"github.com/genricoloni/marquee/internal/poller"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the dependency graph shared by main and the tests
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,
		newOutput,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		newRunner,
		newPoller,
		emitter.NewFormatter,
		fx.Annotate(emitter.NewJSONEmitter, fx.As(new(domain.Emitter))),
		engine.NewEngine,
	),
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	<-ctx.Done()

	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance. Production config logs to
// stderr, leaving stdout to the status-bar host.
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// newOutput is the stream records are written to
func newOutput() io.Writer {
	return os.Stdout
}

func newRunner(logger *zap.Logger, cfg domain.Config) domain.CommandRunner {
	return executor.NewExecRunner(logger, cfg.QueryTimeout())
}

// newPoller selects the backend named by the configuration
func newPoller(lc fx.Lifecycle, logger *zap.Logger, cfg domain.Config, runner domain.CommandRunner) domain.Poller {
	if cfg.Source() == config.SourceMpris {
		p := monitor.NewMprisPoller(logger, cfg.Player(), cfg.QueryTimeout())
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return p.Close()
			},
		})
		return p
	}

	if !executor.CommandExists(cfg.ToolPath()) {
		// Not fatal: every poll reports stopped until the tool shows up
		logger.Warn("Media-control tool not found", zap.String("path", cfg.ToolPath()))
	}
	return poller.NewPlayerctlPoller(logger, runner, cfg.ToolPath(), cfg.Player())
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, eng *engine.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Marquee widget started")
			return eng.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			if err := eng.Stop(ctx); err != nil {
				return fmt.Errorf("stopping engine: %w", err)
			}
			return nil
		},
	})
}
