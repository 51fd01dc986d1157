package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/fx"
)

// TestAppGraphValidity verifies that the dependency graph is resolvable.
// This test will fail if you forget an fx.Provide for a required interface.
func TestAppGraphValidity(t *testing.T) {
	if err := fx.ValidateApp(AppOptions); err != nil {
		t.Errorf("Dependency graph is not valid: %v", err)
	}
}

// TestNewLogger specifically verifies the logger configuration
func TestNewLogger(t *testing.T) {
	logger, err := newLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
	logger.Info("Test logger initialization")
}

// syncBuffer guards the buffer shared with the engine goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestEndToEndStartup starts and stops the real graph with stdout swapped out.
// Without a media player every tick reports stopped, which still emits a record.
func TestEndToEndStartup(t *testing.T) {
	out := &syncBuffer{}
	app := fx.New(
		AppOptions,
		fx.Decorate(func(io.Writer) io.Writer { return out }),
		fx.NopLogger, // Silence Fx logs during tests
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := app.Start(ctx); err != nil {
		t.Fatalf("App failed to start: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for out.String() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := app.Stop(ctx); err != nil {
		t.Fatalf("App failed to stop: %v", err)
	}

	if !strings.HasPrefix(out.String(), `{"text":"<span font_family=`) {
		t.Errorf("Expected a widget record, got %q", out.String())
	}
}
