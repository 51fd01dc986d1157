package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyOutput is returned when a command succeeds but prints nothing
var ErrEmptyOutput = errors.New("command produced no output")

// waitDelay bounds how long Run waits for output pipes once the command is killed
const waitDelay = 100 * time.Millisecond

// ExecRunner runs external commands, each bounded by a timeout
type ExecRunner struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewExecRunner creates a runner. A zero timeout leaves invocations unbounded.
func NewExecRunner(logger *zap.Logger, timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes name with args and returns its standard output.
// Stderr is captured only to enrich the returned error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Forked children may hold the pipes open after the kill
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %v: %w", name, args, ctxErr)
		}
		return nil, fmt.Errorf("%s %v failed: %w (stderr: %s)",
			name, args, err, bytes.TrimSpace(stderr.Bytes()))
	}

	if len(bytes.TrimSpace(stdout.Bytes())) == 0 {
		return nil, fmt.Errorf("%s %v: %w", name, args, ErrEmptyOutput)
	}

	r.logger.Debug("Command finished",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Int("bytes", stdout.Len()))

	return stdout.Bytes(), nil
}

// CommandExists checks if a binary exists in PATH or at the given path
func CommandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}
