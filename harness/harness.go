package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// RunConfig holds parameters for a single bench execution.
type RunConfig struct {
	ConfigPath string
	Size       int64
	Timeout    time.Duration
}

// Runner launches the bench binary. Stdin, Stdout and Stderr default to
// the driver's own streams when left nil.
type Runner struct {
	BinaryPath string
	ExtraArgs  []string
	Env        []string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
}

// NewRunner creates a Runner for binaryPath. ExtraArgs are placed before
// the config path. Env is appended to the inherited environment.
func NewRunner(
	binaryPath string,
	extraArgs, env []string,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		BinaryPath: binaryPath,
		ExtraArgs:  extraArgs,
		Env:        env,
		Logger:     logger.With(slog.String("bench", binaryPath)),
	}
}

// Run executes bench against cfg.ConfigPath and waits for it to exit.
// A non-zero exit status is recorded in the Result and is not an error.
// Failing to start the process, or the context ending before it exits,
// is returned as an error.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(r.ExtraArgs)+1)
	args = append(args, r.ExtraArgs...)
	args = append(args, cfg.ConfigPath)

	cmd := exec.CommandContext(ctx, r.BinaryPath, args...)

	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	wallStart := time.Now()
	err := cmd.Run()
	wallElapsed := time.Since(wallStart)

	result := &Result{
		Size:     cfg.Size,
		WallTime: wallElapsed,
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("bench %s: %w", r.BinaryPath, ctxErr)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("start bench %s: %w", r.BinaryPath, err)
		}

		result.ExitCode = exitErr.ExitCode()
	}

	r.logger().DebugContext(ctx, "bench finished",
		slog.Int64("size", cfg.Size),
		slog.Int("exit_code", result.ExitCode),
		slog.Duration("wall_time", wallElapsed),
	)

	return result, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return r.Logger
}
