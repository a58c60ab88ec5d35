package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// BuildConfig describes how to produce the bench binary before a sweep.
type BuildConfig struct {
	Dir        string
	Command    []string
	BinaryPath string
}

// Build runs cfg.Command in cfg.Dir, checks that cfg.BinaryPath exists
// afterwards and returns its absolute path. A relative BinaryPath is
// resolved against cfg.Dir.
//
// Build output goes to stderr so stdout stays reserved for the sweep.
func Build(ctx context.Context, logger *slog.Logger, cfg BuildConfig) (string, error) {
	if len(cfg.Command) == 0 {
		return "", fmt.Errorf("build: empty command")
	}

	binPath := cfg.BinaryPath
	if !filepath.IsAbs(binPath) {
		var err error

		binPath, err = filepath.Abs(filepath.Join(cfg.Dir, binPath))
		if err != nil {
			return "", fmt.Errorf("resolve binary path: %w", err)
		}
	}

	logger.InfoContext(ctx, "building bench",
		slog.String("dir", cfg.Dir),
		slog.Any("command", cfg.Command),
	)

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("build %v: %w", cfg.Command, err)
	}

	info, err := os.Stat(binPath)
	if err != nil {
		return "", fmt.Errorf("build: binary not found at %s: %w", binPath, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("build: %s is a directory", binPath)
	}

	logger.InfoContext(ctx, "bench built",
		slog.String("binary", binPath),
	)

	return binPath, nil
}
