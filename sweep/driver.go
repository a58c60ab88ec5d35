package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/weiihann/sizesweep/benchconfig"
	"github.com/weiihann/sizesweep/harness"
)

// Invoker runs bench once against a config file.
type Invoker interface {
	Run(ctx context.Context, cfg harness.RunConfig) (*harness.Result, error)
}

// Summary collects the outcome of a sweep.
type Summary struct {
	Iterations int
	Failures   int
	Results    []harness.Result
}

// FailedSizes returns the sizes whose bench run exited non-zero, in sweep
// order.
func (s Summary) FailedSizes() []int64 {
	var sizes []int64

	for _, r := range s.Results {
		if r.Failed() {
			sizes = append(sizes, r.Size)
		}
	}

	return sizes
}

// Driver writes one config document per size and runs bench on it. A nil
// Logger discards log output.
type Driver struct {
	Config     Config
	ConfigPath string
	Invoker    Invoker
	Timeout    time.Duration
	Out        io.Writer
	Logger     *slog.Logger
}

// Run performs the sweep. Each iteration overwrites ConfigPath, prints a
// progress line to Out and blocks on bench. A bench exit status never
// stops the sweep. A write or launch failure aborts it, returning the
// summary of the iterations that completed.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	if err := d.Config.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid sweep: %w", err)
	}

	logger := d.logger()
	sizes := d.Config.Sizes()
	summary := Summary{Results: make([]harness.Result, 0, len(sizes))}

	logger.InfoContext(ctx, "starting sweep",
		slog.Int64("start", d.Config.Start),
		slog.Int64("end", d.Config.End),
		slog.Int64("step", d.Config.Step),
		slog.Int64("seed", d.Config.Seed),
		slog.Int("iterations", len(sizes)),
		slog.String("config", d.ConfigPath),
	)

	for _, n := range sizes {
		doc := benchconfig.New(n, d.Config.Seed)

		if err := benchconfig.WriteFile(d.ConfigPath, doc); err != nil {
			return summary, fmt.Errorf("size %d: %w", n, err)
		}

		if _, err := fmt.Fprintf(d.Out, "Benchmarking size %d...\n", n); err != nil {
			return summary, fmt.Errorf("size %d: progress: %w", n, err)
		}

		result, err := d.Invoker.Run(ctx, harness.RunConfig{
			ConfigPath: d.ConfigPath,
			Size:       n,
			Timeout:    d.Timeout,
		})
		if err != nil {
			return summary, fmt.Errorf("size %d: %w", n, err)
		}

		summary.Iterations++
		summary.Results = append(summary.Results, *result)

		if result.Failed() {
			summary.Failures++

			logger.WarnContext(ctx, "bench exited with non-zero status",
				slog.Int64("size", n),
				slog.Int("exit_code", result.ExitCode),
			)

			continue
		}

		logger.InfoContext(ctx, "bench finished",
			slog.Int64("size", n),
			slog.Duration("wall_time", result.WallTime),
		)
	}

	logger.InfoContext(ctx, "sweep complete",
		slog.Int("iterations", summary.Iterations),
		slog.Int("failures", summary.Failures),
	)

	return summary, nil
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return d.Logger
}
