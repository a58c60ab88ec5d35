// Package main provides the CLI entry point for sizesweep, which runs a
// hash table benchmark binary over a range of input sizes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/sizesweep/harness"
	"github.com/weiihann/sizesweep/report"
	"github.com/weiihann/sizesweep/sweep"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("sizesweep failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "sizesweep",
		Short: "Run a benchmark binary over increasing input sizes",
		Long: `Sizesweep writes a TOML config describing an input size, runs the
bench executable against it, and repeats for every size in an arithmetic
sequence. Bench exit codes are ignored; failing to write the config or to
start bench stops the sweep.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newReportCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		start      int64
		end        int64
		step       int64
		seed       int64
		configPath string
		benchPath  string
		benchArgs  []string
		benchEnv   []string
		timeout    time.Duration
		buildCmd   []string
		buildDir   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep bench over input sizes",
		Long: `For each size from --start to --end in --step increments, write
--config with input-size and input-range set to the size, print a progress
line, and run "--bench --config" to completion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, logger, runConfig{
				sweep: sweep.Config{
					Start: start,
					End:   end,
					Step:  step,
					Seed:  seed,
				},
				configPath: configPath,
				benchPath:  benchPath,
				benchArgs:  benchArgs,
				benchEnv:   benchEnv,
				timeout:    timeout,
				buildCmd:   buildCmd,
				buildDir:   buildDir,
			})
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&start, "start", sweep.DefaultStart,
		"First input size")
	flags.Int64Var(&end, "end", sweep.DefaultEnd,
		"Last input size (inclusive)")
	flags.Int64Var(&step, "step", sweep.DefaultStep,
		"Increment between input sizes")
	flags.Int64Var(&seed, "seed", sweep.DefaultSeed,
		"Seed written to every config")
	flags.StringVar(&configPath, "config", "config.toml",
		"Path of the generated config file")
	flags.StringVar(&benchPath, "bench", "./bench",
		"Benchmark executable")
	flags.StringArrayVar(&benchArgs, "bench-arg", nil,
		"Extra argument passed to bench before the config path (repeatable)")
	flags.StringArrayVar(&benchEnv, "bench-env", nil,
		"KEY=VALUE added to bench's environment (repeatable)")
	flags.DurationVar(&timeout, "timeout", 0,
		"Per-run timeout for bench (0 = wait indefinitely)")
	flags.StringSliceVar(&buildCmd, "build-cmd", nil,
		"Command that builds bench before the sweep (e.g. make,bench)")
	flags.StringVar(&buildDir, "build-dir", ".",
		"Directory the build command runs in")

	return cmd
}

type runConfig struct {
	sweep      sweep.Config
	configPath string
	benchPath  string
	benchArgs  []string
	benchEnv   []string
	timeout    time.Duration
	buildCmd   []string
	buildDir   string
}

func runSweep(cmd *cobra.Command, logger *slog.Logger, cfg runConfig) error {
	ctx := cmd.Context()

	for _, kv := range cfg.benchEnv {
		if !strings.Contains(kv, "=") {
			return fmt.Errorf("bench env %q: want KEY=VALUE", kv)
		}
	}

	benchPath := cfg.benchPath

	if len(cfg.buildCmd) > 0 {
		var err error

		benchPath, err = harness.Build(ctx, logger, harness.BuildConfig{
			Dir:        cfg.buildDir,
			Command:    cfg.buildCmd,
			BinaryPath: cfg.benchPath,
		})
		if err != nil {
			return fmt.Errorf("build bench: %w", err)
		}
	}

	runner := harness.NewRunner(benchPath, cfg.benchArgs, cfg.benchEnv, logger)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	driver := &sweep.Driver{
		Config:     cfg.sweep,
		ConfigPath: cfg.configPath,
		Invoker:    runner,
		Timeout:    cfg.timeout,
		Out:        cmd.OutOrStdout(),
		Logger:     logger,
	}

	summary, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	if failed := summary.FailedSizes(); len(failed) > 0 {
		logger.WarnContext(ctx, "bench failed for some sizes",
			slog.Int("failures", len(failed)),
			slog.Any("sizes", failed),
		)
	}

	return nil
}

func newReportCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "report [results.tsv]",
		Short: "Summarize the TSV rows bench appended during a sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "unordered-map.tsv"
			if len(args) == 1 {
				path = args[0]
			}

			return runReport(cmd, path, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of table")

	return cmd
}

func runReport(cmd *cobra.Command, path string, outputJSON bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	rows, err := report.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if outputJSON {
		if err := report.GenerateJSON(cmd.OutOrStdout(), rows); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}

		return nil
	}

	if err := report.Generate(cmd.OutOrStdout(), rows); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	return nil
}
