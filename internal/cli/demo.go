// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/tikibar/internal/config"
	"github.com/jeranaias/tikibar/internal/display"
	"github.com/jeranaias/tikibar/internal/logging"
	"github.com/jeranaias/tikibar/internal/metrics"
	"github.com/jeranaias/tikibar/internal/progress"
	"github.com/jeranaias/tikibar/internal/terminal"
)

// scenario is one scripted demo session.
type scenario struct {
	name  string
	short string
	run   func(ctx context.Context, env *demoEnv) error
	// clear leaves no indicators on screen when the session ends
	clear bool
}

var scenarios = []scenario{
	{name: "tiki", short: "two concurrent jobs, one-shot lines, clear and finish", run: runTiki},
	{name: "yarnish", short: "package-manager style install with spinner workers", run: runYarnish, clear: true},
	{name: "bars", short: "every preset bar animated at once", run: runBars},
}

func findScenario(name string) (scenario, error) {
	i := slices.IndexFunc(scenarios, func(s scenario) bool { return s.name == strings.ToLower(name) })
	if i < 0 {
		names := make([]string, len(scenarios))
		for j, s := range scenarios {
			names[j] = s.name
		}
		return scenario{}, fmt.Errorf("unknown scenario %q, must be one of: %s", name, strings.Join(names, ", "))
	}
	return scenarios[i], nil
}

type demoOptions struct {
	scenario   string
	configPath string
	speed      float64
	watch      bool

	// out overrides the configured display output
	out io.Writer
}

func newDemoCmd() *cobra.Command {
	var opts demoOptions

	var help strings.Builder
	for _, s := range scenarios {
		fmt.Fprintf(&help, "\n  %-8s %s", s.name, s.short)
	}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted multi-indicator session",
		Long:  "Run a scripted multi-indicator session.\n\nScenarios:" + help.String(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := runDemo(ctx, opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), `\o/`)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "tiki", "scenario to run")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.tikibar/config.toml)")
	cmd.Flags().Float64Var(&opts.speed, "speed", 1, "playback speed multiplier")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the refresh interval when the config file changes")
	return cmd
}

// demoEnv is what a scenario needs to build and show indicators.
type demoEnv struct {
	d     *display.Display
	log   *zap.Logger
	speed float64
	// termWidth is the width of the terminal the display draws to
	termWidth int
}

// newProgress builds an indicator from the current global defaults,
// overridden by opts. Indicators created after a reload pick up the new
// defaults.
func (e *demoEnv) newProgress(opts ...progress.Option) (*progress.Progress, error) {
	return progress.New(append(config.Global().Progress.Options(), opts...)...)
}

// limiter paces a producer to one step per interval, scaled by speed.
func (e *demoEnv) limiter(interval time.Duration) *rate.Limiter {
	scaled := time.Duration(float64(interval) / e.speed)
	if scaled < time.Microsecond {
		scaled = time.Microsecond
	}
	return rate.NewLimiter(rate.Every(scaled), 1)
}

// sleep waits for d, scaled by speed, or until ctx is done.
func (e *demoEnv) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(time.Duration(float64(d) / e.speed))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func runDemo(ctx context.Context, opts demoOptions) error {
	sc, err := findScenario(opts.scenario)
	if err != nil {
		return err
	}
	if opts.speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", opts.speed)
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		if cfgPath, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	// Logs would tear the live region, so they only go to a file
	logger := zap.NewNop()
	if cfg.Log.File != "" {
		if logger, err = logging.New(logging.Options{
			Development: cfg.Log.Development,
			Level:       cfg.Log.Level,
			File:        cfg.Log.File,
		}); err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		rec = metrics.NewRecorder(reg)
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server failed", zap.Error(err))
			}
		}()
		defer srv.Close()
	}

	var out io.Writer = cfg.Display.Writer()
	termWidth := terminal.WidthOf(cfg.Display.Writer())
	if opts.out != nil {
		out = opts.out
		termWidth = terminal.DefaultTerminalWidth
	} else if !outputIsTTY(cfg.Display.Output) {
		logger.Warn("display output is not a terminal",
			zap.String("output", cfg.Display.Output))
	}

	d := display.New(
		display.WithOutput(out),
		display.WithRefresh(cfg.Display.Refresh()),
		display.WithLogger(logger),
		display.WithMetrics(rec),
	)

	if opts.watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			werr := config.Watch(watchCtx, cfgPath, func(c *config.Config, err error) {
				if err != nil {
					logger.Warn("config reload failed", zap.Error(err))
					return
				}
				config.SetGlobal(c)
				d.SetRefresh(c.Display.Refresh())
				logger.Info("config reloaded", zap.Duration("refresh", c.Display.Refresh()))
			})
			if werr != nil {
				logger.Warn("config watch stopped", zap.Error(werr))
			}
		}()
	}

	env := &demoEnv{d: d, log: logger, speed: opts.speed, termWidth: termWidth}
	logger.Info("demo started", zap.String("scenario", sc.name))
	runErr := sc.run(ctx, env)

	var joinErr error
	if sc.clear || runErr != nil {
		joinErr = d.FinishAndClear()
	} else {
		joinErr = d.Join()
	}
	return errors.Join(runErr, joinErr)
}

// outputIsTTY reports whether the configured display stream is a terminal.
func outputIsTTY(output string) bool {
	if strings.EqualFold(output, "stdout") {
		return terminal.IsStdoutTTY()
	}
	return terminal.IsStderrTTY()
}
