// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/tikibar/internal/progress"
	"github.com/jeranaias/tikibar/internal/render"
	"github.com/jeranaias/tikibar/internal/styles"
	"github.com/jeranaias/tikibar/internal/util"
)

// =============================================================================
// TIKI: two jobs, one-shot lines, clear and finish
// =============================================================================

func runTiki(ctx context.Context, env *demoEnv) error {
	const items = 100

	sorting, err := env.newProgress(
		progress.WithBarStyle("fill"),
		progress.WithLength(items-1),
		progress.WithTemplate("%{bar.cyan} %<eta.dim>4s %<pct> 3d%% %{msg.green}"),
	)
	if err != nil {
		return err
	}
	bleep, err := env.newProgress(
		progress.WithBarStyle("fill"),
		progress.WithLength(256),
		progress.WithTemplate("%<prefix>15s %{bar.red} %{pos}/%{len}"),
		progress.WithPrefix("Bleep bloop"),
	)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		env.d.Add(sorting)
		env.d.Puts("Processing array...")

		lim := env.limiter(40 * time.Millisecond)
		for i := 0; i < items; i++ {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
			sorting.SetPosition(int64(i))
			sorting.SetMessage(fmt.Sprintf("Item %d contains %d", i, rand.IntN(1000)))
			if i == 10 {
				env.d.Puts("Ten down...")
			}
		}
		sorting.Finish("Bam, sorted!")
		return nil
	})

	g.Go(func() error {
		env.d.Add(bleep)

		lim := env.limiter(30 * time.Millisecond)
		for i := int64(0); i <= 256; i++ {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
			bleep.SetPrefix(nextLabel(bleep.Prefix()))
			bleep.SetPosition(i)
		}
		// Gone from the next frame on
		bleep.Clear()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	env.d.Puts("That's pretty much it!")
	return nil
}

// nextLabel increments the rightmost letter of s, carrying into the letter
// before it on wrap: "az" becomes "ba".
func nextLabel(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch c := b[i]; {
		case c == 'z':
			b[i] = 'a'
		case c == 'Z':
			b[i] = 'A'
		case c >= 'a' && c < 'z', c >= 'A' && c < 'Z':
			b[i]++
			return string(b)
		default:
			continue
		}
	}
	return string(b)
}

// =============================================================================
// YARNISH: package-manager style install
// =============================================================================

var demoPackages = []string{
	"fs-events",
	"my-awesome-module",
	"emoji-speaker",
	"wrap-ansi",
	"stream-browserify",
	"acorn-dynamic-import",
}

var demoCommands = []string{
	"cmake .",
	"make",
	"make clean",
	"gcc foo.c -o foo",
	"gcc bar.c -o bar",
	"./helper.sh rebuild-cache",
	"make all-clean",
	"make test",
}

func runYarnish(ctx context.Context, env *demoEnv) error {
	emoji := render.MustParseStyle("cyan.dim")
	start := time.Now()

	env.d.Puts(
		"[1/4] "+emoji.Format("🔍 ")+"Resolving packages...",
		"[2/4] "+emoji.Format("🚚 ")+"Fetching packages...",
		"[3/4] "+emoji.Format("🔗 ")+"Linking dependencies...",
	)

	const deps = 1232
	linking, err := env.newProgress(
		progress.WithBarStyle("fill"),
		progress.WithLength(deps),
		progress.WithWidth(max(env.termWidth-10, 1)),
	)
	if err != nil {
		return err
	}
	env.d.Add(linking)

	lim := env.limiter(3 * time.Millisecond)
	for i := int64(0); i <= deps; i++ {
		if err := lim.Wait(ctx); err != nil {
			return err
		}
		linking.SetPosition(i)
	}
	linking.Clear()
	env.d.Puts("[4/4] " + emoji.Format("📃 ") + "Building fresh packages...")

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < 4; i++ {
		count := 30 + rand.IntN(51)
		worker, err := env.newProgress(
			progress.WithLength(int64(count)),
			progress.WithSpinnerStyle("cycle"),
			progress.WithTemplate(fmt.Sprintf("[%d/?] %%<spinner.red>s %%<msg.dim>s", i+1)),
			progress.WithMaxMessageWidth(max(env.termWidth-12, 10)),
		)
		if err != nil {
			return err
		}
		env.d.Add(worker)

		g.Go(func() error {
			pkg := demoPackages[rand.IntN(len(demoPackages))]
			env.log.Debug("worker started", zap.String("package", pkg), zap.Int("steps", count))
			for step := 1; step <= count; step++ {
				cmd := demoCommands[rand.IntN(len(demoCommands))]
				worker.SetMessage(pkg + ": " + cmd)
				worker.SetPosition(int64(step))

				if err := env.sleep(ctx, time.Duration(25+rand.IntN(176))*time.Millisecond); err != nil {
					return err
				}
			}
			worker.Finish("waiting...")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	env.d.Puts(emoji.Format("✨ ") + fmt.Sprintf("Done in %s", time.Since(start).Round(time.Millisecond)))
	return nil
}

// =============================================================================
// BARS: every preset at once
// =============================================================================

var demoColours = []string{"red", "yellow", "green", "blue", "magenta", "green", "yellow"}

func runBars(ctx context.Context, env *demoEnv) error {
	const (
		width = 20
		steps = 512
	)
	bold := render.MustParseStyle("bold")

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range styles.BarNames() {
		label := name + ":"
		if pad := 20 - util.StringWidth(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		tmpl := bold.Format(label) +
			"▕%<bar." + demoColours[i%len(demoColours)] + ">s▏ %<spinner.red.dim>s %<pct.green.bold> 3d%% %<eta>6s"

		p, err := env.newProgress(
			progress.WithLength(steps),
			progress.WithWidth(width),
			progress.WithBarStyle(name),
			progress.WithSpinnerStyle("cycle"),
			progress.WithTemplate(tmpl),
		)
		if err != nil {
			return err
		}
		env.d.Add(p)

		g.Go(func() error {
			lim := env.limiter(time.Duration(10+rand.IntN(21)) * time.Millisecond)
			for step := int64(0); step <= steps; step++ {
				if err := lim.Wait(ctx); err != nil {
					return err
				}
				p.SetPosition(step)
			}
			return nil
		})
	}
	return g.Wait()
}
