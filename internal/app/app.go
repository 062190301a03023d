// Package app assembles the configured search and runs it: it builds the
// pattern, filter, finder, printer and optional command runner from a
// Config and streams results between them.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/halvard/ffind/internal/command"
	"github.com/halvard/ffind/internal/config"
	"github.com/halvard/ffind/internal/filter"
	"github.com/halvard/ffind/internal/finder"
	"github.com/halvard/ffind/internal/ignore"
	"github.com/halvard/ffind/internal/logger"
	"github.com/halvard/ffind/internal/pattern"
	"github.com/halvard/ffind/internal/printer"
	"github.com/halvard/ffind/internal/summary"
	"github.com/halvard/ffind/internal/walker"
)

// ErrNoMatch is returned in quiet mode when the search found nothing, so
// main can map it to exit code 1 without printing anything.
var ErrNoMatch = errors.New("app: no matches found")

// Run executes one search per configured path and renders the results.
func Run(cfg *config.Config) error {
	useColors := cfg.UseColors()
	color.NoColor = !useColors

	log := logger.New(os.Stderr, cfg.Verbose, useColors)
	if !cfg.Verbose {
		log.SetLevel(cfg.LogLevel)
	}

	if cfg.CaseSensitive && cfg.IgnoreCase {
		return fmt.Errorf("app: --case-sensitive and --ignore-case are mutually exclusive")
	}

	srch, err := buildFinder(cfg, log)
	if err != nil {
		return err
	}

	p := printer.New().
		WithColors(useColors).
		WithNullSeparator(cfg.Print0).
		WithAbsolute(cfg.AbsolutePath).
		WithFormat(cfg.Format)

	var runner *command.Runner
	if len(cfg.Exec) > 0 {
		runner, err = command.NewRunner(cfg.Exec, cfg.Threads, log)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		runner.Start(ctx)
	}

	stats := summary.NewStats()
	var matched int64

	yield := func(e *walker.Entry) error {
		matched++
		stats.Record(e)
		switch {
		case cfg.Quiet:
			// One match decides the exit code; stop searching.
			return finder.ErrStop
		case runner != nil:
			path := e.Path
			if cfg.AbsolutePath {
				path = e.AbsPath()
			}
			runner.Submit(path)
		default:
			p.Print(e)
		}
		return nil
	}

	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	start := time.Now()
	for _, root := range paths {
		log.Debug("app: searching %s", root)
		if err := srch.Find(root, yield); err != nil {
			return err
		}
		if cfg.Quiet && matched > 0 {
			break
		}
	}
	log.Debug("app: %d match(es) in %v", matched, time.Since(start).Round(time.Millisecond))

	if runner != nil {
		if err := runner.Wait(); err != nil {
			return err
		}
	}
	if cfg.Stats {
		stats.Skipped = srch.Skipped()
		stats.Print(os.Stderr)
	}
	if cfg.Quiet && matched == 0 {
		return ErrNoMatch
	}
	return nil
}

// buildFinder translates the configuration surface into the finder's
// pattern, filter and traversal options.
func buildFinder(cfg *config.Config, log *logger.Logger) (*finder.Finder, error) {
	caseMode := pattern.CaseSmart
	if cfg.CaseSensitive {
		caseMode = pattern.CaseSensitive
	} else if cfg.IgnoreCase {
		caseMode = pattern.CaseInsensitive
	}
	pat := pattern.New(cfg.Pattern, pattern.Options{Case: caseMode, FullPath: cfg.FullPath})

	flt := filter.New()
	for _, t := range cfg.Types {
		if err := flt.AddType(t); err != nil {
			return nil, err
		}
	}
	for _, s := range cfg.Sizes {
		if err := flt.AddSize(s); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	if cfg.ChangedWithin != "" {
		if err := flt.SetChangedWithin(cfg.ChangedWithin, now); err != nil {
			return nil, err
		}
	}
	if cfg.ChangedBefore != "" {
		if err := flt.SetChangedBefore(cfg.ChangedBefore, now); err != nil {
			return nil, err
		}
	}

	minDepth, maxDepth := cfg.MinDepth, cfg.MaxDepth
	if cfg.ExactDepth >= 0 {
		minDepth, maxDepth = cfg.ExactDepth, cfg.ExactDepth
	}

	ignoreOpts := []ignore.Option{
		ignore.WithGitignore(!cfg.NoIgnoreVCS),
		ignore.WithDotIgnore(!cfg.NoIgnoreLocal),
		ignore.WithFdignore(!cfg.NoIgnoreLocal),
		ignore.WithGlobalIgnore(!cfg.NoGlobalIgnore),
		ignore.WithRequireGit(!cfg.NoRequireGit),
	}
	if cfg.GlobalIgnorePath != "" {
		ignoreOpts = append(ignoreOpts, ignore.WithGlobalPath(cfg.GlobalIgnorePath))
	}

	return finder.New(finder.Options{
		Pattern:       pat,
		Filter:        flt,
		Logger:        log,
		Hidden:        cfg.Hidden,
		Excludes:      cfg.Excludes,
		MinDepth:      minDepth,
		MaxDepth:      maxDepth,
		Follow:        cfg.Follow,
		OneFileSystem: cfg.OneFileSystem,
		NoIgnore:      cfg.NoIgnore,
		IgnoreOptions: ignoreOpts,
	}), nil
}
