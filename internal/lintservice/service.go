// Package lintservice is the parallel lint service (spec.md §4.6,
// component C12): a bounded worker pool that runs the per-file pipeline
// (open, build, lint, optionally fix) over many paths concurrently and
// aggregates results into a shared Reporter.
package lintservice

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ziglint/ziglint/internal/debug"
	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/fixer"
	"github.com/ziglint/ziglint/internal/linter"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/semanalyze"
	"github.com/ziglint/ziglint/internal/source"
)

// Options configures one Run call.
type Options struct {
	// Threads is the worker count; 0 means hardware-thread-count (spec.md
	// §4.6 "N = configured || hardware-thread-count").
	Threads int
	// Fix enables the fix-mode pipeline branch (spec.md §4.6 step 6).
	Fix bool
	// FixProfile is the fix profile applied when Fix is set.
	FixProfile diag.Profile
	// DevMode is forwarded into every file's lintctx.Context.
	DevMode bool
}

// Service owns one immutable rule set shared read-only by every worker
// (spec.md §4.6 "Model").
type Service struct {
	rules *rule.Set
}

func New(rules *rule.Set) *Service { return &Service{rules: rules} }

// Run lints every path in paths concurrently, bounded by opts.Threads
// workers, and returns the shared reporter once every file has been
// processed.
func (s *Service) Run(ctx context.Context, paths []string, opts Options) *Reporter {
	reporter := NewReporter()

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for _, p := range paths {
		path := p // heap-owned, transferred into the task (spec.md §4.6 "Ownership of path strings")
		g.Go(func() error {
			s.lintOne(gctx, path, opts, reporter)
			return nil
		})
	}
	// Every task above always returns nil: a single file's failure is
	// recorded in the reporter, never propagated as a Wait() error
	// (spec.md §5 "the linter always runs to completion").
	_ = g.Wait()

	return reporter
}

// lintOne is the per-file pipeline (spec.md §4.6 "Per-file pipeline").
func (s *Service) lintOne(ctx context.Context, path string, opts Options, reporter *Reporter) {
	src, err := source.Open(path)
	if err != nil {
		debug.Log("LINTSERVICE", "open %q: %v", path, err)
		d := diag.New("io", err.Error())
		d.Severity = diag.SeverityError
		d.Pathname = path
		reporter.RecordFile([]*diag.Diagnostic{d})
		return
	}

	if src.Len() == 0 {
		reporter.RecordFile(nil)
		return
	}

	result, buildDiags, buildErr := semanalyze.Build(src)
	if buildErr != nil {
		reporter.RecordFile(buildDiags)
		return
	}

	lctx := lintctx.New(result.AST, result.Model, src)
	lctx.DevMode = opts.DevMode
	linter.Lint(lctx, s.rules)

	diagnostics := lctx.Diagnostics()

	if opts.Fix {
		fixed := fixer.Apply(src.Text(), diagnostics, opts.FixProfile)
		if fixed.DidFix {
			if err := writeThenRename(path, fixed.Source); err != nil {
				debug.Log("LINTSERVICE", "write %q: %v", path, err)
				d := diag.New("io", err.Error())
				d.Severity = diag.SeverityError
				d.Pathname = path
				fixed.UnfixedErrors = append(fixed.UnfixedErrors, d)
			}
		}
		reporter.RecordFile(fixed.UnfixedErrors)
		return
	}

	reporter.RecordFile(diagnostics)
}

// writeThenRename writes text to a sibling temp file and renames it over
// path, an atomic replace on platforms whose filesystem supports it
// (spec.md §4.6 step 6 "write-then-rename strategy").
func writeThenRename(path string, text []byte) error {
	tmp := path + ".ziglint-tmp"
	if err := os.WriteFile(tmp, text, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
