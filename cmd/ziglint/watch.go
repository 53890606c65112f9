package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ziglint/ziglint/internal/config"
	"github.com/ziglint/ziglint/internal/debug"
	"github.com/ziglint/ziglint/internal/lintservice"
	"github.com/ziglint/ziglint/internal/rule"
)

// watchDebounce coalesces a burst of writes (editors routinely save a
// file as write+rename) into one re-lint.
const watchDebounce = 200 * time.Millisecond

// watchAndLint re-lints whenever a watched `.zig` file changes, printing
// each run's diagnostics, until ctx is cancelled: a non-recursive watch
// on the directory of every discovered file plus a debounced event loop,
// driving a single-file re-lint instead of a batch rebuild. Any `.zig`
// file written or created in a watched directory is re-linted, whether
// or not it was among paths.
func watchAndLint(ctx context.Context, paths []string, cfg *config.Config, set *rule.Set, opts lintservice.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			debug.Log("WATCH", "failed to watch %s: %v", dir, err)
		}
	}

	svc := lintservice.New(set)
	relint := func(p string) {
		reporter := svc.Run(ctx, []string{p}, opts)
		printDiagnostics(os.Stdout, reporter.Diagnostics())
	}

	pending := map[string]*time.Timer{}
	fmt.Fprintf(os.Stderr, "ziglint: watching %d file(s) for changes, press Ctrl-C to stop\n", len(paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".zig" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := event.Name
			if t, scheduled := pending[path]; scheduled {
				t.Stop()
			}
			pending[path] = time.AfterFunc(watchDebounce, func() { relint(path) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.Log("WATCH", "watcher error: %v", err)
		}
	}
}
