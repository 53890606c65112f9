// Package discovery turns the CLI's path arguments into a concrete,
// deduplicated list of `.zig` files to lint: the same gitignore-then-glob
// filtering order a multi-language file scanner would use, narrowed to
// Zig's single extension.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziglint/ziglint/internal/config"
)

// Discover walks roots (file or directory arguments from the CLI) and
// returns every `.zig` file under a directory root that survives cfg's
// include/exclude globs, the .gitignore at that root (only that one; no
// other .gitignore is read), and Zig's own build-artifact directories
// (zig-cache/, zig-out/, and any custom cache_root build.zig points at).
// A file argument is returned as given, without any of these filters.
// The result is sorted for deterministic reporting order.
func Discover(roots []string, cfg *config.Config) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	seen := map[string]bool{}
	var out []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !seen[root] {
				seen[root] = true
				out = append(out, root)
			}
			continue
		}

		gitignore := config.NewGitignoreParser()
		_ = gitignore.LoadGitignore(root)
		artifacts := config.NewBuildArtifactDetector(root).DetectOutputDirectories()

		walkErr := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)

			if fi.IsDir() {
				if rel != "." && (gitignore.ShouldIgnore(rel, true) || matchesAny(artifacts, rel, path)) {
					return filepath.SkipDir
				}
				return nil
			}

			if filepath.Ext(path) != ".zig" {
				return nil
			}
			if gitignore.ShouldIgnore(rel, false) {
				return nil
			}
			if !included(cfg.Include, rel, path) {
				return nil
			}
			if matchesAny(cfg.Exclude, rel, path) || matchesAny(artifacts, rel, path) {
				return nil
			}

			if !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	sort.Strings(out)
	return out, nil
}

// included reports whether path matches at least one include pattern.
// No include patterns means everything passes (spec.md §6's include
// list narrows the default "everything", it doesn't replace it).
func included(patterns []string, rel, full string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(patterns, rel, full)
}

func matchesAny(patterns []string, rel, full string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, full); err == nil && matched {
			return true
		}
	}
	return false
}
