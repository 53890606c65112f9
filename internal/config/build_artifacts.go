// Build artifact detection, adapted from the indexing engine's
// multi-language detector to Zig's own build layout: a project with a
// build.zig almost always has zig-cache/ and zig-out/ directories that
// should never be linted, plus whatever custom cache directory build.zig
// itself names.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// BuildArtifactDetector finds Zig build output directories to exclude.
type BuildArtifactDetector struct {
	projectRoot string
}

func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputDirectories returns glob patterns to exclude: the default
// exclusions, plus any custom cache directory named in build.zig when
// that file exists. build.zig.zon is not read.
func (bad *BuildArtifactDetector) DetectOutputDirectories() []string {
	patterns := append([]string(nil), DefaultExclusions()...)

	if _, err := os.Stat(filepath.Join(bad.projectRoot, "build.zig")); err != nil {
		return patterns
	}
	patterns = append(patterns, bad.detectCustomCacheDir()...)
	return patterns
}

// detectCustomCacheDir looks for `b.cache_root` / `setCacheRoot` calls in
// build.zig, which redirect the cache directory away from the default
// zig-cache/.
func (bad *BuildArtifactDetector) detectCustomCacheDir() []string {
	f, err := os.Open(filepath.Join(bad.projectRoot, "build.zig"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "cache_root") && !strings.Contains(line, "setCacheRoot") {
			continue
		}
		if dir, ok := extractQuotedArg(line); ok {
			patterns = append(patterns, "**/"+dir+"/**")
		}
	}
	return patterns
}

func extractQuotedArg(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}
