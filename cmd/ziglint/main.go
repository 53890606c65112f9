// Command ziglint lints Zig source files: `ziglint [paths...] [--fix]
// [--threads N] [--config path]`.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ziglint/ziglint/internal/config"
	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/discovery"
	"github.com/ziglint/ziglint/internal/lintservice"
	"github.com/ziglint/ziglint/internal/rules"
	"github.com/ziglint/ziglint/internal/version"
)

// exit codes (spec.md §6 "Exit codes"): 0 no findings, 1 findings
// emitted with severity error or above, 2 invocation/I/O error.
const (
	exitOK         = 0
	exitFindings   = 1
	exitInvocation = 2
)

func main() {
	app := &cli.App{
		Name:                   "ziglint",
		Usage:                  "a Zig source linter",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path (.ziglint.kdl, .ziglint.json, or ziglint.toml)",
			},
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "rewrite files in place, applying every safe (non-dangerous) fix",
			},
			&cli.BoolFlag{
				Name:  "fix-dangerous",
				Usage: "also apply fixes marked dangerous",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "worker count (0 = hardware thread count)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "only lint files matching this glob (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "never lint files matching this glob (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "print-schema",
				Usage: "print the JSON Schema for every registered rule and exit",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "re-lint affected files whenever they change on disk",
			},
		},
		Action: runLint,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ziglint: %v\n", err)
		os.Exit(exitInvocation)
	}
}

func runLint(c *cli.Context) error {
	registry := rules.All()

	if c.Bool("print-schema") {
		schema := config.Schema(registry)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(schema); err != nil {
			return cli.Exit(err.Error(), exitInvocation)
		}
		return nil
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), exitInvocation)
	}

	set, err := config.BuildRuleSet(cfg, registry)
	if err != nil {
		return cli.Exit(err.Error(), exitInvocation)
	}

	paths, err := discovery.Discover(c.Args().Slice(), cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitInvocation)
	}

	opts := lintservice.Options{Threads: cfg.Threads}
	if tf := c.Int("threads"); c.IsSet("threads") {
		opts.Threads = tf
	}
	if c.Bool("fix") || c.Bool("fix-dangerous") {
		opts.Fix = true
		opts.FixProfile = diag.Profile{Kind: diag.FixKindFix, Dangerous: c.Bool("fix-dangerous")}
	}

	if c.Bool("watch") {
		if err := watchAndLint(context.Background(), paths, cfg, set, opts); err != nil {
			return cli.Exit(err.Error(), exitInvocation)
		}
		return nil
	}

	svc := lintservice.New(set)
	reporter := svc.Run(context.Background(), paths, opts)

	diagnostics := reporter.Diagnostics()
	printDiagnostics(os.Stdout, diagnostics)

	if reporter.HasErrors() {
		return cli.Exit("", exitFindings)
	}
	return nil
}

// loadConfigWithOverrides loads cfg from --config (or the nearest default
// config file) and applies the CLI's include/exclude flag overrides.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = findDefaultConfig()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}
	return cfg, nil
}

// findDefaultConfig probes the working directory for each accepted
// config filename, in the order the formats were added, and returns the
// first that exists (spec.md §6 "a config file is optional").
func findDefaultConfig() string {
	for _, name := range []string{".ziglint.kdl", ".ziglint.json", "ziglint.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
