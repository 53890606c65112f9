// Package rules holds the engine's built-in rule implementations: each
// file registers one rule.Rule built from the hooks internal/rule
// defines, reporting through internal/lintctx against the AST
// (internal/zigsyntax) and semantic model (internal/semmodel) that
// internal/semanalyze produced for the file.
package rules

import "github.com/ziglint/ziglint/internal/rule"

// All returns every built-in rule, in registration order. cmd/ziglint
// feeds this straight into internal/config.BuildRuleSet as the known
// registry.
func All() []rule.Rule {
	return []rule.Rule{
		HomelessTry,
		UnusedDecls,
		NoCatchReturn,
		SuppressedErrors,
	}
}
