package diag

import (
	"fmt"
	"time"
)

// BuildFailureKind distinguishes why the semantic builder (internal/semanalyze)
// could not produce a model for a file (spec.md §4.1 "Failure semantics").
type BuildFailureKind string

const (
	// ParseFailed means the AST itself has structural errors; the parser's
	// collected errors are attached.
	ParseFailed BuildFailureKind = "parse_failed"
	// AnalysisFailed means the builder encountered an invariant violation
	// while walking an otherwise-valid AST.
	AnalysisFailed BuildFailureKind = "analysis_failed"
)

// BuildError is returned by the semantic builder when it cannot produce a
// model; it carries every diagnostic collected up to the failure point,
// grounded on the same {Type, Operation, Underlying, Timestamp} shape the
// rest of the engine's error family uses.
type BuildError struct {
	Kind      BuildFailureKind
	Pathname  string
	Errors    []*Diagnostic
	Timestamp time.Time
}

func NewBuildError(kind BuildFailureKind, pathname string, errs []*Diagnostic) *BuildError {
	return &BuildError{Kind: kind, Pathname: pathname, Errors: errs, Timestamp: time.Now()}
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s (%d diagnostics)", e.Pathname, e.Kind, len(e.Errors))
}
