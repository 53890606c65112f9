// Package diag holds the diagnostic and fix vocabulary shared by the
// semantic builder, the rule framework and the fix applier (spec.md §4.2,
// §4.5, §7): a Diagnostic carries severity, labeled spans, an optional
// help string and an optional Fix; a Fix is a span-based text replacement
// tagged safe/dangerous and fix/suggestion.
package diag

import "fmt"

// Severity is a diagnostic's reported level.
type Severity uint8

const (
	SeverityOff Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// FixKind distinguishes an auto-applicable fix from a suggestion the user
// must apply by hand.
type FixKind uint8

const (
	FixKindNone FixKind = iota
	FixKindFix
	FixKindSuggestion
)

// Span is a half-open byte range [Start, End) into a Source's text.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Fix is a span-based text replacement (spec.md §4.5).
type Fix struct {
	Span        Span
	Replacement string
	Kind        FixKind
	Dangerous   bool
}

// IsNoop reports whether applying f would change nothing (spec.md §4.5
// "Fixes whose span is empty AND replacement is empty are no-ops").
func (f Fix) IsNoop() bool { return f.Span.Empty() && f.Replacement == "" }

// Profile is the user-configured acceptable fix class: which Kind to
// apply, and whether dangerous fixes of that kind are allowed.
type Profile struct {
	Kind      FixKind
	Dangerous bool
}

// CanApply implements the fix capability matrix from spec.md §9: "user
// allows other iff user.kind != none && (user.dangerous || !other.dangerous)
// && user.kind == other.kind".
func (p Profile) CanApply(f Fix) bool {
	return p.Kind != FixKindNone && f.Kind == p.Kind && (p.Dangerous || !f.Dangerous)
}

// FixCapability is a rule's advertised fix-producing ability (spec.md
// §4.2 Rule handle "advertised_fix_capability"). It lives in this package
// (rather than internal/rule) so both internal/rule and internal/lintctx
// can depend on it without depending on each other.
type FixCapability uint8

const (
	CapNone FixCapability = iota
	CapSafeFix
	CapDangerousFix
	CapSafeSuggestion
	CapDangerousSuggestion
)

// Kind reports the FixKind a rule with this capability is allowed to
// produce.
func (c FixCapability) Kind() FixKind {
	switch c {
	case CapSafeFix, CapDangerousFix:
		return FixKindFix
	case CapSafeSuggestion, CapDangerousSuggestion:
		return FixKindSuggestion
	default:
		return FixKindNone
	}
}

// Dangerous reports whether this capability covers dangerous fixes.
func (c FixCapability) Dangerous() bool {
	return c == CapDangerousFix || c == CapDangerousSuggestion
}

// Label attaches a message to a span within a diagnostic, e.g. "the `try`
// here has no enclosing error-returning function".
type Label struct {
	Span    Span
	Message string
}

// Diagnostic is a single reported problem (spec.md Glossary). Code "parse"
// and "analysis" are reserved for the semantic builder (spec.md §4.1); rule
// diagnostics carry the reporting rule's name and code.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Labels   []Label
	Help     string
	Fix      *Fix
	Pathname string
	RuleName string
}

// New starts a diagnostic with a code and static message. Chain With*
// calls to decorate it before Report (internal/lintctx).
func New(code, message string) *Diagnostic {
	return &Diagnostic{Code: code, Message: message}
}

// Newf starts a diagnostic with a formatted message (spec.md §4.2
// diagnostic_fmt).
func Newf(code, template string, args ...any) *Diagnostic {
	return New(code, fmt.Sprintf(template, args...))
}

func (d *Diagnostic) WithSeverity(s Severity) *Diagnostic {
	d.Severity = s
	return d
}

func (d *Diagnostic) WithLabel(span Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

func (d *Diagnostic) WithFix(f Fix) *Diagnostic {
	d.Fix = &f
	return d
}

// Error implements the error interface so a Diagnostic can flow through
// ordinary Go error handling paths (e.g. BuildError in failure.go carries
// a slice of these).
func (d *Diagnostic) Error() string {
	if d.Pathname != "" {
		return fmt.Sprintf("%s: %s [%s]", d.Pathname, d.Message, d.Code)
	}
	return fmt.Sprintf("%s [%s]", d.Message, d.Code)
}
