package lintservice

import (
	"sync"
	"sync/atomic"

	"github.com/ziglint/ziglint/internal/diag"
)

// Reporter is the shared sink every worker reports into (spec.md §4.6
// "Shared reporter"): atomic counters plus a mutex-protected diagnostic
// sink.
type Reporter struct {
	numFilesProcessed     int64
	numFilesWithErrors    int64
	numDiagnosticsEmitted int64

	mu          sync.Mutex
	diagnostics []*diag.Diagnostic
}

func NewReporter() *Reporter { return &Reporter{} }

// RecordFile records one completed file, tallying whether it carried any
// severity==error diagnostic (spec.md §4.6 step 7).
func (r *Reporter) RecordFile(diagnostics []*diag.Diagnostic) {
	atomic.AddInt64(&r.numFilesProcessed, 1)

	hasError := false
	for _, d := range diagnostics {
		if d.Severity == diag.SeverityError {
			hasError = true
		}
	}
	if hasError {
		atomic.AddInt64(&r.numFilesWithErrors, 1)
	}
	if len(diagnostics) == 0 {
		return
	}
	atomic.AddInt64(&r.numDiagnosticsEmitted, int64(len(diagnostics)))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, diagnostics...)
}

// NumFilesProcessed, NumFilesWithErrors and NumDiagnosticsEmitted expose
// the reporter's atomic counters.
func (r *Reporter) NumFilesProcessed() int64     { return atomic.LoadInt64(&r.numFilesProcessed) }
func (r *Reporter) NumFilesWithErrors() int64     { return atomic.LoadInt64(&r.numFilesWithErrors) }
func (r *Reporter) NumDiagnosticsEmitted() int64  { return atomic.LoadInt64(&r.numDiagnosticsEmitted) }

// Diagnostics returns every diagnostic reported so far, across every
// file. Order across files is unspecified (spec.md §5 "Ordering
// guarantees"); callers wanting deterministic grouping sort by Pathname.
func (r *Reporter) Diagnostics() []*diag.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*diag.Diagnostic(nil), r.diagnostics...)
}

// HasErrors reports whether any file carried a severity==error
// diagnostic, matching the CLI's exit-code rule (spec.md §6).
func (r *Reporter) HasErrors() bool { return r.NumFilesWithErrors() > 0 }
