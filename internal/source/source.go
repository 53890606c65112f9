// Package source owns the text of one input file for the lifetime of its
// analysis: the NUL-terminated byte buffer, its pathname, and a cheap
// reference-counted clone handle so diagnostics can hold the text without
// owning it (spec.md §3 "Source").
package source

import (
	"os"
	"sync/atomic"
)

// Source owns one file's text plus its pathname.
//
// text always ends with an explicit NUL byte that is NOT part of Len();
// this mirrors the tokenizer/parser contract assumed by spec.md §3, which
// requires text[len] == 0 so the (external) lexer can use the NUL as an
// always-present end-of-buffer sentinel without a separate bounds check on
// every byte read.
type Source struct {
	text     []byte // len(text) == Len()+1, text[Len()] == 0
	pathname string
	refs     *int32 // shared across clones; freed conceptually at refs==0
}

// New builds a Source over an in-memory byte slice, appending the NUL
// terminator. Used by tests and by the worker pool after reading a file.
func New(pathname string, text []byte) *Source {
	buf := make([]byte, len(text)+1)
	copy(buf, text)
	// buf[len(text)] is already zero.
	n := int32(1)
	return &Source{text: buf, pathname: pathname, refs: &n}
}

// Open reads pathname from disk and wraps it in a Source.
func Open(pathname string) (*Source, error) {
	data, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}
	return New(pathname, data), nil
}

// Text returns the source text without the trailing NUL.
func (s *Source) Text() []byte { return s.text[:len(s.text)-1] }

// NulTerminated returns the full buffer including the trailing NUL byte,
// for the tokenizer to scan over.
func (s *Source) NulTerminated() []byte { return s.text }

// Len returns the length of the text, excluding the NUL terminator.
func (s *Source) Len() int { return len(s.text) - 1 }

// Pathname returns the file's path, or "" if the source is anonymous
// (e.g. constructed directly from a string in a test).
func (s *Source) Pathname() string { return s.pathname }

// Slice returns the substring [start,end) of the text. Callers must keep
// start<=end<=Len(); out-of-range slices panic, matching Go slice
// semantics, since a well-formed span from the walker/builder never
// produces one.
func (s *Source) Slice(start, end int) string { return string(s.text[start:end]) }

// Clone returns a new handle sharing the same underlying buffer. The
// refcount exists so long-lived diagnostics can hold a Source without
// pinning the whole parse pipeline's arena in callers that do track one;
// this implementation keeps the buffer alive via the Go GC regardless, but
// the count lets callers assert "no more holders" in tests.
func (s *Source) Clone() *Source {
	atomic.AddInt32(s.refs, 1)
	return &Source{text: s.text, pathname: s.pathname, refs: s.refs}
}

// Release decrements the clone refcount and reports the count remaining.
func (s *Source) Release() int32 {
	return atomic.AddInt32(s.refs, -1)
}
