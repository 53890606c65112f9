package lintservice

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures the worker pool's goroutines always wind down once
// Run returns (spec.md §5 "the linter always runs to completion").
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
