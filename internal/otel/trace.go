package otel

import (
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("HNBAR_TRACE") != "")
}

// TraceEnabled reports whether every dispatched action should be journaled.
// Set HNBAR_TRACE to turn it on.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// SetTraceEnabled overrides HNBAR_TRACE, for the --trace flag.
func SetTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
