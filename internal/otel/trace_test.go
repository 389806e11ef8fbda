package otel

import "testing"

func TestTraceEnabledToggle(t *testing.T) {
	orig := TraceEnabled()
	defer SetTraceEnabled(orig)

	SetTraceEnabled(true)
	if !TraceEnabled() {
		t.Error("TraceEnabled() should be true after SetTraceEnabled(true)")
	}
	SetTraceEnabled(false)
	if TraceEnabled() {
		t.Error("TraceEnabled() should be false after SetTraceEnabled(false)")
	}
}
