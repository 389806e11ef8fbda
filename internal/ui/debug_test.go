package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/hnbar/internal/otel"
)

func TestDebugOverlayNilRing(t *testing.T) {
	if got := debugOverlay(nil, 0, 80, 24); got != "" {
		t.Errorf("debugOverlay(nil) should return empty string, got %q", got)
	}
}

func TestDebugOverlayStats(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	ring.Push(otel.Event{Kind: otel.KindFetchTop, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindFetchItem, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindFetchItem, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindFetchError, Time: time.Now(), Err: "HTTP 500"})
	ring.Push(otel.Event{Kind: otel.KindShellOpen, Time: time.Now(), URL: "https://example.com"})

	out := debugOverlay(ring, 2, 100, 40)

	for _, want := range []string{
		"1 rankings, 2 items, 1 errors",
		"1 opened, 0 failed",
		"5 / 64 buffered, 5 total, 2 dropped",
		"err=HTTP 500",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay missing %q:\n%s", want, out)
		}
	}
}

func TestDebugOverlayFitsHeight(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	for range 30 {
		ring.Push(otel.Event{Kind: otel.KindFetchItem, Time: time.Now()})
	}

	out := debugOverlay(ring, 0, 80, 12)

	if n := strings.Count(out, "\n") + 1; n > 12 {
		t.Errorf("overlay is %d lines, want at most 12", n)
	}
}
