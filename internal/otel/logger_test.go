package otel

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func TestEmitWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindFetchItem, Level: LevelInfo, Comp: "controller", StoryID: 8863})
	l.Close()

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["kind"] != "fetch.item" {
		t.Errorf("kind = %v, want fetch.item", lines[0]["kind"])
	}
	if lines[0]["story_id"] != float64(8863) {
		t.Errorf("story_id = %v, want 8863", lines[0]["story_id"])
	}
	if lines[0]["comp"] != "controller" {
		t.Errorf("comp = %v, want controller", lines[0]["comp"])
	}
}

func TestEmitSetsTimeAndSession(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	before := time.Now()
	l.Emit(Event{Kind: KindStartup})
	l.Close()

	var ev Event
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Time.Before(before) {
		t.Errorf("time %v before emit", ev.Time)
	}
	if ev.SessionID != l.SessionID() || len(ev.SessionID) != 16 {
		t.Errorf("session_id = %q, want 16 hex chars matching %q", ev.SessionID, l.SessionID())
	}
}

func TestDurationInMilliseconds(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindFetchTop, Dur: 250 * time.Millisecond})
	l.Close()

	lines := decodeLines(t, &buf)
	if got := lines[0]["dur_ms"]; got != float64(250) {
		t.Errorf("dur_ms = %v, want 250", got)
	}
}

func TestEmptyFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindShutdown})
	l.Close()

	line := buf.String()
	for _, field := range []string{"dur_ms", "count", "action", "story_id", "url", "err", "msg"} {
		if strings.Contains(line, `"`+field+`"`) {
			t.Errorf("field %q should be omitted: %s", field, line)
		}
	}
}

func TestConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Emit(Event{Kind: KindActionDispatch, Action: "requestStories"})
		}()
	}
	wg.Wait()
	l.Close()

	if lines := decodeLines(t, &buf); len(lines) != 50 {
		t.Errorf("expected 50 lines, got %d", len(lines))
	}
}

func TestEmitAfterCloseIsDropped(t *testing.T) {
	l := NewNullLogger()
	l.Close()
	l.Emit(Event{Kind: KindStartup})

	if l.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", l.Dropped())
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestNilLoggerEmit(t *testing.T) {
	var l *Logger
	l.Emit(Event{Kind: KindStartup})
}

func TestQueueFullDrops(t *testing.T) {
	bw := &blockingWriter{started: make(chan struct{}), block: make(chan struct{})}
	l := NewLogger(bw)

	l.Emit(Event{Kind: KindFetchItem})
	<-bw.started

	for range queueSize + 5 {
		l.Emit(Event{Kind: KindFetchItem})
	}
	if l.Dropped() == 0 {
		t.Error("expected drops once the queue is full")
	}

	close(bw.block)
	l.Close()
}

type blockingWriter struct {
	started chan struct{}
	block   chan struct{}
	once    sync.Once
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	w.once.Do(func() {
		close(w.started)
		<-w.block
	})
	return len(p), nil
}

func TestHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info(KindStartup, "main", "starting")
	l.Warn(KindFetchError, "controller", "item 5 gone")
	l.Error(KindStoreError, "controller", errForTest("disk full"))
	l.Error(KindError, "main", nil)
	l.Close()

	lines := decodeLines(t, &buf)
	want := []struct{ level, kind string }{
		{"info", "sys.startup"},
		{"warn", "fetch.error"},
		{"error", "store.error"},
		{"error", "sys.error"},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i]["level"] != w.level || lines[i]["kind"] != w.kind {
			t.Errorf("line %d = %v/%v, want %s/%s", i, lines[i]["level"], lines[i]["kind"], w.level, w.kind)
		}
	}
	if lines[2]["err"] != "disk full" {
		t.Errorf("err = %v, want disk full", lines[2]["err"])
	}
}

type errForTest string

func (e errForTest) Error() string { return string(e) }

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.jsonl")

	for i := range 2 {
		l, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile #%d: %v", i, err)
		}
		l.Info(KindStartup, "main", "run")
		if err := l.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("expected 2 lines across runs, got %d", n)
	}
}

func TestSummary(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 30, 5, 0, time.UTC)

	if got := (Event{Time: at, Kind: KindActionDispatch, Action: "switchTab"}).Summary(); got != "09:30:05 action.dispatch switchTab" {
		t.Errorf("Summary = %q", got)
	}
	if got := (Event{Time: at, Kind: KindFetchError, Err: "HTTP 500"}).Summary(); got != "09:30:05 fetch.error err=HTTP 500" {
		t.Errorf("Summary = %q", got)
	}
}
