package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestFileName(t *testing.T) {
	day := time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	if got := FileName(day); got != "hnbar-2024-02-29.log" {
		t.Errorf("FileName = %q", got)
	}
}

func TestInitWritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(dir, "info"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	WithPrefix("test").Info("hello", "story", 42)
	WithPrefix("test").Debug("hidden")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, FileName(time.Now())))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "story=42") {
		t.Errorf("log missing entry: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init(t.TempDir(), "chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel)
	l.Info("quiet")
	l.Warn("loud")

	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
