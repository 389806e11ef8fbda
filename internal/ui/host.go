package ui

import (
	"github.com/abelbrown/hnbar/internal/otel"
)

// Browser opens URLs outside the terminal. *shell.Opener is one.
type Browser interface {
	Open(url string) error
}

// host is the view's way out of the app. It is shared by every copy of App.
type host struct {
	browser Browser
	journal *otel.Logger

	quitting bool
	err      error
}

func (h *host) OpenExternal(url string) {
	if h.browser == nil {
		return
	}
	if err := h.browser.Open(url); err != nil {
		h.journal.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindShellError, Comp: "ui", URL: url, Err: err.Error()})
		h.err = err
		return
	}
	h.journal.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShellOpen, Comp: "ui", URL: url})
}

func (h *host) Quit() {
	h.quitting = true
}

// takeErr returns and clears the last open failure.
func (h *host) takeErr() error {
	err := h.err
	h.err = nil
	return err
}
