// Package shell opens URLs with the system browser.
package shell

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedURL is returned for anything that is not an http(s) URL.
var ErrUnsupportedURL = errors.New("shell: only http and https URLs can be opened")

// Opener launches a browser for a URL without waiting for it.
type Opener struct {
	// Command overrides the platform default. The URL is appended as the
	// last argument.
	Command []string

	goos  string
	start func(name string, args ...string) error
}

// NewOpener returns an Opener using command, or the platform default when
// command is empty.
func NewOpener(command []string) *Opener {
	return &Opener{Command: command, goos: runtime.GOOS, start: startDetached}
}

// Open validates raw and hands it to the browser.
func (o *Opener) Open(raw string) error {
	if err := Validate(raw); err != nil {
		return err
	}
	name, args := o.argv(raw)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", raw, err)
	}
	return nil
}

// Validate reports whether raw is an absolute http or https URL.
func Validate(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	return nil
}

func (o *Opener) argv(raw string) (string, []string) {
	if len(o.Command) > 0 {
		args := append([]string{}, o.Command[1:]...)
		return o.Command[0], append(args, raw)
	}
	switch o.goos {
	case "darwin":
		return "open", []string{raw}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", raw}
	default:
		return "xdg-open", []string{raw}
	}
}

// startDetached starts the command and reaps it in the background so the
// TUI never blocks on the browser.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
