// Package window launches emulator processes and drives their
// windows: finding them, focusing them, injecting input and
// capturing their contents.
//
// A Controller takes over the foreground desktop session while it
// works, so it must never be used from more than one goroutine.
package window

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"
	"time"
)

// ErrUnsupportedPlatform is returned by New on platforms without a
// GUI automation backend.
var ErrUnsupportedPlatform = errors.New("window: GUI automation is not supported on this platform")

// Handle identifies a top level window.
type Handle uintptr

// Info describes a top level window.
type Info struct {
	Handle  Handle
	Title   string
	Class   string
	Pid     int
	Visible bool
}

// Key is a key name, optionally combined with modifiers using
// "+", e.g. "enter", "f5" or "ctrl+o".
type Key string

// Controller is the contract the emulator adapters automate
// through.
type Controller interface {
	// Launch starts exe with args in dir.
	Launch(exe string, args []string, dir string) (*Process, error)
	// FindWindow polls until a window matching m appears or
	// timeout elapses, in which case a *NotFoundError is returned.
	FindWindow(p *Process, m Matcher, timeout time.Duration) (Handle, error)
	// Focus restores h and brings it to the foreground.
	Focus(h Handle) error
	// SendKeys taps each key in order.
	SendKeys(h Handle, keys ...Key) error
	// TypeText types s as unicode characters.
	TypeText(h Handle, s string) error
	// Click left clicks at x, y relative to the client area of h.
	Click(h Handle, x, y int) error
	// Capture returns the contents of the client area of h.
	Capture(h Handle) (image.Image, error)
	// Terminate kills p and waits for it to exit.
	Terminate(p *Process) error
}

// Matcher selects a window. Empty fields match anything; a zero
// Matcher matches any visible window of the launched process.
type Matcher struct {
	// Title must be contained in the window title.
	Title string
	// TitleRE, if set, must match the window title.
	TitleRE *regexp.Regexp
	// Class must equal the window class name.
	Class string
	// AnyProcess also matches windows not owned by the launched
	// process, for emulators started through a launcher.
	AnyProcess bool
}

// Match reports whether info is selected by m for a process
// with the given pid.
func (m Matcher) Match(info Info, pid int) bool {
	if !info.Visible {
		return false
	}
	if !m.AnyProcess && pid != 0 && info.Pid != pid {
		return false
	}
	if m.Title != "" && !strings.Contains(info.Title, m.Title) {
		return false
	}
	if m.TitleRE != nil && !m.TitleRE.MatchString(info.Title) {
		return false
	}
	if m.Class != "" && info.Class != m.Class {
		return false
	}
	return true
}

func (m Matcher) String() string {
	var parts []string
	if m.Title != "" {
		parts = append(parts, fmt.Sprintf("title~%q", m.Title))
	}
	if m.TitleRE != nil {
		parts = append(parts, fmt.Sprintf("title=/%s/", m.TitleRE))
	}
	if m.Class != "" {
		parts = append(parts, fmt.Sprintf("class=%q", m.Class))
	}
	if len(parts) == 0 {
		return "any window"
	}
	return strings.Join(parts, " ")
}

// NotFoundError is returned when no window matched before the
// timeout. It is a recoverable failure: the emulator failed to
// start or crashed.
type NotFoundError struct {
	Matcher Matcher
	Timeout time.Duration
	// Exited is set when the process ended while waiting.
	Exited bool
}

func (e *NotFoundError) Error() string {
	if e.Exited {
		return fmt.Sprintf("window: process exited before a window matching %s appeared", e.Matcher)
	}
	return fmt.Sprintf("window: no window matching %s after %s", e.Matcher, e.Timeout)
}

// findWindow is the polling loop shared by the backends.
func findWindow(enum func() ([]Info, error), p *Process, m Matcher, timeout, interval time.Duration) (Handle, error) {
	pid := 0
	if p != nil {
		pid = p.Pid()
	}

	deadline := time.Now().Add(timeout)
	for {
		windows, err := enum()
		if err != nil {
			return 0, err
		}
		for _, w := range windows {
			if m.Match(w, pid) {
				return w.Handle, nil
			}
		}

		if p != nil && p.Exited() && !m.AnyProcess {
			return 0, &NotFoundError{Matcher: m, Timeout: timeout, Exited: true}
		}
		if time.Now().After(deadline) {
			return 0, &NotFoundError{Matcher: m, Timeout: timeout}
		}
		time.Sleep(interval)
	}
}
