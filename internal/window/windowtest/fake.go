// Package windowtest provides a scripted window.Controller for
// tests that must not touch the desktop.
package windowtest

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/thelolagemann/shootout/internal/window"
)

// Launch records a call to Fake.Launch.
type Launch struct {
	Exe  string
	Args []string
	Dir  string
}

// Fake is a window.Controller that never touches the desktop.
// The zero value finds a window immediately and captures a nil
// Screen.
type Fake struct {
	// Screen is returned by Capture when Frames is nil.
	Screen image.Image
	// Frames, if set, is called with the capture count (from 0)
	// and its result returned by Capture.
	Frames func(n int) image.Image

	LaunchErr  error
	FindErr    error
	CaptureErr error

	mu         sync.Mutex
	Launched   []Launch
	Keys       []window.Key
	Typed      []string
	Clicks     []image.Point
	Focused    int
	Captures   int
	Terminated int
	pid        int
	exits      map[int]func(error)
}

var _ window.Controller = (*Fake)(nil)

var errKilled = errors.New("windowtest: killed")

func (f *Fake) Launch(exe string, args []string, dir string) (*window.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Launched = append(f.Launched, Launch{Exe: exe, Args: append([]string(nil), args...), Dir: dir})
	if f.LaunchErr != nil {
		return nil, f.LaunchErr
	}

	f.pid++
	p, exit := window.NewProcess(1000+f.pid, nil)
	if f.exits == nil {
		f.exits = make(map[int]func(error))
	}
	f.exits[p.Pid()] = exit
	return p, nil
}

func (f *Fake) FindWindow(p *window.Process, m window.Matcher, timeout time.Duration) (window.Handle, error) {
	if f.FindErr != nil {
		return 0, f.FindErr
	}
	return window.Handle(p.Pid()), nil
}

func (f *Fake) Focus(h window.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Focused++
	return nil
}

func (f *Fake) SendKeys(h window.Handle, keys ...window.Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Keys = append(f.Keys, keys...)
	return nil
}

func (f *Fake) TypeText(h window.Handle, s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Typed = append(f.Typed, s)
	return nil
}

func (f *Fake) Click(h window.Handle, x, y int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Clicks = append(f.Clicks, image.Pt(x, y))
	return nil
}

func (f *Fake) Capture(h window.Handle) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CaptureErr != nil {
		return nil, f.CaptureErr
	}
	n := f.Captures
	f.Captures++
	if f.Frames != nil {
		return f.Frames(n), nil
	}
	return f.Screen, nil
}

func (f *Fake) Terminate(p *window.Process) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Terminated++
	if p == nil {
		return nil
	}
	if exit, ok := f.exits[p.Pid()]; ok {
		exit(errKilled)
	}
	return nil
}
