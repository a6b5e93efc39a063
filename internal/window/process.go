package window

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Process is a launched emulator.
type Process struct {
	pid  int
	kill func() error
	done chan struct{}

	once sync.Once
	mu   sync.Mutex
	err  error
}

// NewProcess wraps a process started outside of Launch. kill is
// called by Terminate; the returned function must be called once
// the process has exited.
func NewProcess(pid int, kill func() error) (*Process, func(error)) {
	p := &Process{pid: pid, kill: kill, done: make(chan struct{})}
	return p, p.exit
}

func (p *Process) exit(err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.pid
}

// Exited reports whether the process has ended.
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Err returns the exit error once the process has ended.
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// launcher implements the process half of Controller and is
// embedded by the platform backends.
type launcher struct {
	// KillTimeout bounds the wait after a kill.
	KillTimeout time.Duration
}

func (launcher) Launch(exe string, args []string, dir string) (*Process, error) {
	if _, err := os.Stat(exe); err != nil {
		return nil, fmt.Errorf("window: launching %s: %w", exe, err)
	}

	cmd := exec.Command(exe, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("window: launching %s: %w", exe, err)
	}

	p, exit := NewProcess(cmd.Process.Pid, cmd.Process.Kill)
	go func() {
		exit(cmd.Wait())
	}()
	return p, nil
}

func (l launcher) Terminate(p *Process) error {
	if p == nil || p.Exited() {
		return nil
	}
	if p.kill != nil {
		if err := p.kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("window: killing pid %d: %w", p.Pid(), err)
		}
	}

	timeout := l.KillTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	select {
	case <-p.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("window: pid %d did not exit within %s", p.Pid(), timeout)
	}
}
