package window

import (
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLauncher(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	var l launcher
	p, err := l.Launch(sleep, []string{"30"}, t.TempDir())
	require.NoError(t, err)
	require.False(t, p.Exited())

	require.NoError(t, l.Terminate(p))
	require.True(t, p.Exited())
	require.Error(t, p.Err())

	// terminating twice is a no-op
	require.NoError(t, l.Terminate(p))
}

func TestLaunchMissingExecutable(t *testing.T) {
	var l launcher
	_, err := l.Launch("/definitely/not/here.exe", nil, "")
	require.Error(t, err)
}

func TestFindWindow(t *testing.T) {
	emu := Info{Handle: 7, Title: "bgb", Pid: 1001, Visible: true}

	t.Run("appears after polls", func(t *testing.T) {
		calls := 0
		enum := func() ([]Info, error) {
			calls++
			if calls < 3 {
				return nil, nil
			}
			return []Info{{Handle: 3, Title: "Explorer", Visible: true, Pid: 4}, emu}, nil
		}
		p, _ := NewProcess(1001, nil)
		h, err := findWindow(enum, p, Matcher{Title: "bgb"}, time.Second, time.Millisecond)
		require.NoError(t, err)
		require.Equal(t, Handle(7), h)
		require.Equal(t, 3, calls)
	})

	t.Run("timeout", func(t *testing.T) {
		enum := func() ([]Info, error) { return nil, nil }
		p, _ := NewProcess(1001, nil)
		_, err := findWindow(enum, p, Matcher{Title: "bgb"}, 10*time.Millisecond, time.Millisecond)

		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		require.False(t, nf.Exited)
	})

	t.Run("process exited", func(t *testing.T) {
		enum := func() ([]Info, error) { return nil, nil }
		p, exit := NewProcess(1001, nil)
		exit(errors.New("exit status 1"))
		_, err := findWindow(enum, p, Matcher{}, time.Minute, time.Millisecond)

		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		require.True(t, nf.Exited)
	})

	t.Run("enumeration error", func(t *testing.T) {
		enum := func() ([]Info, error) { return nil, errors.New("access denied") }
		_, err := findWindow(enum, nil, Matcher{}, time.Second, time.Millisecond)
		require.EqualError(t, err, "access denied")
	})
}
