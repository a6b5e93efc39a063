package window_test

import (
	"errors"
	"image"
	"image/color"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/shootout/internal/window"
	"github.com/thelolagemann/shootout/internal/window/windowtest"
)

func TestMatcher(t *testing.T) {
	sameboy := window.Info{Handle: 1, Title: "SameBoy v0.15.8", Class: "SDL_app", Pid: 42, Visible: true}

	tests := []struct {
		name string
		m    window.Matcher
		info window.Info
		pid  int
		want bool
	}{
		{"zero matcher", window.Matcher{}, sameboy, 42, true},
		{"title substring", window.Matcher{Title: "SameBoy"}, sameboy, 42, true},
		{"title mismatch", window.Matcher{Title: "bgb"}, sameboy, 42, false},
		{"title regexp", window.Matcher{TitleRE: regexp.MustCompile(`^SameBoy v\d`)}, sameboy, 42, true},
		{"class", window.Matcher{Class: "SDL_app"}, sameboy, 42, true},
		{"class mismatch", window.Matcher{Class: "Qt5QWindowIcon"}, sameboy, 42, false},
		{"other process", window.Matcher{Title: "SameBoy"}, sameboy, 7, false},
		{"any process", window.Matcher{Title: "SameBoy", AnyProcess: true}, sameboy, 7, true},
		{"hidden", window.Matcher{}, window.Info{Title: "SameBoy", Pid: 42}, 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.m.Match(tt.info, tt.pid))
		})
	}
}

func TestNotFoundError(t *testing.T) {
	var err error = &window.NotFoundError{Matcher: window.Matcher{Title: "bgb"}, Timeout: time.Second}
	require.Contains(t, err.Error(), `title~"bgb"`)
	require.Contains(t, err.Error(), "1s")

	var nf *window.NotFoundError
	require.True(t, errors.As(err, &nf))

	err = &window.NotFoundError{Exited: true}
	require.Contains(t, err.Error(), "exited")
}

func frame(c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestWaitStable(t *testing.T) {
	opts := window.StableOptions{Interval: time.Millisecond, For: 5 * time.Millisecond, Timeout: time.Second}

	t.Run("settles", func(t *testing.T) {
		f := &windowtest.Fake{Frames: func(n int) image.Image {
			if n < 3 {
				return frame(color.Gray{Y: uint8(n * 40)})
			}
			return frame(color.Black)
		}}
		img, _, err := window.WaitStable(f, 1, opts)
		require.NoError(t, err)
		r, g, b, _ := img.At(0, 0).RGBA()
		require.Zero(t, r+g+b)
		require.GreaterOrEqual(t, f.Captures, 4)
	})

	t.Run("ignored frames", func(t *testing.T) {
		f := &windowtest.Fake{Frames: func(n int) image.Image {
			if n < 10 {
				return frame(color.White)
			}
			return frame(color.Black)
		}}
		o := opts
		o.Ignore = func(img image.Image) bool {
			r, _, _, _ := img.At(0, 0).RGBA()
			return r == 0xFFFF
		}
		_, _, err := window.WaitStable(f, 1, o)
		require.NoError(t, err)
		require.Greater(t, f.Captures, 10)
	})

	t.Run("never settles", func(t *testing.T) {
		f := &windowtest.Fake{Frames: func(n int) image.Image {
			return frame(color.Gray{Y: uint8(n)})
		}}
		o := opts
		o.Timeout = 20 * time.Millisecond
		_, _, err := window.WaitStable(f, 1, o)
		require.ErrorIs(t, err, window.ErrNotStable)
	})

	t.Run("capture error", func(t *testing.T) {
		f := &windowtest.Fake{CaptureErr: errors.New("window gone")}
		_, _, err := window.WaitStable(f, 1, opts)
		require.EqualError(t, err, "window gone")
	})
}

func TestProcess(t *testing.T) {
	p, exit := window.NewProcess(99, nil)
	require.Equal(t, 99, p.Pid())
	require.False(t, p.Exited())

	exit(errors.New("crashed"))
	exit(nil) // second call ignored
	require.True(t, p.Exited())
	require.EqualError(t, p.Err(), "crashed")
}

func TestNewOnUnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows has a backend")
	}
	_, err := window.New(time.Millisecond)
	require.ErrorIs(t, err, window.ErrUnsupportedPlatform)
}

func TestFakeProcessLifecycle(t *testing.T) {
	f := &windowtest.Fake{}
	p, err := f.Launch("bgb.exe", []string{"-rom", "which.gb"}, "downloads/bgb")
	require.NoError(t, err)

	h, err := f.FindWindow(p, window.Matcher{}, time.Second)
	require.NoError(t, err)
	require.NotZero(t, h)

	require.NoError(t, f.Terminate(p))
	require.True(t, p.Exited())
	require.Equal(t, 1, f.Terminated)
	require.Equal(t, []string{"-rom", "which.gb"}, f.Launched[0].Args)
}
