package window

import (
	"fmt"
	"image"
	"time"

	"github.com/thelolagemann/shootout/internal/imgcmp"
)

// StableOptions controls WaitStable.
type StableOptions struct {
	// Interval between captures.
	Interval time.Duration
	// For is how long the frame must stay unchanged.
	For time.Duration
	// Timeout bounds the whole wait.
	Timeout time.Duration
	// Ignore, if set, rejects frames that must not count as
	// stable, such as a blank white screen before boot.
	Ignore func(image.Image) bool
}

// ErrNotStable is wrapped by WaitStable when the timeout elapses
// before the frame settles.
var ErrNotStable = fmt.Errorf("window: frame did not settle")

// WaitStable captures h until its contents stay unchanged for
// opts.For. It returns the stable frame and the time elapsed since
// the call until the frame first appeared.
func WaitStable(c Controller, h Handle, opts StableOptions) (image.Image, time.Duration, error) {
	start := time.Now()
	deadline := start.Add(opts.Timeout)

	var (
		last     uint64
		lastImg  image.Image
		since    time.Time
		haveLast bool
	)
	for {
		img, err := c.Capture(h)
		if err != nil {
			return nil, 0, err
		}
		now := time.Now()

		if opts.Ignore != nil && opts.Ignore(img) {
			haveLast = false
		} else if sum := imgcmp.Hash(img); haveLast && sum == last {
			if now.Sub(since) >= opts.For {
				return lastImg, since.Sub(start), nil
			}
		} else {
			last, lastImg, since, haveLast = sum, img, now, true
		}

		if now.After(deadline) {
			return lastImg, 0, fmt.Errorf("%w after %s", ErrNotStable, opts.Timeout)
		}
		time.Sleep(opts.Interval)
	}
}
