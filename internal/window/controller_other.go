//go:build !windows

package window

import "time"

// New returns the Controller for the current platform. Only the
// Windows desktop can be automated; elsewhere ErrUnsupportedPlatform
// is returned.
func New(interval time.Duration) (Controller, error) {
	return nil, ErrUnsupportedPlatform
}
