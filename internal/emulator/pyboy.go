package emulator

import (
	"fmt"
	"os/exec"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// PyBoy is installed with pip rather than downloaded; it runs as
// a module of the python on PATH.
type PyBoy struct{ *base }

func NewPyBoy(env Env) *PyBoy {
	e := &PyBoy{}
	e.base = newBase(env, profile{
		name:         "PyBoy",
		url:          "https://github.com/Baekalfen/PyBoy",
		features:     []types.Feature{types.FeatureCGB},
		models:       []types.Model{types.DMG, types.CGB},
		matcher:      window.Matcher{Title: "PyBoy"},
		startupDelay: 1500 * ms,
	}, e)
	return e
}

func (e *PyBoy) locate() (string, error) {
	for _, name := range []string{"python", "python3", "py"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: python", ErrExecutableMissing)
}

func (e *PyBoy) args(rom string, model types.Model) ([]string, bool) {
	switch model {
	case types.DMG:
		return romArgs(rom, "-m", "pyboy"), true
	case types.CGB:
		return romArgs(rom, "-m", "pyboy", "--cgb"), true
	}
	return nil, false
}
