package emulator

import (
	"os"
	"path/filepath"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// GambatteSpeedrun boots CGB unless DMG mode is forced in its
// settings.
type GambatteSpeedrun struct{ *base }

func NewGambatteSpeedrun(env Env) *GambatteSpeedrun {
	e := &GambatteSpeedrun{}
	e.base = newBase(env, profile{
		name:         "GambatteSpeedrun",
		url:          "https://github.com/pokemon-speedrunning/gambatte-speedrun",
		download:     "https://github.com/pokemon-speedrunning/gambatte-speedrun/releases/download/r717/gambatte-speedrun-r717-win64.zip",
		exe:          "gambatte_speedrun.exe",
		features:     []types.Feature{types.FeatureCGB},
		models:       []types.Model{types.DMG, types.CGB},
		matcher:      window.Matcher{Title: "Gambatte"},
		startupDelay: 500 * ms,
	}, e)
	return e
}

func (e *GambatteSpeedrun) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	dir := filepath.Join(filepath.Dir(exe), "config")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	forceDMG := "false"
	if model == types.DMG {
		forceDMG = "true"
	}
	return rom, setINI(filepath.Join(dir, "gambatte_qt.ini"), "General", map[string]string{
		"forceDmg":         forceDMG,
		"pauseOnFocusLoss": "false",
	})
}
