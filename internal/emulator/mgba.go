package emulator

import (
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// MGBA overrides its configuration per launch with -C.
type MGBA struct{ *base }

func NewMGBA(env Env) *MGBA {
	e := &MGBA{}
	e.base = newBase(env, profile{
		name:         "mGBA",
		url:          "https://mgba.io/",
		download:     "https://github.com/mgba-emu/mgba/releases/download/0.10.2/mGBA-0.10.2-win64.7z",
		exe:          "mGBA-0.10.2-win64/mGBA.exe",
		features:     []types.Feature{types.FeatureCGB, types.FeatureSGB},
		models:       types.Models,
		matcher:      window.Matcher{Title: "mGBA"},
		startupDelay: 500 * ms,
	}, e)
	return e
}

var mgbaModels = map[types.Model]string{
	types.DMG: "DMG",
	types.CGB: "CGB",
	types.SGB: "SGB",
}

func (e *MGBA) args(rom string, model types.Model) ([]string, bool) {
	name, ok := mgbaModels[model]
	if !ok {
		return nil, false
	}
	return romArgs(rom,
		"-C", "gb.model="+name,
		"-C", "useBios=0",
		"-C", "pauseOnFocusLost=0",
	), true
}
