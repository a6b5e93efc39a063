package emulator

import (
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// Binjgb runs in CGB mode unless told otherwise.
type Binjgb struct{ *base }

func NewBinjgb(env Env) *Binjgb {
	e := &Binjgb{}
	e.base = newBase(env, profile{
		name:         "Binjgb",
		url:          "https://github.com/binji/binjgb",
		download:     "https://github.com/binji/binjgb/releases/download/v0.1.11/binjgb-v0.1.11-win64.zip",
		exe:          "binjgb-v0.1.11/bin/binjgb.exe",
		features:     []types.Feature{types.FeatureCGB},
		models:       []types.Model{types.DMG, types.CGB},
		matcher:      window.Matcher{Title: "binjgb"},
		startupDelay: 200 * ms,
	}, e)
	return e
}

func (e *Binjgb) args(rom string, model types.Model) ([]string, bool) {
	switch model {
	case types.DMG:
		return romArgs(rom, "--force-dmg"), true
	case types.CGB:
		return romArgs(rom), true
	}
	return nil, false
}
