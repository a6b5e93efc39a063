package emulator

import (
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// BDM has no SGB mode.
type BDM struct{ *base }

func NewBDM(env Env) *BDM {
	e := &BDM{}
	e.base = newBase(env, profile{
		name:         "BDM",
		url:          "https://mattcurrie.com/bdm-demo/",
		download:     "https://mattcurrie.com/bdm-demo/bdm-demo-win64.zip",
		exe:          "bdm.exe",
		features:     []types.Feature{types.FeatureCGB},
		models:       []types.Model{types.DMG, types.CGB},
		matcher:      window.Matcher{Title: "BDM"},
		startupDelay: 300 * ms,
	}, e)
	return e
}

func (e *BDM) args(rom string, model types.Model) ([]string, bool) {
	if !e.supports(model) {
		return nil, false
	}
	return romArgs(rom, "--model", model.Tag()), true
}
