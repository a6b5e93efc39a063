package emulator

import (
	"path/filepath"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// KiGB shows a splash dialog that must be dismissed before the ROM
// starts.
type KiGB struct{ *base }

func NewKiGB(env Env) *KiGB {
	e := &KiGB{}
	e.base = newBase(env, profile{
		name:     "KiGB",
		url:      "http://kigb.emuunlim.com/",
		download: "http://kigb.emuunlim.com/downloads/kigb_win.zip",
		exe:      "KiGB.exe",
		features: []types.Feature{types.FeatureCGB, types.FeatureSGB},
		models:   types.Models,
		matcher:  window.Matcher{Title: "KiGB"},
		keys: map[types.Button]window.Key{
			types.ButtonA:      "z",
			types.ButtonB:      "x",
			types.ButtonSelect: "shift",
			types.ButtonStart:  "enter",
			types.ButtonRight:  "right",
			types.ButtonLeft:   "left",
			types.ButtonUp:     "up",
			types.ButtonDown:   "down",
		},
		loadKeys:     []window.Key{"enter"},
		startupDelay: 700 * ms,
	}, e)
	return e
}

var kigbModes = map[types.Model]string{
	types.DMG: "GB",
	types.CGB: "GBC",
	types.SGB: "SGB",
}

func (e *KiGB) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	return rom, setINI(filepath.Join(filepath.Dir(exe), "KiGB.cfg"), "", map[string]string{
		"GBType": kigbModes[model],
	})
}
