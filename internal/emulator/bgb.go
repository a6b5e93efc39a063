package emulator

import (
	"path/filepath"
	"strconv"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// BGB reads its system mode from bgb.ini next to the executable.
type BGB struct{ *base }

func NewBGB(env Env) *BGB {
	e := &BGB{}
	e.base = newBase(env, profile{
		name:     "BGB",
		url:      "https://bgb.bircd.org/",
		download: "https://bgb.bircd.org/bgbw64.zip",
		exe:      "bgb64.exe",
		features: []types.Feature{types.FeatureCGB, types.FeatureSGB, types.FeaturePCM},
		models:   types.Models,
		matcher:  window.Matcher{Title: "bgb", Class: "Tfgb"},
		keys: map[types.Button]window.Key{
			types.ButtonA:      "s",
			types.ButtonB:      "a",
			types.ButtonSelect: "shift",
			types.ButtonStart:  "enter",
			types.ButtonRight:  "right",
			types.ButtonLeft:   "left",
			types.ButtonUp:     "up",
			types.ButtonDown:   "down",
		},
		startupDelay: 300 * ms,
	}, e)
	return e
}

// bgb system modes
var bgbModes = map[types.Model]int{
	types.DMG: 0,
	types.CGB: 1,
	types.SGB: 2,
}

func (e *BGB) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	return rom, setINI(filepath.Join(filepath.Dir(exe), "bgb.ini"), "", map[string]string{
		"SystemMode":   strconv.Itoa(bgbModes[model]),
		"DetectGBA":    "0",
		"PauseOnFocus": "0",
		"Boot":         "0",
	})
}

func (e *BGB) args(rom string, model types.Model) ([]string, bool) {
	if !e.supports(model) {
		return nil, false
	}
	if rom == "" {
		return nil, true
	}
	return []string{"-rom", rom}, true
}
