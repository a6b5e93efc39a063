package emulator

import (
	"path/filepath"
	"strconv"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// vbaEmulatorTypes are the emulatorType values shared by
// VisualBoyAdvance and its -M fork.
var vbaEmulatorTypes = map[types.Model]int{
	types.CGB: 1,
	types.SGB: 2,
	types.DMG: 3,
}

var vbaKeys = map[types.Button]window.Key{
	types.ButtonA:      "z",
	types.ButtonB:      "x",
	types.ButtonSelect: "backspace",
	types.ButtonStart:  "enter",
	types.ButtonRight:  "right",
	types.ButtonLeft:   "left",
	types.ButtonUp:     "up",
	types.ButtonDown:   "down",
}

// VBA is VisualBoyAdvance 1.8.
type VBA struct{ *base }

func NewVBA(env Env) *VBA {
	e := &VBA{}
	e.base = newBase(env, profile{
		name:         "VisualBoyAdvance",
		url:          "http://vba.ngemu.com/",
		download:     "https://sourceforge.net/projects/vba/files/VisualBoyAdvance/1.8.0/VisualBoyAdvance-1.8.0-beta3.zip/download",
		archive:      "VisualBoyAdvance-1.8.0-beta3.zip",
		exe:          "VisualBoyAdvance.exe",
		features:     []types.Feature{types.FeatureCGB, types.FeatureSGB},
		models:       types.Models,
		matcher:      window.Matcher{Title: "VisualBoyAdvance"},
		keys:         vbaKeys,
		startupDelay: 300 * ms,
	}, e)
	return e
}

func (e *VBA) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	return rom, setINI(filepath.Join(filepath.Dir(exe), "vba.ini"), "preferences", map[string]string{
		"emulatorType":      strconv.Itoa(vbaEmulatorTypes[model]),
		"useBios":           "0",
		"pauseWhenInactive": "0",
	})
}

// VBAM is VisualBoyAdvance-M.
type VBAM struct{ *base }

func NewVBAM(env Env) *VBAM {
	e := &VBAM{}
	e.base = newBase(env, profile{
		name:         "VisualBoyAdvance-M",
		url:          "https://vba-m.com/",
		download:     "https://github.com/visualboyadvance-m/visualboyadvance-m/releases/download/v2.1.6/visualboyadvance-m-Win-x86_64.zip",
		exe:          "visualboyadvance-m.exe",
		features:     []types.Feature{types.FeatureCGB, types.FeatureSGB},
		models:       types.Models,
		matcher:      window.Matcher{Title: "VisualBoyAdvance-M"},
		keys:         vbaKeys,
		startupDelay: 500 * ms,
		compensation: 100 * ms,
	}, e)
	return e
}

func (e *VBAM) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	return rom, setINI(filepath.Join(filepath.Dir(exe), "vbam.ini"), "preferences", map[string]string{
		"emulatorType":      strconv.Itoa(vbaEmulatorTypes[model]),
		"gbPaletteOption":   "0",
		"pauseWhenInactive": "0",
	})
}
