package emulator

import (
	"path/filepath"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// Emulicious runs on the JVM; its window belongs to a javaw child
// rather than the launched process.
type Emulicious struct{ *base }

func NewEmulicious(env Env) *Emulicious {
	e := &Emulicious{}
	e.base = newBase(env, profile{
		name:         "Emulicious",
		url:          "https://emulicious.net/",
		download:     "https://emulicious.net/Emulicious.zip",
		exe:          "Emulicious.exe",
		features:     []types.Feature{types.FeatureCGB, types.FeatureSGB, types.FeaturePCM},
		models:       types.Models,
		matcher:      window.Matcher{Title: "Emulicious", AnyProcess: true},
		startupDelay: 2000 * ms,
		compensation: 200 * ms,
	}, e)
	return e
}

var emuliciousSystems = map[types.Model]string{
	types.DMG: "GameBoy",
	types.CGB: "GameBoyColor",
	types.SGB: "SuperGameBoy",
}

func (e *Emulicious) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	return rom, setINI(filepath.Join(filepath.Dir(exe), "Emulicious.ini"), "", map[string]string{
		"GameBoyModel":       emuliciousSystems[model],
		"PauseWhenUnfocused": "false",
		"BootRom":            "false",
	})
}
