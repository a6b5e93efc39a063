package emulator

import (
	"path/filepath"
	"regexp"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// NoCash is no$gmb. It keeps its settings in NO$GMB.INI.
type NoCash struct{ *base }

func NewNoCash(env Env) *NoCash {
	e := &NoCash{}
	e.base = newBase(env, profile{
		name:         "no$gmb",
		url:          "https://problemkaputt.de/gmb.htm",
		download:     "https://problemkaputt.de/nogmb.zip",
		exe:          "NO$GMB.EXE",
		features:     []types.Feature{types.FeatureCGB, types.FeatureSGB},
		models:       types.Models,
		matcher:      window.Matcher{TitleRE: nocashTitle},
		startupDelay: 500 * ms,
	}, e)
	return e
}

var nocashTitle = regexp.MustCompile(`(?i)^no\$gmb`)

var nocashSystems = map[types.Model]string{
	types.DMG: "Gameboy",
	types.CGB: "Gameboy Color",
	types.SGB: "Super Gameboy",
}

func (e *NoCash) prepare(rom string, model types.Model) (string, error) {
	exe, _ := e.locate()
	return rom, setINI(filepath.Join(filepath.Dir(exe), "NO$GMB.INI"), "", map[string]string{
		"GB System Type":  nocashSystems[model],
		"Emulation Speed": "Normal",
	})
}
