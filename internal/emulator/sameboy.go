package emulator

import (
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// SameBoy selects the model on the command line.
type SameBoy struct{ *base }

func NewSameBoy(env Env) *SameBoy {
	e := &SameBoy{}
	e.base = newBase(env, profile{
		name:         "SameBoy",
		url:          "https://sameboy.github.io/",
		download:     "https://github.com/LIJI32/SameBoy/releases/download/v0.15.8/sameboy_winsdl_v0.15.8.zip",
		exe:          "sameboy.exe",
		features:     []types.Feature{types.FeatureCGB, types.FeatureSGB, types.FeaturePCM, types.FeatureIR},
		models:       types.Models,
		matcher:      window.Matcher{Title: "SameBoy"},
		startupDelay: 300 * ms,
	}, e)
	return e
}

func (e *SameBoy) args(rom string, model types.Model) ([]string, bool) {
	if !e.supports(model) {
		return nil, false
	}
	return romArgs(rom, "--model", model.Tag()), true
}
