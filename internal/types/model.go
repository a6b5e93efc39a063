package types

import (
	"strings"
)

type Model int // The hardware Model a test targets.

const (
	Unset Model = iota // Unset - Model hasn't been set - behaves as DMG
	DMG                // DMG - Standard Game Boy
	CGB                // CGB - Game Boy Colour
	SGB                // SGB - Super Game Boy
)

var ModelNames = map[Model]string{
	Unset: "Unset",
	DMG:   "DMG",
	CGB:   "CGB",
	SGB:   "SGB",
}

// Models lists the models in the order they are swept.
var Models = []Model{DMG, CGB, SGB}

// StringToModel converts a string to a Model. "GBC" is
// accepted as an alias of CGB.
func StringToModel(s string) Model {
	s = strings.ToUpper(s)
	if s == "GBC" {
		return CGB
	}
	for m, n := range ModelNames {
		if n == s {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

// Tag is the lowercase short name used in reference image
// filenames, e.g. which.dmg.png.
func (m Model) Tag() string {
	switch m {
	case CGB:
		return "cgb"
	case SGB:
		return "sgb"
	default:
		return "dmg"
	}
}

// Monochrome reports whether the model renders in 4 shades.
func (m Model) Monochrome() bool {
	return m != CGB
}

// Feature returns the feature an emulator needs to run the
// model, or the empty Feature for DMG.
func (m Model) Feature() Feature {
	switch m {
	case CGB:
		return FeatureCGB
	case SGB:
		return FeatureSGB
	}
	return ""
}
