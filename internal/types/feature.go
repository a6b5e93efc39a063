package types

import (
	"sort"
	"strings"
)

// Feature is a capability tag used to gate which tests
// apply to which emulator.
type Feature string

const (
	// FeatureCGB - emulates the Game Boy Colour.
	FeatureCGB Feature = "CGB"
	// FeatureSGB - emulates the Super Game Boy, border included.
	FeatureSGB Feature = "SGB"
	// FeaturePCM - exposes the undocumented PCM12/PCM34 registers.
	FeaturePCM Feature = "PCM"
	// FeatureIR - emulates the CGB infrared port.
	FeatureIR Feature = "IR"
)

// FeatureSet is an unordered set of features.
type FeatureSet map[Feature]struct{}

// NewFeatureSet returns a set holding fs.
func NewFeatureSet(fs ...Feature) FeatureSet {
	set := make(FeatureSet, len(fs))
	for _, f := range fs {
		if f == "" {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

func (s FeatureSet) Has(f Feature) bool {
	_, ok := s[f]
	return ok
}

// Missing returns the features of required not present in s,
// sorted so log output is stable.
func (s FeatureSet) Missing(required FeatureSet) []Feature {
	var missing []Feature
	for f := range required {
		if !s.Has(f) {
			missing = append(missing, f)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// Sorted returns the features in lexical order.
func (s FeatureSet) Sorted() []Feature {
	out := make([]Feature, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s FeatureSet) String() string {
	parts := make([]string, 0, len(s))
	for _, f := range s.Sorted() {
		parts = append(parts, string(f))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
