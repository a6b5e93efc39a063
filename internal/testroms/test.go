// Package testroms is the catalog of test ROMs every emulator is
// measured against, grouped by the suite that authored them.
package testroms

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/thelolagemann/shootout/internal/types"
)

// Input is a button press sent At a time after the emulator
// window appeared.
type Input struct {
	Button types.Button
	At     time.Duration
}

// Test is a single test ROM run on a single model. Tests are
// immutable once the catalog is built.
type Test struct {
	name        string
	suite       string
	rom         string
	model       types.Model
	runtime     time.Duration
	description string
	url         string
	features    types.FeatureSet
	reference   string
	inputs      []Input
}

type testOption func(*Test)

// withRuntime sets the emulated seconds to wait before capture.
func withRuntime(secs float64) testOption {
	return func(t *Test) {
		t.runtime = time.Duration(secs * float64(time.Second))
	}
}

func asModel(model types.Model) testOption {
	return func(t *Test) {
		t.model = model
	}
}

func withROM(rom string) testOption {
	return func(t *Test) {
		t.rom = rom
	}
}

func withDescription(description string) testOption {
	return func(t *Test) {
		t.description = description
	}
}

func withURL(url string) testOption {
	return func(t *Test) {
		t.url = url
	}
}

func requires(features ...types.Feature) testOption {
	return func(t *Test) {
		for _, f := range features {
			t.features[f] = struct{}{}
		}
	}
}

// withReference sets the reference image path prefix, without
// model tag or extension, shared by suites with a common pass
// screen.
func withReference(prefix string) testOption {
	return func(t *Test) {
		t.reference = prefix
	}
}

func withInputs(inputs ...Input) testOption {
	return func(t *Test) {
		t.inputs = append(t.inputs, inputs...)
	}
}

const defaultRuntime = 2 * time.Second

func newTest(suite, name string, opts ...testOption) *Test {
	t := &Test{
		name:     name,
		suite:    suite,
		rom:      name,
		model:    types.DMG,
		runtime:  defaultRuntime,
		features: types.NewFeatureSet(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if f := t.model.Feature(); f != "" {
		t.features[f] = struct{}{}
	}
	return t
}

// forModels returns a test per model, named "<rom> (<model>)".
// CGB variants are tagged GBC, as the emulators' own menus call it.
func forModels(suite, rom string, models []types.Model, opts ...testOption) []*Test {
	tests := make([]*Test, 0, len(models))
	for _, m := range models {
		tag := m.String()
		if m == types.CGB {
			tag = "GBC"
		}
		o := append([]testOption{withROM(rom), asModel(m)}, opts...)
		tests = append(tests, newTest(suite, rom+" ("+tag+")", o...))
	}
	return tests
}

func (t *Test) String() string         { return t.name }
func (t *Test) Name() string           { return t.name }
func (t *Test) Suite() string          { return t.suite }
func (t *Test) ROM() string            { return t.rom }
func (t *Test) Model() types.Model     { return t.model }
func (t *Test) Runtime() time.Duration { return t.runtime }
func (t *Test) Description() string    { return t.description }
func (t *Test) URL() string            { return t.url }

// Inputs returns a copy of the scripted button presses.
func (t *Test) Inputs() []Input {
	return append([]Input(nil), t.inputs...)
}

// RequiredFeatures returns the features an emulator needs to run
// the test, including the one implied by its model.
func (t *Test) RequiredFeatures() types.FeatureSet {
	out := make(types.FeatureSet, len(t.features))
	for f := range t.features {
		out[f] = struct{}{}
	}
	return out
}

// ReferenceCandidates lists the reference image paths for the
// test, relative to the ROM directory, most specific first.
func (t *Test) ReferenceCandidates() []string {
	base := t.reference
	if base == "" {
		base = strings.TrimSuffix(t.rom, path.Ext(t.rom))
	}
	return []string{
		base + "." + t.model.Tag() + ".png",
		base + ".png",
	}
}

// FindReference returns the first reference image that exists
// below romDir, or the empty string.
func (t *Test) FindReference(romDir string) string {
	for _, c := range t.ReferenceCandidates() {
		p := filepath.Join(romDir, filepath.FromSlash(c))
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
