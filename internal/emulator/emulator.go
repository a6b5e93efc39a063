// Package emulator wraps third party Game Boy emulators behind a
// single contract, so every one of them can be set up, fed a test
// ROM and screenshotted the same way.
package emulator

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/thelolagemann/shootout/internal/config"
	"github.com/thelolagemann/shootout/internal/imgcmp"
	"github.com/thelolagemann/shootout/internal/testroms"
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
	"github.com/thelolagemann/shootout/pkg/log"
)

var (
	// ErrUnsupportedModel is returned when an emulator cannot be
	// started as the requested hardware model.
	ErrUnsupportedModel = errors.New("emulator: model not supported")
	// ErrExecutableMissing is returned by Setup when the emulator
	// binary cannot be found after installation.
	ErrExecutableMissing = errors.New("emulator: executable not found")
	// ErrROMMissing is returned by Run when the test ROM is not
	// present in the ROM directory.
	ErrROMMissing = errors.New("emulator: test ROM not found")
)

// Emulator is the uniform control contract every adapter
// implements.
type Emulator interface {
	fmt.Stringer
	// Setup prepares the emulator for use, downloading and
	// extracting its release if needed. Calling it again returns
	// the first result.
	Setup() error
	// Run executes test and judges the screenshot. A mismatch is a
	// FAIL Result, not an error; errors mean the emulator itself
	// failed to run.
	Run(test *testroms.Test) (*Result, error)
	// MeasureStartupTime boots the emulator as model and returns the
	// time until the screen settled along with that screen.
	// ErrUnsupportedModel is returned for models it cannot run.
	MeasureStartupTime(model types.Model) (time.Duration, image.Image, error)
	// RunTimeFor measures how long test takes to reach its final
	// screen, falling back to the declared runtime.
	RunTimeFor(test *testroms.Test) (time.Duration, error)
	// JSONFilename is the results file written for the emulator.
	JSONFilename() string
	Features() types.FeatureSet
	URL() string
}

// Result is the outcome of running one test on one emulator.
type Result struct {
	Verdict types.Verdict
	// StartupTime is the time from launch until the window appeared.
	StartupTime time.Duration
	// RunTime is the time from the window appearing until capture.
	RunTime time.Duration
	// Screenshot is the normalised capture the verdict is based on.
	Screenshot image.Image
}

// Env bundles the dependencies shared by every adapter.
type Env struct {
	Controller window.Controller
	Comparator *imgcmp.Comparator
	References *imgcmp.References
	Log        log.Logger
	Config     config.Config
	HTTP       *http.Client
}

// NewEnv builds an Env from cfg.
func NewEnv(cfg config.Config, c window.Controller, l log.Logger) Env {
	return Env{
		Controller: c,
		Comparator: imgcmp.NewComparator(imgcmp.Tolerance{
			Pixels:  cfg.TolerancePixels,
			Channel: cfg.ToleranceChannel,
		}),
		References: imgcmp.NewReferences(64),
		Log:        l,
		Config:     cfg,
		HTTP:       &http.Client{Timeout: cfg.DownloadTimeout},
	}
}

// Default returns the emulators measured by a normal run, in the
// order they are run.
func Default(env Env) []Emulator {
	return []Emulator{
		NewBDM(env),
		NewMGBA(env),
		NewKiGB(env),
		NewSameBoy(env),
		NewBGB(env),
		NewVBA(env),
		NewVBAM(env),
		NewNoCash(env),
		NewGambatteSpeedrun(env),
		NewEmulicious(env),
		NewGoomba(env),
		NewBinjgb(env),
		NewPyBoy(env),
	}
}

// All returns Default plus the adapters left out of normal runs
// because the emulator is too unstable to automate.
func All(env Env) []Emulator {
	return append(Default(env), NewHigan(env))
}
