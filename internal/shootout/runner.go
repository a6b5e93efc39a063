// Package shootout runs every selected test on every selected
// emulator and writes out what happened.
package shootout

import (
	"errors"
	"time"

	"github.com/spf13/afero"

	"github.com/thelolagemann/shootout/internal/emulator"
	"github.com/thelolagemann/shootout/internal/testroms"
	"github.com/thelolagemann/shootout/pkg/log"
)

// Runner drives the emulator x test matrix. It is not safe for
// concurrent use; the emulators share the desktop.
type Runner struct {
	Emulators []emulator.Emulator
	Tests     []*testroms.Test
	Log       log.Logger
	// Fs receives results, reports and dumps below OutDir.
	Fs     afero.Fs
	OutDir string
	// Events, if set, is sent progress events.
	Events EventSink

	now func() time.Time
}

// NewRunner returns a Runner writing to the current directory of
// the OS filesystem.
func NewRunner(emus []emulator.Emulator, tests []*testroms.Test, l log.Logger) *Runner {
	return &Runner{
		Emulators: emus,
		Tests:     tests,
		Log:       l,
		Fs:        afero.NewOsFs(),
		OutDir:    ".",
		now:       time.Now,
	}
}

func (r *Runner) publish(e Event) {
	if r.Events == nil {
		return
	}
	e.Time = r.now()
	r.Events.Publish(e)
}

// supported reports whether emu has every feature test needs,
// logging a skip line per missing feature if not.
func (r *Runner) supported(emu emulator.Emulator, test *testroms.Test) bool {
	missing := emu.Features().Missing(test.RequiredFeatures())
	for _, f := range missing {
		r.Log.Infof("Skipping %s on %s because of missing feature %s", test, emu, f)
	}
	if len(missing) > 0 {
		r.publish(Event{Type: TestSkipped, Emulator: emu.String(), Test: test.Name(), Message: "missing features"})
		return false
	}
	return true
}

// skippable reports whether err only concerns the current test.
func skippable(err error) bool {
	return errors.Is(err, emulator.ErrUnsupportedModel) || errors.Is(err, emulator.ErrROMMissing)
}

func (r *Runner) failed(emu emulator.Emulator, err error) {
	r.Log.Errorf("Emulator %s failed to run properly: %+v", emu, err)
	r.publish(Event{Type: EmulatorFailed, Emulator: emu.String(), Message: err.Error()})
}

// Run runs the matrix. An emulator that fails to set up, or fails
// for a reason other than the test at hand, is abandoned and the
// run carries on with the next one.
func (r *Runner) Run() Results {
	results := make(Results, 0, len(r.Emulators))
	for _, emu := range r.Emulators {
		results = append(results, r.runEmulator(emu))
	}
	r.publish(Event{Type: RunFinished})
	return results
}

func (r *Runner) runEmulator(emu emulator.Emulator) *EmulatorResults {
	er := &EmulatorResults{
		Emulator: emu,
		Date:     r.now(),
		Tests:    make(map[string]*emulator.Result),
	}
	r.publish(Event{Type: EmulatorStarted, Emulator: emu.String()})
	if err := emu.Setup(); err != nil {
		r.failed(emu, err)
		return er
	}

	for _, test := range r.Tests {
		if !r.supported(emu, test) {
			continue
		}
		res, err := emu.Run(test)
		if err != nil {
			if skippable(err) {
				r.Log.Warnf("Skipping %s on %s: %v", test, emu, err)
				r.publish(Event{Type: TestSkipped, Emulator: emu.String(), Test: test.Name(), Message: err.Error()})
				continue
			}
			r.failed(emu, err)
			return er
		}
		er.Tests[test.Name()] = res
		er.order = append(er.order, test.Name())
		r.Log.Infof("%s: %s: %s", emu, test, res.Verdict)
		r.publish(Event{Type: TestFinished, Emulator: emu.String(), Test: test.Name(), Verdict: res.Verdict.String()})
	}
	return er
}
