package emulator

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/thelolagemann/shootout/internal/archive"
	"github.com/thelolagemann/shootout/internal/imgcmp"
	"github.com/thelolagemann/shootout/internal/testroms"
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
	"go.uber.org/multierr"
)

// StartupROM is booted by MeasureStartupTime when it is present in
// the ROM directory, so every emulator measures the same workload.
const StartupROM = "startup.gb"

const ms = time.Millisecond

// profile holds the static description of an emulator.
type profile struct {
	name     string
	url      string
	download string
	// archive names the downloaded file when download does not end
	// in one.
	archive string
	// exe is the executable path relative to the install directory.
	exe      string
	features []types.Feature
	// models lists the models the default args support.
	models  []types.Model
	matcher window.Matcher
	keys    map[types.Button]window.Key
	// loadKeys are tapped once the window has appeared, e.g. to
	// dismiss a splash dialog.
	loadKeys []window.Key
	// startupDelay is waited after the window appears before the
	// test runtime starts counting.
	startupDelay time.Duration
	// compensation is added to every test runtime.
	compensation time.Duration
}

// quirks are the per emulator hooks base calls into. base provides
// defaults, so variants only override what they need.
type quirks interface {
	// locate returns the executable to launch.
	locate() (string, error)
	// prepare writes emulator configuration for model and returns
	// the ROM path to launch, which may differ from rom. rom is
	// empty for a blank boot.
	prepare(rom string, model types.Model) (string, error)
	// args returns the command line for rom on model, reporting
	// false if the emulator cannot run model.
	args(rom string, model types.Model) ([]string, bool)
	// screen reduces a window capture to the Game Boy screen.
	screen(img image.Image) image.Image
}

var defaultKeys = map[types.Button]window.Key{
	types.ButtonA:      "x",
	types.ButtonB:      "z",
	types.ButtonSelect: "backspace",
	types.ButtonStart:  "enter",
	types.ButtonRight:  "right",
	types.ButtonLeft:   "left",
	types.ButtonUp:     "up",
	types.ButtonDown:   "down",
}

type base struct {
	Env
	profile
	q     quirks
	sleep func(time.Duration)

	setupOnce sync.Once
	setupErr  error
}

func newBase(env Env, p profile, q quirks) *base {
	if p.keys == nil {
		p.keys = defaultKeys
	}
	b := &base{Env: env, profile: p, q: q, sleep: time.Sleep}
	if b.q == nil {
		b.q = b
	}
	return b
}

func (e *base) String() string { return e.name }

func (e *base) URL() string { return e.url }

func (e *base) Features() types.FeatureSet { return types.NewFeatureSet(e.features...) }

func (e *base) JSONFilename() string { return sanitize(e.name) + ".json" }

func (e *base) installDir() string {
	return filepath.Join(e.Config.WorkDir, sanitize(e.name))
}

func (e *base) locate() (string, error) {
	return filepath.Join(e.installDir(), filepath.FromSlash(e.exe)), nil
}

func (e *base) prepare(rom string, _ types.Model) (string, error) { return rom, nil }

func (e *base) args(rom string, model types.Model) ([]string, bool) {
	if !e.supports(model) {
		return nil, false
	}
	return romArgs(rom), true
}

func (e *base) screen(img image.Image) image.Image { return imgcmp.Normalize(img) }

func (e *base) supports(model types.Model) bool {
	for _, m := range e.models {
		if m == model {
			return true
		}
	}
	return false
}

// romArgs returns rom as the only argument, or none for a blank
// boot.
func romArgs(rom string, extra ...string) []string {
	if rom == "" {
		return extra
	}
	return append(extra, rom)
}

func (e *base) Setup() error {
	e.setupOnce.Do(func() {
		e.setupErr = e.setup()
	})
	return e.setupErr
}

func (e *base) setup() error {
	if e.download != "" {
		if _, err := os.Stat(e.installDir()); errors.Is(err, fs.ErrNotExist) {
			if err := e.install(); err != nil {
				return fmt.Errorf("emulator: setting up %s: %w", e.name, err)
			}
		}
	}

	exe, err := e.q.locate()
	if err != nil {
		return err
	}
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutableMissing, exe)
	}
	e.Log.Debugf("%s ready at %s", e.name, exe)
	return nil
}

func (e *base) archivePath() string {
	name := e.archive
	if name == "" {
		name = path.Base(e.download)
	}
	return filepath.Join(e.Config.WorkDir, name)
}

// install downloads and unpacks the release. The install directory
// only appears once extraction succeeded; a broken archive is
// removed so the next run downloads it again.
func (e *base) install() error {
	dir, archivePath := e.installDir(), e.archivePath()
	e.Log.Infof("downloading %s from %s", e.name, e.download)
	if err := archive.Download(e.HTTP, e.download, archivePath); err != nil {
		return err
	}

	staging := dir + ".part"
	if err := os.RemoveAll(staging); err != nil {
		return err
	}
	if err := archive.Extract(archivePath, staging); err != nil {
		return multierr.Combine(err, os.RemoveAll(staging), os.Remove(archivePath))
	}
	if err := os.Rename(staging, dir); err != nil {
		return multierr.Append(err, os.RemoveAll(staging))
	}
	return nil
}

// session is a running emulator with its window found.
type session struct {
	e       *base
	proc    *window.Process
	handle  window.Handle
	startup time.Duration
}

func (s *session) close() {
	if err := s.e.Controller.Terminate(s.proc); err != nil {
		s.e.Log.Warnf("terminating %s: %v", s.e.name, err)
		return
	}
	s.e.Log.Debugf("%s exited: %v", s.e.name, s.proc.Err())
}

// launch boots rom on model and waits for the emulator window.
func (e *base) launch(rom string, model types.Model) (*session, error) {
	if _, ok := e.q.args(rom, model); !ok {
		return nil, fmt.Errorf("%w: %s cannot run %s", ErrUnsupportedModel, e.name, model)
	}
	exe, err := e.q.locate()
	if err != nil {
		return nil, err
	}
	launchROM, err := e.q.prepare(rom, model)
	if err != nil {
		return nil, fmt.Errorf("emulator: preparing %s: %w", e.name, err)
	}
	args, _ := e.q.args(launchROM, model)

	start := time.Now()
	proc, err := e.Controller.Launch(exe, args, filepath.Dir(exe))
	if err != nil {
		return nil, fmt.Errorf("emulator: launching %s: %w", e.name, err)
	}
	s := &session{e: e, proc: proc}
	s.handle, err = e.Controller.FindWindow(proc, e.matcher, e.Config.WindowTimeout)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("emulator: %s: %w", e.name, err)
	}
	s.startup = time.Since(start)

	if err := e.Controller.Focus(s.handle); err != nil {
		s.close()
		return nil, fmt.Errorf("emulator: focusing %s: %w", e.name, err)
	}
	e.sleep(e.startupDelay)
	if len(e.loadKeys) > 0 {
		if err := e.Controller.SendKeys(s.handle, e.loadKeys...); err != nil {
			s.close()
			return nil, fmt.Errorf("emulator: loading %s: %w", e.name, err)
		}
	}
	return s, nil
}

func (e *base) romPath(test *testroms.Test) (string, error) {
	rom, err := filepath.Abs(filepath.Join(e.Config.RomDir, filepath.FromSlash(test.ROM())))
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(rom); err != nil {
		return "", fmt.Errorf("%w: %s", ErrROMMissing, rom)
	}
	return rom, nil
}

func (e *base) Run(test *testroms.Test) (*Result, error) {
	rom, err := e.romPath(test)
	if err != nil {
		return nil, err
	}
	s, err := e.launch(rom, test.Model())
	if err != nil {
		return nil, err
	}
	defer s.close()

	runStart := time.Now()
	if err := e.play(s, test); err != nil {
		return nil, err
	}
	img, err := e.Controller.Capture(s.handle)
	if err != nil {
		return nil, fmt.Errorf("emulator: capturing %s: %w", e.name, err)
	}
	res := &Result{
		StartupTime: s.startup,
		RunTime:     time.Since(runStart),
		Screenshot:  e.q.screen(img),
	}
	res.Verdict = e.judge(test, res.Screenshot)
	e.Log.Debugf("%s: %s %s", e.name, test, res.Verdict)
	return res, nil
}

// play presses the scripted inputs of test at their offsets and
// waits out the rest of its runtime.
func (e *base) play(s *session, test *testroms.Test) error {
	var elapsed time.Duration
	for _, in := range test.Inputs() {
		if in.At > elapsed {
			e.sleep(in.At - elapsed)
			elapsed = in.At
		}
		key, ok := e.keys[in.Button]
		if !ok {
			return fmt.Errorf("emulator: %s has no key for %s", e.name, in.Button)
		}
		if err := e.Controller.SendKeys(s.handle, key); err != nil {
			return fmt.Errorf("emulator: pressing %s on %s: %w", in.Button, e.name, err)
		}
	}
	if rest := test.Runtime() + e.compensation - elapsed; rest > 0 {
		e.sleep(rest)
	}
	return nil
}

func (e *base) judge(test *testroms.Test, actual image.Image) types.Verdict {
	ref := test.FindReference(e.Config.RomDir)
	if ref == "" {
		e.Log.Debugf("no reference image for %s", test)
		return types.Unknown
	}
	expected, err := e.References.Load(ref)
	if err != nil {
		e.Log.Warnf("loading reference for %s: %v", test, err)
		return types.Unknown
	}
	if test.Model().Monochrome() {
		actual, expected = imgcmp.ShadeNormalize(actual), imgcmp.ShadeNormalize(expected)
	}
	return e.Comparator.Compare(actual, expected)
}

func (e *base) stableOptions() window.StableOptions {
	return window.StableOptions{
		Interval: e.Config.PollInterval,
		For:      e.Config.StableFor,
		Timeout:  e.Config.StableTimeout,
		Ignore:   blank,
	}
}

func (e *base) MeasureStartupTime(model types.Model) (time.Duration, image.Image, error) {
	rom := ""
	if p, err := filepath.Abs(filepath.Join(e.Config.RomDir, StartupROM)); err == nil {
		if _, err := os.Stat(p); err == nil {
			rom = p
		}
	}

	start := time.Now()
	s, err := e.launch(rom, model)
	if err != nil {
		return 0, nil, err
	}
	defer s.close()

	img, _, err := window.WaitStable(e.Controller, s.handle, e.stableOptions())
	if err != nil {
		return 0, nil, fmt.Errorf("emulator: %s startup: %w", e.name, err)
	}
	return time.Since(start), e.q.screen(img), nil
}

func (e *base) RunTimeFor(test *testroms.Test) (time.Duration, error) {
	rom, err := e.romPath(test)
	if err != nil {
		return 0, err
	}
	s, err := e.launch(rom, test.Model())
	if err != nil {
		return 0, err
	}
	defer s.close()

	_, d, err := window.WaitStable(e.Controller, s.handle, e.stableOptions())
	switch {
	case errors.Is(err, window.ErrNotStable):
		e.Log.Debugf("%s: %s never settled, using declared runtime", e.name, test)
		return test.Runtime(), nil
	case err != nil:
		return 0, fmt.Errorf("emulator: %s: %w", e.name, err)
	}
	return d, nil
}

// blank reports whether img is a single flat colour, as shown by
// most emulators before the first frame is drawn.
func blank(img image.Image) bool {
	if img == nil {
		return true
	}
	b := img.Bounds()
	if b.Empty() {
		return true
	}
	r0, g0, b0, a0 := img.At(b.Min.X, b.Min.Y).RGBA()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r != r0 || g != g0 || bl != b0 || a != a0 {
				return false
			}
		}
	}
	return true
}

// sanitize turns a display name into a file name.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}
