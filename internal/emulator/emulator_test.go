package emulator

import (
	"archive/zip"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/shootout/internal/config"
	"github.com/thelolagemann/shootout/internal/testroms"
	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
	"github.com/thelolagemann/shootout/internal/window/windowtest"
	"github.com/thelolagemann/shootout/pkg/log"
)

var (
	greens = [4]color.Color{
		color.NRGBA{R: 0xe0, G: 0xf8, B: 0xd0, A: 0xff},
		color.NRGBA{R: 0x88, G: 0xc0, B: 0x70, A: 0xff},
		color.NRGBA{R: 0x34, G: 0x68, B: 0x56, A: 0xff},
		color.NRGBA{R: 0x08, G: 0x18, B: 0x20, A: 0xff},
	}
	greys = [4]color.Color{
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff},
		color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
		color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	}
)

// stripes draws four bands of palette at the given integer scale.
func stripes(palette [4]color.Color, scale int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 160*scale, 144*scale))
	for y := 0; y < 144*scale; y++ {
		for x := 0; x < 160*scale; x++ {
			img.Set(x, y, palette[y/scale*4/144])
		}
	}
	return img
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func testEnv(t *testing.T, c window.Controller) Env {
	t.Helper()
	cfg := config.Default()
	cfg.RomDir = t.TempDir()
	cfg.WorkDir = t.TempDir()
	cfg.PollInterval = time.Millisecond
	cfg.StableFor = 5 * time.Millisecond
	cfg.StableTimeout = time.Second
	return NewEnv(cfg, c, log.NewNullLogger())
}

func findTest(t *testing.T, name string) *testroms.Test {
	t.Helper()
	for _, test := range testroms.All() {
		if test.Name() == name {
			return test
		}
	}
	t.Fatalf("no test %q in the catalog", name)
	return nil
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func noSleep(time.Duration) {}

func newSameBoy(t *testing.T, fake *windowtest.Fake) *SameBoy {
	e := NewSameBoy(testEnv(t, fake))
	e.sleep = noSleep
	return e
}

func TestRoster(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})

	var names []string
	for _, e := range Default(env) {
		names = append(names, e.String())
	}
	require.Equal(t, []string{
		"BDM", "mGBA", "KiGB", "SameBoy", "BGB", "VisualBoyAdvance",
		"VisualBoyAdvance-M", "no$gmb", "GambatteSpeedrun", "Emulicious",
		"Goomba", "Binjgb", "PyBoy",
	}, names)

	all := All(env)
	require.Len(t, all, len(names)+1)
	require.Equal(t, "Higan", all[len(all)-1].String())

	seen := map[string]bool{}
	for _, e := range all {
		require.NotEmpty(t, e.URL(), e.String())
		require.False(t, seen[e.JSONFilename()], "duplicate results file %s", e.JSONFilename())
		seen[e.JSONFilename()] = true
	}
}

func TestNoCashMatcher(t *testing.T) {
	e := NewNoCash(testEnv(t, &windowtest.Fake{}))
	info := window.Info{Title: "NO$GMB Debugger", Pid: 9, Visible: true}
	require.True(t, e.matcher.Match(info, 9))

	info.Title = "bgb"
	require.False(t, e.matcher.Match(info, 9))
}

func TestVBAArchiveName(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	require.Equal(t, filepath.Join(env.Config.WorkDir, "VisualBoyAdvance-1.8.0-beta3.zip"), NewVBA(env).archivePath())
	require.Equal(t, filepath.Join(env.Config.WorkDir, "visualboyadvance-m-Win-x86_64.zip"), NewVBAM(env).archivePath())
}

func TestJSONFilename(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	require.Equal(t, "SameBoy.json", NewSameBoy(env).JSONFilename())
	require.Equal(t, "no_gmb.json", NewNoCash(env).JSONFilename())
	require.Equal(t, "VisualBoyAdvance-M.json", NewVBAM(env).JSONFilename())
}

func TestFeatures(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	require.True(t, NewSameBoy(env).Features().Has(types.FeatureSGB))
	require.False(t, NewBDM(env).Features().Has(types.FeatureSGB))
	require.Empty(t, NewGoomba(env).Features())
}

func TestSetup(t *testing.T) {
	t.Run("missing executable", func(t *testing.T) {
		env := testEnv(t, &windowtest.Fake{})
		e := newBase(env, profile{name: "Local", exe: "local.exe"}, nil)
		err := e.Setup()
		require.ErrorIs(t, err, ErrExecutableMissing)

		// later calls return the first result
		writeFile(t, filepath.Join(env.Config.WorkDir, "Local", "local.exe"), []byte("MZ"))
		require.ErrorIs(t, e.Setup(), ErrExecutableMissing)
		require.NoError(t, newBase(env, profile{name: "Local", exe: "local.exe"}, nil).Setup())
	})

	t.Run("downloads and extracts", func(t *testing.T) {
		var requests int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			zw := zip.NewWriter(w)
			f, _ := zw.Create("bin/emu.exe")
			f.Write([]byte("MZ"))
			zw.Close()
		}))
		defer srv.Close()

		env := testEnv(t, &windowtest.Fake{})
		p := profile{name: "Remote Emu", download: srv.URL + "/emu.zip", exe: "bin/emu.exe"}
		require.NoError(t, newBase(env, p, nil).Setup())
		require.FileExists(t, filepath.Join(env.Config.WorkDir, "Remote_Emu", "bin", "emu.exe"))
		require.FileExists(t, filepath.Join(env.Config.WorkDir, "emu.zip"))

		require.NoError(t, newBase(env, p, nil).Setup())
		require.Equal(t, 1, requests)
	})

	t.Run("download url without extension", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			zw := zip.NewWriter(w)
			f, _ := zw.Create("emu.exe")
			f.Write([]byte("MZ"))
			zw.Close()
		}))
		defer srv.Close()

		env := testEnv(t, &windowtest.Fake{})
		p := profile{name: "Forge", download: srv.URL + "/files/emu-1.0.zip/download", exe: "emu.exe"}
		require.NoError(t, newBase(env, p, nil).Setup())
		require.FileExists(t, filepath.Join(env.Config.WorkDir, "Forge", "emu.exe"))

		p.name, p.archive = "Named", "emu-1.0.zip"
		require.NoError(t, newBase(env, p, nil).Setup())
		require.FileExists(t, filepath.Join(env.Config.WorkDir, "emu-1.0.zip"))
		require.FileExists(t, filepath.Join(env.Config.WorkDir, "Named", "emu.exe"))
	})

	t.Run("broken archive is fetched again", func(t *testing.T) {
		var requests int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&requests, 1) == 1 {
				w.Write([]byte("not a zip"))
				return
			}
			zw := zip.NewWriter(w)
			f, _ := zw.Create("emu.exe")
			f.Write([]byte("MZ"))
			zw.Close()
		}))
		defer srv.Close()

		env := testEnv(t, &windowtest.Fake{})
		p := profile{name: "Flaky", download: srv.URL + "/flaky.zip", exe: "emu.exe"}
		err := newBase(env, p, nil).Setup()
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrExecutableMissing)
		require.NoDirExists(t, filepath.Join(env.Config.WorkDir, "Flaky"))
		require.NoDirExists(t, filepath.Join(env.Config.WorkDir, "Flaky.part"))
		require.NoFileExists(t, filepath.Join(env.Config.WorkDir, "flaky.zip"))

		require.NoError(t, newBase(env, p, nil).Setup())
		require.Equal(t, int32(2), atomic.LoadInt32(&requests))
		require.FileExists(t, filepath.Join(env.Config.WorkDir, "Flaky", "emu.exe"))
	})

	t.Run("download failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		env := testEnv(t, &windowtest.Fake{})
		err := newBase(env, profile{name: "Gone", download: srv.URL + "/gone.zip", exe: "gone.exe"}, nil).Setup()
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrExecutableMissing)
	})
}

func TestRun(t *testing.T) {
	dmgAcid := findTest(t, "acid/dmg-acid2.gb")
	require.NotNil(t, dmgAcid)

	setup := func(t *testing.T, fake *windowtest.Fake, ref image.Image) *SameBoy {
		e := newSameBoy(t, fake)
		writeFile(t, filepath.Join(e.Config.RomDir, "acid", "dmg-acid2.gb"), []byte{0})
		if ref != nil {
			writePNG(t, filepath.Join(e.Config.RomDir, "acid", "dmg-acid2.png"), ref)
		}
		return e
	}

	t.Run("pass across palettes and scales", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greens, 2)}
		e := setup(t, fake, stripes(greys, 1))

		res, err := e.Run(dmgAcid)
		require.NoError(t, err)
		require.Equal(t, types.Pass, res.Verdict)
		require.Equal(t, image.Rect(0, 0, 160, 144), res.Screenshot.Bounds())

		require.Len(t, fake.Launched, 1)
		rom, _ := filepath.Abs(filepath.Join(e.Config.RomDir, "acid", "dmg-acid2.gb"))
		require.Equal(t, []string{"--model", "dmg", rom}, fake.Launched[0].Args)
		require.Equal(t, 1, fake.Terminated)
	})

	t.Run("exit status is logged", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := setup(t, fake, stripes(greys, 1))
		l, logs := log.NewObserved()
		e.Log = l

		_, err := e.Run(dmgAcid)
		require.NoError(t, err)
		require.Equal(t, 1, logs.FilterMessage("SameBoy exited: windowtest: killed").Len())
	})

	t.Run("mismatch is a failed result", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := setup(t, fake, solid(160, 144, color.White))

		res, err := e.Run(dmgAcid)
		require.NoError(t, err)
		require.Equal(t, types.Fail, res.Verdict)
	})

	t.Run("dimension mismatch fails", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := setup(t, fake, solid(100, 100, color.White))

		res, err := e.Run(dmgAcid)
		require.NoError(t, err)
		require.Equal(t, types.Fail, res.Verdict)
	})

	t.Run("missing reference is unknown", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := setup(t, fake, nil)

		res, err := e.Run(dmgAcid)
		require.NoError(t, err)
		require.Equal(t, types.Unknown, res.Verdict)
		require.NotNil(t, res.Screenshot)
	})

	t.Run("missing ROM", func(t *testing.T) {
		fake := &windowtest.Fake{}
		e := newSameBoy(t, fake)
		_, err := e.Run(dmgAcid)
		require.ErrorIs(t, err, ErrROMMissing)
		require.Empty(t, fake.Launched)
	})

	t.Run("window never appears", func(t *testing.T) {
		fake := &windowtest.Fake{FindErr: &window.NotFoundError{Timeout: time.Second}}
		e := setup(t, fake, stripes(greys, 1))

		_, err := e.Run(dmgAcid)
		var nf *window.NotFoundError
		require.True(t, errors.As(err, &nf))
		require.Equal(t, 1, fake.Terminated)
	})

	t.Run("scripted inputs", func(t *testing.T) {
		rtc := findTest(t, "ax6/rtc3test.gb (subsecond)")
		require.NotNil(t, rtc)

		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := newSameBoy(t, fake)
		writeFile(t, filepath.Join(e.Config.RomDir, "ax6", "rtc3test.gb"), []byte{0})

		var slept time.Duration
		e.sleep = func(d time.Duration) { slept += d }

		_, err := e.Run(rtc)
		require.NoError(t, err)
		require.Equal(t, []window.Key{"down", "down", "x"}, fake.Keys)
		require.Equal(t, e.startupDelay+rtc.Runtime(), slept)
	})
}

func TestUnsupportedModel(t *testing.T) {
	fake := &windowtest.Fake{}
	env := testEnv(t, fake)

	_, _, err := NewBDM(env).MeasureStartupTime(types.SGB)
	require.ErrorIs(t, err, ErrUnsupportedModel)
	_, _, err = NewGoomba(env).MeasureStartupTime(types.CGB)
	require.ErrorIs(t, err, ErrUnsupportedModel)
	require.Empty(t, fake.Launched)
}

func TestMeasureStartupTime(t *testing.T) {
	fake := &windowtest.Fake{Frames: func(n int) image.Image {
		if n < 3 {
			return solid(320, 288, color.White)
		}
		return stripes(greys, 2)
	}}
	e := newSameBoy(t, fake)

	d, img, err := e.MeasureStartupTime(types.CGB)
	require.NoError(t, err)
	require.Greater(t, d, time.Duration(0))
	require.Equal(t, image.Rect(0, 0, 160, 144), img.Bounds())
	require.Equal(t, []string{"--model", "cgb"}, fake.Launched[0].Args)
	require.Greater(t, fake.Captures, 3)
	require.Equal(t, 1, fake.Terminated)

	t.Run("boots the startup ROM when present", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := newSameBoy(t, fake)
		writeFile(t, filepath.Join(e.Config.RomDir, StartupROM), []byte{0})

		_, _, err := e.MeasureStartupTime(types.DMG)
		require.NoError(t, err)
		rom, _ := filepath.Abs(filepath.Join(e.Config.RomDir, StartupROM))
		require.Equal(t, []string{"--model", "dmg", rom}, fake.Launched[0].Args)
	})
}

func TestRunTimeFor(t *testing.T) {
	dmgAcid := findTest(t, "acid/dmg-acid2.gb")

	t.Run("stable", func(t *testing.T) {
		fake := &windowtest.Fake{Screen: stripes(greys, 1)}
		e := newSameBoy(t, fake)
		writeFile(t, filepath.Join(e.Config.RomDir, "acid", "dmg-acid2.gb"), []byte{0})

		d, err := e.RunTimeFor(dmgAcid)
		require.NoError(t, err)
		require.Less(t, d, dmgAcid.Runtime())
	})

	t.Run("never settles", func(t *testing.T) {
		fake := &windowtest.Fake{Frames: func(n int) image.Image {
			return stripes(map[bool][4]color.Color{true: greys, false: greens}[n%2 == 0], 1)
		}}
		e := newSameBoy(t, fake)
		e.Config.StableTimeout = 20 * time.Millisecond
		writeFile(t, filepath.Join(e.Config.RomDir, "acid", "dmg-acid2.gb"), []byte{0})

		d, err := e.RunTimeFor(dmgAcid)
		require.NoError(t, err)
		require.Equal(t, dmgAcid.Runtime(), d)
	})
}

func TestModelArgs(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	for _, tt := range []struct {
		emu   quirks
		model types.Model
		want  []string
		ok    bool
	}{
		{NewMGBA(env), types.SGB, []string{"-C", "gb.model=SGB", "-C", "useBios=0", "-C", "pauseOnFocusLost=0", "rom.gb"}, true},
		{NewBinjgb(env), types.DMG, []string{"--force-dmg", "rom.gb"}, true},
		{NewBinjgb(env), types.SGB, nil, false},
		{NewBGB(env), types.CGB, []string{"-rom", "rom.gb"}, true},
		{NewPyBoy(env), types.CGB, []string{"-m", "pyboy", "--cgb", "rom.gb"}, true},
		{NewVBA(env), types.SGB, []string{"rom.gb"}, true},
		{NewHigan(env), types.SGB, nil, false},
	} {
		args, ok := tt.emu.args("rom.gb", tt.model)
		require.Equal(t, tt.ok, ok, "%v %s", tt.emu, tt.model)
		require.Equal(t, tt.want, args, "%v %s", tt.emu, tt.model)
	}
}

func TestPrepareWritesConfig(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	bgb := NewBGB(env)
	exe, _ := bgb.locate()
	writeFile(t, filepath.Join(filepath.Dir(exe), "bgb.ini"), []byte("Volume=3\nSystemMode=1\n"))

	rom, err := bgb.prepare("rom.gb", types.SGB)
	require.NoError(t, err)
	require.Equal(t, "rom.gb", rom)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(exe), "bgb.ini"))
	require.NoError(t, err)
	require.Equal(t, "Volume=3\nSystemMode=2\nBoot=0\nDetectGBA=0\nPauseOnFocus=0\n", string(data))
}

func TestHiganCopiesROMByModel(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	rom := filepath.Join(env.Config.RomDir, "which.gb")
	writeFile(t, rom, []byte{1, 2, 3})

	got, err := NewHigan(env).prepare(rom, types.CGB)
	require.NoError(t, err)
	require.Equal(t, "which.gbc", filepath.Base(got))
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
}

func TestGoomba(t *testing.T) {
	env := testEnv(t, &windowtest.Fake{})
	g := NewGoomba(env)

	_, err := g.locate()
	require.ErrorIs(t, err, ErrExecutableMissing)

	payload := filepath.Join(g.installDir(), "goomba.gba")
	writeFile(t, payload, []byte("GBA"))
	rom := filepath.Join(env.Config.RomDir, "test.gb")
	writeFile(t, rom, []byte("GB"))

	combined, err := g.prepare(rom, types.DMG)
	require.NoError(t, err)
	data, err := os.ReadFile(combined)
	require.NoError(t, err)
	require.Equal(t, "GBAGB", string(data))

	blankBoot, err := g.prepare("", types.DMG)
	require.NoError(t, err)
	require.Equal(t, payload, blankBoot)

	// a 2x GBA frame with the Game Boy screen drawn in its centre
	frame := solid(480, 320, color.Black)
	gb := stripes(greys, 2)
	for y := 0; y < 288; y++ {
		for x := 0; x < 320; x++ {
			frame.Set(80+x, 16+y, gb.At(x, y))
		}
	}
	got := g.screen(frame)
	require.Equal(t, image.Rect(0, 0, 160, 144), got.Bounds().Sub(got.Bounds().Min))
	require.Equal(t, types.Pass, env.Comparator.Compare(got, stripes(greys, 1)))
}

func TestSetINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emu.ini")

	require.NoError(t, setINI(path, "preferences", map[string]string{"b": "2", "a": "1"}))
	data, _ := os.ReadFile(path)
	require.Equal(t, "[preferences]\na=1\nb=2\n", string(data))

	writeFile(t, path, []byte("top=0\r\n[other]\nx=1\r\n[Preferences]\r\nEmulatorType=0\r\nkeep=yes\r\n"))
	require.NoError(t, setINI(path, "preferences", map[string]string{"emulatorType": "3", "new": "x"}))
	data, _ = os.ReadFile(path)
	require.Equal(t, "top=0\r\n[other]\r\nx=1\r\n[Preferences]\r\nEmulatorType=3\r\nkeep=yes\r\nnew=x\r\n", string(data))
}

func TestBlank(t *testing.T) {
	require.True(t, blank(nil))
	require.True(t, blank(solid(4, 4, color.White)))
	require.False(t, blank(stripes(greys, 1)))
}
