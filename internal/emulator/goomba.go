package emulator

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/thelolagemann/shootout/internal/imgcmp"
	"github.com/thelolagemann/shootout/internal/types"
)

// Goomba is a Game Boy emulator for the GBA. The test ROM is
// appended to goomba.gba and the result run on mGBA.
type Goomba struct {
	*base
	host *MGBA
}

func NewGoomba(env Env) *Goomba {
	e := &Goomba{host: NewMGBA(env)}
	e.base = newBase(env, profile{
		name:         "Goomba",
		url:          "https://www.dwedit.org/gba/goomba.php",
		download:     "https://www.dwedit.org/files/goomba_2014-11-01.zip",
		exe:          "goomba.gba",
		models:       []types.Model{types.DMG},
		matcher:      e.host.matcher,
		startupDelay: 1000 * ms,
		compensation: 200 * ms,
	}, e)
	return e
}

func (e *Goomba) Setup() error {
	if err := e.host.Setup(); err != nil {
		return fmt.Errorf("emulator: goomba host: %w", err)
	}
	return e.base.Setup()
}

func (e *Goomba) locate() (string, error) {
	payload := filepath.Join(e.installDir(), e.exe)
	if _, err := os.Stat(payload); err != nil {
		return "", fmt.Errorf("%w: %s", ErrExecutableMissing, payload)
	}
	return e.host.locate()
}

func (e *Goomba) prepare(rom string, _ types.Model) (string, error) {
	payload := filepath.Join(e.installDir(), e.exe)
	if rom == "" {
		return payload, nil
	}
	emu, err := os.ReadFile(payload)
	if err != nil {
		return "", err
	}
	game, err := os.ReadFile(rom)
	if err != nil {
		return "", err
	}
	combined := filepath.Join(e.installDir(), "combined.gba")
	return combined, os.WriteFile(combined, append(emu, game...), 0o644)
}

func (e *Goomba) args(rom string, model types.Model) ([]string, bool) {
	if !e.supports(model) {
		return nil, false
	}
	return romArgs(rom, "-C", "pauseOnFocusLost=0"), true
}

// GBA screen dimensions and the Game Boy screen's offset within.
const (
	gbaWidth   = 240
	gbaHeight  = 160
	goombaLeft = (gbaWidth - imgcmp.ScreenWidth) / 2
	goombaTop  = (gbaHeight - imgcmp.ScreenHeight) / 2
)

func (e *Goomba) screen(img image.Image) image.Image {
	b := img.Bounds()
	scale := b.Dx() / gbaWidth
	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if scale < 1 || b.Dx() != gbaWidth*scale || b.Dy() != gbaHeight*scale || !ok {
		return imgcmp.Normalize(img)
	}
	r := image.Rect(goombaLeft, goombaTop, goombaLeft+imgcmp.ScreenWidth, goombaTop+imgcmp.ScreenHeight)
	r = image.Rectangle{Min: r.Min.Mul(scale), Max: r.Max.Mul(scale)}.Add(b.Min)
	return imgcmp.Normalize(sub.SubImage(r))
}
