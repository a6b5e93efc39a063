package emulator

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thelolagemann/shootout/internal/types"
	"github.com/thelolagemann/shootout/internal/window"
)

// Higan picks the system from the ROM extension, so the ROM is
// copied to a .gb or .gbc file first. It is not part of the
// default roster.
type Higan struct{ *base }

func NewHigan(env Env) *Higan {
	e := &Higan{}
	e.base = newBase(env, profile{
		name:         "Higan",
		url:          "https://github.com/higan-emu/higan",
		download:     "https://github.com/higan-emu/higan/releases/download/v110/higan-v110-windows.7z",
		exe:          "higan-v110-windows/higan.exe",
		features:     []types.Feature{types.FeatureCGB},
		models:       []types.Model{types.DMG, types.CGB},
		matcher:      window.Matcher{Title: "higan"},
		startupDelay: 1000 * ms,
	}, e)
	return e
}

func (e *Higan) prepare(rom string, model types.Model) (string, error) {
	if rom == "" {
		return "", nil
	}
	ext := ".gb"
	if model == types.CGB {
		ext = ".gbc"
	}
	dir := filepath.Join(e.installDir(), "roms")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))+ext)
	return dst, copyFile(rom, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
