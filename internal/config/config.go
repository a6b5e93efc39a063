// Package config holds the settings shared by every part of a
// shootout run: where ROMs and emulators live, where results go,
// comparison tolerances and the automation timeouts.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

// Config is constructed once in main and passed down by value.
type Config struct {
	// RomDir holds the test ROMs and their reference images.
	RomDir string
	// WorkDir is where emulator release archives are
	// downloaded and extracted.
	WorkDir string
	// OutDir receives results files, reports and catalog dumps.
	OutDir string
	// LogFile, if set, receives a copy of the console log.
	LogFile string
	Debug   bool

	// TolerancePixels is the number of differing pixels still
	// judged a PASS.
	TolerancePixels int
	// ToleranceChannel is the per channel (0-255) difference
	// below which two pixels are considered equal.
	ToleranceChannel int

	// WindowTimeout bounds the wait for an emulator window.
	WindowTimeout time.Duration
	// PollInterval is the delay between window/frame polls.
	PollInterval time.Duration
	// StableFor is how long a frame must stay unchanged to be
	// considered stable.
	StableFor time.Duration
	// StableTimeout bounds startup and runtime measurement.
	StableTimeout time.Duration
	// DownloadTimeout bounds a single release download.
	DownloadTimeout time.Duration
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		RomDir:           "testroms",
		WorkDir:          "downloads",
		OutDir:           ".",
		TolerancePixels:  0,
		ToleranceChannel: 8,
		WindowTimeout:    10 * time.Second,
		PollInterval:     50 * time.Millisecond,
		StableFor:        500 * time.Millisecond,
		StableTimeout:    30 * time.Second,
		DownloadTimeout:  2 * time.Minute,
	}
}

// FromEnv overrides the directory settings of c with the
// SHOOTOUT_* environment variables that are set.
func FromEnv(c Config) Config {
	for env, dst := range map[string]*string{
		"SHOOTOUT_ROMS":    &c.RomDir,
		"SHOOTOUT_WORKDIR": &c.WorkDir,
		"SHOOTOUT_OUT":     &c.OutDir,
		"SHOOTOUT_LOG":     &c.LogFile,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	return c
}

// RegisterFlags binds the configuration to fs. Values already in
// c are used as the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.RomDir, "roms", c.RomDir, "directory holding test ROMs and reference images")
	fs.StringVar(&c.WorkDir, "workdir", c.WorkDir, "directory emulators are downloaded and extracted to")
	fs.StringVar(&c.OutDir, "out", c.OutDir, "directory results and reports are written to")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also write the log to this file")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	fs.IntVar(&c.TolerancePixels, "tolerance-pixels", c.TolerancePixels, "number of differing pixels still judged a pass")
	fs.IntVar(&c.ToleranceChannel, "tolerance-channel", c.ToleranceChannel, "per channel difference (0-255) ignored when comparing pixels")
	fs.DurationVar(&c.WindowTimeout, "window-timeout", c.WindowTimeout, "how long to wait for an emulator window to appear")
	fs.DurationVar(&c.StableTimeout, "stable-timeout", c.StableTimeout, "how long to wait for the screen to settle when measuring")
}

var (
	errNoRomDir = errors.New("config: rom directory not set")
	errNoWork   = errors.New("config: work directory not set")
)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.RomDir == "":
		return errNoRomDir
	case c.WorkDir == "":
		return errNoWork
	case c.TolerancePixels < 0:
		return fmt.Errorf("config: negative pixel tolerance %d", c.TolerancePixels)
	case c.ToleranceChannel < 0 || c.ToleranceChannel > 255:
		return fmt.Errorf("config: channel tolerance %d out of range 0-255", c.ToleranceChannel)
	case c.WindowTimeout <= 0:
		return fmt.Errorf("config: window timeout must be positive, got %s", c.WindowTimeout)
	case c.PollInterval <= 0:
		return fmt.Errorf("config: poll interval must be positive, got %s", c.PollInterval)
	}
	return nil
}
