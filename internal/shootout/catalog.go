package shootout

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

type emulatorEntry struct {
	File string `json:"file"`
	URL  string `json:"url"`
}

type testEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// DumpEmulators writes the selected emulators to name below
// OutDir as {name: {file, url}}. Emulators are neither set up nor
// run.
func (r *Runner) DumpEmulators(name string) error {
	entries := make(map[string]emulatorEntry, len(r.Emulators))
	for _, emu := range r.Emulators {
		entries[emu.String()] = emulatorEntry{File: emu.JSONFilename(), URL: emu.URL()}
	}
	return r.writeJSON(name, entries)
}

// DumpTests writes the selected tests to name below OutDir as a
// list of {name, description, url}.
func (r *Runner) DumpTests(name string) error {
	entries := make([]testEntry, 0, len(r.Tests))
	for _, t := range r.Tests {
		entries = append(entries, testEntry{Name: t.Name(), Description: t.Description(), URL: t.URL()})
	}
	return r.writeJSON(name, entries)
}

func (r *Runner) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := r.ensureOutDir(); err != nil {
		return err
	}
	path := filepath.Join(r.OutDir, name)
	r.Log.Infof("writing %s", path)
	return afero.WriteFile(r.Fs, path, data, 0o644)
}
