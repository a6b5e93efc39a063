package shootout

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/thelolagemann/shootout/internal/emulator"
	"github.com/thelolagemann/shootout/internal/imgcmp"
	"github.com/thelolagemann/shootout/internal/types"
)

// EmulatorResults holds the results of one emulator, keyed by test
// name.
type EmulatorResults struct {
	Emulator emulator.Emulator
	Date     time.Time
	Tests    map[string]*emulator.Result

	order []string
}

// Names returns the test names in the order they were run.
func (er *EmulatorResults) Names() []string {
	if len(er.order) == len(er.Tests) {
		return append([]string(nil), er.order...)
	}
	names := make([]string, 0, len(er.Tests))
	for name := range er.Tests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of results with verdict v.
func (er *EmulatorResults) Count(v types.Verdict) int {
	n := 0
	for _, res := range er.Tests {
		if res.Verdict == v {
			n++
		}
	}
	return n
}

// Score is the number of results that did not FAIL.
func (er *EmulatorResults) Score() int {
	return len(er.Tests) - er.Count(types.Fail)
}

// Results are the results of a run, one entry per emulator.
type Results []*EmulatorResults

// Rank sorts results by Score, best first. Emulators with equal
// scores keep their run order.
func Rank(results Results) Results {
	ranked := append(Results(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	return ranked
}

type resultFile struct {
	Emulator string                `json:"emulator"`
	Date     float64               `json:"date"`
	Tests    map[string]testResult `json:"tests"`
}

type testResult struct {
	Result      types.Verdict `json:"result"`
	StartupTime float64       `json:"startuptime"`
	RunTime     float64       `json:"runtime"`
	Screenshot  string        `json:"screenshot"`
}

func encodeResults(er *EmulatorResults) ([]byte, error) {
	f := resultFile{
		Emulator: er.Emulator.String(),
		Date:     float64(er.Date.Unix()) + float64(er.Date.Nanosecond())/1e9,
		Tests:    make(map[string]testResult, len(er.Tests)),
	}
	for name, res := range er.Tests {
		shot, err := imgcmp.EncodeBase64(res.Screenshot)
		if err != nil {
			return nil, fmt.Errorf("encoding screenshot of %s: %w", name, err)
		}
		f.Tests[name] = testResult{
			Result:      res.Verdict,
			StartupTime: res.StartupTime.Seconds(),
			RunTime:     res.RunTime.Seconds(),
			Screenshot:  shot,
		}
	}
	return json.MarshalIndent(f, "", "  ")
}

// WriteResults writes one JSON file per emulator that produced at
// least one result, replacing any previous file. Every file is
// attempted; the errors are combined.
func (r *Runner) WriteResults(results Results) error {
	if err := r.ensureOutDir(); err != nil {
		return err
	}
	var errs error
	for _, er := range results {
		if len(er.Tests) == 0 {
			continue
		}
		data, err := encodeResults(er)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shootout: %s: %w", er.Emulator, err))
			continue
		}
		path := filepath.Join(r.OutDir, er.Emulator.JSONFilename())
		if err := afero.WriteFile(r.Fs, path, data, 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shootout: writing %s: %w", path, err))
			continue
		}
		r.Log.Debugf("wrote %s", path)
	}
	return errs
}

func (r *Runner) ensureOutDir() error {
	if ok, err := afero.DirExists(r.Fs, r.OutDir); err == nil && ok {
		return nil
	}
	return r.Fs.MkdirAll(r.OutDir, 0o755)
}
