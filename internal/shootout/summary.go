package shootout

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thelolagemann/shootout/internal/types"
)

// tally counts results for one row of a summary table.
type tally struct {
	passed, total int
}

func (t *tally) add(v types.Verdict) {
	t.total++
	if v.IsPass() {
		t.passed++
	}
}

func (t tally) row(name string) string {
	rate := 0
	if t.total > 0 {
		rate = int(float64(t.passed) / float64(t.total) * 100)
	}
	return fmt.Sprintf("| %s | %d%% | %d | %d | %d |\n", name, rate, t.passed, t.total-t.passed, t.total)
}

const tableHeader = "| %s | Pass Rate | Tests Passed | Tests Failed | Tests Total |\n| --- | --- | --- | --- | --- |\n"

func verdictMark(v types.Verdict) string {
	switch v {
	case types.Pass:
		return "✅"
	case types.Fail:
		return "❌"
	}
	return "❔"
}

// anchor returns the markdown heading anchor for name.
func anchor(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		case r == ' ':
			return '-'
		}
		return -1
	}, name)
}

// Summary renders results as a markdown document: an overview
// table of the ranked emulators, then per emulator a table per
// suite and a pass/fail list per test.
func (r *Runner) Summary(results Results) string {
	ranked := Rank(results)

	suiteOf := make(map[string]string, len(r.Tests))
	var suites []string
	for _, t := range r.Tests {
		suiteOf[t.Name()] = t.Suite()
		if len(suites) == 0 || suites[len(suites)-1] != t.Suite() {
			suites = append(suites, t.Suite())
		}
	}

	var b strings.Builder
	b.WriteString("# Shootout results\n")
	fmt.Fprintf(&b, tableHeader, "Emulator")
	for _, er := range ranked {
		var t tally
		for _, res := range er.Tests {
			t.add(res.Verdict)
		}
		b.WriteString(t.row(er.Emulator.String()))
	}

	b.WriteString("\n## Table of Contents\n")
	for _, er := range ranked {
		fmt.Fprintf(&b, "* [%s](#%s)\n", er.Emulator, anchor(er.Emulator.String()))
	}

	for _, er := range ranked {
		fmt.Fprintf(&b, "\n# %s\n", er.Emulator)
		if len(er.Tests) == 0 {
			b.WriteString("No results.\n")
			continue
		}

		bySuite := make(map[string][]string)
		for _, name := range er.Names() {
			bySuite[suiteOf[name]] = append(bySuite[suiteOf[name]], name)
		}
		fmt.Fprintf(&b, tableHeader, "Test Suite")
		for _, suite := range suites {
			if len(bySuite[suite]) == 0 {
				continue
			}
			var t tally
			for _, name := range bySuite[suite] {
				t.add(er.Tests[name].Verdict)
			}
			b.WriteString(t.row(suite))
		}
		for _, suite := range suites {
			if len(bySuite[suite]) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n## %s\n| Test | Passing |\n| ---- | ------- |\n", suite)
			for _, name := range bySuite[suite] {
				fmt.Fprintf(&b, "| %s | %s |\n", name, verdictMark(er.Tests[name].Verdict))
			}
		}
	}
	return b.String()
}

// WriteSummary writes Summary to name below OutDir.
func (r *Runner) WriteSummary(results Results, name string) error {
	if err := r.ensureOutDir(); err != nil {
		return err
	}
	path := filepath.Join(r.OutDir, name)
	r.Log.Infof("writing %s", path)
	return afero.WriteFile(r.Fs, path, []byte(r.Summary(results)), 0o644)
}
