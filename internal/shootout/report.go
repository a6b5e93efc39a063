package shootout

import (
	"errors"
	"fmt"
	"html"
	"image"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/thelolagemann/shootout/internal/emulator"
	"github.com/thelolagemann/shootout/internal/imgcmp"
	"github.com/thelolagemann/shootout/internal/types"
)

// Calibrate measures how long each selected test really takes on
// each emulator and prints one "<emulator>: <test>: <secs> seconds"
// line per pair.
func (r *Runner) Calibrate(w io.Writer) error {
	for _, emu := range r.Emulators {
		if err := emu.Setup(); err != nil {
			r.failed(emu, err)
			continue
		}
		for _, test := range r.Tests {
			if !r.supported(emu, test) {
				continue
			}
			d, err := emu.RunTimeFor(test)
			if err != nil {
				if skippable(err) {
					r.Log.Warnf("Skipping %s on %s: %v", test, emu, err)
					continue
				}
				r.failed(emu, err)
				break
			}
			if _, err := fmt.Fprintf(w, "%s: %s: %.2f seconds\n", emu, test, d.Seconds()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Startup is one startup time measurement.
type Startup struct {
	Emulator string
	Model    types.Model
	Time     time.Duration
	Screen   image.Image
}

// MeasureStartup boots every selected emulator as every model it
// supports. Unsupported models are left out.
func (r *Runner) MeasureStartup() []Startup {
	var out []Startup
	for _, emu := range r.Emulators {
		if err := emu.Setup(); err != nil {
			r.failed(emu, err)
			continue
		}
		for _, model := range types.Models {
			d, img, err := emu.MeasureStartupTime(model)
			if errors.Is(err, emulator.ErrUnsupportedModel) {
				continue
			}
			if err != nil {
				r.failed(emu, err)
				break
			}
			r.Log.Infof("%s (%s): %.2f seconds", emu, model.Tag(), d.Seconds())
			out = append(out, Startup{Emulator: emu.String(), Model: model, Time: d, Screen: img})
		}
	}
	return out
}

// StartupReport measures startup times and writes them to w as an
// HTML page with the screen each emulator settled on, followed by
// a chart of the DMG times.
func (r *Runner) StartupReport(w io.Writer) error {
	return writeStartupReport(w, r.MeasureStartup())
}

// WriteStartupReport writes StartupReport to name below OutDir and
// returns its path.
func (r *Runner) WriteStartupReport(name string) (path string, err error) {
	if err := r.ensureOutDir(); err != nil {
		return "", err
	}
	path = filepath.Join(r.OutDir, name)
	f, err := r.Fs.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	r.Log.Infof("writing %s", path)
	return path, r.StartupReport(f)
}

func writeStartupReport(w io.Writer, startups []Startup) error {
	if _, err := io.WriteString(w, "<html><body>\n"); err != nil {
		return err
	}
	var chart []Startup
	for _, s := range startups {
		shot, err := imgcmp.EncodeBase64(s.Screen)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s (%s) %.2fs<br>\n<img src='data:image/png;base64,%s'><br>\n",
			html.EscapeString(s.Emulator), s.Model.Tag(), s.Time.Seconds(), shot); err != nil {
			return err
		}
		if s.Model == types.DMG {
			chart = append(chart, s)
		}
	}

	if len(chart) > 0 {
		img, err := startupChart(chart)
		if err != nil {
			return err
		}
		shot, err := imgcmp.EncodeBase64(img)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h2>Startup time (dmg)</h2>\n<img src='data:image/png;base64,%s'>\n", shot); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body></html>\n")
	return err
}

// startupChart draws a bar chart of startup times in seconds.
func startupChart(startups []Startup) (image.Image, error) {
	p := plot.New()
	p.Title.Text = "Startup time (dmg)"
	p.Y.Label.Text = "seconds"

	values := make(plotter.Values, len(startups))
	names := make([]string, len(startups))
	for i, s := range startups {
		values[i] = s.Time.Seconds()
		names[i] = s.Emulator
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)

	img := image.NewRGBA(image.Rect(0, 0, 80*len(startups)+160, 400))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))
	return c.Image(), nil
}
