// Command shootout runs Game Boy test ROMs on a set of emulators
// and records how each of them did.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/skratchdot/open-golang/open"
	"go.uber.org/multierr"

	"github.com/thelolagemann/shootout/internal/config"
	"github.com/thelolagemann/shootout/internal/emulator"
	"github.com/thelolagemann/shootout/internal/live"
	"github.com/thelolagemann/shootout/internal/shootout"
	"github.com/thelolagemann/shootout/internal/testroms"
	"github.com/thelolagemann/shootout/internal/window"
	"github.com/thelolagemann/shootout/pkg/log"
)

const (
	startupReport = "startuptime.html"
	emulatorsJSON = "emulators.json"
	testsJSON     = "tests.json"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv(config.Default())

	var testFilter, emulatorFilter shootout.Filter
	flag.Var(&testFilter, "test", "Only run tests whose name contains this; prefix with ! to exclude. Repeatable")
	flag.Var(&emulatorFilter, "emulator", "Only run emulators whose name contains this; prefix with ! to exclude. Repeatable")
	getRuntime := flag.Bool("get-runtime", false, "Measure how long each test takes to finish and exit")
	getStartup := flag.Bool("get-startuptime", false, "Measure emulator startup times, write "+startupReport+" and exit")
	dumpEmulators := flag.Bool("dump-emulators-json", false, "Write "+emulatorsJSON+" and exit")
	dumpTests := flag.Bool("dump-tests-json", false, "Write "+testsJSON+" and exit")
	summary := flag.String("summary", "", "Write a markdown summary of the results to this file")
	listen := flag.String("listen", "", "Stream progress events over websocket on this address")
	openReport := flag.Bool("open", false, "Open "+startupReport+" once written")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger, closeLog, err := log.New(log.Options{Debug: cfg.Debug, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closeLog()

	ctrl, ctrlErr := window.New(cfg.PollInterval)
	env := emulator.NewEnv(cfg, ctrl, logger)

	emulators := shootout.Apply(emulatorFilter, emulator.Default(env))
	tests := shootout.Apply(testFilter, testroms.All())
	logger.Infof("%d emulators", len(emulators))
	logger.Infof("%d tests", len(tests))

	runner := shootout.NewRunner(emulators, tests, logger)
	runner.OutDir = cfg.OutDir

	needsDesktop := func() bool {
		if ctrlErr != nil {
			logger.Errorf("%v", ctrlErr)
			return false
		}
		return true
	}

	if *getRuntime {
		if !needsDesktop() {
			return 1
		}
		if err := runner.Calibrate(os.Stdout); err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		return 0
	}

	if *dumpEmulators || *dumpTests {
		var errs error
		if *dumpEmulators {
			errs = multierr.Append(errs, runner.DumpEmulators(emulatorsJSON))
		}
		if *dumpTests {
			errs = multierr.Append(errs, runner.DumpTests(testsJSON))
		}
		if errs != nil {
			logger.Errorf("%v", errs)
			return 1
		}
		return 0
	}

	if *getStartup {
		if !needsDesktop() {
			return 1
		}
		path, err := runner.WriteStartupReport(startupReport)
		if err != nil {
			logger.Errorf("writing %s: %v", startupReport, err)
			return 1
		}
		if *openReport {
			if err := open.Run(path); err != nil {
				logger.Warnf("opening %s: %v", path, err)
			}
		}
		return 0
	}

	if !needsDesktop() {
		return 1
	}
	if *listen != "" {
		srv, err := live.Listen(*listen, live.NewHub(logger))
		if err != nil {
			logger.Errorf("listening on %s: %v", *listen, err)
			return 1
		}
		defer srv.Close()
		runner.Events = srv.Hub
	}

	results := runner.Run()
	if err := runner.WriteResults(results); err != nil {
		logger.Errorf("writing results: %v", err)
	}
	for i, er := range shootout.Rank(results) {
		logger.Infof("%d. %s: %d/%d", i+1, er.Emulator, er.Score(), len(er.Tests))
	}
	if *summary != "" {
		if err := runner.WriteSummary(results, *summary); err != nil {
			logger.Errorf("writing summary: %v", err)
		}
	}
	return 0
}
