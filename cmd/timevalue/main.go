// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The timevalue command parses timestamps such as
//
//	+2013-07-16T00:00:00Z (Julian)
//
// and prints them truncated to their precision.
// With no arguments it reads timestamps from standard input,
// interactively if standard input is a terminal.
package main // import "go.datavalues.net/cmd/timevalue"

import (
	"flag"
	"fmt"
	"os"

	"go.datavalues.net/parse"
	"go.datavalues.net/starlarktimevalue"
	"go.starlark.net/starlark"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// flags
var (
	configFile   = flag.String("config", "", "read settings from YAML `file`")
	calendar     = flag.String("calendar", "", "calendar model `uri` for timestamps without one")
	precision    = flag.String("precision", "", "override the inferred precision with a coarser `name`")
	jsonOutput   = flag.Bool("json", false, "print parsed values as JSON")
	showCalendar = flag.Bool("show-calendar", false, "append the calendar name to each timestamp")
	script       = flag.String("script", "", "execute Starlark `file` with the timevalue module predeclared")
	verbose      = flag.Bool("v", false, "log debug output")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "timevalue:", err)
		return 1
	}
	defer log.Sync()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Error("cannot load config", zap.Error(err))
		return 1
	}
	if *calendar != "" {
		cfg.Calendar = *calendar
	}
	if *precision != "" {
		cfg.Precision = *precision
	}
	opts, err := cfg.parserOptions()
	if err != nil {
		log.Error("bad precision", zap.Error(err))
		return 1
	}

	resolver := cfg.resolver()
	formatter := cfg.formatter()

	if *script != "" {
		if err := runScript(*script, starlarktimevalue.NewModule(resolver, formatter)); err != nil {
			if evalErr, ok := err.(*starlark.EvalError); ok {
				fmt.Fprintln(os.Stderr, evalErr.Backtrace())
			} else {
				log.Error("script failed", zap.Error(err))
			}
			return 1
		}
		return 0
	}

	a := &app{
		parser:       parse.NewTimeParser(resolver, opts...),
		formatter:    formatter,
		out:          os.Stdout,
		log:          log,
		json:         *jsonOutput,
		showCalendar: *showCalendar,
	}
	log.Debug("configured",
		zap.String("calendar", cfg.Calendar),
		zap.String("precision", cfg.Precision),
		zap.Int("calendar_model_uris", len(cfg.CalendarModelURIs)))

	switch {
	case flag.NArg() > 0:
		err = a.processAll(flag.Args())
	case term.IsTerminal(int(os.Stdin.Fd())):
		err = a.interact()
	default:
		err = a.processLines(os.Stdin)
	}
	if err != nil {
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("timevalue"), nil
}

func runScript(filename string, module starlark.Value) error {
	thread := &starlark.Thread{Name: "exec " + filename}
	predeclared := starlark.StringDict{starlarktimevalue.ModuleName: module}
	_, err := starlark.ExecFile(thread, filename, nil, predeclared)
	return err
}
