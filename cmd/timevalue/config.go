// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"go.datavalues.net/format"
	"go.datavalues.net/parse"
	"go.datavalues.net/timevalue"
	"gopkg.in/yaml.v3"
)

// config is the contents of a -config file. Flags take precedence.
type config struct {
	Calendar          string            `yaml:"calendar"`
	Precision         string            `yaml:"precision"`
	CalendarModelURIs map[string]string `yaml:"calendar_model_uris"`
	CalendarNames     map[string]string `yaml:"calendar_names"`
}

func loadConfig(filename string) (*config, error) {
	cfg := new(config)
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func (cfg *config) resolver() *parse.CalendarModelParser {
	return parse.NewCalendarModelParser(parse.WithCalendarModelURIs(cfg.CalendarModelURIs))
}

func (cfg *config) parserOptions() ([]parse.Option, error) {
	var opts []parse.Option
	if cfg.Calendar != "" {
		opts = append(opts, parse.WithCalendar(cfg.Calendar))
	}
	if cfg.Precision != "" {
		p, err := timevalue.ParsePrecision(cfg.Precision)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parse.WithPrecision(p))
	}
	return opts, nil
}

func (cfg *config) formatter() *format.TimeFormatter {
	return format.NewTimeFormatter(format.WithCalendarNames(cfg.CalendarNames))
}
