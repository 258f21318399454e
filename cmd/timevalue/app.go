// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hashicorp/go-multierror"
	"go.datavalues.net/format"
	"go.datavalues.net/parse"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
)

// app parses timestamps and prints them.
type app struct {
	parser       *parse.TimeParser
	formatter    *format.TimeFormatter
	out          io.Writer
	log          *zap.Logger
	json         bool
	showCalendar bool
}

// process parses and prints one timestamp.
func (a *app) process(input string) error {
	v, err := a.parser.Parse(input)
	if err != nil {
		return err
	}
	a.log.Debug("parsed",
		zap.String("input", input),
		zap.String("time", v.Time()),
		zap.Stringer("precision", v.Precision()),
		zap.String("calendar", v.CalendarModel()))

	if a.json {
		s, err := v.AsStruct()
		if err != nil {
			return err
		}
		data, err := protojson.Marshal(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(a.out, "%s\n", data)
		return err
	}

	text, err := a.formatter.Format(v)
	if err != nil {
		return err
	}
	if a.showCalendar {
		text += " (" + a.formatter.CalendarName(v.CalendarModel()) + ")"
	}
	_, err = fmt.Fprintln(a.out, text)
	return err
}

// processAll processes each input, logging failures as they occur,
// and returns all of them.
func (a *app) processAll(inputs []string) error {
	var result *multierror.Error
	for _, input := range inputs {
		if err := a.process(input); err != nil {
			a.log.Error("cannot process timestamp", zap.Error(err))
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// processLines processes each non-blank line of r.
func (a *app) processLines(r io.Reader) error {
	var inputs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return a.processAll(inputs)
}

// interact reads timestamps from the terminal until EOF. Errors are
// reported but do not end the session.
func (a *app) interact() error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := a.process(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
