// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse converts text to time values.
//
// TimeParser accepts timestamps of the form
//
//	[+-]Y-MM-DDThh:mm:ssZ (calendar)
//
// where Y has 1 to 16 digits and the parenthesized calendar is
// optional. The precision of the result is inferred from the digits
// unless a coarser one is configured.
package parse // import "go.datavalues.net/parse"

import (
	"math/big"
	"regexp"
	"strings"

	"go.datavalues.net/timevalue"
)

// yearDigits is the width years are padded to.
const yearDigits = 16

var timestampPattern = regexp.MustCompile(`(?i)^\s*([+-]?)(\d{1,16})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})Z(?:\s*\(([^()]*)\))?\s*$`)

// Years within this distance of year zero default to year precision.
var yearPrecisionLimit = big.NewInt(4000)

// An Option configures a TimeParser.
type Option func(*config)

type config struct {
	calendar     string
	precision    timevalue.Precision
	hasPrecision bool
}

// WithCalendar sets the calendar model assumed for input without a
// calendar annotation. Only the Gregorian and Julian URIs are
// honored; anything else falls back to Gregorian.
func WithCalendar(uri string) Option {
	return func(c *config) { c.calendar = uri }
}

// WithPrecision sets a precision override. It applies only where it
// is coarser than or equal to the precision inferred from the input.
func WithPrecision(p timevalue.Precision) Option {
	return func(c *config) {
		c.precision = p
		c.hasPrecision = true
	}
}

// A TimeParser parses timestamps into TimeValues.
// It is safe for concurrent use.
type TimeParser struct {
	resolver CalendarModelResolver
	config   config
}

// NewTimeParser returns a parser that resolves calendar annotations
// with resolver. A nil resolver means NewCalendarModelParser().
func NewTimeParser(resolver CalendarModelResolver, opts ...Option) *TimeParser {
	if resolver == nil {
		resolver = NewCalendarModelParser()
	}
	p := &TimeParser{
		resolver: resolver,
		config:   config{calendar: timevalue.CalendarGregorian},
	}
	for _, opt := range opts {
		opt(&p.config)
	}
	return p
}

// timeParts holds the fields split from the input.
type timeParts struct {
	sign, year, month, day, hour, minute, second string
	calendar                                     string
}

// Parse parses input. Every failure is a *ParseError whose Input is
// input and whose Format is FormatTime.
func (p *TimeParser) Parse(input string) (*timevalue.TimeValue, error) {
	parts, ok := splitTimeString(input)
	if !ok {
		return nil, &ParseError{Input: input, Format: FormatTime, Err: ErrMalformed}
	}
	parts.year = padYear(parts.year)

	calendar, err := p.calendarModel(parts.calendar)
	if err != nil {
		return nil, &ParseError{Input: input, Format: FormatTime, Msg: "bad calendar model", Err: err}
	}

	precision := precisionFromParts(parts)
	if p.config.hasPrecision && p.config.precision <= precision {
		precision = p.config.precision
	}

	v, err := timevalue.New(parts.canonical(), 0, 0, 0, precision, calendar)
	if err != nil {
		return nil, &ParseError{Input: input, Format: FormatTime, Msg: "invalid time", Err: err}
	}
	return v, nil
}

func (p *TimeParser) calendarModel(raw string) (string, error) {
	switch {
	case raw == "" && timevalue.IsKnownCalendar(p.config.calendar):
		return p.config.calendar, nil
	case raw != "":
		return p.resolver.Resolve(raw)
	}
	return timevalue.CalendarGregorian, nil
}

func splitTimeString(s string) (timeParts, bool) {
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return timeParts{}, false
	}
	return timeParts{
		sign:     m[1],
		year:     m[2],
		month:    m[3],
		day:      m[4],
		hour:     m[5],
		minute:   m[6],
		second:   m[7],
		calendar: strings.TrimSpace(m[8]),
	}, true
}

func padYear(year string) string {
	if n := yearDigits - len(year); n > 0 {
		return strings.Repeat("0", n) + year
	}
	return year
}

func precisionFromParts(parts timeParts) timevalue.Precision {
	switch {
	case parts.second != "00":
		return timevalue.PrecisionSecond
	case parts.minute != "00":
		return timevalue.PrecisionMinute
	case parts.hour != "00":
		return timevalue.PrecisionHour
	case parts.day != "00":
		return timevalue.PrecisionDay
	case parts.month != "00":
		return timevalue.PrecisionMonth
	}
	return precisionFromYear(parts.year)
}

// precisionFromYear treats round years far from the present as less
// precise: each trailing zero of a year beyond ±4000 is one step
// coarser than year precision, down to Ga.
func precisionFromYear(year string) timevalue.Precision {
	y, _ := new(big.Int).SetString(year, 10)
	if y.CmpAbs(yearPrecisionLimit) <= 0 {
		return timevalue.PrecisionYear
	}
	zeros := len(year) - len(strings.TrimRight(year, "0"))
	precision := timevalue.PrecisionYear - timevalue.Precision(zeros)
	if precision < timevalue.PrecisionGa {
		precision = timevalue.PrecisionGa
	}
	return precision
}

// canonical returns the time string for the parts. It panics if a
// field is missing, since splitTimeString always sets them all.
func (parts timeParts) canonical() string {
	for _, f := range [...]string{parts.year, parts.month, parts.day, parts.hour, parts.minute, parts.second} {
		if f == "" {
			panic("parse: incomplete time parts")
		}
	}
	return parts.sign + parts.year + "-" + parts.month + "-" + parts.day +
		"T" + parts.hour + ":" + parts.minute + ":" + parts.second + "Z"
}
