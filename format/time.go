// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format renders time values as plain text.
package format // import "go.datavalues.net/format"

import (
	"errors"
	"regexp"
	"strings"

	"go.datavalues.net/timevalue"
)

// minus is U+2212 MINUS SIGN, which unlike a hyphen cannot be
// mistaken for a date separator.
const minus = "−"

// ErrNilValue is returned when formatting a nil TimeValue.
var ErrNilValue = errors.New("format: nil time value")

// Loose check for the ISO-like strings used by Gregorian and Julian
// time values.
var isoLike = regexp.MustCompile(`(?i)^([-+]?)(\d+)-(\d+)-(\d+)T(?:(\d+):(\d+)(?::(\d+))?)?Z?$`)

// A Renderer formats the timestamp of a time value. A TimeFormatter
// returns its output unmodified.
type Renderer interface {
	Render(v *timevalue.TimeValue) (string, error)
}

// An Option configures a TimeFormatter.
type Option func(*TimeFormatter)

// WithCalendarNames sets display names for calendar model URIs.
// The map is copied.
func WithCalendarNames(names map[string]string) Option {
	return func(f *TimeFormatter) {
		for uri, name := range names {
			f.calendarNames[uri] = name
		}
	}
}

// WithTimeISOFormatter makes the TimeFormatter delegate to r.
func WithTimeISOFormatter(r Renderer) Option {
	return func(f *TimeFormatter) { f.iso = r }
}

// A TimeFormatter formats time values as plain text, either through
// a Renderer or as a year-month-day string resembling ISO 8601 and
// truncated to the value's precision.
//
// A TimeFormatter is safe for concurrent use.
type TimeFormatter struct {
	calendarNames map[string]string
	iso           Renderer
}

// NewTimeFormatter returns a formatter configured by opts.
func NewTimeFormatter(opts ...Option) *TimeFormatter {
	f := &TimeFormatter{calendarNames: make(map[string]string)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format returns v as plain text.
//
// The calendar model is not part of the output; see CalendarName.
func (f *TimeFormatter) Format(v *timevalue.TimeValue) (string, error) {
	if v == nil {
		return "", ErrNilValue
	}
	if f.iso != nil {
		return f.iso.Render(v)
	}
	return formatTimestamp(v), nil
}

// CalendarName returns the display name configured for the calendar
// model uri, or uri itself.
func (f *TimeFormatter) CalendarName(uri string) string {
	if name, ok := f.calendarNames[uri]; ok {
		return name
	}
	return uri
}

func formatTimestamp(v *timevalue.TimeValue) string {
	m := isoLike.FindStringSubmatch(v.Time())
	if m == nil {
		return v.Time()
	}
	sign, year, month, day, hour, minute, second := m[1], m[2], m[3], m[4], m[5], m[6], m[7]

	if sign == "-" {
		sign = minus
	} else {
		sign = ""
	}
	// The year may exceed any integer type; trim it as text.
	year = strings.TrimLeft(year, "0")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(pad(year, 4))
	precision := v.Precision()
	if precision <= timevalue.PrecisionYear {
		return b.String()
	}
	b.WriteString("-" + pad(month, 2))
	if precision == timevalue.PrecisionMonth {
		return b.String()
	}
	b.WriteString("-" + pad(day, 2))
	if precision == timevalue.PrecisionDay {
		return b.String()
	}
	b.WriteString("T" + pad(hour, 2))
	if precision == timevalue.PrecisionHour {
		return b.String()
	}
	b.WriteString(":" + pad(minute, 2))
	if precision == timevalue.PrecisionMinute {
		return b.String()
	}
	b.WriteString(":" + pad(second, 2))
	return b.String()
}

// pad left-pads s with zeros to at least n characters.
func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
