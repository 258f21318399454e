// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timevalue defines TimeValue, an immutable point in time of
// arbitrary magnitude tagged with a calendar model and a precision.
//
// The time is kept in its textual form, for example
//
//	+0000000000002013-01-01T00:00:00Z
//
// and the year is never narrowed to a machine integer, so years of up
// to 16 digits survive unchanged. YearInt provides an arbitrary
// precision view for numeric comparisons.
package timevalue // import "go.datavalues.net/timevalue"

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Calendar model URIs understood throughout this module.
const (
	CalendarGregorian = "http://www.wikidata.org/entity/Q1985727"
	CalendarJulian    = "http://www.wikidata.org/entity/Q1985786"
)

// IsKnownCalendar reports whether uri is one of the canonical calendar
// model URIs, ignoring case.
func IsKnownCalendar(uri string) bool {
	return strings.EqualFold(uri, CalendarGregorian) || strings.EqualFold(uri, CalendarJulian)
}

// Timezone offsets are in minutes.
const (
	MinTimezone = -12 * 60
	MaxTimezone = 14 * 60
)

// isoTime is the strict form required of Gregorian and Julian values.
var isoTime = regexp.MustCompile(`^([-+]?)(\d{1,16})-(0\d|1[0-2])-([0-2]\d|3[01])T([01]\d|2[0-3]):([0-5]\d):([0-5]\d|6[0-2])Z$`)

// A TimeValue is an immutable time with precision and calendar model.
// The zero value is not valid; use New.
type TimeValue struct {
	time          string
	timezone      int
	before, after int
	precision     Precision
	calendarModel string

	// split from time; left empty if time is not ISO-like
	sign, year                       string
	month, day, hour, minute, second int
}

// A ValueError reports a TimeValue that could not be constructed.
type ValueError struct {
	Field string
	Msg   string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid time value: %s: %s", e.Field, e.Msg)
}

// New returns a TimeValue after validating its fields.
//
// For the Gregorian and Julian calendar models, time must be in the
// strict form [+-]Y-MM-DDThh:mm:ssZ with 1 to 16 year digits. Other
// calendar models may store any non-empty representation.
// The timezone is an offset in minutes; before and after are
// non-negative uncertainties in units of the precision.
func New(time string, timezone, before, after int, precision Precision, calendarModel string) (*TimeValue, error) {
	if !precision.Valid() {
		return nil, &ValueError{"precision", fmt.Sprintf("%d out of range", int(precision))}
	}
	if calendarModel == "" {
		return nil, &ValueError{"calendarmodel", "empty"}
	}
	if timezone < MinTimezone || timezone > MaxTimezone {
		return nil, &ValueError{"timezone", fmt.Sprintf("%d minutes out of range", timezone)}
	}
	if before < 0 {
		return nil, &ValueError{"before", "negative"}
	}
	if after < 0 {
		return nil, &ValueError{"after", "negative"}
	}

	v := &TimeValue{
		time:          time,
		timezone:      timezone,
		before:        before,
		after:         after,
		precision:     precision,
		calendarModel: calendarModel,
	}
	m := isoTime.FindStringSubmatch(time)
	switch {
	case m != nil:
		v.sign, v.year = m[1], m[2]
		v.month = atoi2(m[3])
		v.day = atoi2(m[4])
		v.hour = atoi2(m[5])
		v.minute = atoi2(m[6])
		v.second = atoi2(m[7])
	case IsKnownCalendar(calendarModel):
		return nil, &ValueError{"time", fmt.Sprintf("%q is not a valid timestamp", time)}
	case time == "":
		return nil, &ValueError{"time", "empty"}
	}
	return v, nil
}

// atoi2 converts a two-digit field already checked by isoTime.
func atoi2(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Time returns the stored time string.
func (v *TimeValue) Time() string { return v.time }

// Sign returns "+", "-" or "" as stored.
func (v *TimeValue) Sign() string { return v.sign }

// Year returns the year digits without leading zeros, or "0".
// It returns "" if the stored time is not ISO-like.
func (v *TimeValue) Year() string {
	if v.year == "" {
		return ""
	}
	if y := strings.TrimLeft(v.year, "0"); y != "" {
		return y
	}
	return "0"
}

// YearInt returns the signed year, or nil if the stored time is not
// ISO-like.
func (v *TimeValue) YearInt() *big.Int {
	if v.year == "" {
		return nil
	}
	y, _ := new(big.Int).SetString(v.year, 10)
	if v.sign == "-" {
		y.Neg(y)
	}
	return y
}

func (v *TimeValue) Month() int { return v.month }
func (v *TimeValue) Day() int { return v.day }
func (v *TimeValue) Hour() int { return v.hour }
func (v *TimeValue) Minute() int { return v.minute }
func (v *TimeValue) Second() int { return v.second }
func (v *TimeValue) Timezone() int { return v.timezone }
func (v *TimeValue) Before() int { return v.before }
func (v *TimeValue) After() int { return v.after }
func (v *TimeValue) Precision() Precision { return v.precision }
func (v *TimeValue) CalendarModel() string { return v.calendarModel }

// String returns a debugging representation of v.
func (v *TimeValue) String() string {
	return fmt.Sprintf("%s (%s, %s)", v.time, v.precision, v.calendarModel)
}

// Equal reports whether v and w hold the same fields.
func (v *TimeValue) Equal(w *TimeValue) bool {
	if v == nil || w == nil {
		return v == w
	}
	return v.time == w.time &&
		v.timezone == w.timezone &&
		v.before == w.before &&
		v.after == w.after &&
		v.precision == w.precision &&
		v.calendarModel == w.calendarModel
}
