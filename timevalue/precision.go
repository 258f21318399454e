// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timevalue

import (
	"fmt"
	"strconv"
	"strings"
)

// A Precision is the granularity of a time value.
//
// Smaller values are coarser: PrecisionGa is the coarsest step and
// PrecisionSecond the finest. Code comparing precisions relies on
// this ordering.
type Precision int

const (
	PrecisionGa     Precision = iota // billion years
	Precision100Ma                   // hundred million years
	Precision10Ma                    // ten million years
	PrecisionMa                      // million years
	Precision100ka                   // hundred thousand years
	Precision10ka                    // ten thousand years
	PrecisionKa                      // millennium
	Precision100a                    // century
	Precision10a                     // decade
	PrecisionYear
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
)

var precisionNames = [...]string{
	PrecisionGa:     "Ga",
	Precision100Ma:  "100Ma",
	Precision10Ma:   "10Ma",
	PrecisionMa:     "Ma",
	Precision100ka:  "100ka",
	Precision10ka:   "10ka",
	PrecisionKa:     "ka",
	Precision100a:   "100a",
	Precision10a:    "10a",
	PrecisionYear:   "year",
	PrecisionMonth:  "month",
	PrecisionDay:    "day",
	PrecisionHour:   "hour",
	PrecisionMinute: "minute",
	PrecisionSecond: "second",
}

// Valid reports whether p is one of the defined precision steps.
func (p Precision) Valid() bool {
	return p >= PrecisionGa && p <= PrecisionSecond
}

func (p Precision) String() string {
	if p.Valid() {
		return precisionNames[p]
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// Precisions returns all defined precisions, coarsest first.
func Precisions() []Precision {
	ps := make([]Precision, 0, len(precisionNames))
	for p := PrecisionGa; p <= PrecisionSecond; p++ {
		ps = append(ps, p)
	}
	return ps
}

// ParsePrecision returns the precision named by s, which is either
// a precision name ("day", "10a", "Ga"), matched case-insensitively,
// or its decimal ordinal.
func ParsePrecision(s string) (Precision, error) {
	s = strings.TrimSpace(s)
	for p, name := range precisionNames {
		if strings.EqualFold(s, name) {
			return Precision(p), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Precision(n).Valid() {
		return Precision(n), nil
	}
	return 0, fmt.Errorf("unknown precision %q", s)
}
