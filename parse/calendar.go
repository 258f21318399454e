// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"go.datavalues.net/timevalue"
)

// A CalendarModelResolver maps a calendar name or URI to a canonical
// calendar model URI.
type CalendarModelResolver interface {
	Resolve(text string) (string, error)
}

// CalendarModelParser is the default CalendarModelResolver.
//
// It accepts, in order of preference:
//
//	keys of the URI map given by WithCalendarModelURIs (exact match)
//	the canonical Gregorian and Julian URIs (exact match)
//	"Gregorian", "Western", "Christian", "Julian" (any case, trimmed)
//	the empty string, meaning Gregorian
//
// Abbreviations such as "Jul" or "gr" are rejected.
type CalendarModelParser struct {
	uris map[string]string
}

var _ CalendarModelResolver = (*CalendarModelParser)(nil)

// A CalendarOption configures a CalendarModelParser.
type CalendarOption func(*CalendarModelParser)

// WithCalendarModelURIs adds localized calendar model names.
// The map is copied.
func WithCalendarModelURIs(uris map[string]string) CalendarOption {
	return func(p *CalendarModelParser) {
		for name, uri := range uris {
			p.uris[name] = uri
		}
	}
}

// NewCalendarModelParser returns a resolver configured by opts.
func NewCalendarModelParser(opts ...CalendarOption) *CalendarModelParser {
	p := &CalendarModelParser{uris: make(map[string]string)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve returns the calendar model URI named by text.
func (p *CalendarModelParser) Resolve(text string) (string, error) {
	if uri, ok := p.uris[text]; ok {
		return uri, nil
	}
	if text == timevalue.CalendarGregorian || text == timevalue.CalendarJulian {
		return text, nil
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "gregorian", "western", "christian":
		return timevalue.CalendarGregorian, nil
	case "julian":
		return timevalue.CalendarJulian, nil
	}
	return "", &ParseError{Input: text, Format: FormatCalendarModel, Msg: "unknown calendar model"}
}
