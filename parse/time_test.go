// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.datavalues.net/parse"
	"go.datavalues.net/timevalue"
)

const (
	gregorian = timevalue.CalendarGregorian
	julian    = timevalue.CalendarJulian
)

type result struct {
	Time      string
	Precision timevalue.Precision
	Calendar  string
}

func resultOf(v *timevalue.TimeValue) result {
	return result{v.Time(), v.Precision(), v.CalendarModel()}
}

func TestParseValid(t *testing.T) {
	p := parse.NewTimeParser(nil)
	for _, test := range []struct {
		input string
		want  result
	}{
		{"+2013-01-01T00:00:00Z", result{"+0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, gregorian}},
		{"2013-00-00T00:00:00Z", result{"0000000000002013-00-00T00:00:00Z", timevalue.PrecisionYear, gregorian}},
		{"0000000000002013-01-01T00:00:00Z (Julian)", result{"0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, julian}},

		// finest non-zero field wins
		{"+2013-01-01T00:00:01Z", result{"+0000000000002013-01-01T00:00:01Z", timevalue.PrecisionSecond, gregorian}},
		{"+2013-01-01T00:01:00Z", result{"+0000000000002013-01-01T00:01:00Z", timevalue.PrecisionMinute, gregorian}},
		{"+2013-01-01T01:00:00Z", result{"+0000000000002013-01-01T01:00:00Z", timevalue.PrecisionHour, gregorian}},
		{"+2013-01-00T00:00:00Z", result{"+0000000000002013-01-00T00:00:00Z", timevalue.PrecisionMonth, gregorian}},
		{"+2013-00-01T00:00:00Z", result{"+0000000000002013-00-01T00:00:00Z", timevalue.PrecisionDay, gregorian}},

		// year precision within 4000 years of year zero
		{"+4000-00-00T00:00:00Z", result{"+0000000000004000-00-00T00:00:00Z", timevalue.PrecisionYear, gregorian}},
		{"-4000-00-00T00:00:00Z", result{"-0000000000004000-00-00T00:00:00Z", timevalue.PrecisionYear, gregorian}},
		{"+0-00-00T00:00:00Z", result{"+0000000000000000-00-00T00:00:00Z", timevalue.PrecisionYear, gregorian}},

		// round years further out are coarser
		{"+4001-00-00T00:00:00Z", result{"+0000000000004001-00-00T00:00:00Z", timevalue.PrecisionYear, gregorian}},
		{"+4010-00-00T00:00:00Z", result{"+0000000000004010-00-00T00:00:00Z", timevalue.Precision10a, gregorian}},
		{"+5000-00-00T00:00:00Z", result{"+0000000000005000-00-00T00:00:00Z", timevalue.PrecisionKa, gregorian}},
		{"-10000-00-00T00:00:00Z", result{"-0000000000010000-00-00T00:00:00Z", timevalue.Precision10ka, gregorian}},
		{"-1000000-00-00T00:00:00Z", result{"-0000000001000000-00-00T00:00:00Z", timevalue.PrecisionMa, gregorian}},
		{"+1000000000-00-00T00:00:00Z", result{"+0000001000000000-00-00T00:00:00Z", timevalue.PrecisionGa, gregorian}},
		{"+1000000000000000-00-00T00:00:00Z", result{"+1000000000000000-00-00T00:00:00Z", timevalue.PrecisionGa, gregorian}},

		// months and days are finer than any year rule
		{"+5000-03-00T00:00:00Z", result{"+0000000000005000-03-00T00:00:00Z", timevalue.PrecisionMonth, gregorian}},

		// white space, case and calendar annotations
		{"  -0002013-01-01t00:00:00z  ", result{"-0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, gregorian}},
		{"+2013-01-01T00:00:00Z(julian)", result{"+0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, julian}},
		{"+2013-01-01T00:00:00Z ( Gregorian ) ", result{"+0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, gregorian}},
		{"+2013-01-01T00:00:00Z ()", result{"+0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, gregorian}},
		{"+2013-01-01T00:00:00Z (" + julian + ")", result{"+0000000000002013-01-01T00:00:00Z", timevalue.PrecisionDay, julian}},
	} {
		v, err := p.Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, resultOf(v)); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParseYear(t *testing.T) {
	v, err := parse.NewTimeParser(nil).Parse("0000000000002013-01-01T00:00:00Z (Julian)")
	if err != nil {
		t.Fatal(err)
	}
	if v.Year() != "2013" {
		t.Errorf("Year() = %q, want 2013", v.Year())
	}
	if v.CalendarModel() != julian {
		t.Errorf("CalendarModel() = %q, want %q", v.CalendarModel(), julian)
	}
}

func TestParseInvalid(t *testing.T) {
	p := parse.NewTimeParser(nil)
	for _, test := range []struct {
		input     string
		malformed bool
	}{
		{"not a date", true},
		{"", true},
		{"2013-01-01", true},
		{"+2013-1-01T00:00:00Z", true},
		{"+2013-01-01T00:00:00", true},
		{"+2013-01-01 00:00:00Z", true},
		{"++2013-01-01T00:00:00Z", true},
		{"+12345678901234567-01-01T00:00:00Z", true},
		{"+2013-01-01T00:00:00Z (Julian", true},
		{"+2013-01-01T00:00:00Z Julian)", true},
		{"+2013-01-01T00:00:00Z Julian", true},
		{"+2013-01-01T00:00:00Z (Julian) x", true},
		{"+2013-01-01T00:00:00Z ((Julian))", true},

		// grammatical, but rejected later
		{"+2013-01-01T00:00:00Z (Jul)", false},
		{"+2013-01-01T00:00:00Z (Greece)", false},
		{"+2013-13-01T00:00:00Z", false},
		{"+2013-01-01T25:00:00Z", false},
	} {
		v, err := p.Parse(test.input)
		if err == nil {
			t.Errorf("Parse(%q) = %v, want error", test.input, v)
			continue
		}
		var perr *parse.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): got %T, want *ParseError", test.input, err)
			continue
		}
		if perr.Input != test.input {
			t.Errorf("Parse(%q): error input = %q", test.input, perr.Input)
		}
		if perr.Format != parse.FormatTime {
			t.Errorf("Parse(%q): error format = %q, want %q", test.input, perr.Format, parse.FormatTime)
		}
		if got := errors.Is(err, parse.ErrMalformed); got != test.malformed {
			t.Errorf("Parse(%q): errors.Is(err, ErrMalformed) = %t, want %t", test.input, got, test.malformed)
		}
	}
}

func TestParseErrorCauses(t *testing.T) {
	p := parse.NewTimeParser(nil)

	_, err := p.Parse("+2013-01-01T00:00:00Z (Jul)")
	var perr *parse.ParseError
	if !errors.As(err, &perr) || !errors.As(perr.Err, &perr) || perr.Format != parse.FormatCalendarModel {
		t.Errorf("unknown calendar: got %v, want wrapped calendar-model error", err)
	}

	_, err = p.Parse("+2013-02-32T00:00:00Z")
	var verr *timevalue.ValueError
	if !errors.As(err, &verr) {
		t.Errorf("bad day: got %v, want wrapped ValueError", err)
	}

	_, err = p.Parse("not a date")
	if want := `cannot parse time "not a date": malformed time`; err == nil || err.Error() != want {
		t.Errorf("got %v, want %s", err, want)
	}
}

func TestParseCalendarOption(t *testing.T) {
	const input = "+2013-01-01T00:00:00Z"
	for _, test := range []struct {
		option string
		input  string
		want   string
	}{
		{julian, input, julian},
		{gregorian, input, gregorian},
		{strings.ToUpper(julian), input, strings.ToUpper(julian)},
		{"Julian", input, gregorian},
		{"http://example.org/calendar", input, gregorian},
		{julian, input + " (Gregorian)", gregorian},
		{gregorian, input + " (Julian)", julian},
	} {
		p := parse.NewTimeParser(nil, parse.WithCalendar(test.option))
		v, err := p.Parse(test.input)
		if err != nil {
			t.Errorf("WithCalendar(%q).Parse(%q): %v", test.option, test.input, err)
			continue
		}
		if got := v.CalendarModel(); got != test.want {
			t.Errorf("WithCalendar(%q).Parse(%q) calendar = %q, want %q", test.option, test.input, got, test.want)
		}
	}
}

func TestParsePrecisionOption(t *testing.T) {
	for _, test := range []struct {
		input    string
		override timevalue.Precision
		want     timevalue.Precision
	}{
		{"+2013-01-01T00:00:00Z", timevalue.PrecisionYear, timevalue.PrecisionYear},
		{"+2013-01-01T00:00:00Z", timevalue.PrecisionGa, timevalue.PrecisionGa},
		{"+2013-01-01T00:00:00Z", timevalue.PrecisionDay, timevalue.PrecisionDay},
		{"+2013-01-01T00:00:00Z", timevalue.PrecisionSecond, timevalue.PrecisionDay},
		{"+2013-01-01T00:00:00Z", timevalue.PrecisionMonth, timevalue.PrecisionMonth},
		{"+5000-00-00T00:00:00Z", timevalue.PrecisionYear, timevalue.PrecisionKa},
		{"+5000-00-00T00:00:00Z", timevalue.Precision100a - 1, timevalue.PrecisionKa},
		{"+5000-00-00T00:00:00Z", timevalue.Precision10ka, timevalue.Precision10ka},
	} {
		p := parse.NewTimeParser(nil, parse.WithPrecision(test.override))
		v, err := p.Parse(test.input)
		if err != nil {
			t.Errorf("WithPrecision(%s).Parse(%q): %v", test.override, test.input, err)
			continue
		}
		if got := v.Precision(); got != test.want {
			t.Errorf("WithPrecision(%s).Parse(%q) precision = %s, want %s", test.override, test.input, got, test.want)
		}
	}
}

type fixedResolver string

func (r fixedResolver) Resolve(text string) (string, error) {
	if text == "mine" {
		return string(r), nil
	}
	return "", errors.New("not mine")
}

func TestParseCustomResolver(t *testing.T) {
	const persian = "http://www.wikidata.org/entity/Q208015"
	p := parse.NewTimeParser(fixedResolver(persian))

	v, err := p.Parse("+1392-01-01T00:00:00Z (mine)")
	if err != nil {
		t.Fatal(err)
	}
	if v.CalendarModel() != persian {
		t.Errorf("calendar = %q, want %q", v.CalendarModel(), persian)
	}

	// No annotation: the resolver is not consulted.
	v, err = p.Parse("+1392-01-01T00:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if v.CalendarModel() != gregorian {
		t.Errorf("calendar = %q, want %q", v.CalendarModel(), gregorian)
	}

	if _, err := p.Parse("+1392-01-01T00:00:00Z (Julian)"); err == nil {
		t.Error("resolver error was not reported")
	}
}

// Parsing preserves every digit of the input fields.
func TestParseRoundTrip(t *testing.T) {
	p := parse.NewTimeParser(nil)
	for _, input := range []string{
		"+1-02-03T04:05:06Z",
		"-9999999999999999-12-31T23:59:59Z",
		"0000000000000001-00-00T00:00:00Z",
		"+0000321-07-00T00:00:00Z",
		"-44-03-15T00:00:00Z (Julian)",
	} {
		v, err := p.Parse(input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)
			continue
		}
		// Strip the annotation and padding from input to compare digits.
		want := strings.TrimSpace(strings.SplitN(input, "(", 2)[0])
		sign := ""
		if want[0] == '+' || want[0] == '-' {
			sign, want = want[:1], want[1:]
		}
		dash := strings.IndexByte(want, '-')
		want = sign + strings.Repeat("0", 16-dash) + want
		if v.Time() != want {
			t.Errorf("Parse(%q).Time() = %q, want %q", input, v.Time(), want)
		}

		again, err := p.Parse(v.Time())
		if err != nil {
			t.Errorf("Parse(%q): %v", v.Time(), err)
			continue
		}
		if again.Time() != v.Time() || again.Precision() != v.Precision() {
			t.Errorf("reparse of %q = %v, want %v", v.Time(), again, v)
		}
	}
}

func TestParseConcurrent(t *testing.T) {
	p := parse.NewTimeParser(nil, parse.WithPrecision(timevalue.PrecisionMonth))
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < cap(errs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := p.Parse("+2013-07-16T00:00:00Z (Julian)")
			if err == nil && v.Precision() != timevalue.PrecisionMonth {
				err = errors.New("wrong precision " + v.Precision().String())
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}
