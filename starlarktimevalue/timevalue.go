// Copyright 2020 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package starlarktimevalue exposes time value parsing and formatting
// to Starlark programs.
package starlarktimevalue // import "go.datavalues.net/starlarktimevalue"

import (
	"fmt"
	"strings"

	"go.datavalues.net/format"
	"go.datavalues.net/parse"
	"go.datavalues.net/timevalue"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// ModuleName is the name under which the module is predeclared.
const ModuleName = "timevalue"

// Module timevalue is a Starlark module for historical timestamps.
//
//	parse(s, calendar=GREGORIAN, precision=None) - parses s, for example
//	    "+2013-07-16T00:00:00Z (Julian)", into a value. calendar applies
//	    when s has no calendar annotation; precision overrides the
//	    inferred precision if it is coarser.
//
//	format(v) - returns v as text truncated to its precision.
//
//	value(time, precision, calendar=GREGORIAN) - constructs a value
//	    from a stored time string without parsing it.
//
//	precision(x) - returns the ordinal of a precision name such as
//	    "day" or "10a". Smaller is coarser.
//
// The module also defines GREGORIAN and JULIAN, the calendar model
// URIs, and PRECISION_GA through PRECISION_SECOND.
var Module = NewModule(nil, nil)

// LoadModule loads the timevalue module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// NewModule returns a timevalue module whose parse function resolves
// calendar names with resolver and whose values format with f.
// Nil arguments select the defaults.
func NewModule(resolver parse.CalendarModelResolver, f *format.TimeFormatter) *starlarkstruct.Module {
	if resolver == nil {
		resolver = parse.NewCalendarModelParser()
	}
	if f == nil {
		f = format.NewTimeFormatter()
	}
	m := &module{resolver: resolver, formatter: f}
	members := starlark.StringDict{
		"parse":     starlark.NewBuiltin("parse", m.parse),
		"format":    starlark.NewBuiltin("format", m.format),
		"value":     starlark.NewBuiltin("value", m.value),
		"precision": starlark.NewBuiltin("precision", precisionOf),

		"GREGORIAN": starlark.String(timevalue.CalendarGregorian),
		"JULIAN":    starlark.String(timevalue.CalendarJulian),
	}
	for _, p := range timevalue.Precisions() {
		members["PRECISION_"+strings.ToUpper(p.String())] = starlark.MakeInt(int(p))
	}
	return &starlarkstruct.Module{Name: ModuleName, Members: members}
}

type module struct {
	resolver  parse.CalendarModelResolver
	formatter *format.TimeFormatter
}

func (m *module) parse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		s         string
		calendar  = timevalue.CalendarGregorian
		precision optionalPrecision
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "s", &s, "calendar?", &calendar, "precision?", &precision); err != nil {
		return nil, err
	}
	opts := []parse.Option{parse.WithCalendar(calendar)}
	if precision.set {
		opts = append(opts, parse.WithPrecision(precision.p))
	}
	v, err := parse.NewTimeParser(m.resolver, opts...).Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Value{v, m.formatter}, nil
}

func (m *module) format(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	s, err := m.formatter.Format(v.v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.String(s), nil
}

func (m *module) value(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		time      string
		precision optionalPrecision
		calendar  = timevalue.CalendarGregorian
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "time", &time, "precision", &precision, "calendar?", &calendar); err != nil {
		return nil, err
	}
	if !precision.set {
		return nil, fmt.Errorf("%s: precision is required", b.Name())
	}
	v, err := timevalue.New(time, 0, 0, 0, precision.p, calendar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Value{v, m.formatter}, nil
}

func precisionOf(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var p optionalPrecision
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &p); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(p.p)), nil
}

// optionalPrecision unpacks a precision name or ordinal.
// None leaves it unset.
type optionalPrecision struct {
	p   timevalue.Precision
	set bool
}

var _ starlark.Unpacker = (*optionalPrecision)(nil)

func (o *optionalPrecision) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil
	case starlark.String:
		p, err := timevalue.ParsePrecision(string(x))
		if err != nil {
			return err
		}
		o.p, o.set = p, true
		return nil
	case starlark.Int:
		i, ok := x.Int64()
		if !ok || !timevalue.Precision(i).Valid() {
			return fmt.Errorf("precision %s out of range", x)
		}
		o.p, o.set = timevalue.Precision(i), true
		return nil
	}
	return fmt.Errorf("got %s, want precision name or int", v.Type())
}

// Value is the Starlark representation of a time value.
type Value struct {
	v *timevalue.TimeValue
	f *format.TimeFormatter
}

var (
	_ starlark.HasAttrs   = Value{}
	_ starlark.Comparable = Value{}
	_ starlark.Unpacker   = (*Value)(nil)
)

// TimeValue returns the underlying time value.
func (v Value) TimeValue() *timevalue.TimeValue { return v.v }

// Unpack accepts only Values.
func (v *Value) Unpack(x starlark.Value) error {
	y, ok := x.(Value)
	if !ok {
		return fmt.Errorf("got %s, want %s", x.Type(), v.Type())
	}
	*v = y
	return nil
}

func (v Value) String() string { return v.v.String() }

// Type returns "timevalue.value".
func (v Value) Type() string { return "timevalue.value" }

// Freeze is a no-op; values are immutable.
func (v Value) Freeze() {}

func (v Value) Truth() starlark.Bool { return starlark.True }

func (v Value) Hash() (uint32, error) {
	return starlark.String(v.v.Time()).Hash()
}

// CompareSameType supports == and != only; time values of different
// calendars and precisions have no meaningful order.
func (v Value) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	eq := v.v.Equal(y.(Value).v)
	switch op {
	case syntax.EQL:
		return eq, nil
	case syntax.NEQ:
		return !eq, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
}

func (v Value) Attr(name string) (starlark.Value, error) {
	switch name {
	case "time":
		return starlark.String(v.v.Time()), nil
	case "sign":
		return starlark.String(v.v.Sign()), nil
	case "year":
		if y := v.v.YearInt(); y != nil {
			return starlark.MakeBigInt(y), nil
		}
		return starlark.None, nil
	case "month":
		return starlark.MakeInt(v.v.Month()), nil
	case "day":
		return starlark.MakeInt(v.v.Day()), nil
	case "hour":
		return starlark.MakeInt(v.v.Hour()), nil
	case "minute":
		return starlark.MakeInt(v.v.Minute()), nil
	case "second":
		return starlark.MakeInt(v.v.Second()), nil
	case "precision":
		return starlark.String(v.v.Precision().String()), nil
	case "calendar":
		return starlark.String(v.v.CalendarModel()), nil
	case "format":
		return starlark.NewBuiltin("format", v.format).BindReceiver(v), nil
	}
	return nil, nil // no such attribute
}

func (v Value) AttrNames() []string {
	return []string{
		"calendar",
		"day",
		"format",
		"hour",
		"minute",
		"month",
		"precision",
		"second",
		"sign",
		"time",
		"year",
	}
}

func (v Value) format(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	s, err := v.f.Format(v.v)
	if err != nil {
		return nil, err
	}
	return starlark.String(s), nil
}
