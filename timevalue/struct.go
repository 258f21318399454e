// Copyright 2020 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timevalue

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the Struct encoding.
const (
	fieldTime          = "time"
	fieldTimezone      = "timezone"
	fieldBefore        = "before"
	fieldAfter         = "after"
	fieldPrecision     = "precision"
	fieldCalendarModel = "calendarmodel"
)

// AsStruct encodes v as a protocol buffer Struct, suitable for
// rendering with protojson. Precision is encoded as its ordinal.
func (v *TimeValue) AsStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldTime:          v.time,
		fieldTimezone:      v.timezone,
		fieldBefore:        v.before,
		fieldAfter:         v.after,
		fieldPrecision:     int(v.precision),
		fieldCalendarModel: v.calendarModel,
	})
}

// FromStruct decodes a Struct produced by AsStruct.
// The decoded fields are validated as by New.
func FromStruct(s *structpb.Struct) (*TimeValue, error) {
	fields := s.GetFields()
	str := func(name string) (string, error) {
		f, ok := fields[name]
		if !ok {
			return "", fmt.Errorf("missing field %q", name)
		}
		x, ok := f.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", fmt.Errorf("field %q: want string", name)
		}
		return x.StringValue, nil
	}
	num := func(name string) (int, error) {
		f, ok := fields[name]
		if !ok {
			return 0, fmt.Errorf("missing field %q", name)
		}
		x, ok := f.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return 0, fmt.Errorf("field %q: want number", name)
		}
		n := int(x.NumberValue)
		if float64(n) != x.NumberValue {
			return 0, fmt.Errorf("field %q: %v is not an integer", name, x.NumberValue)
		}
		return n, nil
	}

	time, err := str(fieldTime)
	if err != nil {
		return nil, err
	}
	calendar, err := str(fieldCalendarModel)
	if err != nil {
		return nil, err
	}
	var ints [4]int
	for i, name := range [...]string{fieldTimezone, fieldBefore, fieldAfter, fieldPrecision} {
		if ints[i], err = num(name); err != nil {
			return nil, err
		}
	}
	return New(time, ints[0], ints[1], ints[2], Precision(ints[3]), calendar)
}
