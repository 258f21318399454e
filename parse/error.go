// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"errors"
	"fmt"
)

// Format names carried by a ParseError.
const (
	FormatTime          = "time"
	FormatCalendarModel = "calendar-model"
)

// ErrMalformed is matched by errors.Is for input that does not follow
// the timestamp grammar.
var ErrMalformed = errors.New("malformed time")

// A ParseError reports input that could not be parsed.
// Input is the complete original input, not the offending fragment.
type ParseError struct {
	Input  string
	Format string
	Msg    string
	Err    error // underlying cause, if any
}

func (e *ParseError) Error() string {
	msg := e.Msg
	switch {
	case e.Err == nil:
	case msg == "":
		msg = e.Err.Error()
	default:
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("cannot parse %s %q: %s", e.Format, e.Input, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
