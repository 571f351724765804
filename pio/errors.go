// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import "strconv"

// Code identifies a failure condition. It implements error so it can be
// matched with errors.Is.
type Code int

const (
	// Init class.
	NoAccess Code = iota + 1
	OutOfMemory
	MapFailed
	// Config class.
	InvalidDirection
	InvalidLevel
	InvalidPull
	InvalidDrive
	InvalidPin
	// Runtime class.
	NotOutput
	NotInput
	ReadFailed
	NotInitialized
)

var codeMsgs = map[Code]string{
	NoAccess:         "no access to /dev/mem, try running as root",
	OutOfMemory:      "out of memory",
	MapFailed:        "mmap failed",
	InvalidDirection: "invalid direction",
	InvalidLevel:     "invalid output state",
	InvalidPull:      "invalid pull",
	InvalidDrive:     "invalid drive level",
	InvalidPin:       "invalid pin",
	NotOutput:        "gpio is not an output",
	NotInput:         "gpio is not an input",
	ReadFailed:       "reading pin failed",
	NotInitialized:   "not initialized",
}

func (c Code) Error() string {
	if s, ok := codeMsgs[c]; ok {
		return s
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// Class groups codes.
type Class int

const (
	ClassUnknown Class = iota
	ClassInit
	ClassConfig
	ClassRuntime
)

func (c Class) String() string {
	switch c {
	case ClassInit:
		return "InitError"
	case ClassConfig:
		return "ConfigError"
	case ClassRuntime:
		return "RuntimeError"
	default:
		return "Unknown"
	}
}

// Class returns the class of the code.
func (c Code) Class() Class {
	switch {
	case c >= NoAccess && c <= MapFailed:
		return ClassInit
	case c >= InvalidDirection && c <= InvalidPin:
		return ClassConfig
	case c >= NotOutput && c <= NotInitialized:
		return ClassRuntime
	default:
		return ClassUnknown
	}
}

// Error is returned by every failing operation of this package.
//
// It matches both its Code and its cause with errors.Is.
type Error struct {
	Op   string
	Pin  Pin // NoPin when not applicable
	Code Code
	Err  error // cause, may be nil
}

func (e *Error) Error() string {
	s := "sunxi-pio: " + e.Op
	if e.Pin != NoPin {
		s += "(" + e.Pin.String() + ")"
	}
	s += ": " + e.Code.Error()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}

func wrap(op string, p Pin, c Code, err error) error {
	return &Error{Op: op, Pin: p, Code: c, Err: err}
}
