// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import "errors"

// Controller performs the pin operations on a live register window.
//
// It holds no lock and no state besides the register file.
type Controller struct {
	regs *RegisterFile
}

// NewController returns a Controller over regs.
func NewController(regs *RegisterFile) *Controller {
	return &Controller{regs: regs}
}

// regErr wraps a register access failure. A Controller kept past
// Driver.Cleanup reports NotInitialized.
func regErr(op string, p Pin, err error) error {
	if errors.Is(err, errReleased) {
		return wrap(op, p, NotInitialized, err)
	}
	return wrap(op, p, ReadFailed, err)
}

// SetFunction sets the function of p.
//
// Only Input, Output and Peripheral are accepted; the other pins sharing the
// configuration register keep their function.
func (c *Controller) SetFunction(p Pin, f Function) error {
	const op = "SetFunction"
	if !f.Settable() {
		return wrap(op, p, InvalidDirection, nil)
	}
	loc, err := Resolve(p)
	if err != nil {
		return wrap(op, p, InvalidPin, nil)
	}
	if err := c.regs.SetField(loc.Config, uint32(f)); err != nil {
		return regErr(op, p, err)
	}
	return nil
}

// Function returns the raw function of p.
func (c *Controller) Function(p Pin) (Function, error) {
	loc, err := Resolve(p)
	if err != nil {
		return 0, wrap("Function", p, InvalidPin, nil)
	}
	return c.function(p, loc)
}

func (c *Controller) function(p Pin, loc Location) (Function, error) {
	v, err := c.regs.Field(loc.Config)
	if err != nil {
		return 0, regErr("Function", p, err)
	}
	return Function(v), nil
}

// Out drives p to l.
//
// p must be configured as Output. An invalid level is refused before any
// register is accessed.
func (c *Controller) Out(p Pin, l Level) error {
	const op = "Out"
	if l != Low && l != High {
		return wrap(op, p, InvalidLevel, nil)
	}
	loc, err := Resolve(p)
	if err != nil {
		return wrap(op, p, InvalidPin, nil)
	}
	f, err := c.function(p, loc)
	if err != nil {
		return err
	}
	if f != Output {
		return wrap(op, p, NotOutput, nil)
	}
	if err := c.regs.SetField(loc.Data, uint32(l)); err != nil {
		return regErr(op, p, err)
	}
	return nil
}

// Read returns the level of p.
//
// p must be configured as Input.
func (c *Controller) Read(p Pin) (Level, error) {
	const op = "Read"
	loc, err := Resolve(p)
	if err != nil {
		return Low, wrap(op, p, InvalidPin, nil)
	}
	f, err := c.function(p, loc)
	if err != nil {
		return Low, err
	}
	if f != Input {
		return Low, wrap(op, p, NotInput, nil)
	}
	return c.data(op, p, loc)
}

// Latched returns the data bit of p whatever its function.
//
// For an output this is the level being driven.
func (c *Controller) Latched(p Pin) (Level, error) {
	const op = "Latched"
	loc, err := Resolve(p)
	if err != nil {
		return Low, wrap(op, p, InvalidPin, nil)
	}
	return c.data(op, p, loc)
}

func (c *Controller) data(op string, p Pin, loc Location) (Level, error) {
	v, err := c.regs.Field(loc.Data)
	if err != nil {
		return Low, regErr(op, p, err)
	}
	return Level(v), nil
}

// SetPull sets the pull resistor of p.
func (c *Controller) SetPull(p Pin, pull Pull) error {
	const op = "SetPull"
	if pull > PullDown {
		return wrap(op, p, InvalidPull, nil)
	}
	loc, err := Resolve(p)
	if err != nil {
		return wrap(op, p, InvalidPin, nil)
	}
	if err := c.regs.SetField(loc.Pull, uint32(pull)); err != nil {
		return regErr(op, p, err)
	}
	return nil
}

// Pull returns the raw pull field of p.
func (c *Controller) Pull(p Pin) (Pull, error) {
	const op = "Pull"
	loc, err := Resolve(p)
	if err != nil {
		return PullOff, wrap(op, p, InvalidPin, nil)
	}
	v, err := c.regs.Field(loc.Pull)
	if err != nil {
		return PullOff, regErr(op, p, err)
	}
	return Pull(v), nil
}

// SetDrive sets the multi-driving level of p.
func (c *Controller) SetDrive(p Pin, d Drive) error {
	const op = "SetDrive"
	if d > MaxDrive {
		return wrap(op, p, InvalidDrive, nil)
	}
	loc, err := Resolve(p)
	if err != nil {
		return wrap(op, p, InvalidPin, nil)
	}
	if err := c.regs.SetField(loc.Drive, uint32(d)); err != nil {
		return regErr(op, p, err)
	}
	return nil
}

// Drive returns the multi-driving level of p.
func (c *Controller) Drive(p Pin) (Drive, error) {
	const op = "Drive"
	loc, err := Resolve(p)
	if err != nil {
		return 0, wrap(op, p, InvalidPin, nil)
	}
	v, err := c.regs.Field(loc.Drive)
	if err != nil {
		return 0, regErr(op, p, err)
	}
	return Drive(v), nil
}
