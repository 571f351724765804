// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// PinIO exposes one pin of a Driver as a periph.io gpio.PinIO.
//
// The periph.io interface doesn't carry errors on Read, so a failing read
// returns gpio.Low, like the sysfs driver does. Use Driver for strict
// semantics.
type PinIO struct {
	d *Driver
	p Pin
}

// NewPinIO returns the gpio.PinIO for p on d.
func NewPinIO(d *Driver, p Pin) *PinIO {
	return &PinIO{d: d, p: p}
}

// Pin returns the logical pin.
func (p *PinIO) Pin() Pin {
	return p.p
}

// String implements conn.Resource.
func (p *PinIO) String() string {
	return p.p.String()
}

// Halt implements conn.Resource.
func (p *PinIO) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *PinIO) Name() string {
	return p.p.String()
}

// Number implements pin.Pin.
func (p *PinIO) Number() int {
	return int(p.p)
}

// Function implements pin.Pin.
func (p *PinIO) Function() string {
	return string(p.Func())
}

// Func implements pin.PinFunc.
func (p *PinIO) Func() pin.Func {
	f, err := p.d.Function(p.p)
	if err != nil {
		return pin.FuncNone
	}
	switch f {
	case Input:
		if l, err := p.d.Latched(p.p); err == nil && l == High {
			return gpio.IN_HIGH
		}
		return gpio.IN_LOW
	case Output:
		if l, err := p.d.Latched(p.p); err == nil && l == High {
			return gpio.OUT_HIGH
		}
		return gpio.OUT_LOW
	default:
		return pin.Func("ALT" + strconv.Itoa(int(f)))
	}
}

// SupportedFuncs implements pin.PinFunc.
func (p *PinIO) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.IN, gpio.OUT}
}

// SetFunc implements pin.PinFunc.
func (p *PinIO) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.OUT_HIGH:
		return p.Out(gpio.High)
	case gpio.OUT, gpio.OUT_LOW:
		return p.Out(gpio.Low)
	default:
		return p.wrap(errors.New("unsupported function"))
	}
}

// In implements gpio.PinIn.
func (p *PinIO) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return p.wrap(errors.New("edge detection is not supported"))
	}
	if err := p.d.SetFunction(p.p, Input); err != nil {
		return err
	}
	switch pull {
	case gpio.PullNoChange:
		return nil
	case gpio.Float:
		return p.d.SetPull(p.p, PullOff)
	case gpio.PullUp:
		return p.d.SetPull(p.p, PullUp)
	case gpio.PullDown:
		return p.d.SetPull(p.p, PullDown)
	default:
		return p.wrap(errors.New("unknown pull"))
	}
}

// Read implements gpio.PinIn.
func (p *PinIO) Read() gpio.Level {
	l, err := p.d.Read(p.p)
	if err != nil {
		return gpio.Low
	}
	return l == High
}

// WaitForEdge implements gpio.PinIn.
//
// Edge detection is not supported; it returns false immediately.
func (p *PinIO) WaitForEdge(timeout time.Duration) bool {
	return false
}

// Pull implements gpio.PinIn.
func (p *PinIO) Pull() gpio.Pull {
	v, err := p.d.Pull(p.p)
	if err != nil {
		return gpio.PullNoChange
	}
	switch v {
	case PullOff:
		return gpio.Float
	case PullUp:
		return gpio.PullUp
	case PullDown:
		return gpio.PullDown
	default:
		return gpio.PullNoChange
	}
}

// DefaultPull implements gpio.PinIn.
//
// The pull resistors are disabled at reset.
func (p *PinIO) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out implements gpio.PinOut.
//
// The pin is switched to output first if needed.
func (p *PinIO) Out(l gpio.Level) error {
	f, err := p.d.Function(p.p)
	if err != nil {
		return err
	}
	if f != Output {
		if err := p.d.SetFunction(p.p, Output); err != nil {
			return err
		}
	}
	v := Low
	if l {
		v = High
	}
	return p.d.Out(p.p, v)
}

// PWM implements gpio.PinOut.
func (p *PinIO) PWM(gpio.Duty, physic.Frequency) error {
	return p.wrap(errors.New("pwm is not supported"))
}

func (p *PinIO) wrap(err error) error {
	return fmt.Errorf("sunxi-pio (%s): %w", p, err)
}

var _ conn.Resource = &PinIO{}
var _ gpio.PinIn = &PinIO{}
var _ gpio.PinOut = &PinIO{}
var _ gpio.PinIO = &PinIO{}
var _ pin.PinFunc = &PinIO{}
