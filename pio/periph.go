// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"errors"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// cpuPins holds the gpio.PinIO of every valid pin on Default.
//
// It is initialized once and isn't mutated afterward.
var cpuPins = makePins(Default)

func makePins(d *Driver) map[Pin]*PinIO {
	m := map[Pin]*PinIO{}
	for _, p := range Pins() {
		m[p] = NewPinIO(d, p)
	}
	return m
}

// GPIO returns the gpio.PinIO of p on Default, or nil if p doesn't exist.
func GPIO(p Pin) *PinIO {
	return cpuPins[p]
}

// aliases are the well known names registered in gpioreg.
var aliases = map[string]Pin{
	"CS":   CS,
	"SCK":  SCK,
	"MOSI": MOSI,
	"MISO": MISO,
}

func registerPins(pins map[Pin]*PinIO) error {
	for _, p := range Pins() {
		if err := gpioreg.Register(pins[p]); err != nil {
			return err
		}
	}
	for name, p := range aliases {
		if err := gpioreg.RegisterAlias(name, p.String()); err != nil {
			return err
		}
	}
	return nil
}

// driverPIO implements periph.Driver.
type driverPIO struct {
	d *Driver
}

func (d *driverPIO) String() string {
	return "sunxi-pio"
}

func (d *driverPIO) Prerequisites() []string {
	return nil
}

func (d *driverPIO) After() []string {
	return nil
}

// Init maps the PIO registers of Default and registers every pin in
// gpioreg.
//
// The mapping is kept for the lifetime of the process; call Cleanup before
// exiting.
func (d *driverPIO) Init() (bool, error) {
	if !isLinux || !isArm {
		return false, errors.New("sunxi-pio: not running on an ARM linux host")
	}
	if err := d.d.Init(); err != nil {
		return true, err
	}
	return true, registerPins(cpuPins)
}

func init() {
	if isLinux && isArm {
		driverreg.MustRegister(&drvPIO)
	}
}

var drvPIO = driverPIO{d: Default}
