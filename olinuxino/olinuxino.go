// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// OLinuXino UEXT pin out.

package olinuxino

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/pin/pinreg"

	"periph.io/x/sunxi/pio"
)

// UEXT is the 10 pins Olimex extension connector. Only the SPI2 lines are
// bonded to the PIO pins handled by pio; the UART and I²C lines are
// reported as INVALID.
var (
	UEXT_1  pin.Pin    = pin.V3_3
	UEXT_2  pin.Pin    = pin.GROUND
	UEXT_3  pin.Pin    = gpio.INVALID // UART TX
	UEXT_4  pin.Pin    = gpio.INVALID // UART RX
	UEXT_5  pin.Pin    = gpio.INVALID // I2C SCL
	UEXT_6  pin.Pin    = gpio.INVALID // I2C SDA
	UEXT_7  gpio.PinIO = pio.GPIO(pio.MISO)
	UEXT_8  gpio.PinIO = pio.GPIO(pio.MOSI)
	UEXT_9  gpio.PinIO = pio.GPIO(pio.SCK)
	UEXT_10 gpio.PinIO = pio.GPIO(pio.CS)
)

// Header is the layout registered with pinreg, two columns as on the
// board's silkscreen.
func Header() [][]pin.Pin {
	return [][]pin.Pin{
		{UEXT_1, UEXT_2},
		{UEXT_3, UEXT_4},
		{UEXT_5, UEXT_6},
		{UEXT_7, UEXT_8},
		{UEXT_9, UEXT_10},
	}
}

// Register registers the UEXT header with pinreg.
func Register() error {
	return pinreg.Register("UEXT", Header())
}
