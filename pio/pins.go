// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pin is a logical pin identifier: bank*32 + offset in bank.
//
// This is the numbering used by the sunxi kernel and u-boot, e.g. PD3 is
// 3*32+3 = 99.
type Pin int

// NoPin is used in errors that are not tied to a pin.
const NoPin Pin = -1

// bank describes one port of the PIO controller.
type bank struct {
	name  byte
	count int
	// base is the offset of the bank's register block relative to the PIO
	// window. The values come from the datasheet memory map.
	base uint32
}

const pinsPerBank = 32

// banks is the A20 port layout. A10 and A13 use the same register layout
// with a subset of the pins bonded out.
var banks = [...]bank{
	{'A', 18, 0x000},
	{'B', 24, 0x024},
	{'C', 25, 0x048},
	{'D', 28, 0x06C},
	{'E', 12, 0x090},
	{'F', 6, 0x0B4},
	{'G', 12, 0x0D8},
	{'H', 28, 0x0FC},
	{'I', 22, 0x120},
}

// First pin of each bank.
const (
	PA Pin = iota * pinsPerBank
	PB
	PC
	PD
	PE
	PF
	PG
	PH
	PI
)

// Port D.
const (
	PD0 Pin = PD + iota
	PD1
	PD2
	PD3
	PD4
	PD5
	PD6
	PD7
	PD8
	PD9
	PD10
	PD11
	PD12
	PD13
	PD14
	PD15
	PD16
	PD17
	PD18
	PD19
	PD20
	PD21
	PD22
	PD23
	PD24
	PD25
	PD26
	PD27
)

// Port E.
const (
	PE0 Pin = PE + iota
	PE1
	PE2
	PE3
	PE4
	PE5
	PE6
	PE7
	PE8
	PE9
	PE10
	PE11
)

// Port G.
const (
	PG0 Pin = PG + iota
	PG1
	PG2
	PG3
	PG4
	PG5
	PG6
	PG7
	PG8
	PG9
	PG10
	PG11
)

// SPI2 bus, commonly wired to the UEXT connector.
const (
	CS   = PE0
	SCK  = PE1
	MOSI = PE2
	MISO = PE3
)

// Bank returns the bank index and the offset in the bank.
//
// It doesn't validate the pin.
func (p Pin) Bank() (int, int) {
	return int(p) / pinsPerBank, int(p) % pinsPerBank
}

// Valid reports whether the pin exists on the SoC.
func (p Pin) Valid() bool {
	if p < 0 {
		return false
	}
	b, o := p.Bank()
	return b < len(banks) && o < banks[b].count
}

// String returns the pin name, e.g. "PD3".
func (p Pin) String() string {
	if !p.Valid() {
		return "Pin(" + strconv.Itoa(int(p)) + ")"
	}
	b, o := p.Bank()
	return "P" + string(banks[b].name) + strconv.Itoa(o)
}

// ParsePin parses a pin name like "PD3" or "pd3".
func ParsePin(s string) (Pin, error) {
	if len(s) < 3 || (s[0] != 'P' && s[0] != 'p') {
		return NoPin, fmt.Errorf("pio: invalid pin name %q", s)
	}
	c := s[1]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	b := int(c) - 'A'
	if b < 0 || b >= len(banks) {
		return NoPin, fmt.Errorf("pio: invalid bank in %q", s)
	}
	num := s[2:]
	if (num[0] == '0' && len(num) > 1) || strings.IndexFunc(num, isNotDigit) >= 0 {
		return NoPin, fmt.Errorf("pio: invalid pin number in %q", s)
	}
	o, err := strconv.Atoi(num)
	if err != nil {
		return NoPin, fmt.Errorf("pio: invalid pin number in %q", s)
	}
	if o >= banks[b].count {
		return NoPin, fmt.Errorf("pio: %q: bank %c has %d pins", s, banks[b].name, banks[b].count)
	}
	return Pin(b*pinsPerBank + o), nil
}

func isNotDigit(r rune) bool {
	return r < '0' || r > '9'
}

// Pins returns every valid pin, in order.
func Pins() []Pin {
	n := 0
	for _, b := range banks {
		n += b.count
	}
	out := make([]Pin, 0, n)
	for i, b := range banks {
		for o := 0; o < b.count; o++ {
			out = append(out, Pin(i*pinsPerBank+o))
		}
	}
	return out
}

//

// Function is the value of a pin's 4 bits configuration field.
//
// Only Input, Output and Peripheral can be written. Other values are
// peripheral specific codes (EINT, disabled, ...) and are reported as is.
type Function uint8

const (
	Input      Function = 0
	Output     Function = 1
	Peripheral Function = 2
)

// Settable reports whether f can be written.
func (f Function) Settable() bool {
	return f == Input || f == Output || f == Peripheral
}

func (f Function) String() string {
	switch f {
	case Input:
		return "In"
	case Output:
		return "Out"
	case Peripheral:
		return "Per"
	default:
		return "Func" + strconv.Itoa(int(f))
	}
}

// ParseFunction parses "in", "out" or "per".
func ParseFunction(s string) (Function, error) {
	switch s {
	case "in", "In", "IN", "input":
		return Input, nil
	case "out", "Out", "OUT", "output":
		return Output, nil
	case "per", "Per", "PER", "peripheral":
		return Peripheral, nil
	}
	return 0, errors.New("pio: invalid function " + strconv.Quote(s))
}

// Level is a digital level.
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

func (l Level) String() string {
	switch l {
	case Low:
		return "Low"
	case High:
		return "High"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel parses "0", "1", "low" or "high".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "0", "low", "Low", "LOW", "false":
		return Low, nil
	case "1", "high", "High", "HIGH", "true":
		return High, nil
	}
	return 0, errors.New("pio: invalid level " + strconv.Quote(s))
}

// Pull is the value of a pin's 2 bits pull resistor field.
//
// The value 3 is reserved; it is reported but can't be written.
type Pull uint8

const (
	PullOff  Pull = 0
	PullUp   Pull = 1
	PullDown Pull = 2
)

func (p Pull) String() string {
	switch p {
	case PullOff:
		return "Off"
	case PullUp:
		return "Up"
	case PullDown:
		return "Down"
	default:
		return "Pull(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePull parses "off", "up" or "down".
func ParsePull(s string) (Pull, error) {
	switch s {
	case "off", "Off", "float", "none":
		return PullOff, nil
	case "up", "Up":
		return PullUp, nil
	case "down", "Down":
		return PullDown, nil
	}
	return 0, errors.New("pio: invalid pull " + strconv.Quote(s))
}

// Drive is the multi-driving level of an output, 0 (weakest) to 3.
type Drive uint8

// MaxDrive is the strongest drive level.
const MaxDrive Drive = 3
