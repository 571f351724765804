// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

const (
	// PhysBase is the physical address of the PIO registers.
	PhysBase = 0x01C20800
	// WindowSize is the size of the PIO register block, including the
	// interrupt registers that this package doesn't use.
	WindowSize = 0x400
)

// Offsets inside a bank's register block.
const (
	regCfg  = 0x00 // CFG0..CFG3
	regData = 0x10
	regDrv  = 0x14 // DRV0..DRV1
	regPull = 0x1C // PUL0..PUL1

	cfgWidth     = 4
	cfgPerReg    = 32 / cfgWidth
	drvWidth     = 2
	drvPerReg    = 32 / drvWidth
	pullWidth    = 2
	pullPerReg   = 32 / pullWidth
	bankRegsSize = 0x24
)

// Location is where a pin's fields live in the PIO window.
type Location struct {
	Bank   int
	Offset int
	Config Field
	Data   Field
	Drive  Field
	Pull   Field
}

// Resolve computes the register fields of p.
//
// It is a pure function. It fails with InvalidPin when p doesn't exist.
func Resolve(p Pin) (Location, error) {
	if !p.Valid() {
		return Location{}, wrap("resolve", p, InvalidPin, nil)
	}
	b, o := p.Bank()
	base := banks[b].base
	idx := uint32(o)
	return Location{
		Bank:   b,
		Offset: o,
		Config: Field{Offset: base + regCfg + idx/cfgPerReg*4, Shift: uint(idx%cfgPerReg) * cfgWidth, Width: cfgWidth},
		Data:   Field{Offset: base + regData, Shift: uint(idx), Width: 1},
		Drive:  Field{Offset: base + regDrv + idx/drvPerReg*4, Shift: uint(idx%drvPerReg) * drvWidth, Width: drvWidth},
		Pull:   Field{Offset: base + regPull + idx/pullPerReg*4, Shift: uint(idx%pullPerReg) * pullWidth, Width: pullWidth},
	}, nil
}
