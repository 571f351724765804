// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

func TestPinIO_Out(t *testing.T) {
	d, _ := newTestDriver(t)
	p := NewPinIO(d, PD5)
	assert.Equal(t, "PD5", p.Name())
	assert.Equal(t, "PD5", p.String())
	assert.Equal(t, int(PD5), p.Number())
	assert.Equal(t, PD5, p.Pin())

	require.NoError(t, p.Out(gpio.High))
	assert.Equal(t, gpio.OUT_HIGH, p.Func())
	require.NoError(t, p.Out(gpio.Low))
	assert.Equal(t, gpio.OUT_LOW, p.Func())
	assert.Equal(t, string(gpio.OUT_LOW), p.Function())
}

func TestPinIO_In(t *testing.T) {
	d, _ := newTestDriver(t)
	p := NewPinIO(d, PG7)
	require.NoError(t, p.Out(gpio.High))
	require.NoError(t, p.In(gpio.PullUp, gpio.NoEdge))
	assert.Equal(t, gpio.IN_HIGH, p.Func())
	assert.Equal(t, gpio.High, p.Read())
	assert.Equal(t, gpio.PullUp, p.Pull())
	assert.Equal(t, gpio.Float, p.DefaultPull())

	require.NoError(t, p.In(gpio.Float, gpio.NoEdge))
	assert.Equal(t, gpio.Float, p.Pull())
	require.NoError(t, p.In(gpio.PullDown, gpio.NoEdge))
	assert.Equal(t, gpio.PullDown, p.Pull())
	require.NoError(t, p.In(gpio.PullNoChange, gpio.NoEdge))
	assert.Equal(t, gpio.PullDown, p.Pull())

	assert.Error(t, p.In(gpio.Float, gpio.RisingEdge))
	assert.False(t, p.WaitForEdge(0))
}

func TestPinIO_Read_output(t *testing.T) {
	d, _ := newTestDriver(t)
	p := NewPinIO(d, PD1)
	require.NoError(t, p.Out(gpio.High))
	// Strict semantics: an output can't be read as an input.
	assert.Equal(t, gpio.Low, p.Read())
}

func TestPinIO_SetFunc(t *testing.T) {
	d, _ := newTestDriver(t)
	p := NewPinIO(d, PE6)
	assert.Equal(t, []pin.Func{gpio.IN, gpio.OUT}, p.SupportedFuncs())
	require.NoError(t, p.SetFunc(gpio.OUT_HIGH))
	assert.Equal(t, gpio.OUT_HIGH, p.Func())
	require.NoError(t, p.SetFunc(gpio.OUT))
	assert.Equal(t, gpio.OUT_LOW, p.Func())
	require.NoError(t, p.SetFunc(gpio.IN))
	assert.Equal(t, gpio.IN_LOW, p.Func())
	assert.Error(t, p.SetFunc("SPI2_CLK"))
}

func TestPinIO_alt(t *testing.T) {
	d, _ := newTestDriver(t)
	require.NoError(t, d.SetFunction(SCK, Peripheral))
	assert.Equal(t, pin.Func("ALT2"), NewPinIO(d, SCK).Func())
}

func TestPinIO_uninitialized(t *testing.T) {
	d := New(Opts{Mapper: newFakeMapper()})
	p := NewPinIO(d, PD0)
	assert.Equal(t, pin.FuncNone, p.Func())
	assert.Equal(t, gpio.Low, p.Read())
	assert.Equal(t, gpio.PullNoChange, p.Pull())
	assert.Error(t, p.Out(gpio.High))
	assert.Error(t, p.PWM(gpio.DutyHalf, 0))
	assert.NoError(t, p.Halt())
}
