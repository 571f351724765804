// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

func TestGPIO(t *testing.T) {
	p := GPIO(PD3)
	require.NotNil(t, p)
	assert.Equal(t, PD3, p.Pin())
	assert.Nil(t, GPIO(PD+28))
	assert.Len(t, cpuPins, len(Pins()))
}

func TestRegisterPins(t *testing.T) {
	if gpioreg.ByName("PD0") != nil {
		t.Skip("pins already registered by the driver")
	}
	d, _ := newTestDriver(t)
	pins := makePins(d)
	require.NoError(t, registerPins(pins))
	t.Cleanup(func() {
		for name := range aliases {
			_ = gpioreg.Unregister(name)
		}
		for _, p := range Pins() {
			_ = gpioreg.Unregister(p.String())
		}
	})

	sck := gpioreg.ByName("SCK")
	require.NotNil(t, sck)
	assert.Equal(t, int(SCK), sck.Number())
	assert.Equal(t, int(PG11), gpioreg.ByName("PG11").Number())
}

func TestDriverPIO(t *testing.T) {
	drv := &driverPIO{d: Default}
	assert.Equal(t, "sunxi-pio", drv.String())
	assert.Nil(t, drv.Prerequisites())
	assert.Nil(t, drv.After())
	if !isLinux || !isArm {
		ok, err := drv.Init()
		assert.False(t, ok)
		assert.Error(t, err)
	}
}
