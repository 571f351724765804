// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package olinuxino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/pin/pinreg"

	"periph.io/x/sunxi/pio"
)

func TestHeader(t *testing.T) {
	h := Header()
	require.Len(t, h, 5)
	for _, row := range h {
		assert.Len(t, row, 2)
	}
	assert.Equal(t, int(pio.MISO), UEXT_7.Number())
	assert.Equal(t, int(pio.MOSI), UEXT_8.Number())
	assert.Equal(t, "PE1", UEXT_9.Name())
	assert.Equal(t, "PE0", UEXT_10.Name())
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register())
	t.Cleanup(func() { _ = pinreg.Unregister("UEXT") })
	assert.Contains(t, pinreg.All(), "UEXT")
	name, n := pinreg.Position(UEXT_9)
	assert.Equal(t, "UEXT", name)
	assert.Equal(t, 9, n)
	assert.Error(t, Register())
}
