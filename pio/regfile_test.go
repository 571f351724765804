// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/sunxi/pmem"
)

func TestRegisterFile_SetField(t *testing.T) {
	r := NewRegisterFile(pmem.Slice(make([]byte, 16)))
	assert.Equal(t, 16, r.Size())
	require.NoError(t, r.Store(4, 0xFFFFFFFF))
	require.NoError(t, r.SetField(Field{Offset: 4, Shift: 8, Width: 4}, 0x5))
	v, err := r.Load(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFF5FF), v)

	got, err := r.Field(Field{Offset: 4, Shift: 8, Width: 4})
	require.NoError(t, err)
	assert.Equal(t, uint32(5), got)

	// Neighbour registers are untouched.
	v, err = r.Load(0)
	require.NoError(t, err)
	assert.Zero(t, v)
	v, err = r.Load(8)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestRegisterFile_bounds(t *testing.T) {
	r := NewRegisterFile(pmem.Slice(make([]byte, 8)))
	_, err := r.Load(8)
	assert.Error(t, err)
	_, err = r.Load(2)
	assert.Error(t, err)
	assert.Error(t, r.Store(12, 1))
	assert.Error(t, r.SetField(Field{Offset: 8, Shift: 0, Width: 1}, 1))
	_, err = r.Field(Field{Offset: 16, Shift: 0, Width: 1})
	assert.Error(t, err)
}

func TestRegisterFile_valueTooWide(t *testing.T) {
	r := NewRegisterFile(pmem.Slice(make([]byte, 4)))
	err := r.SetField(Field{Offset: 0, Shift: 4, Width: 2}, 4)
	assert.ErrorIs(t, err, errFieldValue)
	v, err := r.Load(0)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "0x070[11:8]", Field{Offset: 0x70, Shift: 8, Width: 4}.String())
}

func TestRegisterFile_release(t *testing.T) {
	r := NewRegisterFile(pmem.Slice(make([]byte, 8)))
	require.NoError(t, r.Store(0, 1))
	r.release()
	assert.Zero(t, r.Size())
	_, err := r.Load(0)
	assert.ErrorIs(t, err, errReleased)
	assert.ErrorIs(t, r.Store(0, 1), errReleased)
	assert.ErrorIs(t, r.SetField(Field{Offset: 0, Shift: 0, Width: 1}, 1), errReleased)
	_, err = r.Field(Field{Offset: 4, Shift: 0, Width: 1})
	assert.ErrorIs(t, err, errReleased)
}
