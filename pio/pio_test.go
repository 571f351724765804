// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"periph.io/x/sunxi/pmem"
)

// fakeMapper hands out a View over plain memory. Since nothing drives the
// pins, the data register reads back what was last written, which acts as a
// loopback.
type fakeMapper struct {
	mem   []byte
	err   error
	calls int
}

func (f *fakeMapper) Map(base uint64, size int) (*pmem.View, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return pmem.NewView(f.mem[:size], base), nil
}

func newFakeMapper() *fakeMapper {
	return &fakeMapper{mem: make([]byte, WindowSize)}
}

func newTestDriver(t *testing.T) (*Driver, *fakeMapper) {
	m := newFakeMapper()
	l := zerolog.Nop()
	d := New(Opts{Mapper: m, Logger: &l})
	require.NoError(t, d.Init())
	t.Cleanup(d.Cleanup)
	return d, m
}

func newTestController() (*Controller, pmem.Slice) {
	s := pmem.Slice(make([]byte, WindowSize))
	return NewController(NewRegisterFile(s)), s
}
