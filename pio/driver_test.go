// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/sunxi/pmem"
)

func TestDriver_InitTwice(t *testing.T) {
	d, m := newTestDriver(t)
	require.NoError(t, d.Init())
	assert.Equal(t, 1, m.calls)
	assert.True(t, d.Ready())
}

func TestDriver_CleanupBeforeInit(t *testing.T) {
	d := New(Opts{Mapper: newFakeMapper()})
	d.Cleanup()
	d.Cleanup()
	assert.False(t, d.Ready())
}

func TestDriver_CleanupTwice(t *testing.T) {
	d, m := newTestDriver(t)
	d.Cleanup()
	d.Cleanup()
	assert.False(t, d.Ready())
	require.NoError(t, d.Init())
	assert.Equal(t, 2, m.calls)
}

func TestDriver_InitErrors(t *testing.T) {
	data := []struct {
		err  error
		want Code
	}{
		{fmt.Errorf("%w: permission denied", pmem.ErrNoAccess), NoAccess},
		{fmt.Errorf("%w: ENOMEM", pmem.ErrNoMemory), OutOfMemory},
		{fmt.Errorf("%w: EINVAL", pmem.ErrMapFailed), MapFailed},
		{errors.New("unexpected"), MapFailed},
	}
	for _, line := range data {
		m := newFakeMapper()
		m.err = line.err
		l := zerolog.Nop()
		d := New(Opts{Mapper: m, Logger: &l})
		err := d.Init()
		assert.True(t, errors.Is(err, line.want), "%v", err)
		assert.True(t, errors.Is(err, line.err), "%v", err)
		assert.Equal(t, ClassInit, line.want.Class())
		assert.False(t, d.Ready())
	}
}

func TestDriver_InitErrorNotLogged(t *testing.T) {
	m := newFakeMapper()
	m.err = fmt.Errorf("%w: permission denied", pmem.ErrNoAccess)
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.InfoLevel)
	d := New(Opts{Mapper: m, Logger: &l})
	assert.True(t, errors.Is(d.Init(), NoAccess))
	assert.Empty(t, buf.String())
}

func TestDriver_shortMapping(t *testing.T) {
	m := &fakeMapper{mem: make([]byte, WindowSize)}
	d := New(Opts{Mapper: shortMapper{m}})
	err := d.Init()
	assert.True(t, errors.Is(err, MapFailed), "%v", err)
	assert.False(t, d.Ready())
}

type shortMapper struct {
	m *fakeMapper
}

func (s shortMapper) Map(base uint64, size int) (*pmem.View, error) {
	return s.m.Map(base, size/2)
}

func TestDriver_NotInitialized(t *testing.T) {
	d := New(Opts{Mapper: newFakeMapper()})
	checks := []error{
		d.SetFunction(PD0, Output),
		d.Out(PD0, High),
		d.SetPull(PD0, PullUp),
		d.SetDrive(PD0, 1),
	}
	_, err := d.Function(PD0)
	checks = append(checks, err)
	_, err = d.Read(PD0)
	checks = append(checks, err)
	_, err = d.Latched(PD0)
	checks = append(checks, err)
	_, err = d.Pull(PD0)
	checks = append(checks, err)
	_, err = d.Drive(PD0)
	checks = append(checks, err)
	_, err = d.Controller()
	checks = append(checks, err)
	for i, err := range checks {
		assert.True(t, errors.Is(err, NotInitialized), "%d: %v", i, err)
	}
}

func TestDriver_UseAfterCleanup(t *testing.T) {
	d, _ := newTestDriver(t)
	require.NoError(t, d.SetFunction(PD0, Output))
	d.Cleanup()
	err := d.Out(PD0, High)
	assert.True(t, errors.Is(err, NotInitialized), "%v", err)
}

func TestDriver_ControllerKeptPastCleanup(t *testing.T) {
	d, _ := newTestDriver(t)
	c, err := d.Controller()
	require.NoError(t, err)
	var kept *Controller
	require.NoError(t, d.Do(func(c *Controller) error {
		kept = c
		return nil
	}))
	d.Cleanup()

	for _, c := range []*Controller{c, kept} {
		_, err = c.Function(PD0)
		assert.True(t, errors.Is(err, NotInitialized), "%v", err)
		err = c.SetFunction(PD0, Output)
		assert.True(t, errors.Is(err, NotInitialized), "%v", err)
		_, err = c.Latched(PD0)
		assert.True(t, errors.Is(err, NotInitialized), "%v", err)
	}

	// A new mapping doesn't revive the old Controller.
	require.NoError(t, d.Init())
	_, err = c.Function(PD0)
	assert.True(t, errors.Is(err, NotInitialized), "%v", err)
	_, err = d.Function(PD0)
	assert.NoError(t, err)
}

func TestDriver_Operations(t *testing.T) {
	d, _ := newTestDriver(t)
	require.NoError(t, d.SetFunction(PG0, Output))
	require.NoError(t, d.Out(PG0, High))
	l, err := d.Latched(PG0)
	require.NoError(t, err)
	assert.Equal(t, High, l)

	_, err = d.Read(PG0)
	assert.True(t, errors.Is(err, NotInput), "%v", err)

	require.NoError(t, d.SetFunction(PG0, Input))
	l, err = d.Read(PG0)
	require.NoError(t, err)
	assert.Equal(t, High, l)

	err = d.Out(PG0, Low)
	assert.True(t, errors.Is(err, NotOutput), "%v", err)

	require.NoError(t, d.SetPull(PG0, PullDown))
	p, err := d.Pull(PG0)
	require.NoError(t, err)
	assert.Equal(t, PullDown, p)

	require.NoError(t, d.SetDrive(PG0, 2))
	v, err := d.Drive(PG0)
	require.NoError(t, err)
	assert.Equal(t, Drive(2), v)

	f, err := d.Function(PG0)
	require.NoError(t, err)
	assert.Equal(t, Input, f)
}

func TestDriver_Do(t *testing.T) {
	m := newFakeMapper()
	d := New(Opts{Mapper: m})
	err := d.Do(func(c *Controller) error {
		return c.SetFunction(PE0, Output)
	})
	require.NoError(t, err)
	assert.False(t, d.Ready(), "Do must clean up the mapping it created")

	boom := errors.New("boom")
	err = d.Do(func(c *Controller) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, d.Ready())
	assert.Equal(t, 2, m.calls)
}

func TestDriver_Do_keepsExisting(t *testing.T) {
	d, m := newTestDriver(t)
	require.NoError(t, d.Do(func(c *Controller) error {
		return c.SetFunction(PE1, Output)
	}))
	assert.True(t, d.Ready())
	assert.Equal(t, 1, m.calls)
	f, err := d.Function(PE1)
	require.NoError(t, err)
	assert.Equal(t, Output, f)
}

func TestDriver_Do_panic(t *testing.T) {
	d := New(Opts{Mapper: newFakeMapper()})
	assert.Panics(t, func() {
		_ = d.Do(func(c *Controller) error {
			panic("boom")
		})
	})
	assert.False(t, d.Ready())
}

func TestDriver_Do_initError(t *testing.T) {
	m := newFakeMapper()
	m.err = pmem.ErrNoAccess
	d := New(Opts{Mapper: m})
	called := false
	err := d.Do(func(c *Controller) error {
		called = true
		return nil
	})
	assert.True(t, errors.Is(err, NoAccess), "%v", err)
	assert.False(t, called)
}

func TestNew_defaultMapper(t *testing.T) {
	d := New(Opts{})
	dm, ok := d.mapper.(*pmem.DevMem)
	require.True(t, ok)
	assert.Equal(t, "/dev/mem", dm.String())
	assert.False(t, d.Ready())
}

func TestPackageFunctions_notInitialized(t *testing.T) {
	if Default.Ready() {
		t.Skip("Default is initialized")
	}
	Cleanup()
	assert.True(t, errors.Is(SetFunction(PD0, Output), NotInitialized))
	assert.True(t, errors.Is(Out(PD0, High), NotInitialized))
	assert.True(t, errors.Is(SetPull(PD0, PullUp), NotInitialized))
	_, err := GetFunction(PD0)
	assert.True(t, errors.Is(err, NotInitialized))
	_, err = Read(PD0)
	assert.True(t, errors.Is(err, NotInitialized))
	_, err = GetPull(PD0)
	assert.True(t, errors.Is(err, NotInitialized))
}
