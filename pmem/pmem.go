// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pmem

import (
	"errors"
	"unsafe"
)

var (
	// ErrNoAccess is returned when the physical memory device cannot be
	// opened.
	ErrNoAccess = errors.New("pmem: no access to physical memory, try running as root")
	// ErrNoMemory is returned when the kernel refused the mapping for lack of
	// memory.
	ErrNoMemory = errors.New("pmem: out of memory")
	// ErrMapFailed is returned for any other mapping failure.
	ErrMapFailed = errors.New("pmem: mmap failed")
)

// Mapper maps a window of physical memory.
type Mapper interface {
	Map(base uint64, size int) (*View, error)
}

// Slice is a window of mapped memory.
type Slice []byte

// Uint32 returns a view of the slice as 32 bits words.
//
// The trailing bytes that do not form a full word are not accessible.
func (s Slice) Uint32() []uint32 {
	if len(s) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&s[0])), len(s)/4)
}

// View is a live mapping of physical memory.
//
// Slice covers exactly the window that was requested; the underlying
// mapping may be larger since mappings are page aligned.
type View struct {
	Slice
	phys  uint64
	orig  []byte
	unmap func([]byte) error
}

// NewView wraps b as a View of physical address phys.
//
// It is meant for simulated hardware and tests. Closing the View never
// releases b.
func NewView(b []byte, phys uint64) *View {
	return &View{Slice: b, phys: phys}
}

// PhysAddr returns the physical address of the first byte of Slice.
func (v *View) PhysAddr() uint64 {
	return v.phys
}

// Close unmaps the memory.
//
// It is safe to call multiple times; only the first call releases the
// mapping. Slice must not be used afterward.
func (v *View) Close() error {
	orig, unmap := v.orig, v.unmap
	v.orig, v.unmap = nil, nil
	v.Slice = nil
	if orig == nil || unmap == nil {
		return nil
	}
	return unmap(orig)
}

// DevMem maps physical memory through a memory device.
type DevMem struct {
	// Path is the device to open. Defaults to /dev/mem.
	Path string
}

// Map implements Mapper.
//
// base doesn't need to be page aligned. The file descriptor is closed once
// the mapping is established.
func (d *DevMem) Map(base uint64, size int) (*View, error) {
	if size <= 0 {
		return nil, errors.New("pmem: size must be positive")
	}
	p := d.Path
	if p == "" {
		p = "/dev/mem"
	}
	return mapPhys(p, base, size)
}

// String returns the device path.
func (d *DevMem) String() string {
	if d.Path == "" {
		return "/dev/mem"
	}
	return d.Path
}

var _ Mapper = &DevMem{}
