// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"periph.io/x/sunxi/pmem"
)

// Field is a bit field inside a 32 bits register.
type Field struct {
	Offset uint32 // byte offset of the register in the window
	Shift  uint
	Width  uint
}

func (f Field) mask() uint32 {
	return (uint32(1)<<f.Width - 1) << f.Shift
}

func (f Field) String() string {
	return fmt.Sprintf("0x%03x[%d:%d]", f.Offset, f.Shift+f.Width-1, f.Shift)
}

var (
	errFieldValue = errors.New("value doesn't fit in field")
	errReleased   = errors.New("register file released")
)

// RegisterFile is an addressable array of 32 bits registers.
//
// Every access is a single aligned 32 bits load or store. Once released, every
// access fails.
type RegisterFile struct {
	// mu orders accesses against release, not accesses against each other.
	mu       sync.RWMutex
	words    []uint32
	released bool
}

// NewRegisterFile returns a register file over the memory of s.
func NewRegisterFile(s pmem.Slice) *RegisterFile {
	return &RegisterFile{words: s.Uint32()}
}

// Size returns the size of the register file in bytes.
func (r *RegisterFile) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.words) * 4
}

// release detaches the register file from its memory. It waits for the
// accesses in flight; the memory can be unmapped once it returns.
func (r *RegisterFile) release() {
	r.mu.Lock()
	r.words = nil
	r.released = true
	r.mu.Unlock()
}

// index must be called with r.mu held.
func (r *RegisterFile) index(off uint32) (int, error) {
	if r.released {
		return 0, errReleased
	}
	if off%4 != 0 {
		return 0, fmt.Errorf("register offset 0x%x is not aligned", off)
	}
	i := int(off / 4)
	if i >= len(r.words) {
		return 0, fmt.Errorf("register offset 0x%x is outside the 0x%x bytes window", off, len(r.words)*4)
	}
	return i, nil
}

// Load reads the register at byte offset off.
func (r *RegisterFile) Load(off uint32) (uint32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, err := r.index(off)
	if err != nil {
		return 0, err
	}
	return atomic.LoadUint32(&r.words[i]), nil
}

// Store writes the register at byte offset off.
func (r *RegisterFile) Store(off, v uint32) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, err := r.index(off)
	if err != nil {
		return err
	}
	atomic.StoreUint32(&r.words[i], v)
	return nil
}

// Field returns the value of f.
func (r *RegisterFile) Field(f Field) (uint32, error) {
	v, err := r.Load(f.Offset)
	if err != nil {
		return 0, err
	}
	return (v & f.mask()) >> f.Shift, nil
}

// SetField replaces the value of f, leaving every other bit of the register
// untouched.
//
// This is a read-modify-write; it is not atomic with regard to other
// writers of the same register.
func (r *RegisterFile) SetField(f Field, v uint32) error {
	if v > f.mask()>>f.Shift {
		return fmt.Errorf("%w: 0x%x in %s", errFieldValue, v, f)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, err := r.index(f.Offset)
	if err != nil {
		return err
	}
	old := atomic.LoadUint32(&r.words[i])
	atomic.StoreUint32(&r.words[i], old&^f.mask()|v<<f.Shift)
	return nil
}
