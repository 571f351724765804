// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pmem

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func mapPhys(path string, base uint64, size int) (*View, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAccess, err)
	}
	// The descriptor is only needed to create the mapping.
	defer f.Close()

	page := uint64(unix.Getpagesize())
	aligned := base &^ (page - 1)
	delta := int(base - aligned)
	length := roundUp(delta+size, int(page))
	b, err := unix.Mmap(int(f.Fd()), int64(aligned), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		if errors.Is(err, unix.ENOMEM) {
			return nil, fmt.Errorf("%w: mapping 0x%x of %s: %w", ErrNoMemory, base, path, err)
		}
		return nil, fmt.Errorf("%w: mapping 0x%x of %s: %w", ErrMapFailed, base, path, err)
	}
	return &View{
		Slice: b[delta : delta+size : delta+size],
		phys:  base,
		orig:  b,
		unmap: unix.Munmap,
	}, nil
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}
