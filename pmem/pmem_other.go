// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package pmem

import "fmt"

func mapPhys(path string, base uint64, size int) (*View, error) {
	return nil, fmt.Errorf("%w: %s is only supported on linux", ErrMapFailed, path)
}
