// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pmem maps physical memory into the process address space.
//
// It is used to reach memory mapped hardware registers through /dev/mem.
// Mapping requires elevated privileges; on most distributions this means
// running as root.
package pmem
