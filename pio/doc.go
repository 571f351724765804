// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pio drives the GPIO controller (PIO) of Allwinner sunxi SoCs
// (A10, A13, A20) through memory mapped registers.
//
// The controller is reached by mapping /dev/mem, which requires root.
// Nothing is mapped implicitly: call Init (or Driver.Init) before any pin
// operation and Cleanup once done. Pin operations on a driver that is not
// initialized fail with NotInitialized.
//
// Register accesses are not locked. Concurrent callers touching pins that
// share a configuration register must serialize their calls, otherwise a
// read-modify-write can lose another goroutine's update.
//
// # Datasheet
//
// https://linux-sunxi.org/images/b/b2/A20_User_Manual_v1.4_20150510.pdf
// chapter 1.19 "Port Controller".
package pio
