// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sunxi loads the Allwinner sunxi PIO driver into periph.io.
//
// Call Init, then look pins up by name with gpioreg:
//
//	if _, err := sunxi.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer pio.Cleanup()
//	p := gpioreg.ByName("PD3")
package sunxi

import (
	"periph.io/x/conn/v3/driver/driverreg"

	// Make sure the PIO driver is registered.
	_ "periph.io/x/sunxi/pio"
)

// Init calls driverreg.Init() and returns it as-is.
//
// The only difference is that by calling sunxi.Init(), you are guaranteed
// to have the sunxi-pio driver implicitly loaded. On hosts other than ARM
// Linux the driver isn't registered.
func Init() (*driverreg.State, error) {
	return driverreg.Init()
}
