// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package olinuxino exposes the UEXT connector of the Olimex OLinuXino
// boards (A10, A13, A20) in the periph.io pin registry.
//
// The board isn't detected; call Register once the sunxi-pio driver is
// loaded.
//
// # Physical
//
// https://www.olimex.com/Products/Modules/UEXT/
package olinuxino
