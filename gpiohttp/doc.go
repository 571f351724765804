// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpiohttp serves the sunxi PIO pins over HTTP.
//
// Routes:
//
//	GET /pins                 state of every pin
//	GET /pins/{pin}           state of one pin
//	PUT /pins/{pin}/function  {"function": "in"|"out"|"per"}
//	PUT /pins/{pin}/level     {"level": "low"|"high"}
//	PUT /pins/{pin}/pull      {"pull": "off"|"up"|"down"}
//
// {pin} is a pin name like "PD3" or an alias from the configuration.
// Errors are returned as {"error": "...", "code": "..."}.
package gpiohttp
