// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package piosmoketest verifies that the sunxi PIO registers are driven
// correctly on real hardware.
//
// It requires two pins wired together.
package piosmoketest

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"periph.io/x/sunxi/pio"
)

// SmokeTest is imported by sunxi-gpio.
type SmokeTest struct {
	// Driver defaults to pio.Default.
	Driver *pio.Driver
}

// Name implements the SmokeTest interface.
func (s *SmokeTest) Name() string {
	return "sunxi-pio"
}

// Description implements the SmokeTest interface.
func (s *SmokeTest) Description() string {
	return "Tests sunxi PIO register access with a wire between two pins"
}

// Run implements the SmokeTest interface.
func (s *SmokeTest) Run(f *flag.FlagSet, args []string) error {
	in := f.String("in", "PG1", "pin read during the test")
	out := f.String("out", "PG2", "pin driven during the test, wired to -in")
	if err := f.Parse(args); err != nil {
		return err
	}
	if f.NArg() != 0 {
		f.Usage()
		return errors.New("unrecognized arguments")
	}
	pIn, err := pio.ParsePin(*in)
	if err != nil {
		return err
	}
	pOut, err := pio.ParsePin(*out)
	if err != nil {
		return err
	}
	if pIn == pOut {
		return errors.New("-in and -out must be different pins")
	}
	d := s.Driver
	if d == nil {
		d = pio.Default
	}
	return d.Do(func(c *pio.Controller) error {
		if err := configTest(c, pIn, pOut); err != nil {
			return err
		}
		p1 := &loggingPin{pio.NewPinIO(d, pIn)}
		p2 := &loggingPin{pio.NewPinIO(d, pOut)}
		if err := gpioTest(p1, p2); err != nil {
			return err
		}
		return gpioPerfTest(pio.NewPinIO(d, pOut))
	})
}

// configTest ensures that changing the function of one pin doesn't alter
// the other.
func configTest(c *pio.Controller, p1, p2 pio.Pin) error {
	fmt.Printf("  Configuration of %s and %s:\n", p1, p2)
	for _, order := range [][2]pio.Pin{{p1, p2}, {p2, p1}} {
		if err := c.SetFunction(order[0], pio.Output); err != nil {
			return err
		}
		if err := c.SetFunction(order[1], pio.Input); err != nil {
			return err
		}
		for p, want := range map[pio.Pin]pio.Function{order[0]: pio.Output, order[1]: pio.Input} {
			got, err := c.Function(p)
			if err != nil {
				return err
			}
			if got != want {
				return fmt.Errorf("%s: expected function %s but got %s", p, want, got)
			}
		}
	}
	// Leave both pins as inputs.
	if err := c.SetFunction(p1, pio.Input); err != nil {
		return err
	}
	if err := c.SetFunction(p2, pio.Input); err != nil {
		return err
	}
	fmt.Printf("    OK\n")
	return nil
}

// gpioPerfTest reads and write in a tight loop to evaluate performance.
//
// It doesn't evaluate correctness.
func gpioPerfTest(p gpio.PinIO) error {
	fmt.Printf("  GPIO performance on %s:\n", p)
	const loops = 100000
	fmt.Printf("    %d reads:  ", loops)
	if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return err
	}
	start := time.Now()
	for i := 0; i < loops; i++ {
		p.Read()
	}
	s := time.Since(start)
	fmt.Printf("%s; %s/op\n", s, s/loops)
	fmt.Printf("    %d writes: ", loops)
	if err := p.Out(gpio.Low); err != nil {
		return err
	}
	start = time.Now()
	for i := 0; i < loops; i++ {
		if err := p.Out(gpio.Low); err != nil {
			return err
		}
	}
	s = time.Since(start)
	fmt.Printf("%s; %s/op\n", s, s/loops)
	return p.In(gpio.PullNoChange, gpio.NoEdge)
}

// gpioTest ensures connectivity works.
func gpioTest(p1, p2 gpio.PinIO) error {
	fmt.Printf("  GPIO functionality on %s and %s:\n", p1, p2)
	if err := p1.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return err
	}
	for _, l := range []gpio.Level{gpio.Low, gpio.High, gpio.Low} {
		if err := p2.Out(l); err != nil {
			return err
		}
		// There can be a small amount of skew. This should inject just enough time.
		time.Sleep(10 * time.Microsecond)
		if got := p1.Read(); got != l {
			return fmt.Errorf("%s: expected to read %s but got %s", p1, l, got)
		}
	}
	return p2.In(gpio.PullNoChange, gpio.NoEdge)
}

// loggingPin logs when its state changes.
type loggingPin struct {
	gpio.PinIO
}

func (p *loggingPin) In(pull gpio.Pull, edge gpio.Edge) error {
	start := time.Now()
	if err := p.PinIO.In(pull, edge); err != nil {
		fmt.Printf("    %s %s.In(%s, %s) = %v\n", time.Since(start), p, pull, edge, err)
		return err
	}
	fmt.Printf("    %s %s.In(%s, %s)\n", time.Since(start), p, pull, edge)
	return nil
}

func (p *loggingPin) Read() gpio.Level {
	start := time.Now()
	l := p.PinIO.Read()
	fmt.Printf("    %s %s.Read() = %s\n", time.Since(start), p, l)
	return l
}

func (p *loggingPin) Out(l gpio.Level) error {
	start := time.Now()
	if err := p.PinIO.Out(l); err != nil {
		fmt.Printf("    %s %s.Out(%s) = %v\n", time.Since(start), p, l, err)
		return err
	}
	fmt.Printf("    %s %s.Out(%s)\n", time.Since(start), p, l)
	return nil
}
