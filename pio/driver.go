// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"periph.io/x/sunxi/pmem"
)

// Opts configures a Driver.
type Opts struct {
	// Mapper maps the PIO window. Defaults to /dev/mem.
	Mapper pmem.Mapper
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// Driver owns the mapping of the PIO registers.
//
// It starts uninitialized. Init maps the registers, Cleanup unmaps them. Both
// are idempotent. The zero value is not usable, use New.
type Driver struct {
	mapper pmem.Mapper
	logger *zerolog.Logger

	mu   sync.Mutex // guards state transitions
	view *pmem.View
	ctrl *Controller
}

// New returns an uninitialized Driver.
func New(opts Opts) *Driver {
	m := opts.Mapper
	if m == nil {
		m = &pmem.DevMem{}
	}
	return &Driver{mapper: m, logger: opts.Logger}
}

func (d *Driver) logr() *zerolog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return &log.Logger
}

// Init maps the PIO registers.
//
// It is a no-op when already initialized. On failure the driver stays
// uninitialized and the error matches NoAccess, OutOfMemory or MapFailed.
func (d *Driver) Init() error {
	_, err := d.init()
	return err
}

// init returns true when it created the mapping.
func (d *Driver) init() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctrl != nil {
		return false, nil
	}
	v, err := d.mapper.Map(PhysBase, WindowSize)
	if err != nil {
		d.logr().Debug().Err(err).Msg("sunxi-pio: mapping failed")
		return false, wrap("Init", NoPin, initCode(err), err)
	}
	if len(v.Slice) < WindowSize {
		_ = v.Close()
		return false, wrap("Init", NoPin, MapFailed, errors.New("short mapping"))
	}
	d.view = v
	d.ctrl = NewController(NewRegisterFile(v.Slice))
	d.logr().Debug().Uint64("phys", v.PhysAddr()).Int("size", len(v.Slice)).Msg("sunxi-pio: mapped")
	return true, nil
}

func initCode(err error) Code {
	switch {
	case errors.Is(err, pmem.ErrNoAccess):
		return NoAccess
	case errors.Is(err, pmem.ErrNoMemory):
		return OutOfMemory
	default:
		return MapFailed
	}
}

// Cleanup unmaps the PIO registers.
//
// It is a no-op when not initialized. It never fails; an unmap error is
// logged.
func (d *Driver) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view == nil {
		return
	}
	d.ctrl.regs.release()
	if err := d.view.Close(); err != nil {
		d.logr().Warn().Err(err).Msg("sunxi-pio: unmap failed")
	} else {
		d.logr().Debug().Msg("sunxi-pio: unmapped")
	}
	d.view = nil
	d.ctrl = nil
}

// Ready reports whether the registers are mapped.
func (d *Driver) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl != nil
}

// Controller returns the Controller of the live mapping.
//
// After Cleanup, its operations fail with NotInitialized.
func (d *Driver) Controller() (*Controller, error) {
	return d.controller("Controller", NoPin)
}

func (d *Driver) controller(op string, p Pin) (*Controller, error) {
	d.mu.Lock()
	c := d.ctrl
	d.mu.Unlock()
	if c == nil {
		return nil, wrap(op, p, NotInitialized, nil)
	}
	return c, nil
}

// Do runs fn with the registers mapped.
//
// If the driver was not initialized, Do initializes it and cleans up once fn
// returns, panics included.
func (d *Driver) Do(fn func(c *Controller) error) error {
	mapped, err := d.init()
	if err != nil {
		return err
	}
	if mapped {
		defer d.Cleanup()
	}
	c, err := d.Controller()
	if err != nil {
		return err
	}
	return fn(c)
}

// SetFunction sets the function of p. See Controller.SetFunction.
func (d *Driver) SetFunction(p Pin, f Function) error {
	c, err := d.controller("SetFunction", p)
	if err != nil {
		return err
	}
	return c.SetFunction(p, f)
}

// Function returns the raw function of p.
func (d *Driver) Function(p Pin) (Function, error) {
	c, err := d.controller("Function", p)
	if err != nil {
		return 0, err
	}
	return c.Function(p)
}

// Out drives an output pin. See Controller.Out.
func (d *Driver) Out(p Pin, l Level) error {
	c, err := d.controller("Out", p)
	if err != nil {
		return err
	}
	return c.Out(p, l)
}

// Read reads an input pin. See Controller.Read.
func (d *Driver) Read(p Pin) (Level, error) {
	c, err := d.controller("Read", p)
	if err != nil {
		return Low, err
	}
	return c.Read(p)
}

// Latched returns the data bit of p.
func (d *Driver) Latched(p Pin) (Level, error) {
	c, err := d.controller("Latched", p)
	if err != nil {
		return Low, err
	}
	return c.Latched(p)
}

// SetPull sets the pull resistor of p.
func (d *Driver) SetPull(p Pin, pull Pull) error {
	c, err := d.controller("SetPull", p)
	if err != nil {
		return err
	}
	return c.SetPull(p, pull)
}

// Pull returns the pull resistor of p.
func (d *Driver) Pull(p Pin) (Pull, error) {
	c, err := d.controller("Pull", p)
	if err != nil {
		return PullOff, err
	}
	return c.Pull(p)
}

// SetDrive sets the multi-driving level of p.
func (d *Driver) SetDrive(p Pin, v Drive) error {
	c, err := d.controller("SetDrive", p)
	if err != nil {
		return err
	}
	return c.SetDrive(p, v)
}

// Drive returns the multi-driving level of p.
func (d *Driver) Drive(p Pin) (Drive, error) {
	c, err := d.controller("Drive", p)
	if err != nil {
		return 0, err
	}
	return c.Drive(p)
}

//

// Default is the driver used by the package level functions and by the
// periph.io pins. It maps /dev/mem.
var Default = New(Opts{})

// Init initializes Default.
func Init() error {
	return Default.Init()
}

// Cleanup releases Default.
func Cleanup() {
	Default.Cleanup()
}

// SetFunction sets the function of p on Default.
func SetFunction(p Pin, f Function) error {
	return Default.SetFunction(p, f)
}

// GetFunction returns the raw function of p on Default.
func GetFunction(p Pin) (Function, error) {
	return Default.Function(p)
}

// Out drives p on Default.
func Out(p Pin, l Level) error {
	return Default.Out(p, l)
}

// Read reads p on Default.
func Read(p Pin) (Level, error) {
	return Default.Read(p)
}

// SetPull sets the pull resistor of p on Default.
func SetPull(p Pin, pull Pull) error {
	return Default.SetPull(p, pull)
}

// GetPull returns the pull resistor of p on Default.
func GetPull(p Pin) (Pull, error) {
	return Default.Pull(p)
}
