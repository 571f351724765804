// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the sunxi-gpio configuration.
//
// The configuration is a TOML file, all keys optional:
//
//	device = "/dev/mem"
//	listen = "127.0.0.1:8080"
//	log_level = "info"
//	board = "olinuxino"
//
//	[aliases]
//	led = "PG9"
//
//	[[pin]]
//	pin = "led"
//	function = "out"
//	level = "low"
//
// Environment variables SUNXI_GPIO_DEVICE, SUNXI_GPIO_LISTEN and
// SUNXI_GPIO_LOG_LEVEL override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"periph.io/x/sunxi/pio"
)

// PinSetting is applied to a pin at startup.
type PinSetting struct {
	Pin      string `toml:"pin"`
	Function string `toml:"function"`
	Level    string `toml:"level"`
	Pull     string `toml:"pull"`
}

// Config is the sunxi-gpio configuration.
type Config struct {
	Device   string            `toml:"device"`
	Listen   string            `toml:"listen"`
	LogLevel string            `toml:"log_level"`
	Board    string            `toml:"board"`
	Aliases  map[string]string `toml:"aliases"`
	Pins     []PinSetting      `toml:"pin"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Device:   "/dev/mem",
		Listen:   "127.0.0.1:8080",
		LogLevel: "info",
	}
}

// Load reads the file at path, which may not exist, and applies the
// environment overrides read through getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		b = nil
	} else if err != nil {
		return nil, err
	}
	c, err := Parse(b, getenv)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes b and applies the environment overrides.
func Parse(b []byte, getenv func(string) string) (*Config, error) {
	c := Default()
	if len(b) != 0 {
		d := toml.NewDecoder(bytes.NewReader(b))
		d.DisallowUnknownFields()
		if err := d.Decode(c); err != nil {
			return nil, err
		}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	for key, dst := range map[string]*string{
		"SUNXI_GPIO_DEVICE":    &c.Device,
		"SUNXI_GPIO_LISTEN":    &c.Listen,
		"SUNXI_GPIO_LOG_LEVEL": &c.LogLevel,
	} {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every alias and pin setting.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Board != "" && c.Board != "olinuxino" {
		return fmt.Errorf("unknown board %q", c.Board)
	}
	for name, target := range c.Aliases {
		if _, err := pio.ParsePin(name); err == nil {
			return fmt.Errorf("alias %q shadows a pin name", name)
		}
		if _, err := pio.ParsePin(target); err != nil {
			return fmt.Errorf("alias %q: %w", name, err)
		}
	}
	for i, s := range c.Pins {
		if _, err := c.setting(s); err != nil {
			return fmt.Errorf("pin #%d: %w", i, err)
		}
	}
	return nil
}

// Level returns the zerolog level.
func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

// Resolve returns the pin named name, either a pin name like "PD3" or an
// alias.
func (c *Config) Resolve(name string) (pio.Pin, error) {
	if target, ok := c.Aliases[name]; ok {
		name = target
	}
	return pio.ParsePin(name)
}

// Names returns the aliases of p, sorted.
func (c *Config) Names(p pio.Pin) []string {
	var out []string
	for name, target := range c.Aliases {
		if t, err := pio.ParsePin(target); err == nil && t == p {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

type setting struct {
	pin      pio.Pin
	function *pio.Function
	level    *pio.Level
	pull     *pio.Pull
}

func (c *Config) setting(s PinSetting) (setting, error) {
	var out setting
	var err error
	if out.pin, err = c.Resolve(s.Pin); err != nil {
		return out, err
	}
	if s.Function != "" {
		f, err := pio.ParseFunction(s.Function)
		if err != nil {
			return out, err
		}
		out.function = &f
	}
	if s.Level != "" {
		l, err := pio.ParseLevel(s.Level)
		if err != nil {
			return out, err
		}
		if out.function == nil || *out.function != pio.Output {
			return out, fmt.Errorf("%s: level requires function = \"out\"", s.Pin)
		}
		out.level = &l
	}
	if s.Pull != "" {
		p, err := pio.ParsePull(s.Pull)
		if err != nil {
			return out, err
		}
		out.pull = &p
	}
	return out, nil
}

// Pins is the subset of pio.Driver used by Apply.
type Pins interface {
	SetFunction(p pio.Pin, f pio.Function) error
	Out(p pio.Pin, l pio.Level) error
	SetPull(p pio.Pin, pull pio.Pull) error
}

// Apply configures the pins listed in the configuration, in order.
//
// For each pin the pull is set first, then the function, then the level. Out
// requires the pin to already be an output, so a pin switched to output
// drives its previously latched data bit until the level is written.
func (c *Config) Apply(d Pins) error {
	for _, s := range c.Pins {
		st, err := c.setting(s)
		if err != nil {
			return err
		}
		if st.pull != nil {
			if err := d.SetPull(st.pin, *st.pull); err != nil {
				return err
			}
		}
		if st.function != nil {
			if err := d.SetFunction(st.pin, *st.function); err != nil {
				return err
			}
		}
		if st.level != nil {
			if err := d.Out(st.pin, *st.level); err != nil {
				return err
			}
		}
	}
	return nil
}
