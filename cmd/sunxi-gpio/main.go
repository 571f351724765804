// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sunxi-gpio reads and drives the GPIO pins of Allwinner A10/A13/A20 SoCs
// through /dev/mem.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/pin/pinreg"

	"periph.io/x/sunxi/config"
	"periph.io/x/sunxi/gpiohttp"
	"periph.io/x/sunxi/olinuxino"
	"periph.io/x/sunxi/pio"
	"periph.io/x/sunxi/pio/piosmoketest"
	"periph.io/x/sunxi/pmem"
)

const usage = `usage: sunxi-gpio [-config FILE] [-v] <command> [args]

commands:
  pins                 list every pin
  mode PIN [FUNC]      print or set the function: in, out, per
  read PIN             print the level of an input
  write PIN LEVEL      drive an output: low, high
  pull PIN [PULL]      print or set the pull resistor: off, up, down
  serve                serve the pins over HTTP
  smoketest [-in PIN] [-out PIN]
                       loopback test, -in and -out wired together

PIN is a name like PD3 or an alias from the configuration.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, consoleOutput(false), os.Getenv)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("sunxi-gpio")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("sunxi-gpio", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(stderr, usage)
		fs.PrintDefaults()
	}
	cfgPath := fs.String("config", "/etc/sunxi-gpio.toml", "configuration file")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	cfg, err := config.Load(*cfgPath, getenv)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := initLogger(stderr, level, false)
	logger.Debug().Str("config", *cfgPath).Str("device", cfg.Device).Msg("loaded configuration")

	if cfg.Board == "olinuxino" {
		if err := olinuxino.Register(); err != nil {
			return err
		}
		defer pinreg.Unregister("UEXT")
	}

	d := pio.New(pio.Opts{Mapper: &pmem.DevMem{Path: cfg.Device}, Logger: &logger})
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "pins":
		if len(rest) != 0 {
			return errors.New("pins: unexpected arguments")
		}
		return d.Do(func(c *pio.Controller) error {
			return listPins(stdout, c, cfg)
		})
	case "mode":
		return pinCommand(cmd, rest, 1, cfg, d, func(c *pio.Controller, p pio.Pin, arg []string) error {
			if len(arg) == 0 {
				f, err := c.Function(p)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(stdout, f)
				return err
			}
			f, err := pio.ParseFunction(arg[0])
			if err != nil {
				return err
			}
			return c.SetFunction(p, f)
		})
	case "read":
		return pinCommand(cmd, rest, 0, cfg, d, func(c *pio.Controller, p pio.Pin, _ []string) error {
			l, err := c.Read(p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, l)
			return err
		})
	case "write":
		if len(rest) != 2 {
			return errors.New("write: expected PIN LEVEL")
		}
		return pinCommand(cmd, rest, 1, cfg, d, func(c *pio.Controller, p pio.Pin, arg []string) error {
			l, err := pio.ParseLevel(arg[0])
			if err != nil {
				return err
			}
			return c.Out(p, l)
		})
	case "pull":
		return pinCommand(cmd, rest, 1, cfg, d, func(c *pio.Controller, p pio.Pin, arg []string) error {
			if len(arg) == 0 {
				pull, err := c.Pull(p)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(stdout, pull)
				return err
			}
			pull, err := pio.ParsePull(arg[0])
			if err != nil {
				return err
			}
			return c.SetPull(p, pull)
		})
	case "serve":
		if len(rest) != 0 {
			return errors.New("serve: unexpected arguments")
		}
		return serve(ctx, d, cfg, &logger)
	case "smoketest":
		s := &piosmoketest.SmokeTest{Driver: d}
		f := flag.NewFlagSet(s.Name(), flag.ContinueOnError)
		f.SetOutput(stderr)
		return s.Run(f, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// pinCommand resolves the first argument as a pin and runs fn with the
// registers mapped. At most extra arguments may follow the pin.
func pinCommand(cmd string, args []string, extra int, cfg *config.Config, d *pio.Driver, fn func(c *pio.Controller, p pio.Pin, args []string) error) error {
	if len(args) == 0 || len(args) > 1+extra {
		return fmt.Errorf("%s: expected PIN and at most %d argument(s)", cmd, extra)
	}
	p, err := cfg.Resolve(args[0])
	if err != nil {
		return err
	}
	return d.Do(func(c *pio.Controller) error {
		return fn(c, p, args[1:])
	})
}

func listPins(w io.Writer, c *pio.Controller, cfg *config.Config) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tNUM\tFUNC\tLEVEL\tPULL\tDRIVE\tHEADER\tALIASES")
	for _, p := range pio.Pins() {
		f, err := c.Function(p)
		if err != nil {
			return err
		}
		l, err := c.Latched(p)
		if err != nil {
			return err
		}
		pull, err := c.Pull(p)
		if err != nil {
			return err
		}
		drive, err := c.Drive(p)
		if err != nil {
			return err
		}
		header := ""
		if name, n := pinreg.Position(pio.GPIO(p)); name != "" {
			header = fmt.Sprintf("%s_%d", name, n)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\t%s\t%s\n", p, int(p), f, l, pull, drive, header, strings.Join(cfg.Names(p), ","))
	}
	return tw.Flush()
}

func serve(ctx context.Context, d *pio.Driver, cfg *config.Config, logger *zerolog.Logger) error {
	if err := d.Init(); err != nil {
		return err
	}
	defer d.Cleanup()
	if err := cfg.Apply(d); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           gpiohttp.New(d, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info().Str("listen", cfg.Listen).Msg("launching server")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
