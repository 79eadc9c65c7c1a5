//go:build !android && !ios && !js

package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "visor"
	app.Usage = "run a VR world on an emulated or simulated headset"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level (debug, info, warn, error)",
			EnvVar: "VISOR_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:  "profile",
			Usage: "write a cpu or mem profile to the working directory",
		},
	}
	app.Before = before
	app.After = after
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "run the demo world",
			Description: `
Run the demo world on a device backend. The emulator opens a window and renders
both eyes side by side, the head follows the mouse while the right button is
held. The headless backend runs without window and GPU and stops after the
given number of frames.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "backend, b",
					Value: "emulator",
					Usage: "device backend, see list-backends",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 1600,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 800,
					Usage: "window height",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 300,
					Usage: "number of frames the headless backend renders",
				},
				cli.StringFlag{
					Name:   "metrics-addr",
					Usage:  "serve prometheus metrics on this address, e.g. localhost:9090",
					EnvVar: "VISOR_METRICS_ADDR",
				},
			},
			Action: runWorld,
		},
		{
			Name:   "list-backends",
			Usage:  "list available device backends",
			Action: listBackends,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("visor failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
