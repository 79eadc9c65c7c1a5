//go:build !android && !ios && !js

package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/oliverbestmann/visor/demo"
	"github.com/oliverbestmann/visor/device"
	"github.com/oliverbestmann/visor/device/emulator"
	"github.com/oliverbestmann/visor/device/headless"
	"github.com/oliverbestmann/visor/glimpse"
	"github.com/oliverbestmann/visor/orion"
	"github.com/oliverbestmann/visor/pulse"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

func runWorld(ctx *cli.Context) error {
	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", width, height)
	}

	reg := newRegistry()

	if addr := ctx.String("metrics-addr"); addr != "" {
		stop, err := serveMetrics(addr, reg)
		if err != nil {
			return err
		}

		defer stop()
	}

	switch backend := ctx.String("backend"); backend {
	case emulator.Name:
		return runEmulator(width, height, reg)

	case headless.Name:
		return runHeadless(width, height, ctx.Int("frames"), reg)

	default:
		return fmt.Errorf("%w: %q", device.ErrUnknownBackend, backend)
	}
}

func runEmulator(width, height int, reg *prometheus.Registry) error {
	host, err := glimpse.NewGlfwHost(width, height, "visor")
	if err != nil {
		return err
	}

	delegate, err := device.Open(emulator.Name, device.Options{Input: host})
	if err != nil {
		host.Terminate()
		return err
	}

	opts := orion.AppOptions{
		Host:     host,
		World:    demo.New(),
		Delegate: delegate,
		Surface: func() (orion.SurfaceContext, error) {
			ctx, err := pulse.New()
			if err != nil {
				return nil, err
			}

			return ctx, nil
		},
	}

	return run(opts, reg, host.Close, host.Wakeup)
}

func runHeadless(width, height, frames int, reg *prometheus.Registry) error {
	if frames <= 0 {
		return errors.New("the headless backend needs a positive frame count")
	}

	delegate, err := device.Open(headless.Name, device.Options{})
	if err != nil {
		return err
	}

	host := glimpse.NewChannelHost()
	window := glimpse.FixedWindow{Width: uint32(width), Height: uint32(height)}

	var stopped bool
	stop := func() {
		if stopped {
			return
		}

		stopped = true

		host.Send(glimpse.Event{Command: glimpse.CommandTermWindow, Window: window})
		host.Send(glimpse.Event{Command: glimpse.CommandDestroy})
		host.RequestDestroy()
	}

	world := demo.New()
	world.StopAfter(frames, stop)

	// what a platform would deliver on startup
	host.Send(glimpse.Event{Command: glimpse.CommandResume})
	host.Send(glimpse.Event{Command: glimpse.CommandInitWindow, Window: window})

	opts := orion.AppOptions{
		Host:     host,
		World:    world,
		Delegate: delegate,
		Surface: func() (orion.SurfaceContext, error) {
			return headless.NewSurface(), nil
		},
	}

	return run(opts, reg, stop, nil)
}

// run runs the app until it exits. stop is called on the render thread when
// the process is interrupted, wake interrupts a blocking poll and may be nil.
func run(opts orion.AppOptions, reg *prometheus.Registry, stop, wake func()) error {
	opts.Registerer = reg

	app, err := orion.NewApp(opts)
	if err != nil {
		return err
	}

	cancel := stopOnInterrupt(app.Queue(), stop, wake)
	defer cancel()

	slog.Info("Starting", slog.String("backend", opts.Delegate.Name()))

	if err := app.Run(); err != nil {
		return fmt.Errorf("run %s: %w", opts.Delegate.Name(), err)
	}

	displayFrameStats(opts.Delegate.Name(), app.FrameTimes())

	return displayMetrics(reg)
}

func displayFrameStats(backend string, stats orion.FrameTimes) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Backend", "Frames", "FPS", "Average", "Max"})
	table.Append([]string{
		backend,
		fmt.Sprintf("%d", stats.FrameCount),
		fmt.Sprintf("%.1f", stats.FPS()),
		stats.AverageDuration.String(),
		stats.MaxDuration.String(),
	})

	table.Render()
	fmt.Print(buf.String())
}

func listBackends(ctx *cli.Context) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Description"})

	for _, backend := range device.Backends() {
		table.Append([]string{backend.Name, backend.Description})
	}

	table.Render()
	fmt.Print(buf.String())

	return nil
}
