//go:build !android && !ios && !js

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/urfave/cli"
)

var prof interface{ Stop() }

func before(ctx *cli.Context) error {
	level, err := logLevel(ctx)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	switch mode := ctx.GlobalString("profile"); mode {
	case "":
	case "cpu":
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		prof = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return fmt.Errorf("unknown profile mode %q", mode)
	}

	return nil
}

func after(ctx *cli.Context) error {
	if prof != nil {
		prof.Stop()
	}

	return nil
}

func logLevel(ctx *cli.Context) (slog.Level, error) {
	switch {
	case ctx.GlobalBool("vv"):
		return slog.LevelDebug, nil

	case ctx.GlobalBool("v"):
		return slog.LevelInfo, nil
	}

	switch value := strings.ToLower(ctx.GlobalString("log-level")); value {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", value)
	}
}
