// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command perfectscale opens a native window, binds a WebGPU surface
// to it, and continuously clears it to cornflower blue: a minimal
// real-time rendering host. Escape or closing the window exits.
package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/perfectscale/perfectscale/gpu"
	"github.com/perfectscale/perfectscale/host"
)

func init() {
	// the event loop and all GPU work must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	opts := host.DefaultOptions()
	var (
		configFile string
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:          "perfectscale",
		Short:        "minimal WebGPU rendering host",
		Long: `Perfectscale opens a native window and drives a continuous render
loop that clears it to a fixed color. It exists to exercise the
surface and device lifecycle: adapter negotiation, surface
reconfiguration on resize, and recoverable-vs-fatal presentation
errors.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbosity)
			if configFile != "" {
				if err := mergeSettings(opts, configFile, cmd.Flags()); err != nil {
					return err
				}
			}
			return run(opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&configFile, "config", "", "TOML settings file")
	fl.StringVar(&opts.Title, "title", opts.Title, "window title")
	fl.IntVar(&opts.Width, "width", opts.Width, "initial window width in logical pixels")
	fl.IntVar(&opts.Height, "height", opts.Height, "initial window height in logical pixels")
	fl.BoolVar(&opts.VSync, "vsync", opts.VSync, "synchronize presentation to the display refresh")
	fl.CountVarP(&verbosity, "verbose", "v", "increase log verbosity: -v for info, -vv for debug")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mergeSettings layers the settings file under any flags set
// explicitly on the command line.
func mergeSettings(opts *host.Options, path string, fl *pflag.FlagSet) error {
	loaded := host.DefaultOptions()
	if err := loaded.Load(path); err != nil {
		return err
	}
	if !fl.Changed("title") {
		opts.Title = loaded.Title
	}
	if !fl.Changed("width") {
		opts.Width = loaded.Width
	}
	if !fl.Changed("height") {
		opts.Height = loaded.Height
	}
	if !fl.Changed("vsync") {
		opts.VSync = loaded.VSync
	}
	opts.Decorated = loaded.Decorated
	opts.Resizable = loaded.Resizable
	return nil
}

func setupLogging(verbosity int) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(verbosity),
	})))
}

// logLevel maps the repeatable -v flag to a level: warnings by
// default, info at -v, debug at -vv and beyond.
func logLevel(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

func run(opts *host.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := gpu.Init(); err != nil {
		return err
	}
	defer gpu.Terminate()

	app, err := host.NewApp(opts)
	if err != nil {
		return err
	}
	return app.Run()
}
