// Package main implements the nemo NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"nemo/internal/app"
	"nemo/internal/graphics"
	"nemo/internal/version"
)

func main() {
	var (
		romFile     = flag.String("rom", "", "Path to NES ROM file (noise is shown without one)")
		configFile  = flag.String("config", "", "Path to configuration file")
		nogui       = flag.Bool("nogui", false, "Run without a window (headless mode)")
		frames      = flag.Int("frames", -1, "Frames to run in headless mode (overrides config)")
		patterns    = flag.String("patterns", "", "Write the pattern tables as PNGs into this directory and exit")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Usage = printUsage
	flag.Parse()
	defer glog.Flush()

	if *showVersion {
		version.Fprint(os.Stdout)
		return
	}

	if err := run(*configFile, *romFile, *nogui, *frames, *patterns); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(configPath, romFile string, nogui bool, frames int, patterns string) error {
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}
	config := app.NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		glog.Warningf("could not load config from %s, using defaults: %v", configPath, err)
		config = app.NewConfig()
	}

	if nogui {
		config.Video.Backend = string(graphics.BackendHeadless)
		config.Emulation.FrameRate = 0
	}
	if frames >= 0 {
		config.Headless.Frames = frames
	}
	if nogui && romFile == "" {
		return fmt.Errorf("headless mode requires -rom")
	}

	application, err := app.NewApplication(config)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			glog.Warningf("cleanup: %v", err)
		}
	}()

	if romFile != "" {
		if err := application.LoadROM(romFile); err != nil {
			return err
		}
		glog.Infof("loaded %s", romFile)
	}

	if patterns != "" {
		paths, err := application.DumpPatternTables(patterns, 0)
		for _, path := range paths {
			fmt.Println(path)
		}
		return err
	}

	setupGracefulShutdown()
	if err := application.Run(); err != nil {
		return err
	}
	glog.Infof("emulated %d frames", application.Frames())
	return nil
}

// setupGracefulShutdown flushes logs and exits on interrupt.
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-c
		glog.Infof("%v received, shutting down", sig)
		glog.Flush()
		os.Exit(0)
	}()
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "nemo - NES emulator")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "USAGE:")
	fmt.Fprintln(out, "  nemo [options]                     # window showing noise")
	fmt.Fprintln(out, "  nemo -rom <file> [options]         # play a ROM")
	fmt.Fprintln(out, "  nemo -nogui -rom <file> -frames N  # headless run with PNG snapshots")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "OPTIONS:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "CONTROLS (default):")
	fmt.Fprintln(out, "  Player 1: arrows, Space=A, LShift=B, V=Start, C=Select")
	fmt.Fprintln(out, "  Player 2: WASD, J=A, K=B, Return=Start, Tab=Select")
	fmt.Fprintln(out, "  F5 reset, Esc quit")
}
