package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ign-packo/ShadowT/internal/batch"
	"github.com/ign-packo/ShadowT/internal/config"
	"github.com/ign-packo/ShadowT/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage(fs *pflag.FlagSet) {
	fmt.Println("shadowmask - shadow masks for directories of aerial images")
	fmt.Println()
	fmt.Println("Usage: shadowmask [options] [input]")
	fmt.Println()
	fmt.Println("Estimates one global shadow threshold over a corpus of images, then")
	fmt.Println("writes a mask_<name>.tif per image when --output is set.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(fs.FlagUsages())
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s_<KEY>             Any setting, e.g. %s_BITS=16\n", config.EnvPrefix, config.EnvPrefix)
	fmt.Printf("  %s=debug    Enable debug logging\n", logger.EnvLevel)
}

func main() {
	fs := pflag.NewFlagSet("shadowmask", pflag.ContinueOnError)
	fs.SortFlags = false
	configPath := fs.StringP("config", "c", "", "YAML, TOML or JSON configuration file")
	version := fs.BoolP("version", "v", false, "print version information")
	help := fs.BoolP("help", "h", false, "print this help message")
	config.RegisterFlags(fs)

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "shadowmask: %v\n", err)
		os.Exit(2)
	}
	switch {
	case *version:
		fmt.Printf("shadowmask %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case *help:
		usage(fs)
		return
	}

	// A positional argument stands for --input.
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "shadowmask: at most one input directory")
		os.Exit(2)
	}
	if fs.NArg() == 1 && !fs.Changed("input") {
		if err := fs.Set("input", fs.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "shadowmask: %v\n", err)
			os.Exit(2)
		}
	}

	log := logger.FromEnv()
	if err := run(log, *configPath, fs); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}

func run(log logger.Logger, configPath string, fs *pflag.FlagSet) error {
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		return err
	}
	runner, err := batch.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("interrupted: %w", err)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
