package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"doccomment/internal/config"
	"doccomment/internal/driver"
	"doccomment/internal/observ"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	mode, err := readColorMode(value)
	if err != nil {
		return false
	}
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(f) && os.Getenv("NO_COLOR") == ""
	}
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// loadConfig reads --config or discovers doccomment.toml from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.Discover(wd)
}

// driverOptions builds driver options from the config with CLI flags on top.
func driverOptions(cmd *cobra.Command) (driver.Options, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return driver.Options{}, cfg, err
	}
	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		return driver.Options{}, cfg, err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("max-diagnostics") || cfg.Path == "" {
		maxDiagnostics, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return driver.Options{}, cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if maxDiagnostics < 0 {
			return driver.Options{}, cfg, fmt.Errorf("--max-diagnostics must be >= 0")
		}
		opts.MaxDiagnostics = maxDiagnostics
	}

	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, cfg, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	return opts, cfg, nil
}

// printTimings writes the phase table to stderr when --timings is set.
func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
