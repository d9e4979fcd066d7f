// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/siemens/ipgeotag/config"
	"github.com/siemens/ipgeotag/port"
	"github.com/siemens/ipgeotag/sink"
	"github.com/siemens/ipgeotag/types"

	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

var (
	configPath      *string
	workerNumber    *uint
	portStrategy    *string
	fixedPort       *uint
	candidatePorts  *[]int
	probeTimeout    *time.Duration
	socks5          *string
	netnsRef        *string
	unknownLocation *string
	honorTags       *bool
	failedPath      *string
	geoTimeout      *time.Duration
	spinnerInterval *time.Duration
	debug           *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:   "ipgeotag [flags] [INPUT=OUTPUT...]",
		Short: "ipgeotag normalizes IP address listings into address:port#location records",
		Long: `ipgeotag fetches IP address listings from URLs, files, or stdin ("-"),
resolves a port and a location for each address, and writes the deduplicated
and sorted address:port#location records to the output files. Writing to "-"
outputs to stdout. Without any INPUT=OUTPUT job, the jobs from the
configuration are run.`,
		Version: "1.0",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *workerNumber < config.MinWorkers || *workerNumber > config.MaxWorkers {
				return fmt.Errorf("--workers out of range [%d..%d]", config.MinWorkers, config.MaxWorkers)
			}
			if *fixedPort < 1 || *fixedPort > 65535 {
				return fmt.Errorf("--port out of range [1..65535]")
			}
			if *probeTimeout <= 0 {
				return fmt.Errorf("--probe-timeout must be positive")
			}
			if *geoTimeout <= 0 {
				return fmt.Errorf("--geo-timeout must be positive")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			cfg, err := configure(cmd, args)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			return TagAndReport(ctx, cfg, cmd.ErrOrStderr())
		},
	}
	// Sets up the flags.
	defaults := config.Default()
	configPath = rootCmd.PersistentFlags().String(
		"config", "", "YAML configuration file")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", uint(defaults.Workers), "number of concurrent lookups per job")
	portStrategy = rootCmd.PersistentFlags().String(
		"port-strategy", defaults.Port.Strategy, "port strategy: fixed, random, or probe")
	fixedPort = rootCmd.PersistentFlags().Uint(
		"port", uint(defaults.Port.Port), "fixed port, and fallback port when probing")
	candidatePorts = rootCmd.PersistentFlags().IntSlice(
		"ports", nil, fmt.Sprintf("random ports (default %v), or probe ports (default %v)",
			port.DefaultRandomPorts, port.DefaultProbePorts))
	probeTimeout = rootCmd.PersistentFlags().Duration(
		"probe-timeout", defaults.Port.Timeout, "connect timeout per probed port")
	socks5 = rootCmd.PersistentFlags().String(
		"socks5", "", "probe ports through this SOCKS5 proxy host:port")
	netnsRef = rootCmd.PersistentFlags().String(
		"netns", "", "probe ports from inside this network namespace, such as /proc/666/ns/net")
	unknownLocation = rootCmd.PersistentFlags().String(
		"unknown", types.DefaultUnknownLocation, "location label for failed lookups")
	honorTags = rootCmd.PersistentFlags().Bool(
		"honor-tags", defaults.HonorTags, "keep locations of already tagged addresses")
	failedPath = rootCmd.PersistentFlags().String(
		"failed", sink.DefaultFailedPath, "file to append failed lookups to")
	geoTimeout = rootCmd.PersistentFlags().Duration(
		"geo-timeout", defaults.Geo.Timeout, "timeout per geolocation provider")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	return
}

// configure returns the configuration to run with, which is the configuration
// file (or the defaults in case no file was specified) overridden by any flags
// explicitly set and any jobs passed as arguments.
func configure(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = int(*workerNumber)
	}
	if flags.Changed("port-strategy") {
		cfg.Port.Strategy = *portStrategy
	}
	if flags.Changed("port") {
		cfg.Port.Port = int(*fixedPort)
	}
	if flags.Changed("ports") {
		cfg.Port.Ports = *candidatePorts
	}
	if flags.Changed("probe-timeout") {
		cfg.Port.Timeout = *probeTimeout
	}
	if flags.Changed("socks5") {
		cfg.Port.SOCKS5 = *socks5
	}
	if flags.Changed("netns") {
		cfg.Port.Netns = *netnsRef
	}
	if flags.Changed("unknown") {
		cfg.Unknown = *unknownLocation
	}
	if flags.Changed("honor-tags") {
		cfg.HonorTags = *honorTags
	}
	if flags.Changed("failed") {
		cfg.FailedPath = *failedPath
	}
	if flags.Changed("geo-timeout") {
		cfg.Geo.Timeout = *geoTimeout
	}
	if len(args) > 0 {
		cfg.Jobs = nil
		for _, arg := range args {
			job, err := config.ParseJob(arg)
			if err != nil {
				return config.Config{}, err
			}
			cfg.Jobs = append(cfg.Jobs, job)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
