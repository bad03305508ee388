package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fgeck/gowol-homelab/internal/config"
	"github.com/fgeck/gowol-homelab/internal/logging"
	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Configuration flags.
	configFile string
	verbose    bool
	quiet      bool
	jsonOutput bool
	logFile    string

	// Loaded before any subcommand runs.
	cfg       *models.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "gowol-homelab",
	Short: "Wake-on-LAN for homelab machines",
	Long: `gowol-homelab sends Wake-on-LAN magic packets to power on machines by MAC address
or by name from a static host directory. It can be used:
  - from the command line (wake)
  - as a small web page listing known machines (serve)
  - as a listener to check that magic packets reach a network segment (listen)

Wake-on-LAN is unacknowledged: a sent packet does not mean the machine powered on.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (optional, built-in defaults otherwise)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")

	rootCmd.AddCommand(wakeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(hostsCmd)
	rootCmd.AddCommand(validateCmd)
}

// setup loads the configuration and configures logging from it.
func setup() error {
	loaded, err := loadConfig()

	logCfg := models.LogConfig{}
	if loaded != nil {
		logCfg = loaded.Log
	}
	if logFile != "" {
		logCfg.File = logFile
	}
	setupLogging(logCfg)

	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return err
	}

	if err := config.Validate(loaded); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	cfg = loaded
	return nil
}

func loadConfig() (*models.Config, error) {
	if configFile == "" {
		return config.Default()
	}
	return config.NewParser().LoadFile(configFile)
}

func setupLogging(logCfg models.LogConfig) {
	logger, closer := logging.New(os.Stderr, logging.Options{
		JSON:    jsonOutput,
		Verbose: verbose,
		Quiet:   quiet,
	}, logCfg)

	log.Logger = logger
	logCloser = closer
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
