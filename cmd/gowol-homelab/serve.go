package main

import (
	"github.com/fgeck/gowol-homelab/internal/server"
	"github.com/fgeck/gowol-homelab/internal/services/hosts"
	"github.com/fgeck/gowol-homelab/internal/services/wake"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a web page to wake known machines",
	Long: `Start the HTTP front-end:
  GET /          list of known host names
  GET /<name>    send a magic packet to the named host
  GET /metrics   Prometheus metrics
  GET /healthz   liveness check`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (overrides server.listen, default "+server.DefaultListen+")")
}

func runServe(cmd *cobra.Command, args []string) error {
	serverCfg := cfg.Server
	if serveListen != "" {
		serverCfg.Listen = serveListen
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	srv := server.New(serverCfg, hosts.New(cfg.Hosts), wake.New(log.Logger, cfg.Wake), log.Logger)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		return err
	}

	return nil
}
