package main

import (
	"fmt"

	"github.com/fgeck/gowol-homelab/internal/server"
	"github.com/fgeck/gowol-homelab/internal/services/hosts"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file without sending any packets.`,
	RunE:  validateConfig,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		log.Error().Msg("config file is required")
		return cmd.Help()
	}

	// Loading and validation already ran before this command; print a summary.
	out := cmd.OutOrStdout()
	dir := hosts.New(cfg.Hosts)

	listen := cfg.Server.Listen
	if listen == "" {
		listen = server.DefaultListen
	}

	fmt.Fprintln(out, "Configuration is valid!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Wake-on-LAN:")
	fmt.Fprintf(out, "  Default port: %d\n", cfg.Wake.Port)
	fmt.Fprintln(out, "  Broadcast targets:")
	for _, t := range cfg.Wake.Targets {
		fmt.Fprintf(out, "    - %s\n", t)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Known hosts: %d\n", dir.Len())
	for _, name := range dir.Names() {
		mac, _ := dir.Lookup(name)
		fmt.Fprintf(out, "  %s: %s\n", name, mac)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "HTTP server:")
	fmt.Fprintf(out, "  Listen: %s\n", listen)

	if cfg.Log.File != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Log file:")
		fmt.Fprintf(out, "  Path: %s\n", cfg.Log.File)
		fmt.Fprintf(out, "  Max size: %d MB\n", cfg.Log.MaxSizeMB)
		fmt.Fprintf(out, "  Max backups: %d\n", cfg.Log.MaxBackups)
		fmt.Fprintf(out, "  Max age: %d day(s)\n", cfg.Log.MaxAgeDays)
		fmt.Fprintf(out, "  Compress: %v\n", cfg.Log.Compress)
	}

	return nil
}
