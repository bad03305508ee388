package main

import (
	"fmt"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/services/listener"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var listenAddr string

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print magic packets received on a UDP port",
	Long: `Listen for Wake-on-LAN magic packets and print every one received. Run it on a
machine in the target segment to check that wake requests arrive there.`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVarP(&listenAddr, "addr", "a", ":9", "UDP address to listen on")
}

func runListen(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	svc := listener.New(log.Logger)

	err := svc.ListenAndServe(ctx, listenAddr, func(p models.ReceivedPacket) {
		line := fmt.Sprintf("%s magic packet for %s from %s", p.ReceivedAt.Format("15:04:05"), p.MAC, p.Source)
		if len(p.Password) > 0 {
			line += fmt.Sprintf(" (password %x)", p.Password)
		}
		fmt.Fprintln(out, line)
	})
	if err != nil {
		log.Error().Err(err).Str("addr", listenAddr).Msg("listener failed")
		return err
	}

	return nil
}
