package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/services/hosts"
	"github.com/fgeck/gowol-homelab/internal/services/wake"
	"github.com/fgeck/gowol-homelab/internal/wol"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	wakeTargets []string
	wakePort    int
)

var wakeCmd = &cobra.Command{
	Use:   "wake <mac-or-name>...",
	Short: "Send magic packets to wake machines",
	Long: `Send a Wake-on-LAN magic packet for every argument. An argument is either a
known host name or a MAC address written as 001122334455, 00:11:22:33:44:55
or 00-11-22-33-44-55.

Exits non-zero if any argument is not a valid MAC address. Packets that were
sent are never acknowledged, so a machine may still fail to power on.`,
	Example: `  gowol-homelab wake mercury
  gowol-homelab wake 00:11:22:33:44:55 venus
  gowol-homelab wake -t 10.0.0.255 -t 10.0.1.255:7 001122334455`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWake,
}

func init() {
	wakeCmd.Flags().StringSliceVarP(&wakeTargets, "target", "t", nil, "broadcast target host[:port], repeatable (overrides configured targets)")
	wakeCmd.Flags().IntVarP(&wakePort, "port", "p", 0, "UDP port for targets given without one (default from config, usually 9)")
}

func runWake(cmd *cobra.Command, args []string) error {
	wakeCfg, err := resolveWakeConfig(cfg.Wake, wakeTargets, wakePort)
	if err != nil {
		log.Error().Err(err).Msg("invalid broadcast targets")
		return err
	}

	dir := hosts.New(cfg.Hosts)
	svc := wake.New(log.Logger, wakeCfg)

	outcomes, err := svc.Wake(cmd.Context(), dir.ResolveAll(args))
	if err != nil {
		log.Error().Err(err).Msg("wake failed")
		return err
	}

	return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, outcomes)
}

// resolveWakeConfig applies the --target and --port flags to the configured
// wake settings. With --port alone, every configured target uses that port.
func resolveWakeConfig(base models.WakeConfig, targets []string, port int) (models.WakeConfig, error) {
	resolved := models.WakeConfig{
		Port:    base.Port,
		Targets: append([]models.BroadcastTarget(nil), base.Targets...),
	}

	if port != 0 {
		if err := wol.ValidatePort(port); err != nil {
			return models.WakeConfig{}, fmt.Errorf("--port: %w", err)
		}
		resolved.Port = port
		if len(targets) == 0 {
			for i := range resolved.Targets {
				resolved.Targets[i].Port = port
			}
		}
	}

	if len(targets) > 0 {
		parsed, err := wol.ParseTargets(targets, resolved.Port)
		if err != nil {
			return models.WakeConfig{}, fmt.Errorf("--target: %w", err)
		}
		resolved.Targets = parsed
	}

	return resolved, nil
}

// report prints one line per argument and returns an error if any was rejected.
func report(stdout, stderr io.Writer, args []string, outcomes []models.WakeOutcome) error {
	rejected := 0

	for i, o := range outcomes {
		arg := o.Input
		if i < len(args) {
			arg = args[i]
		}

		if o.Rejected() {
			rejected++
			fmt.Fprintf(stderr, "rejected %q: %s (and not a known host name)\n", arg, rejectionReason(o.Reason))
			continue
		}

		line := fmt.Sprintf("sent magic packet for %s", o.MAC)
		if arg != o.MAC {
			line += fmt.Sprintf(" (%s)", arg)
		}
		if failed := len(o.FailedTargets()); failed > 0 {
			line += fmt.Sprintf(", %d of %d broadcast targets failed", failed, len(o.Targets))
		}
		fmt.Fprintln(stdout, line)
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d addresses rejected", rejected, len(outcomes))
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, wol.ErrInvalidLength):
		return "bad length, expected 12 hex digits optionally separated by ':' or '-'"
	case errors.Is(err, wol.ErrInvalidFormat):
		return "bad format, only hex digits 0-9 and a-f are allowed"
	default:
		return err.Error()
	}
}
