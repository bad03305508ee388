package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fgeck/gowol-homelab/internal/services/hosts"
	"github.com/spf13/cobra"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List known host names and their MAC addresses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := hosts.New(cfg.Hosts)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMAC")
		for _, name := range dir.Names() {
			mac, _ := dir.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\n", name, mac)
		}
		return w.Flush()
	},
}
