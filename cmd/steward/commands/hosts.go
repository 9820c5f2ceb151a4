package commands

import (
	"github.com/spf13/cobra"
)

var HostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "steward host inventory commands",
	Long:  `Inspect the local inventory of bootstrapped hosts.`,
}

var ListHostsCmd = &cobra.Command{
	Use:   "list",
	Short: "List bootstrapped hosts",
	Run: func(cmd *cobra.Command, _ []string) {
		if hostsRepository == nil {
			cmd.PrintErrf("❌ Error: inventory database is not available\n")
			return
		}

		all, err := hostsRepository.All()
		if err != nil {
			cmd.PrintErrf("❌ Error: %v\n", err)
			return
		}

		if len(all) == 0 {
			cmd.Printf("No hosts bootstrapped yet.\n")
			return
		}

		for _, host := range all {
			cmd.Printf("%s:%d\n", host.Address, host.SSHPort)
			cmd.Printf("   State: %s\n", host.State)
			if host.AdminUserName != "" {
				cmd.Printf("   Admin: %s\n", host.AdminUserName)
			}
			if host.KeyFingerprint != "" {
				cmd.Printf("   Key:   %s\n", host.KeyFingerprint)
			}

			roles, err := hostsRepository.RolesFor(&host)
			if err == nil && len(roles) > 0 {
				cmd.Printf("   Roles: %v\n", roles)
			}
		}
	},
}

func init() {
	HostsCmd.AddCommand(ListHostsCmd)
}
