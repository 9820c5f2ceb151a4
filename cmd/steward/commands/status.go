package commands

import (
	"steward/internal/hosts"
	"steward/internal/ssh"

	"github.com/spf13/cobra"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check target host reachability",
	Long:  `Check the target host in two stages: TCP reachability of the SSH port, then password authentication as root. The two failure modes are reported separately because they call for different reactions: wait or fix the network for an unreachable host, fix the credentials for a rejected login.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cred, err := loadHostCredential(cmd)
		if err != nil {
			cmd.PrintErrf("❌ Error: %v\n", err)
			return
		}

		cmd.Printf("🔍 Checking steward Target Status\n")
		cmd.Printf("=================================\n\n")
		cmd.Printf("📡 Target: root@%s:%d\n", cred.Host, cred.SSHPort)

		switch sshService.Probe(rootCredentials(cred)) {
		case ssh.Unreachable:
			cmd.Printf("   Status: ❌ Unreachable\n")
			cmd.Printf("   💡 No TCP connection. Check address, port and firewall.\n")
		case ssh.AuthFailed:
			cmd.Printf("   Status: ❌ Reachable, authentication failed\n")
			cmd.Printf("   💡 Fix the root credentials in the settings file.\n")
		case ssh.Ready:
			cmd.Printf("   Status: ✅ Ready\n")
		}

		if hostsRepository == nil {
			return
		}

		host, err := hostsRepository.GetByAddress(cred.Host)
		if err != nil {
			if err != hosts.ErrHostNotFound {
				cmd.PrintErrf("❌ Error reading inventory: %v\n", err)
			}
			return
		}

		cmd.Printf("\n📒 Inventory\n")
		cmd.Printf("   State: %s\n", host.State)
		if host.KeyFingerprint != "" {
			cmd.Printf("   Key:   %s\n", host.KeyFingerprint)
		}

		roles, err := hostsRepository.RolesFor(host)
		if err == nil && len(roles) > 0 {
			cmd.Printf("   Roles: %v\n", roles)
		}
	},
}

func init() {
	addSettingsFlags(StatusCmd)
	StatusCmd.Flags().BoolVar(&promptRootPassword, "prompt-root-password", false, "Prompt for the root password instead of reading it from the settings file")
}
