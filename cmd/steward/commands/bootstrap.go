package commands

import (
	"github.com/spf13/cobra"
)

var BootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Bootstrap the target host",
	Long: `Bootstrap the target host described in the settings file: verify local tooling, validate the connection settings, ensure a local key pair, probe the host, install the public key for passwordless access and verify remote command execution.

The sequence is safe to re-run: an existing key pair is never regenerated and an already-installed public key is not duplicated on the target.`,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := bootstrapService.Run(settingsPath, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			cmd.PrintErrf("\n❌ Bootstrap failed: %v\n", err)
		}
	},
}

func init() {
	addSettingsFlags(BootstrapCmd)
}
