package commands

import (
	"steward/internal/installers"
	"steward/internal/logger"

	"github.com/spf13/cobra"
)

var InstallCmd = &cobra.Command{
	Use:       "install web|mail|database",
	Short:     "Install a server role on the bootstrapped host",
	Long:      `Install a server role on the bootstrapped target host: web (nginx), mail (postfix) or database (postgresql). Packages are installed through the package manager of the target's distribution family; role-specific tuning is left to the operator.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(installers.RoleWeb), string(installers.RoleMail), string(installers.RoleDatabase)},
	Run: func(cmd *cobra.Command, args []string) {
		cred, err := loadHostCredential(cmd)
		if err != nil {
			cmd.PrintErrf("❌ Error: %v\n", err)
			return
		}

		role := installers.Role(args[0])

		if err := installersService.Install(rootCredentials(cred), role, cmd.OutOrStdout()); err != nil {
			cmd.PrintErrf("❌ Error: %v\n", err)
			return
		}

		if hostsRepository != nil {
			host, err := hostsRepository.Ensure(cred.Host, cred.SSHPort, cred.AdminUserName)
			if err == nil {
				err = hostsRepository.RecordRole(host, string(role))
			}
			if err != nil {
				logger.Warn("failed to record role install in inventory: %v", err)
			}
		}

		cmd.Printf("\n🎉 Role %s installed on %s.\n", role, cred.Host)
	},
}

func init() {
	addSettingsFlags(InstallCmd)
	InstallCmd.Flags().BoolVar(&promptRootPassword, "prompt-root-password", false, "Prompt for the root password instead of reading it from the settings file")
}
