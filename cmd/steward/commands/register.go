package commands

import (
	"steward/cmd/steward/config"
	"steward/internal/bootstrap"
	"steward/internal/hosts"
	"steward/internal/identity"
	"steward/internal/installers"
	"steward/internal/ssh"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dbInstance        *gorm.DB
	hostsRepository   *hosts.Repository
	sshService        *ssh.Service
	identityManager   *identity.Manager
	bootstrapService  *bootstrap.Service
	installersService *installers.Service

	settingsPath       = config.Config.SettingsPath
	promptRootPassword = false
)

func RegisterCommands(rootCmd *cobra.Command, db *gorm.DB) {
	dbInstance = db
	if db != nil {
		hostsRepository = hosts.NewRepository(db)
	}

	sshService = ssh.NewService()
	identityManager = identity.NewManager()
	bootstrapService = bootstrap.NewService(identityManager, sshService, hostsRepository)
	installersService = installers.NewService(sshService)

	rootCmd.AddCommand(CheckCmd)
	rootCmd.AddCommand(BootstrapCmd)
	rootCmd.AddCommand(StatusCmd)
	rootCmd.AddCommand(ExecCmd)
	rootCmd.AddCommand(InstallCmd)
	rootCmd.AddCommand(HostsCmd)
}
