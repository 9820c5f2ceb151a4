package main

import (
	"fmt"

	"steward/cmd/steward/commands"
	"steward/cmd/steward/config"
	"steward/internal/database"
	"steward/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "steward",
	Short: "Bootstrap freshly provisioned hosts into managed web, mail and database servers",
	Long: `steward turns a freshly provisioned remote host into a managed server by establishing secure, passwordless administrative access and verifying the host is ready before any role software is installed.

The bootstrap sequence:

1. Check that the required local applications are installed.
2. Load and validate the target connection settings.
3. Ensure a local key pair exists, generating one on first use.
4. Probe the target in two stages: TCP reachability, then root password authentication. The two failure modes are reported separately: an unreachable host is worth retrying, rejected credentials are not.
5. Install the local public key into the administrative user's authorized_keys for passwordless future access.
6. Verify remote command execution as root.

Describe the target in the settings file (default: ~/.steward/settings.yaml):

server:
  host: 140.120.110.10
  port_for_ssh: 22
root:
  password: secret
super_user:
  name: admin
  password: secret

Then bootstrap and install roles:

steward bootstrap
steward install web

Supported roles: web (nginx), mail (postfix), database (postgresql). Role-specific configuration such as TLS certificates, mail relay and database tuning stays in the operator's hands.`,
	Version: fmt.Sprintf("%s (commit: %s, date: %s, arch: %s, os: %s); db path: %s; profile: %s", version.Version, version.Commit, version.Date, version.Arch, version.OS, config.DatabasePath, config.StewardProfile),
}

func main() {
	db, err := database.InitDB()

	if err != nil {
		rootCmd.PrintErrf("Failed to initialize database at %s: %v\n", config.Config.DatabasePath, err)
	}

	commands.RegisterCommands(rootCmd, db)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("%v\n", err)
	}

	defer func() {
		if db == nil {
			return
		}
		if err := database.CloseDB(db); err != nil {
			rootCmd.PrintErrf("Failed to close database: %v\n", err)
		}
	}()
}
