package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

var ExecCmd = &cobra.Command{
	Use:   "exec command...",
	Short: "Run a command on the target host as root",
	Long: `Run an arbitrary command on the target host as root over an authenticated session.

A command that runs and exits non-zero is reported with its exit status; only a session that cannot be established at all (network down, credentials rejected) is treated as an error.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cred, err := loadHostCredential(cmd)
		if err != nil {
			cmd.PrintErrf("❌ Error: %v\n", err)
			return
		}

		command := strings.Join(args, " ")

		outcome, err := sshService.RunAsRoot(rootCredentials(cred), command)
		if err != nil {
			cmd.PrintErrf("❌ Error: %v\n", err)
			return
		}

		if outcome.Stdout != "" {
			cmd.Printf("%s\n", outcome.Stdout)
		}
		if outcome.Stderr != "" {
			cmd.PrintErrf("%s\n", outcome.Stderr)
		}
		if !outcome.Succeeded {
			cmd.PrintErrf("❌ Command exited with status %d\n", outcome.ExitCode)
		}
	},
}

func init() {
	addSettingsFlags(ExecCmd)
	ExecCmd.Flags().BoolVar(&promptRootPassword, "prompt-root-password", false, "Prompt for the root password instead of reading it from the settings file")
}
