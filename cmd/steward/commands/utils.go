package commands

import (
	"fmt"
	"io"
	"syscall"

	"steward/internal/settings"
	"steward/internal/ssh"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPasswordSecurely reads a password from the terminal without echoing
func readPasswordSecurely(prompt string, out io.Writer) (string, error) {
	fmt.Fprintf(out, "%s", prompt)

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintf(out, "\n")

	if err != nil {
		return "", err
	}
	return string(bytePassword), nil
}

// loadHostCredential loads and validates the settings file, optionally
// replacing the root password with an interactively prompted one.
func loadHostCredential(cmd *cobra.Command) (*settings.HostCredential, error) {
	cred, err := settings.Load(settingsPath)
	if err != nil {
		return nil, err
	}

	if promptRootPassword {
		password, err := readPasswordSecurely("🔒 Enter root password: ", cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %v", err)
		}
		cred.RootPassword = password
	}

	return cred, nil
}

func rootCredentials(cred *settings.HostCredential) *ssh.Credentials {
	return &ssh.Credentials{
		Host:     cred.Host,
		Port:     cred.SSHPort,
		Username: "root",
		Password: cred.RootPassword,
	}
}

func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&settingsPath, "settings", settingsPath, "Path to the settings file")
}
