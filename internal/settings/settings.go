package settings

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// HostCredential is the validated connection tuple for one target host.
// It is built once per run and never mutated afterwards.
type HostCredential struct {
	Host              string
	SSHPort           uint
	RootPassword      string
	AdminUserName     string
	AdminUserPassword string
}

// Required field paths. Passwords and the admin user name may legitimately
// be empty, so only host and port are checked for presence.
const (
	FieldHost              = "server.host"
	FieldSSHPort           = "server.port_for_ssh"
	FieldRootPassword      = "root.password"
	FieldAdminUserName     = "super_user.name"
	FieldAdminUserPassword = "super_user.password"
)

// Load reads the settings file at path and validates the connection tuple.
func Load(path string) (*HostCredential, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (create it or point --settings at an existing file)", ErrSettingsNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSettingsUnreadable, err)
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettingsUnreadable, err)
	}

	return validate(v)
}

func validate(v *viper.Viper) (*HostCredential, error) {
	if !v.IsSet(FieldHost) || v.GetString(FieldHost) == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, FieldHost)
	}
	if !v.IsSet(FieldSSHPort) {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, FieldSSHPort)
	}

	port := v.GetInt(FieldSSHPort)
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPort, port)
	}

	return &HostCredential{
		Host:              v.GetString(FieldHost),
		SSHPort:           uint(port),
		RootPassword:      v.GetString(FieldRootPassword),
		AdminUserName:     v.GetString(FieldAdminUserName),
		AdminUserPassword: v.GetString(FieldAdminUserPassword),
	}, nil
}
