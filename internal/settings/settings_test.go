package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

func TestLoad_AllFieldsPresent(t *testing.T) {
	path := writeSettings(t, `
server:
  host: 10.0.0.5
  port_for_ssh: 22
root:
  password: x
super_user:
  name: admin
  password: y
`)

	cred, err := Load(path)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cred.Host != "10.0.0.5" {
		t.Errorf("expected host 10.0.0.5, got %s", cred.Host)
	}
	if cred.SSHPort != 22 {
		t.Errorf("expected port 22, got %d", cred.SSHPort)
	}
	if cred.RootPassword != "x" {
		t.Errorf("expected root password x, got %s", cred.RootPassword)
	}
	if cred.AdminUserName != "admin" {
		t.Errorf("expected admin user name admin, got %s", cred.AdminUserName)
	}
	if cred.AdminUserPassword != "y" {
		t.Errorf("expected admin password y, got %s", cred.AdminUserPassword)
	}
}

func TestLoad_MissingHost(t *testing.T) {
	path := writeSettings(t, `
server:
  port_for_ssh: 22
root:
  password: x
`)

	cred, err := Load(path)

	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	if cred != nil {
		t.Errorf("expected no credential on validation failure, got %+v", cred)
	}
}

func TestLoad_MissingPort(t *testing.T) {
	path := writeSettings(t, `
server:
  host: 10.0.0.5
`)

	cred, err := Load(path)

	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	if cred != nil {
		t.Errorf("expected no credential on validation failure, got %+v", cred)
	}
}

func TestLoad_EmptyHost(t *testing.T) {
	path := writeSettings(t, `
server:
  host: ""
  port_for_ssh: 22
`)

	_, err := Load(path)

	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
}

func TestLoad_PasswordsMayBeAbsent(t *testing.T) {
	path := writeSettings(t, `
server:
  host: 10.0.0.5
  port_for_ssh: 2222
`)

	cred, err := Load(path)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cred.SSHPort != 2222 {
		t.Errorf("expected port 2222, got %d", cred.SSHPort)
	}
	if cred.RootPassword != "" || cred.AdminUserPassword != "" {
		t.Errorf("expected empty passwords, got %q and %q", cred.RootPassword, cred.AdminUserPassword)
	}
}

func TestLoad_PortOutOfRange(t *testing.T) {
	path := writeSettings(t, `
server:
  host: 10.0.0.5
  port_for_ssh: 70000
`)

	_, err := Load(path)

	if !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	if !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}
