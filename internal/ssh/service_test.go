package ssh

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestService() *Service {
	return &Service{
		DialTimeout:      2 * time.Second,
		AuthTimeout:      5 * time.Second,
		ProvisionTimeout: 5 * time.Second,
		SessionTimeout:   5 * time.Second,
	}
}

// closedPort returns a loopback port with nothing listening on it.
func closedPort(t *testing.T) (string, uint) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}

	tcpAddr := listener.Addr().(*net.TCPAddr)
	listener.Close()

	return tcpAddr.IP.String(), uint(tcpAddr.Port)
}

func TestProbe_UnreachableSkipsAuthStage(t *testing.T) {
	server := startTestServer(t, "secret")
	server.listener.Close()

	host, port := server.addr()
	service := newTestService()

	result := service.Probe(&Credentials{Host: host, Port: port, Username: "root", Password: "secret"})

	if result != Unreachable {
		t.Fatalf("expected Unreachable, got %v", result)
	}
	if server.authCount() != 0 {
		t.Errorf("expected no authentication attempt, got %d", server.authCount())
	}
}

func TestProbe_WrongPasswordIsAuthFailed(t *testing.T) {
	server := startTestServer(t, "secret")
	host, port := server.addr()
	service := newTestService()

	result := service.Probe(&Credentials{Host: host, Port: port, Username: "root", Password: "wrong"})

	if result != AuthFailed {
		t.Fatalf("expected AuthFailed, got %v", result)
	}
	if server.authCount() == 0 {
		t.Error("expected an authentication attempt to have been made")
	}
}

func TestProbe_CorrectPasswordIsReady(t *testing.T) {
	server := startTestServer(t, "secret")
	host, port := server.addr()
	service := newTestService()

	result := service.Probe(&Credentials{Host: host, Port: port, Username: "root", Password: "secret"})

	if result != Ready {
		t.Fatalf("expected Ready, got %v", result)
	}

	commands := server.executedCommands()
	if len(commands) != 1 || commands[0] != "true" {
		t.Errorf("expected a single no-op command, got %v", commands)
	}
}

func TestRunAsRoot_NonZeroExitIsNotAnError(t *testing.T) {
	server := startTestServer(t, "secret")
	host, port := server.addr()
	service := newTestService()

	outcome, err := service.RunAsRoot(&Credentials{Host: host, Port: port, Username: "root", Password: "secret"}, "exit 1")

	if err != nil {
		t.Fatalf("expected no error for a command-level failure, got %v", err)
	}
	if outcome.Succeeded {
		t.Error("expected outcome.Succeeded to be false")
	}
	if outcome.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", outcome.ExitCode)
	}
}

func TestRunAsRoot_CapturesStdout(t *testing.T) {
	server := startTestServer(t, "secret")
	host, port := server.addr()
	service := newTestService()

	outcome, err := service.RunAsRoot(&Credentials{Host: host, Port: port, Username: "root", Password: "secret"}, "echo ok")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !outcome.Succeeded || outcome.ExitCode != 0 {
		t.Errorf("expected success with exit code 0, got %+v", outcome)
	}
	if outcome.Stdout != "ok" {
		t.Errorf("expected stdout %q, got %q", "ok", outcome.Stdout)
	}
}

func TestRunAsRoot_ConnectionFailureIsAnError(t *testing.T) {
	host, port := closedPort(t)
	service := newTestService()

	outcome, err := service.RunAsRoot(&Credentials{Host: host, Port: port, Username: "root", Password: "secret"}, "echo ok")

	if !errors.Is(err, ErrSessionNotEstablished) {
		t.Fatalf("expected ErrSessionNotEstablished, got %v", err)
	}
	if outcome != nil {
		t.Errorf("expected no outcome on connection failure, got %+v", outcome)
	}
}

func TestRunAsRoot_AuthRejectionIsAnError(t *testing.T) {
	server := startTestServer(t, "secret")
	host, port := server.addr()
	service := newTestService()

	_, err := service.RunAsRoot(&Credentials{Host: host, Port: port, Username: "root", Password: "wrong"}, "echo ok")

	if !errors.Is(err, ErrSessionNotEstablished) {
		t.Fatalf("expected ErrSessionNotEstablished, got %v", err)
	}
}

func TestRunAsRoot_NoAuthMethod(t *testing.T) {
	server := startTestServer(t, "secret")
	host, port := server.addr()
	service := newTestService()

	_, err := service.RunAsRoot(&Credentials{Host: host, Port: port, Username: "root"}, "echo ok")

	if !errors.Is(err, ErrNoAuthMethodProvided) {
		t.Fatalf("expected ErrNoAuthMethodProvided, got %v", err)
	}
}

func TestProvisionKey_UploadsKeyLine(t *testing.T) {
	server := startTestServer(t, "adminpass")
	host, port := server.addr()
	service := newTestService()

	keyLine := "ssh-rsa AAAAB3NzaC1yc2EAAAADAQABAAABtest steward"
	publicKeyPath := filepath.Join(t.TempDir(), "id_rsa.pub")
	if err := os.WriteFile(publicKeyPath, []byte(keyLine+"\n"), 0644); err != nil {
		t.Fatalf("failed to write public key: %v", err)
	}

	err := service.ProvisionKey(&Credentials{Host: host, Port: port, Username: "admin", Password: "adminpass"}, publicKeyPath)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	commands := server.executedCommands()
	if len(commands) != 1 {
		t.Fatalf("expected a single upload command, got %v", commands)
	}
	if !strings.Contains(commands[0], keyLine) {
		t.Errorf("expected upload command to carry the key line, got %q", commands[0])
	}
	if !strings.Contains(commands[0], "authorized_keys") {
		t.Errorf("expected upload command to target authorized_keys, got %q", commands[0])
	}
	if !strings.Contains(commands[0], "grep -qxF") {
		t.Errorf("expected idempotent append guard, got %q", commands[0])
	}
}

func TestProvisionKey_AuthRejected(t *testing.T) {
	server := startTestServer(t, "adminpass")
	host, port := server.addr()
	service := newTestService()

	publicKeyPath := filepath.Join(t.TempDir(), "id_rsa.pub")
	if err := os.WriteFile(publicKeyPath, []byte("ssh-rsa AAAA test\n"), 0644); err != nil {
		t.Fatalf("failed to write public key: %v", err)
	}

	err := service.ProvisionKey(&Credentials{Host: host, Port: port, Username: "admin", Password: "wrong"}, publicKeyPath)

	if !errors.Is(err, ErrKeyUploadFailed) {
		t.Fatalf("expected ErrKeyUploadFailed, got %v", err)
	}
}

func TestProvisionKey_MissingPublicKeyFile(t *testing.T) {
	service := newTestService()

	err := service.ProvisionKey(&Credentials{Host: "127.0.0.1", Port: 22, Username: "admin", Password: "x"}, filepath.Join(t.TempDir(), "missing.pub"))

	if !errors.Is(err, ErrKeyUploadFailed) {
		t.Fatalf("expected ErrKeyUploadFailed, got %v", err)
	}
}
