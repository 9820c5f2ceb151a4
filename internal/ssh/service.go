package ssh

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"steward/cmd/steward/config"
	"steward/internal/logger"
	"steward/internal/templates"

	"github.com/aymerick/raymond"
	"github.com/melbahja/goph"
	"golang.org/x/crypto/ssh"
)

// Service provides SSH functionality for steward bootstrapping: the
// two-stage reachability probe, public-key provisioning and remote
// command execution. Every session is freshly dialed and bounded by an
// explicit timeout.
type Service struct {
	DialTimeout      time.Duration
	AuthTimeout      time.Duration
	ProvisionTimeout time.Duration
	SessionTimeout   time.Duration
}

func NewService() *Service {
	return &Service{
		DialTimeout:      config.Config.DialTimeout,
		AuthTimeout:      config.Config.AuthTimeout,
		ProvisionTimeout: config.Config.ProvisionTimeout,
		SessionTimeout:   config.Config.SessionTimeout,
	}
}

// Probe checks the target in two ordered stages. Stage one opens a bare
// TCP connection; failure means Unreachable and the credentials are
// never sent. Stage two establishes an authenticated session and runs a
// no-op command; any failure there means AuthFailed.
//
// Host keys are accepted trust-on-first-use: the target is freshly
// provisioned and not yet in anyone's known_hosts.
func (s *Service) Probe(creds *Credentials) Reachability {
	hostPort := net.JoinHostPort(creds.Host, fmt.Sprintf("%d", creds.Port))

	conn, err := net.DialTimeout("tcp", hostPort, s.DialTimeout)
	if err != nil {
		logger.Debug("transport probe of %s failed: %v", hostPort, err)
		return Unreachable
	}
	conn.Close()

	client, err := s.connect(creds, s.AuthTimeout)
	if err != nil {
		logger.Debug("auth probe of %s failed: %v", hostPort, err)
		return AuthFailed
	}
	defer client.Close()

	outcome, err := s.run(client, "true")
	if err != nil || !outcome.Succeeded {
		return AuthFailed
	}

	return Ready
}

// ProvisionKey installs the public key at publicKeyPath into the
// authorized_keys of creds.Username on the target, over a one-time
// password-authenticated session. The uploaded script only appends the
// key when it is not already present, so re-runs are harmless.
func (s *Service) ProvisionKey(creds *Credentials, publicKeyPath string) error {
	keyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUploadFailed, err)
	}

	scriptTemplate, err := templates.Scripts.ReadFile(config.Config.AuthorizeKeyScriptTemplatePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUploadFailed, err)
	}

	tpl, err := raymond.Parse(string(scriptTemplate))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUploadFailed, err)
	}

	script, err := tpl.Exec(map[string]string{
		"publicKey": strings.TrimSpace(string(keyData)),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUploadFailed, err)
	}

	client, err := s.connect(creds, s.ProvisionTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUploadFailed, err)
	}
	defer client.Close()

	outcome, err := s.run(client, script)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUploadFailed, err)
	}

	if !outcome.Succeeded {
		return fmt.Errorf("%w: exit status %d: %s", ErrKeyUploadFailed, outcome.ExitCode, outcome.Stderr)
	}

	return nil
}

// RunAsRoot executes command on the target over an authenticated
// session. An error is returned only when the session itself cannot be
// established; a command that runs and exits non-zero is reported
// through the outcome, so callers can apply their own policy to it.
func (s *Service) RunAsRoot(creds *Credentials, command string) (*CommandOutcome, error) {
	client, err := s.connect(creds, s.SessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotEstablished, err)
	}
	defer client.Close()

	return s.run(client, command)
}

func (s *Service) connect(creds *Credentials, timeout time.Duration) (*goph.Client, error) {
	var authMethods []ssh.AuthMethod

	switch {
	case creds.PrivateKeyPath != "":
		keyBytes, err := os.ReadFile(creds.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
		}

		var signer ssh.Signer
		if creds.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(creds.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyBytes)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	case creds.Password != "":
		authMethods = append(authMethods, ssh.Password(creds.Password))
	default:
		return nil, ErrNoAuthMethodProvided
	}

	sshConfig := &ssh.ClientConfig{
		User:            creds.Username,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	hostPort := net.JoinHostPort(creds.Host, fmt.Sprintf("%d", creds.Port))

	conn, err := net.DialTimeout("tcp", hostPort, sshConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotEstablished, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, hostPort, sshConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrSessionNotEstablished, err)
	}

	return &goph.Client{Client: ssh.NewClient(sshConn, chans, reqs)}, nil
}

func (s *Service) run(client *goph.Client, command string) (*CommandOutcome, error) {
	cmd, err := client.Command(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotEstablished, err)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	outcome := &CommandOutcome{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrSessionLost, err)
		}
		outcome.ExitCode = exitErr.ExitStatus()
	}

	outcome.Succeeded = outcome.ExitCode == 0

	return outcome, nil
}
