package bootstrap

import (
	"fmt"
	"io"

	"steward/internal/hosts"
	"steward/internal/identity"
	"steward/internal/logger"
	"steward/internal/precheck"
	"steward/internal/settings"
	"steward/internal/ssh"
)

// KeyEnsurer yields the local key pair, generating one on demand.
type KeyEnsurer interface {
	EnsureKeyPair() (*identity.KeyPair, error)
}

// Connector is the SSH surface the orchestrator drives.
type Connector interface {
	Probe(creds *ssh.Credentials) ssh.Reachability
	ProvisionKey(creds *ssh.Credentials, publicKeyPath string) error
	RunAsRoot(creds *ssh.Credentials, command string) (*ssh.CommandOutcome, error)
}

// Service runs the bootstrap sequence for one host, strictly in order:
// precheck, settings validation, local identity, reachability probe,
// key provisioning, command verification. Each stage must complete
// before the next begins and every failure is reported as a typed
// error, leaving retry-versus-abort policy to the caller.
type Service struct {
	Identity KeyEnsurer
	SSH      Connector
	Hosts    *hosts.Repository

	// Check is the local tooling precheck, stubbed in tests.
	Check func() precheck.Result
}

func NewService(identityManager KeyEnsurer, sshService Connector, hostsRepository *hosts.Repository) *Service {
	return &Service{
		Identity: identityManager,
		SSH:      sshService,
		Hosts:    hostsRepository,
		Check:    precheck.Check,
	}
}

func (s *Service) Run(settingsPath string, stdOut io.Writer, errOut io.Writer) error {
	fmt.Fprintf(stdOut, "🚀 steward Host Bootstrapping\n")
	fmt.Fprintf(stdOut, "=============================\n\n")

	// Local tooling
	fmt.Fprintf(stdOut, "🔧 Checking local applications...\n")

	check := s.Check()
	if !check.OK {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "%s\n", check.Diagnostic())

		names := make([]string, 0, len(check.Missing))
		for _, req := range check.Missing {
			names = append(names, req.Name)
		}
		return fmt.Errorf("%w: %v", ErrDependencyMissing, names)
	}

	fmt.Fprintf(stdOut, "   Status: ✅ All present\n\n")

	// Settings
	fmt.Fprintf(stdOut, "📄 Loading settings from %s...\n", settingsPath)

	cred, err := settings.Load(settingsPath)
	if err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n", err)
		return err
	}

	fmt.Fprintf(stdOut, "   Target: %s:%d\n", cred.Host, cred.SSHPort)
	fmt.Fprintf(stdOut, "   Status: ✅ Validated\n\n")

	// Local identity
	fmt.Fprintf(stdOut, "🔑 Ensuring local key pair...\n")

	pair, err := s.Identity.EnsureKeyPair()
	if err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n", err)
		return err
	}

	fmt.Fprintf(stdOut, "   Key:    %s\n", pair.PrivateKeyPath)
	fmt.Fprintf(stdOut, "   Status: ✅ Available\n\n")

	// Reachability
	fmt.Fprintf(stdOut, "📡 Probing %s:%d...\n", cred.Host, cred.SSHPort)

	rootCreds := &ssh.Credentials{
		Host:     cred.Host,
		Port:     cred.SSHPort,
		Username: "root",
		Password: cred.RootPassword,
	}

	switch s.SSH.Probe(rootCreds) {
	case ssh.Unreachable:
		fmt.Fprintf(errOut, "   Status: ❌ Unreachable\n")
		fmt.Fprintf(errOut, "   💡 The host did not accept a TCP connection. Check the address, port and firewall, then re-run.\n")
		return fmt.Errorf("%w: %s:%d", ErrHostUnreachable, cred.Host, cred.SSHPort)
	case ssh.AuthFailed:
		fmt.Fprintf(errOut, "   Status: ❌ Authentication failed\n")
		fmt.Fprintf(errOut, "   💡 The host is up but rejected the root credentials. Fix them in the settings file.\n")
		return fmt.Errorf("%w: %s:%d", ErrAuthRejected, cred.Host, cred.SSHPort)
	}

	fmt.Fprintf(stdOut, "   Status: ✅ Ready\n\n")

	host, err := s.recordHost(cred)
	if err != nil {
		// Inventory bookkeeping must not abort an otherwise healthy run.
		logger.Warn("failed to record host in inventory: %v", err)
	}

	// Key provisioning
	fmt.Fprintf(stdOut, "🔐 Provisioning public key for %s@%s...\n", cred.AdminUserName, cred.Host)

	adminCreds := &ssh.Credentials{
		Host:     cred.Host,
		Port:     cred.SSHPort,
		Username: cred.AdminUserName,
		Password: cred.AdminUserPassword,
	}

	if err := s.SSH.ProvisionKey(adminCreds, pair.PublicKeyPath); err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n", err)
		return err
	}

	fmt.Fprintf(stdOut, "   Status: ✅ Key installed\n\n")

	s.markProvisioned(host, pair)

	// Verification
	fmt.Fprintf(stdOut, "✅ Verifying remote execution...\n")

	outcome, err := s.SSH.RunAsRoot(rootCreds, "echo ok")
	if err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n", err)
		return err
	}
	if !outcome.Succeeded {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  verification command exited with status %d\n", outcome.ExitCode)
		return fmt.Errorf("%w: exit status %d", ErrVerificationFailed, outcome.ExitCode)
	}

	fmt.Fprintf(stdOut, "   Status: ✅ Verified\n\n")

	s.markReady(host)

	fmt.Fprintf(stdOut, "🎉 Host %s is bootstrapped and ready for role installation.\n", cred.Host)

	return nil
}

func (s *Service) recordHost(cred *settings.HostCredential) (*hosts.Host, error) {
	if s.Hosts == nil {
		return nil, nil
	}
	return s.Hosts.Ensure(cred.Host, cred.SSHPort, cred.AdminUserName)
}

func (s *Service) markProvisioned(host *hosts.Host, pair *identity.KeyPair) {
	if s.Hosts == nil || host == nil {
		return
	}

	if fingerprint, err := pair.Fingerprint(); err == nil {
		if err := s.Hosts.SetKeyFingerprint(host, fingerprint); err != nil {
			logger.Warn("failed to record key fingerprint: %v", err)
		}
	}

	if err := s.Hosts.SetState(host, hosts.StateKeyProvisioned); err != nil {
		logger.Warn("failed to update host state: %v", err)
	}
}

func (s *Service) markReady(host *hosts.Host) {
	if s.Hosts == nil || host == nil {
		return
	}

	if err := s.Hosts.SetState(host, hosts.StateReady); err != nil {
		logger.Warn("failed to update host state: %v", err)
	}
}
