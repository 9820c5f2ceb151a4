package installers

import (
	"fmt"
	"io"

	"steward/cmd/steward/config"
	"steward/internal/distribution"
	"steward/internal/ssh"
	"steward/internal/templates"

	"github.com/aymerick/raymond"
)

// Role is a managed server profile installable on a bootstrapped host.
type Role string

const (
	RoleWeb      Role = "web"
	RoleMail     Role = "mail"
	RoleDatabase Role = "database"
)

type roleSpec struct {
	Packages []string
	Service  string
}

var roleSpecs = map[Role]roleSpec{
	RoleWeb:      {Packages: []string{"nginx"}, Service: "nginx"},
	RoleMail:     {Packages: []string{"postfix"}, Service: "postfix"},
	RoleDatabase: {Packages: []string{"postgresql"}, Service: "postgresql"},
}

// Roles lists the installable roles, for CLI validation and help text.
func Roles() []Role {
	return []Role{RoleWeb, RoleMail, RoleDatabase}
}

// Runner executes commands on the target as the superuser.
type Runner interface {
	RunAsRoot(creds *ssh.Credentials, command string) (*ssh.CommandOutcome, error)
}

type Service struct {
	Runner Runner
}

func NewService(runner Runner) *Service {
	return &Service{
		Runner: runner,
	}
}

// Install detects the target's distribution family and installs the
// packages for role, enabling the associated service. Service tuning
// (TLS, relay and database configuration) is left to the operator.
func (s *Service) Install(creds *ssh.Credentials, role Role, stdOut io.Writer) error {
	spec, ok := roleSpecs[role]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}

	fmt.Fprintf(stdOut, "🔍 Detecting distribution on %s...\n", creds.Host)

	outcome, err := s.Runner.RunAsRoot(creds, "cat /etc/os-release")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}
	if !outcome.Succeeded {
		return fmt.Errorf("%w: could not read os-release: %s", ErrInstallFailed, outcome.Stderr)
	}

	distro, err := distribution.Detect(outcome.Stdout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	fmt.Fprintf(stdOut, "   Family: %s\n", distro.Name())
	fmt.Fprintf(stdOut, "📦 Installing %s role (packages: %v)...\n", role, spec.Packages)

	script, err := s.renderScript(distro, spec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	outcome, err = s.Runner.RunAsRoot(creds, script)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}
	if !outcome.Succeeded {
		return fmt.Errorf("%w: exit status %d: %s", ErrInstallFailed, outcome.ExitCode, outcome.Stderr)
	}

	fmt.Fprintf(stdOut, "   Status: ✅ Installed\n")

	return nil
}

func (s *Service) renderScript(distro distribution.Distribution, spec roleSpec) (string, error) {
	scriptTemplate, err := templates.Scripts.ReadFile(config.Config.InstallRoleScriptTemplatePath)
	if err != nil {
		return "", err
	}

	tpl, err := raymond.Parse(string(scriptTemplate))
	if err != nil {
		return "", err
	}

	return tpl.Exec(map[string]string{
		"installCommand": distro.InstallCommand(spec.Packages...),
		"enableCommand":  distro.EnableServiceCommand(spec.Service),
		"verifyCommand":  distro.VerifyCommand(spec.Packages[0]),
	})
}
