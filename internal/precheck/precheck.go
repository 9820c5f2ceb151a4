package precheck

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"steward/internal/distribution"
)

// Requirement is a local tool steward (or the operator, right after
// bootstrap) depends on, together with the package that provides it.
type Requirement struct {
	Name    string
	Package string
}

// Tools steward hands off to after the connectivity handshake: the
// OpenSSH client for operator logins over the provisioned key, and
// rsync for pushing role configuration to the target.
var required = []Requirement{
	{Name: "ssh", Package: "openssh-client"},
	{Name: "rsync", Package: "rsync"},
}

type Result struct {
	OK      bool
	Missing []Requirement
}

// Stubbed in tests.
var (
	lookPath      = exec.LookPath
	osReleasePath = "/etc/os-release"
)

// Check tests every required tool and accumulates all misses, so the
// operator sees the full list at once instead of fixing them one by one.
func Check() Result {
	result := Result{OK: true}

	for _, req := range required {
		if _, err := lookPath(req.Name); err != nil {
			result.OK = false
			result.Missing = append(result.Missing, req)
		}
	}

	return result
}

// Diagnostic renders a human-readable report of the missing tools. When
// the local OS matches a known distribution family, the report includes
// a ready-to-run install command.
func (r Result) Diagnostic() string {
	if r.OK {
		return "all required applications are installed"
	}

	var sb strings.Builder
	sb.WriteString("missing required applications:\n")

	packages := make([]string, 0, len(r.Missing))
	for _, req := range r.Missing {
		fmt.Fprintf(&sb, "  - %s (package: %s)\n", req.Name, req.Package)
		packages = append(packages, req.Package)
	}

	if cmd := installHint(packages); cmd != "" {
		fmt.Fprintf(&sb, "install with:\n  %s\n", cmd)
	}

	return sb.String()
}

func installHint(packages []string) string {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return ""
	}

	distro, err := distribution.Detect(string(data))
	if err != nil {
		return ""
	}

	return distro.InstallCommand(packages...)
}
