package distribution

import (
	"fmt"
	"strings"
)

// Distribution abstracts the package manager of a distribution family.
// The command strings run on whichever host the caller points them at:
// locally for install hints, remotely over SSH for role installs.
type Distribution interface {
	Name() string
	InstallCommand(packages ...string) string
	VerifyCommand(pkg string) string
	EnableServiceCommand(service string) string
}

type debian struct{}

func (debian) Name() string {
	return "debian"
}

func (debian) InstallCommand(packages ...string) string {
	return fmt.Sprintf(
		"DEBIAN_FRONTEND=noninteractive apt-get update -qq && DEBIAN_FRONTEND=noninteractive apt-get install -y -qq %s",
		strings.Join(packages, " "),
	)
}

func (debian) VerifyCommand(pkg string) string {
	return fmt.Sprintf("dpkg -s %s", pkg)
}

func (debian) EnableServiceCommand(service string) string {
	return fmt.Sprintf("systemctl enable --now %s", service)
}

type rhel struct{}

func (rhel) Name() string {
	return "rhel"
}

func (rhel) InstallCommand(packages ...string) string {
	return fmt.Sprintf("dnf install -y -q %s", strings.Join(packages, " "))
}

func (rhel) VerifyCommand(pkg string) string {
	return fmt.Sprintf("rpm -q %s", pkg)
}

func (rhel) EnableServiceCommand(service string) string {
	return fmt.Sprintf("systemctl enable --now %s", service)
}

var families = map[string]Distribution{
	"debian": debian{},
	"ubuntu": debian{},
	"rhel":   rhel{},
	"centos": rhel{},
	"fedora": rhel{},
	"rocky":  rhel{},
	"alma":   rhel{},
}

// Detect maps an os-release document to a distribution family, using ID
// first and falling back to ID_LIKE.
func Detect(osRelease string) (Distribution, error) {
	ids := []string{}

	for _, line := range strings.Split(osRelease, "\n") {
		line = strings.TrimSpace(line)

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		if key == "ID" || key == "ID_LIKE" {
			value = strings.Trim(value, `"`)
			ids = append(ids, strings.Fields(value)...)
		}
	}

	for _, id := range ids {
		if distro, ok := families[strings.ToLower(id)]; ok {
			return distro, nil
		}
	}

	return nil, fmt.Errorf("%w: os-release ids %v", ErrUnsupportedDistribution, ids)
}
