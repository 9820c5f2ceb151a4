package hosts

import "time"

// BootstrapState tracks how far a host has progressed through the
// bootstrap sequence.
type BootstrapState string

const (
	// StatePending: host recorded, reachability confirmed, key not yet
	// provisioned.
	StatePending BootstrapState = "pending"
	// StateKeyProvisioned: public key installed, verification pending.
	StateKeyProvisioned BootstrapState = "key-provisioned"
	// StateReady: authenticated command execution confirmed.
	StateReady BootstrapState = "ready"
)

// Host is one managed target in the local inventory.
type Host struct {
	ID             string `gorm:"primaryKey"`
	Address        string `gorm:"uniqueIndex"`
	SSHPort        uint
	AdminUserName  string
	KeyFingerprint string
	State          BootstrapState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleInstall records a role (web, mail, database) installed on a host.
type RoleInstall struct {
	ID     string `gorm:"primaryKey"`
	HostID string `gorm:"index"`
	Role   string

	CreatedAt time.Time
}
