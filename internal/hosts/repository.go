package hosts

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Ensure returns the inventory record for address, creating one in
// StatePending when the host has not been seen before.
func (r *Repository) Ensure(address string, sshPort uint, adminUserName string) (*Host, error) {
	var host Host

	err := r.db.First(&host, "address = ?", address).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		host = Host{
			ID:            uuid.NewString(),
			Address:       address,
			SSHPort:       sshPort,
			AdminUserName: adminUserName,
			State:         StatePending,
		}
		if err := r.db.Create(&host).Error; err != nil {
			return nil, err
		}
		return &host, nil
	}

	if err != nil {
		return nil, err
	}

	// Connection details may change between runs; keep them current.
	host.SSHPort = sshPort
	host.AdminUserName = adminUserName

	if err := r.db.Save(&host).Error; err != nil {
		return nil, err
	}

	return &host, nil
}

func (r *Repository) GetByAddress(address string) (*Host, error) {
	var host Host

	err := r.db.First(&host, "address = ?", address).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHostNotFound
	}
	if err != nil {
		return nil, err
	}

	return &host, nil
}

func (r *Repository) All() ([]Host, error) {
	var all []Host

	if err := r.db.Order("address").Find(&all).Error; err != nil {
		return nil, err
	}

	return all, nil
}

func (r *Repository) SetState(host *Host, state BootstrapState) error {
	host.State = state
	return r.db.Save(host).Error
}

func (r *Repository) SetKeyFingerprint(host *Host, fingerprint string) error {
	host.KeyFingerprint = fingerprint
	return r.db.Save(host).Error
}

// RecordRole marks a role as installed on the host. Recording the same
// role twice is a no-op.
func (r *Repository) RecordRole(host *Host, role string) error {
	var existing RoleInstall

	err := r.db.First(&existing, "host_id = ? AND role = ?", host.ID, role).Error

	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(&RoleInstall{
		ID:     uuid.NewString(),
		HostID: host.ID,
		Role:   role,
	}).Error
}

func (r *Repository) RolesFor(host *Host) ([]string, error) {
	var installs []RoleInstall

	if err := r.db.Order("created_at").Find(&installs, "host_id = ?", host.ID).Error; err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(installs))
	for _, install := range installs {
		roles = append(roles, install.Role)
	}

	return roles, nil
}
