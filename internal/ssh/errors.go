package ssh

import "errors"

// Session errors: the connection itself could not be established or was
// lost. Distinct from a remote command exiting non-zero, which is a
// normal CommandOutcome.
var (
	ErrNoAuthMethodProvided  = errors.New("no valid authentication method provided")
	ErrFailedToCreateAuth    = errors.New("failed to create auth")
	ErrSessionNotEstablished = errors.New("failed to establish SSH session")
	ErrSessionLost           = errors.New("SSH session failed mid-command")
)

// Provisioning errors
var (
	ErrKeyUploadFailed = errors.New("failed to install public key on target")
)
