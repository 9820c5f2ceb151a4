package installers

import "errors"

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrInstallFailed = errors.New("role installation failed")
)
