package settings

import "errors"

var (
	ErrSettingsNotFound     = errors.New("settings file not found")
	ErrSettingsUnreadable   = errors.New("failed to read settings file")
	ErrMissingRequiredField = errors.New("required settings field is missing")
	ErrInvalidPort          = errors.New("server.port_for_ssh must be between 1 and 65535")
)
