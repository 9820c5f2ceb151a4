package hosts

import "errors"

var (
	ErrHostNotFound = errors.New("host not found in inventory")
)
