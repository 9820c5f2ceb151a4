package identity

import "errors"

var (
	ErrKeyGenFailed = errors.New("failed to generate key pair")
)
