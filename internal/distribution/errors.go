package distribution

import "errors"

var (
	ErrUnsupportedDistribution = errors.New("unsupported distribution family")
)
