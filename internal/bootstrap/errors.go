package bootstrap

import "errors"

// Failure kinds the orchestrator reports, so callers can apply
// differentiated policy: retry or wait on ErrHostUnreachable, stop and
// involve the operator on everything else.
var (
	ErrDependencyMissing  = errors.New("required local applications are missing")
	ErrHostUnreachable    = errors.New("host is unreachable")
	ErrAuthRejected       = errors.New("host is reachable but rejected the credentials")
	ErrVerificationFailed = errors.New("post-provision command verification failed")
)
