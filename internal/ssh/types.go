package ssh

// Credentials represents different types of SSH authentication
type Credentials struct {
	Host     string
	Port     uint
	Username string
	// Password authentication
	Password string
	// Key-based authentication
	PrivateKeyPath string
	// Passphrase for private key (if encrypted)
	Passphrase string
}

// Reachability is the outcome of the two-stage probe. The distinction
// matters operationally: a caller retries on Unreachable but must stop
// and alert the operator on AuthFailed.
type Reachability int

const (
	// Unreachable means the TCP connection could not be opened at all.
	Unreachable Reachability = iota
	// AuthFailed means the host accepted the connection but rejected
	// the credentials (or the session did not exit cleanly).
	AuthFailed
	// Ready means an authenticated session was established and a no-op
	// command exited cleanly.
	Ready
)

func (r Reachability) String() string {
	switch r {
	case Unreachable:
		return "unreachable"
	case AuthFailed:
		return "auth-failed"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// CommandOutcome reports a command that was successfully executed on the
// target. A non-zero exit is a normal outcome, not a transport error.
type CommandOutcome struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Succeeded bool
}
