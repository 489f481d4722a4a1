package models

// SessionStatus is the client's belief about whether it may call protected
// endpoints. Exactly one value holds at any time.
type SessionStatus int

const (
	// SessionUnknown is the initial value, left once by the first probe.
	SessionUnknown SessionStatus = iota
	// SessionAuthenticated means the ambient session cookie is valid.
	SessionAuthenticated
	// SessionUnauthenticated means the user has to log in again.
	SessionUnauthenticated
)

// String implements fmt.Stringer.
func (s SessionStatus) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}
