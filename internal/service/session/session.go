// Package session implements the per-session state machine: creation
// and activation driven by service messages, secure-channel binding and
// loss, authentication-token issuance, and the client-side lifecycle
// notifications.
package session

import (
	"github.com/avencourt/uastack/pkg/ua"
)

// State is the session lifecycle state.
type State uint8

const (
	StateInit State = iota
	StateCreating
	StateCreated
	StateUserActivating
	StateScActivating
	StateUserActivated
	StateScOrphaned
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateCreating:
		return "Creating"
	case StateCreated:
		return "Created"
	case StateUserActivating:
		return "UserActivating"
	case StateScActivating:
		return "ScActivating"
	case StateUserActivated:
		return "UserActivated"
	case StateScOrphaned:
		return "ScOrphaned"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	}
	return "Unknown"
}

// Activated reports whether the session has completed user activation
// and has not been orphaned or closed since.
func (s State) Activated() bool { return s == StateUserActivated }

// UserIdentity is the opaque client identity bound at activation. Only
// the anonymous identity is modeled.
type UserIdentity struct {
	anonymous bool
}

// Anonymous is the sole supported identity.
var Anonymous = UserIdentity{anonymous: true}

// Valid reports whether the identity is one the server accepts.
func (u UserIdentity) Valid() bool { return u.anonymous }

// Session is one authenticated client context, bound to (possibly
// successive) secure channels. All fields are guarded by the owning
// Manager; handlers run on the single dispatcher goroutine.
type Session struct {
	// ID is the process-unique session handle; it is never reused.
	ID uint64

	state   State
	channel uint32
	user    UserIdentity

	// Token is the server-issued authentication token presented on
	// every request after CreateSession. The server issues it; a client
	// session stores the one it receives.
	Token ua.NodeID

	// NonceServer is the 32-byte random value generated once per
	// session when the channel security policy is not None.
	NonceServer ua.ByteString

	// Signature is the server's signature over clientCert+clientNonce,
	// attached to the CreateSession response.
	Signature ua.SignatureData

	clientSide bool

	// activated tracks the client-side notification state: true
	// between an Activated notification and the next transition out of
	// UserActivated.
	activated bool
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Channel returns the bound secure-channel handle, or 0 when the
// session has no channel.
func (s *Session) Channel() uint32 { return s.channel }

// User returns the identity bound at activation.
func (s *Session) User() UserIdentity { return s.user }

// ClientSide reports whether this end created the session as a client.
func (s *Session) ClientSide() bool { return s.clientSide }
