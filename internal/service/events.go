// Package service hosts the services manager: the single-threaded
// event dispatcher, the event model exchanged with the secure-channels
// layer and the application, and the request handlers that drive the
// session and view subsystems.
package service

import (
	"github.com/avencourt/uastack/internal/service/session"
	"github.com/avencourt/uastack/pkg/ua"
)

// Event is a message posted to an event queue. Concrete event types
// below; handlers run to completion on the dispatcher goroutine.
type Event any

// Events received from the secure-channels manager.
type (
	// EndpointScConnected reports a server-side secure channel opened
	// on a listening endpoint.
	EndpointScConnected struct {
		EndpointCfg uint32
		ScCfg       uint32
		Channel     uint32
	}

	// EndpointClosed reports a listening endpoint shut down.
	EndpointClosed struct {
		EndpointCfg uint32
		Status      ua.StatusCode
	}

	// ScConnected reports a client-side secure channel established.
	ScConnected struct {
		Channel uint32
		ScCfg   uint32
	}

	// ScConnectionTimeout reports a client-side channel that never
	// came up.
	ScConnectionTimeout struct {
		ScCfg uint32
	}

	// ScDisconnected reports a secure channel lost.
	ScDisconnected struct {
		Channel uint32
		Status  ua.StatusCode
	}

	// ScServiceRcvMsg delivers a decoded service message received on a
	// secure channel.
	ScServiceRcvMsg struct {
		Channel       uint32
		Message       any
		RequestHandle uint32
	}
)

// Events received from the application API.
type (
	// OpenEndpoint starts listening on a configured endpoint.
	OpenEndpoint struct {
		EndpointCfg uint32
	}

	// CloseEndpoint stops a listening endpoint.
	CloseEndpoint struct {
		EndpointCfg uint32
	}

	// ActivateSessionCmd asks the client side to create and activate a
	// session on the channel of the given configuration.
	ActivateSessionCmd struct {
		ScCfg uint32
		User  session.UserIdentity
	}

	// SendSessionRequest sends a service request on an activated
	// session.
	SendSessionRequest struct {
		Session       uint64
		Message       any
		RequestHandle uint32
	}

	// CloseSessionCmd closes a session from the application.
	CloseSessionCmd struct {
		Session uint64
	}

	// SessionTimeout is posted by the timer service when a session's
	// activation or lifetime timer expires.
	SessionTimeout struct {
		Session uint64
	}
)

// Events emitted towards the secure-channels manager.
type (
	// ScConnect asks for a client secure channel.
	ScConnect struct {
		ScCfg uint32
	}

	// ScDisconnect releases a secure channel.
	ScDisconnect struct {
		Channel uint32
	}

	// ScServiceSndMsg hands a response or request message to the
	// channel layer; the encoding collaborator serializes it.
	ScServiceSndMsg struct {
		Channel       uint32
		Message       any
		RequestHandle uint32
	}
)

// Events emitted towards the application.
type (
	// SessionActivationFailure reports a session that failed before
	// its first activation.
	SessionActivationFailure struct {
		Session uint64
		Status  ua.StatusCode
	}

	// ActivatedSession reports a session entering UserActivated.
	ActivatedSession struct {
		Session uint64
	}

	// SessionReactivating reports an activated session re-activating
	// after a channel loss or user change.
	SessionReactivating struct {
		Session uint64
	}

	// RcvSessionResponse delivers a service response for a request
	// sent with SendSessionRequest.
	RcvSessionResponse struct {
		Session       uint64
		Message       any
		RequestHandle uint32
		Status        ua.StatusCode
	}

	// ClosedSession reports a session reaching Closed.
	ClosedSession struct {
		Session uint64
		Status  ua.StatusCode
	}

	// ClosedEndpoint reports an endpoint shut down.
	ClosedEndpoint struct {
		EndpointCfg uint32
		Status      ua.StatusCode
	}
)
