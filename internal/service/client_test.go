package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencourt/uastack/internal/service/session"
	"github.com/avencourt/uastack/pkg/ua"
)

func TestClientSessionHandshake(t *testing.T) {
	s := newTestServices()

	// The application asks for an activated session before any channel
	// exists: the core requests one.
	s.HandleEvent(ActivateSessionCmd{ScCfg: 5, User: session.Anonymous})
	ev, ok := s.ToChannels().TryRecv()
	require.True(t, ok)
	connect, ok := ev.(ScConnect)
	require.True(t, ok, "expected ScConnect, got %T", ev)
	assert.Equal(t, uint32(5), connect.ScCfg)

	// Channel comes up: the core opens the session.
	s.HandleEvent(ScConnected{Channel: 31, ScCfg: 5})
	created := drainToChannels(t, s)
	createReq, ok := created.Message.(*ua.CreateSessionRequest)
	require.True(t, ok, "expected CreateSessionRequest, got %T", created.Message)

	// Server answers: the core activates.
	token := ua.NewNumericNodeID(0, 99)
	s.HandleEvent(ScServiceRcvMsg{
		Channel:       31,
		RequestHandle: created.RequestHandle,
		Message: &ua.CreateSessionResponse{
			Header:              ua.ResponseHeader{RequestHandle: createReq.Header.RequestHandle},
			AuthenticationToken: token,
		},
	})
	activate := drainToChannels(t, s)
	activateReq, ok := activate.Message.(*ua.ActivateSessionRequest)
	require.True(t, ok, "expected ActivateSessionRequest, got %T", activate.Message)
	assert.True(t, activateReq.Header.AuthenticationToken.Equal(token))

	s.HandleEvent(ScServiceRcvMsg{
		Channel:       31,
		RequestHandle: activate.RequestHandle,
		Message:       &ua.ActivateSessionResponse{},
	})

	// The application learns about the activation exactly once.
	var activatedEvents int
	for {
		appEv, ok := s.ToApp().TryRecv()
		if !ok {
			break
		}
		if _, isActivated := appEv.(ActivatedSession); isActivated {
			activatedEvents++
		}
	}
	assert.Equal(t, 1, activatedEvents)
}

func TestClientChannelTimeoutReportsFailure(t *testing.T) {
	s := newTestServices()

	s.HandleEvent(ActivateSessionCmd{ScCfg: 6, User: session.Anonymous})
	_, ok := s.ToChannels().TryRecv() // ScConnect
	require.True(t, ok)

	s.HandleEvent(ScConnectionTimeout{ScCfg: 6})

	ev, ok := s.ToApp().TryRecv()
	require.True(t, ok)
	failure, ok := ev.(SessionActivationFailure)
	require.True(t, ok, "expected SessionActivationFailure, got %T", ev)
	assert.Equal(t, ua.StatusBadTimeout, failure.Status)
}
