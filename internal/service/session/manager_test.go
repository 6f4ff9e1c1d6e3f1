package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencourt/uastack/pkg/ua"
)

type recordingNotifier struct {
	activated    []uint64
	reactivating []uint64
	closed       []uint64
	failures     []uint64
}

func (r *recordingNotifier) Activated(id uint64)                 { r.activated = append(r.activated, id) }
func (r *recordingNotifier) Reactivating(id uint64)              { r.reactivating = append(r.reactivating, id) }
func (r *recordingNotifier) Closed(id uint64, _ ua.StatusCode)   { r.closed = append(r.closed, id) }
func (r *recordingNotifier) ActivationFailure(id uint64, _ ua.StatusCode) {
	r.failures = append(r.failures, id)
}

func newTestManager(n Notifier) *Manager {
	return NewManager(Config{MaxSessions: 8}, nil, n, nil)
}

func TestServerSessionLifecycle(t *testing.T) {
	m := newTestManager(nil)

	s, err := m.Create(1, false)
	require.NoError(t, err)
	assert.Equal(t, StateCreating, s.State())
	assert.Equal(t, uint32(1), s.Channel())

	token := m.IssueToken(s)
	assert.False(t, token.IsNull())

	require.Equal(t, ua.StatusGood, m.CompleteCreate(s))
	assert.Equal(t, StateCreated, s.State())

	require.Equal(t, ua.StatusGood, m.BeginActivate(s, Anonymous))
	assert.Equal(t, StateUserActivating, s.State())

	require.Equal(t, ua.StatusGood, m.CompleteActivate(s))
	assert.Equal(t, StateUserActivated, s.State())

	m.Close(s, ua.StatusGood)
	assert.Equal(t, StateClosed, s.State())
	assert.True(t, s.Token.IsNull(), "close releases the token")
	assert.Zero(t, s.NonceServer.Len())
}

func TestTokenUniqueAndResolvable(t *testing.T) {
	m := newTestManager(nil)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		s, err := m.Create(uint32(i+1), false)
		require.NoError(t, err)
		token := m.IssueToken(s)

		require.Equal(t, ua.IdentifierNumeric, token.Type, "tokens are numeric NodeIds")
		require.Equal(t, uint16(0), token.Namespace, "tokens live in namespace 0")
		require.False(t, seen[token.String()], "token %s reissued", token.String())
		seen[token.String()] = true

		got, ok := m.GetFromToken(token)
		require.True(t, ok)
		assert.Equal(t, s.ID, got.ID)
	}

	_, ok := m.GetFromToken(ua.NewNumericNodeID(0, 424242))
	assert.False(t, ok)
}

func TestTokenNotReissuedAfterClose(t *testing.T) {
	m := newTestManager(nil)

	s1, err := m.Create(1, false)
	require.NoError(t, err)
	t1 := m.IssueToken(s1)
	m.Close(s1, ua.StatusGood)

	s2, err := m.Create(1, false)
	require.NoError(t, err)
	t2 := m.IssueToken(s2)

	assert.False(t, t1.Equal(t2), "a token once issued is never reissued")
	_, ok := m.GetFromToken(t1)
	assert.False(t, ok, "a closed session's token must not resolve")
}

func TestChannelLostOrphansActivatedSession(t *testing.T) {
	m := newTestManager(nil)

	s, err := m.Create(4, false)
	require.NoError(t, err)
	m.IssueToken(s)
	m.CompleteCreate(s)
	m.BeginActivate(s, Anonymous)
	m.CompleteActivate(s)

	m.ChannelLost(4)
	assert.Equal(t, StateScOrphaned, s.State(), "an activated session survives channel loss as orphaned")
	assert.Zero(t, s.Channel())

	// Re-bind to a new channel and re-activate.
	require.Equal(t, ua.StatusGood, m.BindNewChannel(s, 9))
	assert.Equal(t, StateScActivating, s.State())
	require.Equal(t, ua.StatusGood, m.BeginActivate(s, Anonymous))
	require.Equal(t, ua.StatusGood, m.CompleteActivate(s))
	assert.Equal(t, StateUserActivated, s.State())
	assert.Equal(t, uint32(9), s.Channel())
}

func TestChannelLostClosesNonActivatedSession(t *testing.T) {
	m := newTestManager(nil)

	s, err := m.Create(4, false)
	require.NoError(t, err)
	m.CompleteCreate(s)

	m.ChannelLost(4)
	assert.Equal(t, StateClosed, s.State())
	_, ok := m.Get(s.ID)
	assert.False(t, ok)
}

func TestBindNewChannelRequiresOrphan(t *testing.T) {
	m := newTestManager(nil)
	s, err := m.Create(1, false)
	require.NoError(t, err)
	assert.Equal(t, ua.StatusBadInvalidState, m.BindNewChannel(s, 2))
}

func TestClientNotifications(t *testing.T) {
	n := &recordingNotifier{}
	m := newTestManager(n)

	s, err := m.Create(1, true)
	require.NoError(t, err)
	m.CompleteCreate(s)
	m.BeginActivate(s, Anonymous)
	m.CompleteActivate(s)
	require.Equal(t, []uint64{s.ID}, n.activated, "Activated fires once on first activation")

	// Channel loss while activated: Reactivating, not Closed.
	m.ChannelLost(1)
	require.Equal(t, []uint64{s.ID}, n.reactivating)
	assert.Empty(t, n.closed)

	// Re-activation fires Activated again.
	m.BindNewChannel(s, 2)
	m.BeginActivate(s, Anonymous)
	m.CompleteActivate(s)
	assert.Equal(t, []uint64{s.ID, s.ID}, n.activated)

	// Closing an activated session fires ClosedSession exactly once.
	m.Close(s, ua.StatusGood)
	assert.Equal(t, []uint64{s.ID}, n.closed)
	assert.Empty(t, n.failures)
	m.Close(s, ua.StatusGood)
	assert.Equal(t, []uint64{s.ID}, n.closed, "Close is idempotent")
}

func TestClientActivationFailureNotification(t *testing.T) {
	n := &recordingNotifier{}
	m := newTestManager(n)

	s, err := m.Create(1, true)
	require.NoError(t, err)
	m.Close(s, ua.StatusBadSecureChannelClosed)

	assert.Equal(t, []uint64{s.ID}, n.failures, "failure before first activation reports ActivationFailure")
	assert.Empty(t, n.closed)
}

func TestSessionLimit(t *testing.T) {
	m := NewManager(Config{MaxSessions: 2}, nil, nil, nil)
	_, err := m.Create(1, false)
	require.NoError(t, err)
	_, err = m.Create(1, false)
	require.NoError(t, err)
	_, err = m.Create(1, false)
	assert.Error(t, err)
}

func TestInvalidUserRejected(t *testing.T) {
	m := newTestManager(nil)
	s, err := m.Create(1, false)
	require.NoError(t, err)
	m.CompleteCreate(s)
	assert.Equal(t, ua.StatusBadIdentityTokenInvalid, m.BeginActivate(s, UserIdentity{}))
}

func TestCloseHookReleasesResources(t *testing.T) {
	m := newTestManager(nil)
	var released []uint64
	m.SetCloseHook(func(id uint64) { released = append(released, id) })

	s, err := m.Create(1, false)
	require.NoError(t, err)
	m.Close(s, ua.StatusGood)
	assert.Equal(t, []uint64{s.ID}, released)
}
