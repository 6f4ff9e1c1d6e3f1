package session

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/avencourt/uastack/internal/logger"
	"github.com/avencourt/uastack/pkg/ua"
)

// Notifier receives the client-side lifecycle notifications. Each
// notification is emitted exactly once per matching transition. A nil
// Notifier silences them.
type Notifier interface {
	// Activated fires on every transition into UserActivated.
	Activated(sessionID uint64)
	// Reactivating fires when an activated session leaves
	// UserActivated to re-activate on a new channel or user.
	Reactivating(sessionID uint64)
	// Closed fires when an activated session reaches Closed.
	Closed(sessionID uint64, status ua.StatusCode)
	// ActivationFailure fires when a session fails before its first
	// activation.
	ActivationFailure(sessionID uint64, status ua.StatusCode)
}

// Config bounds the session manager.
type Config struct {
	// MaxSessions is the maximum number of live sessions.
	MaxSessions int
}

// Manager owns every live session and drives the state machine. State
// transitions run on the dispatcher goroutine; the mutex only protects
// the lookup maps against concurrent diagnostic readers.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
	byToken  map[string]*Session

	nextID    atomic.Uint64
	nextToken atomic.Uint32

	cfg      Config
	crypto   CryptoProvider
	notifier Notifier
	metrics  *Metrics

	// onClose releases per-session resources held elsewhere, such as
	// continuation points.
	onClose func(sessionID uint64)
}

// NewManager builds a session manager. crypto, notifier, metrics and
// onClose may be nil.
func NewManager(cfg Config, crypto CryptoProvider, notifier Notifier, metrics *Metrics) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 20
	}
	return &Manager{
		sessions: map[uint64]*Session{},
		byToken:  map[string]*Session{},
		cfg:      cfg,
		crypto:   crypto,
		notifier: notifier,
		metrics:  metrics,
	}
}

// SetCloseHook installs the per-session cleanup callback invoked on
// every transition to Closed.
func (m *Manager) SetCloseHook(hook func(sessionID uint64)) {
	m.onClose = hook
}

// Create allocates a fresh session in Creating, bound to the channel
// the CreateSession request arrived on.
func (m *Manager) Create(channel uint32, clientSide bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.cfg.MaxSessions {
		return nil, fmt.Errorf("session limit reached (%d)", m.cfg.MaxSessions)
	}
	s := &Session{
		ID:         m.nextID.Add(1),
		state:      StateCreating,
		channel:    channel,
		clientSide: clientSide,
	}
	m.sessions[s.ID] = s
	m.metrics.ObserveCreated()
	m.metrics.SetActive(len(m.sessions))
	logger.Debug("Session created", "session", s.ID, "channel", channel)
	return s, nil
}

// Get returns a live session by handle.
func (m *Manager) Get(id uint64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetFromToken resolves the session holding the given authentication
// token.
func (m *Manager) GetFromToken(token ua.NodeID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byToken[token.String()]
	return s, ok
}

// Snapshot lists the live sessions for diagnostics.
func (m *Manager) Snapshot() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, s := range m.sessions {
		infos = append(infos, SessionInfo{
			ID:      s.ID,
			State:   s.state.String(),
			Channel: s.channel,
			Token:   s.Token.String(),
		})
	}
	return infos
}

// SessionInfo is the diagnostic view of one session.
type SessionInfo struct {
	ID      uint64 `json:"id"`
	State   string `json:"state"`
	Channel uint32 `json:"channel"`
	Token   string `json:"token"`
}

// IssueToken assigns a fresh authentication token: a monotonically
// increasing numeric NodeId in namespace 0, never reissued within the
// process lifetime. Zero is reserved as indeterminate.
func (m *Manager) IssueToken(s *Session) ua.NodeID {
	tok := ua.NewNumericNodeID(0, m.nextToken.Add(1))
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Token = tok
	m.byToken[tok.String()] = s
	return tok
}

// CompleteCreate moves Creating to Created once the nonce and signature
// are computed and the response is on its way.
func (m *Manager) CompleteCreate(s *Session) ua.StatusCode {
	if s.state != StateCreating {
		return ua.StatusBadInvalidState
	}
	s.state = StateCreated
	return ua.StatusGood
}

// BeginActivate handles an ActivateSession request: first activation
// from Created, user re-binding from UserActivated, or the tail of a
// channel re-bind from ScActivating.
func (m *Manager) BeginActivate(s *Session, user UserIdentity) ua.StatusCode {
	if !user.Valid() {
		return ua.StatusBadIdentityTokenInvalid
	}
	switch s.state {
	case StateCreated:
		s.state = StateUserActivating
	case StateUserActivated:
		m.leaveActivated(s)
		s.state = StateUserActivating
	case StateScActivating:
		// Channel re-bind in progress; the user is re-applied below.
	default:
		return ua.StatusBadInvalidState
	}
	s.user = user
	return ua.StatusGood
}

// CompleteActivate commits the activation once the response is sent.
// The Activated notification fires on every transition into
// UserActivated.
func (m *Manager) CompleteActivate(s *Session) ua.StatusCode {
	switch s.state {
	case StateUserActivating, StateScActivating:
	default:
		return ua.StatusBadInvalidState
	}
	s.state = StateUserActivated
	m.metrics.ObserveActivated()
	if s.clientSide && !s.activated {
		s.activated = true
		if m.notifier != nil {
			m.notifier.Activated(s.ID)
		}
	}
	logger.Info("Session activated", "session", s.ID, "channel", s.channel)
	return ua.StatusGood
}

// BindNewChannel re-binds an orphaned session to a replacement secure
// channel, entering ScActivating until the activation completes.
func (m *Manager) BindNewChannel(s *Session, channel uint32) ua.StatusCode {
	if s.state != StateScOrphaned {
		return ua.StatusBadInvalidState
	}
	s.channel = channel
	s.state = StateScActivating
	m.metrics.ObserveRebound()
	logger.Info("Session re-binding to new channel", "session", s.ID, "channel", channel)
	return ua.StatusGood
}

// Close terminates the session with the given status, releasing the
// token, nonce and signature, firing the matching notification exactly
// once, and invoking the close hook.
func (m *Manager) Close(s *Session, status ua.StatusCode) {
	if s.state == StateClosed {
		return
	}
	wasActivated := s.activated
	s.state = StateClosed
	s.activated = false

	m.mu.Lock()
	if !s.Token.IsNull() {
		delete(m.byToken, s.Token.String())
	}
	delete(m.sessions, s.ID)
	active := len(m.sessions)
	m.mu.Unlock()

	s.Token.Clear()
	s.NonceServer.Clear()
	s.Signature = ua.SignatureData{}
	s.channel = 0

	m.metrics.ObserveClosed(status)
	m.metrics.SetActive(active)

	if s.clientSide && m.notifier != nil {
		if wasActivated {
			m.notifier.Closed(s.ID, status)
		} else {
			m.notifier.ActivationFailure(s.ID, status)
		}
	}
	if m.onClose != nil {
		m.onClose(s.ID)
	}
	logger.Info("Session closed", "session", s.ID, "status", status.String())
}

// ChannelLost reacts to a secure-channel loss: sessions that never
// finished activation close with a failure; activated sessions become
// orphaned and may re-bind to a new channel later.
func (m *Manager) ChannelLost(channel uint32) {
	m.mu.RLock()
	var affected []*Session
	for _, s := range m.sessions {
		if s.channel == channel {
			affected = append(affected, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range affected {
		if s.state.Activated() {
			m.leaveActivated(s)
			s.state = StateScOrphaned
			s.channel = 0
			m.metrics.ObserveOrphaned()
			logger.Warn("Session orphaned by channel loss", "session", s.ID, "channel", channel)
		} else {
			m.Close(s, ua.StatusBadSecureChannelClosed)
		}
	}
}

// Timeout closes a session whose activation or lifetime timer expired.
func (m *Manager) Timeout(s *Session) {
	m.Close(s, ua.StatusBadTimeout)
}

// leaveActivated handles the notification bookkeeping for any
// transition out of UserActivated short of closing.
func (m *Manager) leaveActivated(s *Session) {
	if s.clientSide && s.activated {
		s.activated = false
		if m.notifier != nil {
			m.notifier.Reactivating(s.ID)
		}
	}
}
