package service

import (
	"time"

	"github.com/avencourt/uastack/internal/logger"
	"github.com/avencourt/uastack/internal/service/session"
	"github.com/avencourt/uastack/internal/service/view"
	"github.com/avencourt/uastack/pkg/addrspace"
	"github.com/avencourt/uastack/pkg/ua"
)

// Config bounds the services manager.
type Config struct {
	MaxSessions             int
	MaxOperationsPerRequest int
	SessionTimeout          time.Duration
	View                    view.Config
}

// DefaultConfig mirrors the server defaults.
func DefaultConfig() Config {
	return Config{
		MaxSessions:             20,
		MaxOperationsPerRequest: 500,
		SessionTimeout:          time.Minute,
		View:                    view.DefaultConfig(),
	}
}

// channelInfo is the services manager's view of one live secure
// channel.
type channelInfo struct {
	scCfg  uint32
	client bool
	policy string
	// session is the client session riding this channel, when any.
	session uint64
}

// Services is the services manager: it owns the session manager and the
// view engine, consumes events from the secure-channels manager and the
// application, and emits events back to both. All handler state is
// confined to the dispatcher goroutine.
type Services struct {
	cfg      Config
	sessions *session.Manager
	views    *view.Engine

	in         *Queue
	toChannels *Queue
	toApp      *Queue
	timers     *TimerService

	channels  map[uint32]channelInfo
	endpoints map[uint32]bool

	// pendingActivate holds client activation requests waiting for
	// their secure channel to come up, keyed by channel config index.
	pendingActivate map[uint32]session.UserIdentity
	// pendingUser holds the identity to apply once a client session
	// reaches activation, keyed by session id.
	pendingUser map[uint64]session.UserIdentity
	// inflight maps request handles of application requests to their
	// session, for response routing.
	inflight map[uint32]uint64

	// PolicyResolver maps a channel config index to its security
	// policy URI. Defaults to the None policy.
	PolicyResolver func(scCfg uint32) string

	nextRequestHandle uint32
}

// New builds the services manager. crypto and the metrics may be nil.
func New(cfg Config, space addrspace.AddressSpace, crypto session.CryptoProvider,
	sessionMetrics *session.Metrics, viewMetrics *view.Metrics) *Services {

	if cfg.MaxOperationsPerRequest <= 0 {
		cfg.MaxOperationsPerRequest = DefaultConfig().MaxOperationsPerRequest
	}
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultConfig().SessionTimeout
	}

	s := &Services{
		cfg:             cfg,
		in:              NewQueue(0),
		toChannels:      NewQueue(0),
		toApp:           NewQueue(0),
		channels:        map[uint32]channelInfo{},
		endpoints:       map[uint32]bool{},
		pendingActivate: map[uint32]session.UserIdentity{},
		pendingUser:     map[uint64]session.UserIdentity{},
		inflight:        map[uint32]uint64{},
	}
	s.timers = NewTimerService(s.in)
	s.views = view.NewEngine(space, cfg.View, viewMetrics)
	s.sessions = session.NewManager(session.Config{MaxSessions: cfg.MaxSessions},
		crypto, &appNotifier{out: s.toApp}, sessionMetrics)
	s.sessions.SetCloseHook(s.views.ReleaseSession)
	return s
}

// In returns the dispatcher input queue.
func (s *Services) In() *Queue { return s.in }

// ToChannels returns the queue of events for the secure-channels
// manager.
func (s *Services) ToChannels() *Queue { return s.toChannels }

// ToApp returns the queue of events for the application.
func (s *Services) ToApp() *Queue { return s.toApp }

// Sessions exposes the session manager for diagnostics.
func (s *Services) Sessions() *session.Manager { return s.sessions }

// Views exposes the view engine.
func (s *Services) Views() *view.Engine { return s.views }

// HandleEvent is the dispatcher handler: one run-to-completion state
// transition per event.
func (s *Services) HandleEvent(ev Event) {
	switch e := ev.(type) {
	case EndpointScConnected:
		s.channels[e.Channel] = channelInfo{scCfg: e.ScCfg, policy: s.policy(e.ScCfg)}
	case EndpointClosed:
		delete(s.endpoints, e.EndpointCfg)
		s.post(s.toApp, ClosedEndpoint{EndpointCfg: e.EndpointCfg, Status: e.Status})
	case ScConnected:
		s.handleScConnected(e)
	case ScConnectionTimeout:
		if _, ok := s.pendingActivate[e.ScCfg]; ok {
			delete(s.pendingActivate, e.ScCfg)
			s.post(s.toApp, SessionActivationFailure{Status: ua.StatusBadTimeout})
		}
	case ScDisconnected:
		delete(s.channels, e.Channel)
		s.sessions.ChannelLost(e.Channel)
	case ScServiceRcvMsg:
		s.handleServiceMsg(e)
	case OpenEndpoint:
		s.endpoints[e.EndpointCfg] = true
	case CloseEndpoint:
		delete(s.endpoints, e.EndpointCfg)
		s.post(s.toApp, ClosedEndpoint{EndpointCfg: e.EndpointCfg, Status: ua.StatusGood})
	case ActivateSessionCmd:
		s.handleActivateCmd(e)
	case SendSessionRequest:
		s.handleSendRequest(e)
	case CloseSessionCmd:
		s.handleCloseCmd(e)
	case SessionTimeout:
		if sess, ok := s.sessions.Get(e.Session); ok && !sess.State().Activated() {
			s.sessions.Timeout(sess)
		}
	default:
		logger.Warn("Unhandled service event", "event", ev)
	}
}

func (s *Services) policy(scCfg uint32) string {
	if s.PolicyResolver != nil {
		return s.PolicyResolver(scCfg)
	}
	return session.SecurityPolicyNone
}

func (s *Services) post(q *Queue, ev Event) {
	if err := q.Post(ev); err != nil {
		logger.Error("Dropping outgoing event", "error", err)
	}
}

// ============================================================
// Client side
// ============================================================

func (s *Services) handleActivateCmd(e ActivateSessionCmd) {
	for ch, info := range s.channels {
		if info.client && info.scCfg == e.ScCfg && info.session == 0 {
			s.startClientSession(ch, e.User)
			return
		}
	}
	s.pendingActivate[e.ScCfg] = e.User
	s.post(s.toChannels, ScConnect{ScCfg: e.ScCfg})
}

func (s *Services) handleScConnected(e ScConnected) {
	s.channels[e.Channel] = channelInfo{scCfg: e.ScCfg, client: true, policy: s.policy(e.ScCfg)}
	if user, ok := s.pendingActivate[e.ScCfg]; ok {
		delete(s.pendingActivate, e.ScCfg)
		s.startClientSession(e.Channel, user)
	}
}

func (s *Services) startClientSession(channel uint32, user session.UserIdentity) {
	sess, err := s.sessions.Create(channel, true)
	if err != nil {
		logger.Error("Client session creation failed", "error", err)
		s.post(s.toApp, SessionActivationFailure{Status: ua.StatusBadTooManyOperations})
		return
	}
	info := s.channels[channel]
	info.session = sess.ID
	s.channels[channel] = info
	s.pendingUser[sess.ID] = user

	s.nextRequestHandle++
	s.post(s.toChannels, ScServiceSndMsg{
		Channel:       channel,
		RequestHandle: s.nextRequestHandle,
		Message: &ua.CreateSessionRequest{
			Header:                  ua.RequestHeader{RequestHandle: s.nextRequestHandle},
			SessionName:             ua.NewString("uastack session"),
			RequestedSessionTimeout: s.cfg.SessionTimeout.Seconds() * 1000,
		},
	})
}

// handleClientResponse advances the client handshake or forwards an
// application response.
func (s *Services) handleClientResponse(e ScServiceRcvMsg, info channelInfo) {
	sess, ok := s.sessions.Get(info.session)
	switch msg := e.Message.(type) {
	case *ua.CreateSessionResponse:
		if !ok {
			return
		}
		if msg.Header.ServiceResult.IsBad() {
			s.sessions.Close(sess, msg.Header.ServiceResult)
			return
		}
		sess.Token = msg.AuthenticationToken.Copy()
		s.sessions.CompleteCreate(sess)
		user := s.pendingUser[sess.ID]
		if st := s.sessions.BeginActivate(sess, user); st.IsBad() {
			s.sessions.Close(sess, st)
			return
		}
		s.nextRequestHandle++
		s.post(s.toChannels, ScServiceSndMsg{
			Channel:       e.Channel,
			RequestHandle: s.nextRequestHandle,
			Message: &ua.ActivateSessionRequest{
				Header: ua.RequestHeader{
					AuthenticationToken: sess.Token.Copy(),
					RequestHandle:       s.nextRequestHandle,
				},
			},
		})
	case *ua.ActivateSessionResponse:
		if !ok {
			return
		}
		if msg.Header.ServiceResult.IsBad() {
			s.sessions.Close(sess, msg.Header.ServiceResult)
			return
		}
		delete(s.pendingUser, sess.ID)
		s.sessions.CompleteActivate(sess)
	case *ua.CloseSessionResponse:
		if ok {
			s.sessions.Close(sess, ua.StatusGood)
		}
	default:
		if sid, found := s.inflight[e.RequestHandle]; found {
			delete(s.inflight, e.RequestHandle)
			status := ua.StatusGood
			if fault, isFault := e.Message.(*ua.ServiceFault); isFault {
				status = fault.Header.ServiceResult
			}
			s.post(s.toApp, RcvSessionResponse{
				Session:       sid,
				Message:       e.Message,
				RequestHandle: e.RequestHandle,
				Status:        status,
			})
		}
	}
}

func (s *Services) handleSendRequest(e SendSessionRequest) {
	sess, ok := s.sessions.Get(e.Session)
	if !ok || !sess.State().Activated() {
		s.post(s.toApp, RcvSessionResponse{
			Session: e.Session, RequestHandle: e.RequestHandle,
			Status: ua.StatusBadSessionIDInvalid,
		})
		return
	}
	s.inflight[e.RequestHandle] = e.Session
	s.post(s.toChannels, ScServiceSndMsg{
		Channel:       sess.Channel(),
		Message:       e.Message,
		RequestHandle: e.RequestHandle,
	})
}

func (s *Services) handleCloseCmd(e CloseSessionCmd) {
	sess, ok := s.sessions.Get(e.Session)
	if !ok {
		return
	}
	if ch := sess.Channel(); ch != 0 {
		s.nextRequestHandle++
		s.post(s.toChannels, ScServiceSndMsg{
			Channel:       ch,
			RequestHandle: s.nextRequestHandle,
			Message: &ua.CloseSessionRequest{
				Header: ua.RequestHeader{
					AuthenticationToken: sess.Token.Copy(),
					RequestHandle:       s.nextRequestHandle,
				},
			},
		})
		return
	}
	s.sessions.Close(sess, ua.StatusGood)
}

// ============================================================
// Server side
// ============================================================

func (s *Services) handleServiceMsg(e ScServiceRcvMsg) {
	info, known := s.channels[e.Channel]
	if !known {
		logger.Warn("Service message on unknown channel", "channel", e.Channel)
		return
	}
	if info.client {
		s.handleClientResponse(e, info)
		return
	}

	var resp any
	switch req := e.Message.(type) {
	case *ua.CreateSessionRequest:
		resp = s.handleCreateSession(e.Channel, info, req)
	case *ua.ActivateSessionRequest:
		resp = s.handleActivateSession(e.Channel, req)
	case *ua.CloseSessionRequest:
		resp = s.handleCloseSession(req)
	case *ua.BrowseRequest:
		resp = s.handleBrowse(e.Channel, req)
	case *ua.BrowseNextRequest:
		resp = s.handleBrowseNext(e.Channel, req)
	case *ua.TranslateBrowsePathsRequest:
		resp = s.handleTranslate(e.Channel, req)
	default:
		resp = fault(e.RequestHandle, ua.StatusBadUnexpectedError)
	}
	s.post(s.toChannels, ScServiceSndMsg{
		Channel:       e.Channel,
		Message:       resp,
		RequestHandle: e.RequestHandle,
	})
}

func fault(handle uint32, status ua.StatusCode) *ua.ServiceFault {
	return &ua.ServiceFault{Header: responseHeader(handle, status)}
}

func responseHeader(handle uint32, status ua.StatusCode) ua.ResponseHeader {
	return ua.ResponseHeader{
		Timestamp:     ua.DateTimeFromTime(time.Now()),
		RequestHandle: handle,
		ServiceResult: status,
	}
}

func (s *Services) handleCreateSession(channel uint32, info channelInfo, req *ua.CreateSessionRequest) any {
	sess, err := s.sessions.Create(channel, false)
	if err != nil {
		return fault(req.Header.RequestHandle, ua.StatusBadTooManyOperations)
	}
	token := s.sessions.IssueToken(sess)
	if err := s.sessions.ComputeNonceAndSignature(sess, req, info.policy); err != nil {
		logger.Error("CreateSession crypto failed", "session", sess.ID, "error", err)
		s.sessions.Close(sess, ua.StatusBadUnexpectedError)
		return fault(req.Header.RequestHandle, ua.StatusBadUnexpectedError)
	}
	if st := s.sessions.CompleteCreate(sess); st.IsBad() {
		s.sessions.Close(sess, st)
		return fault(req.Header.RequestHandle, st)
	}
	s.timers.Schedule(s.cfg.SessionTimeout, SessionTimeout{Session: sess.ID})

	return &ua.CreateSessionResponse{
		Header:                responseHeader(req.Header.RequestHandle, ua.StatusGood),
		SessionID:             ua.NewNumericNodeID(1, uint32(sess.ID)),
		AuthenticationToken:   token.Copy(),
		RevisedSessionTimeout: s.cfg.SessionTimeout.Seconds() * 1000,
		ServerNonce:           sess.NonceServer.Copy(),
		ServerSignature: ua.SignatureData{
			Algorithm: sess.Signature.Algorithm.Copy(),
			Signature: sess.Signature.Signature.Copy(),
		},
	}
}

func (s *Services) handleActivateSession(channel uint32, req *ua.ActivateSessionRequest) any {
	sess, ok := s.sessions.GetFromToken(req.Header.AuthenticationToken)
	if !ok {
		return fault(req.Header.RequestHandle, ua.StatusBadSessionIDInvalid)
	}
	if sess.State() == session.StateScOrphaned {
		if st := s.sessions.BindNewChannel(sess, channel); st.IsBad() {
			return fault(req.Header.RequestHandle, st)
		}
	} else if sess.Channel() != channel {
		return fault(req.Header.RequestHandle, ua.StatusBadSecureChannelIDInvalid)
	}
	if st := s.sessions.BeginActivate(sess, session.Anonymous); st.IsBad() {
		return fault(req.Header.RequestHandle, st)
	}
	if st := s.sessions.CompleteActivate(sess); st.IsBad() {
		return fault(req.Header.RequestHandle, st)
	}
	return &ua.ActivateSessionResponse{
		Header:      responseHeader(req.Header.RequestHandle, ua.StatusGood),
		ServerNonce: sess.NonceServer.Copy(),
	}
}

func (s *Services) handleCloseSession(req *ua.CloseSessionRequest) any {
	sess, ok := s.sessions.GetFromToken(req.Header.AuthenticationToken)
	if !ok {
		return fault(req.Header.RequestHandle, ua.StatusBadSessionIDInvalid)
	}
	s.sessions.Close(sess, ua.StatusGood)
	return &ua.CloseSessionResponse{
		Header: responseHeader(req.Header.RequestHandle, ua.StatusGood),
	}
}

// activeSession validates the authentication token and channel binding
// for a request on an activated session.
func (s *Services) activeSession(channel uint32, hdr ua.RequestHeader) (*session.Session, ua.StatusCode) {
	sess, ok := s.sessions.GetFromToken(hdr.AuthenticationToken)
	if !ok {
		return nil, ua.StatusBadSessionIDInvalid
	}
	if sess.Channel() != channel {
		return nil, ua.StatusBadSecureChannelIDInvalid
	}
	if !sess.State().Activated() {
		return nil, ua.StatusBadSessionNotActivated
	}
	return sess, ua.StatusGood
}

func (s *Services) handleBrowse(channel uint32, req *ua.BrowseRequest) any {
	sess, st := s.activeSession(channel, req.Header)
	if st.IsBad() {
		return fault(req.Header.RequestHandle, st)
	}
	if len(req.NodesToBrowse) == 0 {
		return fault(req.Header.RequestHandle, ua.StatusBadNothingToDo)
	}
	if len(req.NodesToBrowse) > s.cfg.MaxOperationsPerRequest {
		return fault(req.Header.RequestHandle, ua.StatusBadTooManyOperations)
	}
	if !req.View.ViewID.IsNull() {
		if _, ok := s.views.LookupView(req.View.ViewID); !ok {
			return fault(req.Header.RequestHandle, ua.StatusBadViewIDUnknown)
		}
	}

	results := make([]ua.BrowseResult, 0, len(req.NodesToBrowse))
	for _, desc := range req.NodesToBrowse {
		out := s.views.Browse(view.BrowseParams{
			Session:              sess.ID,
			View:                 req.View.ViewID,
			Node:                 desc.NodeID,
			Direction:            desc.Direction,
			ReferenceTypeID:      desc.ReferenceTypeID,
			IncludeSubtypes:      desc.IncludeSubtypes,
			NodeClassMask:        desc.NodeClassMask,
			ResultMask:           desc.ResultMask,
			MaxReferencesPerNode: req.RequestedMaxReferencesPerNode,
			AutoReleaseCP:        true,
		})
		results = append(results, ua.BrowseResult{
			StatusCode:        out.Status,
			ContinuationPoint: out.ContinuationPoint.Bytes(),
			References:        out.References,
		})
	}
	return &ua.BrowseResponse{
		Header:  responseHeader(req.Header.RequestHandle, ua.StatusGood),
		Results: results,
	}
}

func (s *Services) handleBrowseNext(channel uint32, req *ua.BrowseNextRequest) any {
	sess, st := s.activeSession(channel, req.Header)
	if st.IsBad() {
		return fault(req.Header.RequestHandle, st)
	}
	if len(req.ContinuationPoints) == 0 {
		return fault(req.Header.RequestHandle, ua.StatusBadNothingToDo)
	}

	results := make([]ua.BrowseResult, 0, len(req.ContinuationPoints))
	for _, raw := range req.ContinuationPoints {
		id, ok := view.ContinuationPointFromBytes(raw)
		if !ok {
			results = append(results, ua.BrowseResult{StatusCode: ua.StatusBadContinuationPointInvalid})
			continue
		}
		if req.ReleaseContinuationPoints {
			results = append(results, ua.BrowseResult{StatusCode: s.views.Release(sess.ID, id)})
			continue
		}
		out := s.views.BrowseNext(sess.ID, id)
		results = append(results, ua.BrowseResult{
			StatusCode:        out.Status,
			ContinuationPoint: out.ContinuationPoint.Bytes(),
			References:        out.References,
		})
	}
	return &ua.BrowseNextResponse{
		Header:  responseHeader(req.Header.RequestHandle, ua.StatusGood),
		Results: results,
	}
}

func (s *Services) handleTranslate(channel uint32, req *ua.TranslateBrowsePathsRequest) any {
	_, st := s.activeSession(channel, req.Header)
	if st.IsBad() {
		return fault(req.Header.RequestHandle, st)
	}
	if len(req.BrowsePaths) == 0 {
		return fault(req.Header.RequestHandle, ua.StatusBadNothingToDo)
	}
	if len(req.BrowsePaths) > s.cfg.MaxOperationsPerRequest {
		return fault(req.Header.RequestHandle, ua.StatusBadTooManyOperations)
	}

	results := make([]ua.BrowsePathResult, 0, len(req.BrowsePaths))
	for _, path := range req.BrowsePaths {
		results = append(results, s.views.TranslateBrowsePath(path.StartingNode, path.RelativePath.Elements))
	}
	return &ua.TranslateBrowsePathsResponse{
		Header:  responseHeader(req.Header.RequestHandle, ua.StatusGood),
		Results: results,
	}
}

// appNotifier forwards session notifications to the application queue.
type appNotifier struct {
	out *Queue
}

func (n *appNotifier) Activated(sessionID uint64) {
	_ = n.out.Post(ActivatedSession{Session: sessionID})
}

func (n *appNotifier) Reactivating(sessionID uint64) {
	_ = n.out.Post(SessionReactivating{Session: sessionID})
}

func (n *appNotifier) Closed(sessionID uint64, status ua.StatusCode) {
	_ = n.out.Post(ClosedSession{Session: sessionID, Status: status})
}

func (n *appNotifier) ActivationFailure(sessionID uint64, status ua.StatusCode) {
	_ = n.out.Post(SessionActivationFailure{Session: sessionID, Status: status})
}
