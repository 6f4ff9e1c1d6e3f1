package view

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/avencourt/uastack/pkg/ua"
)

// ContinuationPointID is a server-generated continuation point handle,
// unique for the process lifetime. Zero means "no continuation point".
type ContinuationPointID uint64

// Bytes renders the handle in the opaque wire form carried by
// BrowseResult.ContinuationPoint.
func (id ContinuationPointID) Bytes() ua.ByteString {
	if id == 0 {
		return ua.ByteString{}
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return ua.ByteString{Data: b[:]}
}

// ContinuationPointFromBytes parses the wire form back into a handle.
func ContinuationPointFromBytes(b ua.ByteString) (ContinuationPointID, bool) {
	if len(b.Data) != 8 {
		return 0, false
	}
	return ContinuationPointID(binary.BigEndian.Uint64(b.Data)), true
}

// continuationPoint is a saved browse cursor: the original parameters
// with the start index advanced past the emitted references.
type continuationPoint struct {
	id     ContinuationPointID
	params BrowseParams
}

// pointStore holds at most one continuation point per session.
type pointStore struct {
	mu     sync.Mutex
	points map[uint64]*continuationPoint
	nextID atomic.Uint64
}

func newPointStore() *pointStore {
	return &pointStore{points: map[uint64]*continuationPoint{}}
}

func (s *pointStore) create(session uint64, params BrowseParams) ContinuationPointID {
	id := ContinuationPointID(s.nextID.Add(1))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[session] = &continuationPoint{id: id, params: params}
	return id
}

// lookup returns the point only when it belongs to the session and the
// handle matches; a handle issued to another session never resolves.
func (s *pointStore) lookup(session uint64, id ContinuationPointID) (*continuationPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.points[session]
	if !ok || cp.id != id {
		return nil, false
	}
	return cp, true
}

func (s *pointStore) lookupSession(session uint64) (*continuationPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.points[session]
	return cp, ok
}

func (s *pointStore) release(session uint64, id ContinuationPointID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp, ok := s.points[session]; ok && cp.id == id {
		delete(s.points, session)
	}
}

func (s *pointStore) releaseSession(session uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.points[session]; ok {
		delete(s.points, session)
		return true
	}
	return false
}
