// Package view implements the address-space traversal services: Browse
// with continuation-point paging, BrowseNext, and the
// TranslateBrowsePath relative-path walker.
package view

import (
	"github.com/avencourt/uastack/internal/logger"
	"github.com/avencourt/uastack/pkg/addrspace"
	"github.com/avencourt/uastack/pkg/ua"
)

// Config bounds the work a single traversal may produce.
type Config struct {
	// MaxReferencesPerNode caps one Browse result set; requested caps
	// of zero or beyond this value are clamped to it.
	MaxReferencesPerNode uint32
	// MaxBrowsePathMatches caps the matched targets of one translate
	// path.
	MaxBrowsePathMatches int
	// MaxBrowsePathRemaining caps the out-of-server remainder list of
	// one translate path.
	MaxBrowsePathRemaining int
}

// DefaultConfig mirrors the server defaults.
func DefaultConfig() Config {
	return Config{
		MaxReferencesPerNode:   1000,
		MaxBrowsePathMatches:   10,
		MaxBrowsePathRemaining: 10,
	}
}

// Engine runs traversals against one address space. It owns the
// continuation points of every session; the session layer releases them
// on session close.
type Engine struct {
	space   addrspace.AddressSpace
	cfg     Config
	cps     *pointStore
	metrics *Metrics
}

// NewEngine builds an engine. metrics may be nil.
func NewEngine(space addrspace.AddressSpace, cfg Config, metrics *Metrics) *Engine {
	if cfg.MaxReferencesPerNode == 0 {
		cfg.MaxReferencesPerNode = DefaultConfig().MaxReferencesPerNode
	}
	return &Engine{
		space:   space,
		cfg:     cfg,
		cps:     newPointStore(),
		metrics: metrics,
	}
}

// BrowseParams carries one Browse operation's inputs. Session 0 denotes
// a service-internal browse that cannot own continuation points.
type BrowseParams struct {
	Session              uint64
	View                 ua.NodeID
	Node                 ua.NodeID
	Direction            ua.BrowseDirection
	ReferenceTypeID      ua.NodeID
	IncludeSubtypes      bool
	NodeClassMask        uint32
	ResultMask           uint32
	MaxReferencesPerNode uint32
	AutoReleaseCP        bool

	startIndex int
}

// BrowseOutcome is the per-operation result: the emitted references,
// the operation status, and the continuation point handle when paging
// stopped early.
type BrowseOutcome struct {
	Status            ua.StatusCode
	References        []ua.ReferenceDescription
	ContinuationPoint ContinuationPointID
}

// Browse resolves the source node and emits its outgoing references
// filtered by direction, reference type (with optional subtype
// closure) and node-class mask, projected through the result mask, and
// capped for paging.
func (e *Engine) Browse(p BrowseParams) BrowseOutcome {
	out := e.compute(p)
	e.metrics.ObserveBrowse(out.Status)
	return out
}

func (e *Engine) compute(p BrowseParams) BrowseOutcome {
	if !p.ReferenceTypeID.IsNull() && !e.space.IsValidReferenceType(p.ReferenceTypeID) {
		return BrowseOutcome{Status: ua.StatusBadReferenceTypeIDInvalid}
	}
	src, ok := e.space.Lookup(p.Node)
	if !ok {
		return BrowseOutcome{Status: ua.StatusBadNodeIDUnknown}
	}

	total := src.ReferenceCount()
	max := int(e.clampMaxRefs(p.MaxReferencesPerNode))
	if total < max {
		max = total
	}

	refs := make([]ua.ReferenceDescription, 0, max)
	next := p.startIndex
	for ; next < total && len(refs) < max; next++ {
		ref := src.ReferenceAt(next)
		desc, ok := e.fillReference(ref, p)
		if !ok {
			continue
		}
		refs = append(refs, desc)
	}

	out := BrowseOutcome{Status: ua.StatusGood, References: refs}
	if next < total && len(refs) == max {
		// Cap hit with references remaining: persist the cursor.
		if p.Session == 0 {
			out.Status = ua.StatusBadNoContinuationPoints
			return out
		}
		if prev, ok := e.cps.lookupSession(p.Session); ok {
			if !p.AutoReleaseCP {
				out.Status = ua.StatusBadNoContinuationPoints
				return out
			}
			e.cps.release(p.Session, prev.id)
			e.metrics.ObserveContinuationPointReleased()
		}
		saved := p
		saved.startIndex = next
		saved.AutoReleaseCP = false
		out.ContinuationPoint = e.cps.create(p.Session, saved)
		e.metrics.ObserveContinuationPointCreated()
		logger.Debug("Browse paused at continuation point",
			"session", p.Session, "node", p.Node.String(), "next_index", next)
	}
	return out
}

// BrowseNext resumes the traversal saved under a continuation point.
// The point is consumed; a fresh one is created if the resumed page
// fills up again.
func (e *Engine) BrowseNext(session uint64, id ContinuationPointID) BrowseOutcome {
	cp, ok := e.cps.lookup(session, id)
	if !ok {
		out := BrowseOutcome{Status: ua.StatusBadContinuationPointInvalid}
		e.metrics.ObserveBrowse(out.Status)
		return out
	}
	e.cps.release(session, id)
	e.metrics.ObserveContinuationPointReleased()
	out := e.compute(cp.params)
	e.metrics.ObserveBrowse(out.Status)
	return out
}

// Release drops a continuation point without resuming it, for
// BrowseNext with releaseContinuationPoints set.
func (e *Engine) Release(session uint64, id ContinuationPointID) ua.StatusCode {
	if _, ok := e.cps.lookup(session, id); !ok {
		return ua.StatusBadContinuationPointInvalid
	}
	e.cps.release(session, id)
	e.metrics.ObserveContinuationPointReleased()
	return ua.StatusGood
}

// ReleaseSession drops any continuation point owned by the session;
// called by the session layer when a session closes.
func (e *Engine) ReleaseSession(session uint64) {
	if e.cps.releaseSession(session) {
		e.metrics.ObserveContinuationPointReleased()
	}
}

// LookupView resolves a view id to its View node.
func (e *Engine) LookupView(id ua.NodeID) (addrspace.Node, bool) {
	n, ok := e.space.Lookup(id)
	if !ok || n.Class() != ua.NodeClassView {
		return nil, false
	}
	return n, true
}

func (e *Engine) clampMaxRefs(requested uint32) uint32 {
	if requested == 0 || requested >= e.cfg.MaxReferencesPerNode {
		return e.cfg.MaxReferencesPerNode
	}
	return requested
}

// fillReference applies the per-reference filter pipeline and builds
// the projected description.
func (e *Engine) fillReference(ref addrspace.Reference, p BrowseParams) (ua.ReferenceDescription, bool) {
	var desc ua.ReferenceDescription

	if !p.Direction.Matches(ref.IsForward) {
		return desc, false
	}
	if !p.ReferenceTypeID.IsNull() {
		if !ref.ReferenceTypeID.Equal(p.ReferenceTypeID) {
			if !p.IncludeSubtypes {
				return desc, false
			}
			if !e.space.IsTransitiveSubtype(ref.ReferenceTypeID, p.ReferenceTypeID) {
				return desc, false
			}
		}
	}

	// Target attributes are only known for local targets; a remote or
	// missing target has unspecified class, which only a zero mask
	// accepts.
	var (
		class       ua.NodeClass
		browseName  ua.QualifiedName
		displayName ua.LocalizedText
		typeDef     ua.ExpandedNodeID
	)
	if ref.Target.IsLocal() {
		if node, ok := e.space.Lookup(ref.Target.NodeID); ok {
			class = node.Class()
			browseName = node.BrowseName()
			displayName = node.DisplayName()
			typeDef = node.TypeDefinition()
		}
	}
	if !class.InMask(p.NodeClassMask) {
		return desc, false
	}

	desc.NodeID = ref.Target.Copy()
	if p.ResultMask&ua.ResultMaskReferenceType != 0 {
		desc.ReferenceTypeID = ref.ReferenceTypeID.Copy()
	}
	if p.ResultMask&ua.ResultMaskIsForward != 0 {
		desc.IsForward = ref.IsForward
	}
	if p.ResultMask&ua.ResultMaskNodeClass != 0 {
		desc.NodeClass = class
	}
	if p.ResultMask&ua.ResultMaskBrowseName != 0 {
		desc.BrowseName = browseName.Copy()
	}
	if p.ResultMask&ua.ResultMaskDisplayName != 0 {
		desc.DisplayName = displayName.Copy()
	}
	if p.ResultMask&ua.ResultMaskTypeDefinition != 0 {
		desc.TypeDefinition = typeDef.Copy()
	}
	return desc, true
}
