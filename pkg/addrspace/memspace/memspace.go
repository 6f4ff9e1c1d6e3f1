// Package memspace is an in-memory AddressSpace implementation. It
// backs the engine tests and the demo server; production deployments
// plug their own storage behind the addrspace interfaces.
package memspace

import (
	"fmt"
	"sync"

	"github.com/avencourt/uastack/pkg/addrspace"
	"github.com/avencourt/uastack/pkg/ua"
)

// Space is a mutable in-memory address space. Node and reference
// registration happen at build time; traversal is read-only and safe
// for concurrent readers.
type Space struct {
	mu    sync.RWMutex
	nodes map[string]*node
}

type node struct {
	id          ua.NodeID
	class       ua.NodeClass
	browseName  ua.QualifiedName
	displayName ua.LocalizedText
	typeDef     ua.ExpandedNodeID
	refs        []addrspace.Reference
}

func (n *node) ID() ua.NodeID                     { return n.id }
func (n *node) Class() ua.NodeClass               { return n.class }
func (n *node) BrowseName() ua.QualifiedName      { return n.browseName }
func (n *node) DisplayName() ua.LocalizedText     { return n.displayName }
func (n *node) TypeDefinition() ua.ExpandedNodeID { return n.typeDef }
func (n *node) ReferenceCount() int               { return len(n.refs) }
func (n *node) ReferenceAt(i int) addrspace.Reference {
	return n.refs[i]
}

// New returns an empty space.
func New() *Space {
	return &Space{nodes: map[string]*node{}}
}

// NodeConfig describes a node to add.
type NodeConfig struct {
	ID             ua.NodeID
	Class          ua.NodeClass
	BrowseName     ua.QualifiedName
	DisplayName    ua.LocalizedText
	TypeDefinition ua.NodeID
}

// AddNode registers a node. Adding the same id twice is an error.
func (s *Space) AddNode(cfg NodeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cfg.ID.String()
	if _, ok := s.nodes[key]; ok {
		return fmt.Errorf("duplicate node %s", key)
	}
	n := &node{
		id:          cfg.ID.Copy(),
		class:       cfg.Class,
		browseName:  cfg.BrowseName.Copy(),
		displayName: cfg.DisplayName.Copy(),
	}
	if !cfg.TypeDefinition.IsNull() {
		n.typeDef = ua.NewExpandedNodeID(cfg.TypeDefinition.Copy())
	}
	s.nodes[key] = n
	return nil
}

// AddReference adds a forward reference from source to target and, when
// the target is a local node, the matching inverse reference on the
// target.
func (s *Space) AddReference(source, refType ua.NodeID, target ua.ExpandedNodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.nodes[source.String()]
	if !ok {
		return fmt.Errorf("unknown source node %s", source.String())
	}
	src.refs = append(src.refs, addrspace.Reference{
		ReferenceTypeID: refType.Copy(),
		Target:          target.Copy(),
		IsForward:       true,
	})
	if target.IsLocal() {
		if dst, ok := s.nodes[target.NodeID.String()]; ok {
			dst.refs = append(dst.refs, addrspace.Reference{
				ReferenceTypeID: refType.Copy(),
				Target:          ua.NewExpandedNodeID(source.Copy()),
				IsForward:       false,
			})
		}
	}
	return nil
}

// Lookup implements addrspace.AddressSpace.
func (s *Space) Lookup(id ua.NodeID) (addrspace.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id.String()]
	return n, ok
}

// IsValidReferenceType reports whether id names a ReferenceType node.
func (s *Space) IsValidReferenceType(id ua.NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id.String()]
	return ok && n.class == ua.NodeClassReferenceType
}

// IsTransitiveSubtype walks forward HasSubtype references from super
// and reports whether sub is reachable. A type is considered a subtype
// of itself. The visited set guarantees termination on cyclic graphs.
func (s *Space) IsTransitiveSubtype(sub, super ua.NodeID) bool {
	if sub.Equal(super) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	visited := map[string]bool{super.String(): true}
	queue := []string{super.String()}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		n, ok := s.nodes[key]
		if !ok {
			continue
		}
		for _, ref := range n.refs {
			if !ref.IsForward || !ref.ReferenceTypeID.Equal(addrspace.HasSubtype) {
				continue
			}
			if !ref.Target.IsLocal() {
				continue
			}
			target := ref.Target.NodeID
			if target.Equal(sub) {
				return true
			}
			tk := target.String()
			if !visited[tk] {
				visited[tk] = true
				queue = append(queue, tk)
			}
		}
	}
	return false
}
