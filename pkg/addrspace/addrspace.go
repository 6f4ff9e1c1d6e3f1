// Package addrspace defines the narrow interface through which the
// service core consults the server address space. Concrete storage is a
// collaborator concern; the memspace subpackage provides the in-memory
// implementation used by tests and the demo server.
package addrspace

import "github.com/avencourt/uastack/pkg/ua"

// Reference is a typed edge from a source node to a target, possibly on
// another server.
type Reference struct {
	ReferenceTypeID ua.NodeID
	Target          ua.ExpandedNodeID
	IsForward       bool
}

// Node is a handle onto one node of the address space. Handles stay
// valid for the lifetime of the space.
type Node interface {
	// ID returns the node's identity.
	ID() ua.NodeID
	// Class returns the node class.
	Class() ua.NodeClass
	// BrowseName returns the namespace-qualified browse name.
	BrowseName() ua.QualifiedName
	// DisplayName returns the display name.
	DisplayName() ua.LocalizedText
	// TypeDefinition returns the HasTypeDefinition target for Object
	// and Variable nodes, and the null id for other classes.
	TypeDefinition() ua.ExpandedNodeID
	// ReferenceCount returns the number of outgoing references.
	ReferenceCount() int
	// ReferenceAt returns the outgoing reference at index i, with
	// 0 <= i < ReferenceCount.
	ReferenceAt(i int) Reference
}

// AddressSpace is the lookup surface the Browse and Translate engines
// traverse.
type AddressSpace interface {
	// Lookup resolves a NodeID to a node handle.
	Lookup(id ua.NodeID) (Node, bool)

	// IsTransitiveSubtype walks HasSubtype forward references and
	// reports whether sub is super or one of its transitive subtypes.
	// Implementations must terminate on cyclic graphs.
	IsTransitiveSubtype(sub, super ua.NodeID) bool

	// IsValidReferenceType reports whether id names a ReferenceType
	// node.
	IsValidReferenceType(id ua.NodeID) bool
}
