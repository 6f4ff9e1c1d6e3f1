package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// IdentifierType is the NodeID identifier discriminant. The numeric
// values match the OPC UA encoding order and drive cross-type ordering.
type IdentifierType uint8

const (
	IdentifierNumeric IdentifierType = iota
	IdentifierString
	IdentifierGuid
	IdentifierOpaque
)

func (t IdentifierType) String() string {
	switch t {
	case IdentifierNumeric:
		return "Numeric"
	case IdentifierString:
		return "String"
	case IdentifierGuid:
		return "Guid"
	case IdentifierOpaque:
		return "Opaque"
	}
	return "Unknown"
}

// NodeID is a namespace-scoped identifier for an address-space node.
// Exactly one of the payload fields is meaningful, selected by Type.
// The zero value is Numeric(0) in namespace 0, the canonical null NodeID.
type NodeID struct {
	Namespace uint16
	Type      IdentifierType

	Numeric uint32
	Text    String
	Guid    Guid
	Opaque  ByteString
}

// NewNumericNodeID returns a NodeID with a numeric identifier.
func NewNumericNodeID(ns uint16, id uint32) NodeID {
	return NodeID{Namespace: ns, Type: IdentifierNumeric, Numeric: id}
}

// NewStringNodeID returns a NodeID with a string identifier.
func NewStringNodeID(ns uint16, s string) NodeID {
	return NodeID{Namespace: ns, Type: IdentifierString, Text: NewString(s)}
}

// NewGuidNodeID returns a NodeID with a Guid identifier.
func NewGuidNodeID(ns uint16, g Guid) NodeID {
	return NodeID{Namespace: ns, Type: IdentifierGuid, Guid: g}
}

// NewOpaqueNodeID returns a NodeID with an opaque (bytestring) identifier.
func NewOpaqueNodeID(ns uint16, b []byte) NodeID {
	return NodeID{Namespace: ns, Type: IdentifierOpaque, Opaque: NewByteString(b)}
}

// IsNull reports whether the NodeID is the canonical null value:
// Numeric(0) in namespace 0.
func (n NodeID) IsNull() bool {
	return n.Type == IdentifierNumeric && n.Namespace == 0 && n.Numeric == 0
}

// Clear releases owned payload and resets to the null NodeID.
func (n *NodeID) Clear() {
	*n = NodeID{}
}

// Copy returns a deep copy; string and opaque payloads get their own
// backing bytes.
func (n NodeID) Copy() NodeID {
	c := n
	switch n.Type {
	case IdentifierString:
		c.Text = n.Text.Copy()
	case IdentifierOpaque:
		c.Opaque = n.Opaque.Copy()
	}
	return c
}

// Compare is a total order: namespace first, then identifier type, then
// payload with the tag-specific comparator.
func (n NodeID) Compare(o NodeID) int {
	if n.Namespace != o.Namespace {
		if n.Namespace < o.Namespace {
			return -1
		}
		return 1
	}
	if n.Type != o.Type {
		if n.Type < o.Type {
			return -1
		}
		return 1
	}
	switch n.Type {
	case IdentifierNumeric:
		switch {
		case n.Numeric < o.Numeric:
			return -1
		case n.Numeric > o.Numeric:
			return 1
		}
		return 0
	case IdentifierString:
		return n.Text.Compare(o.Text)
	case IdentifierGuid:
		return n.Guid.Compare(o.Guid)
	case IdentifierOpaque:
		return n.Opaque.Compare(o.Opaque)
	}
	return 0
}

func (n NodeID) Equal(o NodeID) bool { return n.Compare(o) == 0 }

// Hash combines identifier type, namespace and payload with a DJB-style
// bytewise accumulator. Equal NodeIDs hash equally.
func (n NodeID) Hash() uint64 {
	h := djbHash([]byte{byte(n.Type)})
	h = djbHashStep(h, []byte{byte(n.Namespace), byte(n.Namespace >> 8)})
	switch n.Type {
	case IdentifierNumeric:
		h = djbHashStep(h, []byte{
			byte(n.Numeric), byte(n.Numeric >> 8),
			byte(n.Numeric >> 16), byte(n.Numeric >> 24),
		})
	case IdentifierString:
		h = djbHashStep(h, n.Text.Data)
	case IdentifierGuid:
		u := n.Guid.UUID()
		h = djbHashStep(h, u[:])
	case IdentifierOpaque:
		h = djbHashStep(h, n.Opaque.Data)
	}
	return h
}

// String formats the NodeID per OPC UA Part 6 §5.3.1.10: an optional
// "ns=<n>;" prefix when the namespace is not 0, followed by one of
// "i=<uint>", "s=<text>", "g=<guid>" or "b=<bytes>".
func (n NodeID) String() string {
	var sb strings.Builder
	if n.Namespace != 0 {
		fmt.Fprintf(&sb, "ns=%d;", n.Namespace)
	}
	switch n.Type {
	case IdentifierNumeric:
		fmt.Fprintf(&sb, "i=%d", n.Numeric)
	case IdentifierString:
		sb.WriteString("s=")
		sb.Write(n.Text.Data)
	case IdentifierGuid:
		sb.WriteString("g=")
		sb.WriteString(n.Guid.String())
	case IdentifierOpaque:
		sb.WriteString("b=")
		sb.Write(n.Opaque.Data)
	}
	return sb.String()
}

// ParseNodeID parses the textual grammar accepted by String.
func ParseNodeID(s string) (NodeID, error) {
	var n NodeID
	rest := s
	if strings.Contains(rest, ";") {
		prefix, body, _ := strings.Cut(rest, ";")
		if !strings.HasPrefix(prefix, "ns=") {
			return n, fmt.Errorf("invalid node id %q: bad namespace prefix", s)
		}
		ns, err := strconv.ParseUint(prefix[3:], 10, 16)
		if err != nil {
			return n, fmt.Errorf("invalid node id %q: %w", s, err)
		}
		n.Namespace = uint16(ns)
		rest = body
	}
	if len(rest) < 2 || rest[1] != '=' {
		return n, fmt.Errorf("invalid node id %q: missing identifier", s)
	}
	body := rest[2:]
	switch rest[0] {
	case 'i':
		id, err := strconv.ParseUint(body, 10, 32)
		if err != nil {
			return n, fmt.Errorf("invalid node id %q: %w", s, err)
		}
		n.Type = IdentifierNumeric
		n.Numeric = uint32(id)
	case 's':
		n.Type = IdentifierString
		n.Text = NewString(body)
	case 'g':
		g, err := ParseGuid(body)
		if err != nil {
			return n, fmt.Errorf("invalid node id %q: %w", s, err)
		}
		n.Type = IdentifierGuid
		n.Guid = g
	case 'b':
		n.Type = IdentifierOpaque
		n.Opaque = NewByteString([]byte(body))
	default:
		return n, fmt.Errorf("invalid node id %q: unknown identifier type %q", s, rest[0])
	}
	return n, nil
}

// MustParseNodeID is ParseNodeID for known-good literals; it panics on
// malformed input.
func MustParseNodeID(s string) NodeID {
	n, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return n
}

// djbHash and djbHashStep implement the DJB2 byte accumulator used for
// NodeID hashing.
func djbHash(data []byte) uint64 {
	return djbHashStep(5381, data)
}

func djbHashStep(h uint64, data []byte) uint64 {
	for _, b := range data {
		h = (h << 5) + h + uint64(b)
	}
	return h
}

// ExpandedNodeID extends NodeID with a namespace URI and a server index
// for references that leave the local server.
type ExpandedNodeID struct {
	NodeID       NodeID
	NamespaceURI String
	ServerIndex  uint32
}

// NewExpandedNodeID wraps a local NodeID.
func NewExpandedNodeID(n NodeID) ExpandedNodeID {
	return ExpandedNodeID{NodeID: n}
}

// IsLocal reports whether the target lives on the local server: server
// index 0 and no namespace URI.
func (e ExpandedNodeID) IsLocal() bool {
	return e.ServerIndex == 0 && e.NamespaceURI.IsNull()
}

func (e *ExpandedNodeID) Clear() {
	*e = ExpandedNodeID{}
}

func (e ExpandedNodeID) Copy() ExpandedNodeID {
	return ExpandedNodeID{
		NodeID:       e.NodeID.Copy(),
		NamespaceURI: e.NamespaceURI.Copy(),
		ServerIndex:  e.ServerIndex,
	}
}

// Compare orders by NodeID, then namespace URI, then server index.
func (e ExpandedNodeID) Compare(o ExpandedNodeID) int {
	if c := e.NodeID.Compare(o.NodeID); c != 0 {
		return c
	}
	if c := e.NamespaceURI.Compare(o.NamespaceURI); c != 0 {
		return c
	}
	switch {
	case e.ServerIndex < o.ServerIndex:
		return -1
	case e.ServerIndex > o.ServerIndex:
		return 1
	}
	return 0
}

func (e ExpandedNodeID) Equal(o ExpandedNodeID) bool { return e.Compare(o) == 0 }

func (e ExpandedNodeID) String() string {
	var sb strings.Builder
	if e.ServerIndex != 0 {
		fmt.Fprintf(&sb, "svr=%d;", e.ServerIndex)
	}
	if !e.NamespaceURI.IsNull() {
		fmt.Fprintf(&sb, "nsu=%s;", e.NamespaceURI.Value())
	}
	sb.WriteString(e.NodeID.String())
	return sb.String()
}
