package ua

import "bytes"

// String is a length-prefixed UTF-8 byte sequence with three states:
// null (Data == nil), empty (len 0, non-nil) and present. The null state
// is encoded on the wire as length -1 and is distinct from empty.
type String struct {
	Data []byte
}

// NewString returns a present String holding a copy of s.
func NewString(s string) String {
	return String{Data: []byte(s)}
}

// NullString returns the null String.
func NullString() String { return String{} }

func (s String) IsNull() bool { return s.Data == nil }

func (s String) Len() int { return len(s.Data) }

// Value returns the string content; the null and empty states both map
// to the empty Go string.
func (s String) Value() string { return string(s.Data) }

// Copy returns a deep copy. The copy owns its backing bytes.
func (s String) Copy() String {
	if s.Data == nil {
		return String{}
	}
	d := make([]byte, len(s.Data))
	copy(d, s.Data)
	return String{Data: d}
}

// Clear releases the backing bytes and resets to the null state.
func (s *String) Clear() { s.Data = nil }

// Compare orders by length first, then by content bytes. Null orders
// the same as empty.
func (s String) Compare(o String) int {
	if len(s.Data) != len(o.Data) {
		if len(s.Data) < len(o.Data) {
			return -1
		}
		return 1
	}
	return bytes.Compare(s.Data, o.Data)
}

func (s String) Equal(o String) bool { return s.Compare(o) == 0 }

// ByteString is an opaque length-prefixed byte sequence with the same
// tri-state representation as String.
type ByteString struct {
	Data []byte
}

// NewByteString returns a present ByteString holding a copy of b.
func NewByteString(b []byte) ByteString {
	d := make([]byte, len(b))
	copy(d, b)
	return ByteString{Data: d}
}

func (b ByteString) IsNull() bool { return b.Data == nil }

func (b ByteString) Len() int { return len(b.Data) }

func (b ByteString) Copy() ByteString {
	if b.Data == nil {
		return ByteString{}
	}
	d := make([]byte, len(b.Data))
	copy(d, b.Data)
	return ByteString{Data: d}
}

func (b *ByteString) Clear() { b.Data = nil }

func (b ByteString) Compare(o ByteString) int {
	if len(b.Data) != len(o.Data) {
		if len(b.Data) < len(o.Data) {
			return -1
		}
		return 1
	}
	return bytes.Compare(b.Data, o.Data)
}

func (b ByteString) Equal(o ByteString) bool { return b.Compare(o) == 0 }

// XmlElement shares the ByteString representation: an XML fragment
// carried as opaque bytes.
type XmlElement struct {
	Data []byte
}

func (x XmlElement) IsNull() bool { return x.Data == nil }

func (x XmlElement) Len() int { return len(x.Data) }

func (x XmlElement) Copy() XmlElement {
	if x.Data == nil {
		return XmlElement{}
	}
	d := make([]byte, len(x.Data))
	copy(d, x.Data)
	return XmlElement{Data: d}
}

func (x *XmlElement) Clear() { x.Data = nil }

func (x XmlElement) Compare(o XmlElement) int {
	return ByteString{Data: x.Data}.Compare(ByteString{Data: o.Data})
}
