package ua

// ExtensionObjectEncoding selects how an ExtensionObject body is held.
type ExtensionObjectEncoding uint8

const (
	ExtensionObjectNone ExtensionObjectEncoding = iota
	ExtensionObjectByteString
	ExtensionObjectXml
	ExtensionObjectDecoded
)

// ExtensionObject wraps a structured value of a type identified by
// TypeID. The body is either raw bytes (not yet decoded), an XML
// fragment, or a decoded Go value paired with its EncodeableType.
type ExtensionObject struct {
	TypeID   ExpandedNodeID
	Encoding ExtensionObjectEncoding

	Bytes ByteString
	Xml   XmlElement

	Value     any
	ValueType *EncodeableType
}

func (e *ExtensionObject) Clear() { *e = ExtensionObject{} }

// Copy deep-copies the type id and any raw body. A decoded body is
// copied through its EncodeableType copy hook when available, otherwise
// the value is shared.
func (e ExtensionObject) Copy() ExtensionObject {
	c := ExtensionObject{
		TypeID:   e.TypeID.Copy(),
		Encoding: e.Encoding,
	}
	switch e.Encoding {
	case ExtensionObjectByteString:
		c.Bytes = e.Bytes.Copy()
	case ExtensionObjectXml:
		c.Xml = e.Xml.Copy()
	case ExtensionObjectDecoded:
		c.Value = e.Value
		c.ValueType = e.ValueType
		if e.ValueType != nil && e.ValueType.Copy != nil {
			c.Value = e.ValueType.Copy(e.Value)
		}
	}
	return c
}

// Compare orders by type id, then encoding, then raw body bytes.
// Decoded bodies with the same type compare equal; callers needing
// structural comparison must compare the decoded values themselves.
func (e ExtensionObject) Compare(o ExtensionObject) int {
	if c := e.TypeID.Compare(o.TypeID); c != 0 {
		return c
	}
	if e.Encoding != o.Encoding {
		if e.Encoding < o.Encoding {
			return -1
		}
		return 1
	}
	switch e.Encoding {
	case ExtensionObjectByteString:
		return e.Bytes.Compare(o.Bytes)
	case ExtensionObjectXml:
		return e.Xml.Compare(o.Xml)
	}
	return 0
}
