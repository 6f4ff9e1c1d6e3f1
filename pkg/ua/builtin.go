// Package ua implements the OPC UA builtin type model: the 25 builtin
// value kinds, the polymorphic Variant container with scalar, array and
// matrix shapes, NodeId identity with textual parse/format and hashing,
// numeric-range slicing, and the service message structures exchanged by
// the session and view services.
//
// The package is self-contained and carries no protocol I/O: binary
// encoding and decoding are supplied by an external collaborator through
// the EncodeableType registry.
package ua

// BuiltinID identifies one of the OPC UA builtin types. The numeric
// values 0..25 are fixed by OPC UA Part 6 and match the wire encoding.
type BuiltinID uint8

const (
	IDNull BuiltinID = iota
	IDBoolean
	IDSByte
	IDByte
	IDInt16
	IDUInt16
	IDInt32
	IDUInt32
	IDInt64
	IDUInt64
	IDFloat
	IDDouble
	IDString
	IDDateTime
	IDGuid
	IDByteString
	IDXmlElement
	IDNodeID
	IDExpandedNodeID
	IDStatusCode
	IDQualifiedName
	IDLocalizedText
	IDExtensionObject
	IDDataValue
	IDVariant
	IDDiagnosticInfo
)

var builtinNames = [...]string{
	IDNull:            "Null",
	IDBoolean:         "Boolean",
	IDSByte:           "SByte",
	IDByte:            "Byte",
	IDInt16:           "Int16",
	IDUInt16:          "UInt16",
	IDInt32:           "Int32",
	IDUInt32:          "UInt32",
	IDInt64:           "Int64",
	IDUInt64:          "UInt64",
	IDFloat:           "Float",
	IDDouble:          "Double",
	IDString:          "String",
	IDDateTime:        "DateTime",
	IDGuid:            "Guid",
	IDByteString:      "ByteString",
	IDXmlElement:      "XmlElement",
	IDNodeID:          "NodeId",
	IDExpandedNodeID:  "ExpandedNodeId",
	IDStatusCode:      "StatusCode",
	IDQualifiedName:   "QualifiedName",
	IDLocalizedText:   "LocalizedText",
	IDExtensionObject: "ExtensionObject",
	IDDataValue:       "DataValue",
	IDVariant:         "Variant",
	IDDiagnosticInfo:  "DiagnosticInfo",
}

func (id BuiltinID) String() string {
	if int(id) < len(builtinNames) {
		return builtinNames[id]
	}
	return "Unknown"
}

// Valid reports whether id is one of the 26 reserved builtin identifiers.
func (id BuiltinID) Valid() bool {
	return int(id) < len(builtinNames)
}
