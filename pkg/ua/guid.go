package ua

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Guid is a 16-byte globally unique identifier expressed as three
// little-endian numeric fields plus an 8-byte opaque tail, matching the
// OPC UA wire layout.
type Guid struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// NewGuid returns a random Guid.
func NewGuid() Guid {
	return GuidFromUUID(uuid.New())
}

// GuidFromUUID converts an RFC 4122 UUID (big-endian byte order) into
// the field-oriented Guid layout.
func GuidFromUUID(u uuid.UUID) Guid {
	var g Guid
	g.Data1 = binary.BigEndian.Uint32(u[0:4])
	g.Data2 = binary.BigEndian.Uint16(u[4:6])
	g.Data3 = binary.BigEndian.Uint16(u[6:8])
	copy(g.Data4[:], u[8:16])
	return g
}

// UUID converts back to the RFC 4122 byte order.
func (g Guid) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return u
}

// ParseGuid parses the canonical textual form
// "XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX".
func ParseGuid(s string) (Guid, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Guid{}, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return GuidFromUUID(u), nil
}

// String formats the Guid in its canonical lowercase hex form.
func (g Guid) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		g.Data1, g.Data2, g.Data3,
		g.Data4[0], g.Data4[1],
		g.Data4[2], g.Data4[3], g.Data4[4], g.Data4[5], g.Data4[6], g.Data4[7])
}

// Compare orders field by field on the numeric fields, then bytewise on
// the tail.
func (g Guid) Compare(o Guid) int {
	switch {
	case g.Data1 < o.Data1:
		return -1
	case g.Data1 > o.Data1:
		return 1
	case g.Data2 < o.Data2:
		return -1
	case g.Data2 > o.Data2:
		return 1
	case g.Data3 < o.Data3:
		return -1
	case g.Data3 > o.Data3:
		return 1
	}
	return bytes.Compare(g.Data4[:], o.Data4[:])
}

func (g Guid) IsZero() bool { return g == Guid{} }
