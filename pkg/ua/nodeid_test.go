package ua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeIDParseFormatRoundTrip(t *testing.T) {
	cases := []string{
		"i=0",
		"i=85",
		"ns=1;i=4242",
		"s=Demo.Device",
		"ns=2;s=Demo.Device.Temperature",
		"ns=65535;s=",
		"g=09087e75-8e5e-499b-954f-f2a9603db28a",
		"ns=3;g=09087e75-8e5e-499b-954f-f2a9603db28a",
		"b=opaque-id",
		"ns=7;b=raw",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			n, err := ParseNodeID(s)
			require.NoError(t, err)
			assert.Equal(t, s, n.String())

			again, err := ParseNodeID(n.String())
			require.NoError(t, err)
			assert.True(t, n.Equal(again))
		})
	}
}

func TestNodeIDParseCanonicalizesNamespaceZero(t *testing.T) {
	n, err := ParseNodeID("ns=0;i=85")
	require.NoError(t, err)
	assert.Equal(t, "i=85", n.String())
	assert.True(t, n.Equal(NewNumericNodeID(0, 85)))
}

func TestNodeIDParseErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"i=",
		"x=12",
		"nsx=1;i=2",
		"ns=70000;i=1",
		"i=notanumber",
		"g=not-a-guid",
		"ns=1",
	} {
		_, err := ParseNodeID(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestNodeIDNull(t *testing.T) {
	var n NodeID
	assert.True(t, n.IsNull())
	assert.False(t, NewNumericNodeID(0, 1).IsNull())
	assert.False(t, NewNumericNodeID(1, 0).IsNull())
	assert.False(t, NewStringNodeID(0, "").IsNull())

	n = NewStringNodeID(2, "x")
	n.Clear()
	assert.True(t, n.IsNull())
}

func TestNodeIDHashAgreement(t *testing.T) {
	corpus := []NodeID{
		NewNumericNodeID(0, 0),
		NewNumericNodeID(0, 85),
		NewNumericNodeID(1, 85),
		NewStringNodeID(1, "a"),
		NewStringNodeID(1, "b"),
		NewOpaqueNodeID(1, []byte("a")),
		NewGuidNodeID(0, MustGuid("09087e75-8e5e-499b-954f-f2a9603db28a")),
	}
	for _, n := range corpus {
		assert.Equal(t, n.Hash(), n.Copy().Hash(), "copy of %s must hash equally", n.String())
	}
	// String and opaque ids with the same payload must not collide via
	// the tag component.
	assert.NotEqual(t, NewStringNodeID(1, "a").Hash(), NewOpaqueNodeID(1, []byte("a")).Hash())
}

func MustGuid(s string) Guid {
	g, err := ParseGuid(s)
	if err != nil {
		panic(err)
	}
	return g
}

func TestNodeIDTotalOrder(t *testing.T) {
	corpus := []NodeID{
		NewNumericNodeID(0, 0),
		NewNumericNodeID(0, 1),
		NewNumericNodeID(2, 1),
		NewStringNodeID(0, "a"),
		NewStringNodeID(0, "ab"),
		NewStringNodeID(3, "a"),
		NewGuidNodeID(0, MustGuid("00000000-0000-0000-0000-000000000001")),
		NewGuidNodeID(0, MustGuid("00000000-0000-0001-0000-000000000000")),
		NewOpaqueNodeID(0, []byte{1}),
		NewOpaqueNodeID(0, []byte{1, 2}),
	}
	for i, a := range corpus {
		assert.Equal(t, 0, a.Compare(a), "reflexive at %d", i)
		for _, b := range corpus {
			assert.Equal(t, a.Compare(b), -b.Compare(a), "antisymmetry %s vs %s", a.String(), b.String())
			for _, c := range corpus {
				if a.Compare(b) < 0 && b.Compare(c) < 0 {
					assert.Negative(t, a.Compare(c), "transitivity %s < %s < %s", a.String(), b.String(), c.String())
				}
			}
		}
	}
}

func TestNodeIDCopyIsDeep(t *testing.T) {
	n := NewStringNodeID(1, "device")
	c := n.Copy()
	n.Text.Data[0] = 'X'
	assert.Equal(t, "device", c.Text.Value())
}

func TestExpandedNodeIDLocal(t *testing.T) {
	e := NewExpandedNodeID(NewNumericNodeID(0, 85))
	assert.True(t, e.IsLocal())

	e.ServerIndex = 1
	assert.False(t, e.IsLocal())

	e.ServerIndex = 0
	e.NamespaceURI = NewString("urn:other")
	assert.False(t, e.IsLocal())
}

func TestGuidStringRoundTrip(t *testing.T) {
	g := NewGuid()
	parsed, err := ParseGuid(g.String())
	require.NoError(t, err)
	assert.Equal(t, 0, g.Compare(parsed))
	assert.Equal(t, g.UUID().String(), g.String())
}

func TestGuidCompareFieldOrder(t *testing.T) {
	a := Guid{Data1: 1}
	b := Guid{Data2: 1}
	c := Guid{Data3: 1}
	d := Guid{Data4: [8]byte{1}}
	assert.Positive(t, a.Compare(b))
	assert.Positive(t, b.Compare(c))
	assert.Positive(t, c.Compare(d))
	assert.Positive(t, d.Compare(Guid{}))
}
