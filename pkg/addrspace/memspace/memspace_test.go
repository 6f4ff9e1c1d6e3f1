package memspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencourt/uastack/pkg/addrspace"
	"github.com/avencourt/uastack/pkg/ua"
)

func TestSampleSpaceLookup(t *testing.T) {
	s := NewSampleSpace()

	objects, ok := s.Lookup(addrspace.ObjectsFolder)
	require.True(t, ok)
	assert.Equal(t, ua.NodeClassObject, objects.Class())
	assert.Equal(t, "Objects", objects.BrowseName().Name.Value())

	_, ok = s.Lookup(ua.NewNumericNodeID(0, 999999))
	assert.False(t, ok)
}

func TestInverseReferencesAreAdded(t *testing.T) {
	s := NewSampleSpace()
	objects, ok := s.Lookup(addrspace.ObjectsFolder)
	require.True(t, ok)

	var foundInverse bool
	for i := 0; i < objects.ReferenceCount(); i++ {
		ref := objects.ReferenceAt(i)
		if !ref.IsForward && ref.Target.NodeID.Equal(addrspace.RootFolder) {
			foundInverse = true
		}
	}
	assert.True(t, foundInverse, "Objects must carry the inverse Organizes reference to Root")
}

func TestIsTransitiveSubtype(t *testing.T) {
	s := NewSampleSpace()

	// Direct and transitive closure over HasSubtype.
	assert.True(t, s.IsTransitiveSubtype(addrspace.HasComponent, addrspace.Aggregates))
	assert.True(t, s.IsTransitiveSubtype(addrspace.HasComponent, addrspace.HasChild))
	assert.True(t, s.IsTransitiveSubtype(addrspace.HasComponent, addrspace.References))
	assert.True(t, s.IsTransitiveSubtype(addrspace.HasSubtype, addrspace.HasChild))

	// A type is a subtype of itself.
	assert.True(t, s.IsTransitiveSubtype(addrspace.HasChild, addrspace.HasChild))

	// Not related the other way around.
	assert.False(t, s.IsTransitiveSubtype(addrspace.HasChild, addrspace.HasComponent))
	assert.False(t, s.IsTransitiveSubtype(addrspace.Organizes, addrspace.HasChild))
}

func TestIsTransitiveSubtypeTerminatesOnCycle(t *testing.T) {
	s := New()
	a := ua.NewStringNodeID(1, "A")
	b := ua.NewStringNodeID(1, "B")
	for _, id := range []ua.NodeID{a, b} {
		require.NoError(t, s.AddNode(NodeConfig{
			ID:          id,
			Class:       ua.NodeClassReferenceType,
			BrowseName:  ua.NewQualifiedName(1, id.String()),
			DisplayName: ua.NewLocalizedText(id.String()),
		}))
	}
	require.NoError(t, s.AddReference(a, addrspace.HasSubtype, ua.NewExpandedNodeID(b)))
	require.NoError(t, s.AddReference(b, addrspace.HasSubtype, ua.NewExpandedNodeID(a)))

	assert.True(t, s.IsTransitiveSubtype(b, a))
	assert.False(t, s.IsTransitiveSubtype(ua.NewStringNodeID(1, "C"), a))
}

func TestIsValidReferenceType(t *testing.T) {
	s := NewSampleSpace()
	assert.True(t, s.IsValidReferenceType(addrspace.Organizes))
	assert.False(t, s.IsValidReferenceType(addrspace.ObjectsFolder), "Objects is not a reference type")
	assert.False(t, s.IsValidReferenceType(ua.NewNumericNodeID(0, 424242)))
}

func TestDuplicateNodeRejected(t *testing.T) {
	s := New()
	cfg := NodeConfig{
		ID:          ua.NewNumericNodeID(1, 1),
		Class:       ua.NodeClassObject,
		BrowseName:  ua.NewQualifiedName(1, "n"),
		DisplayName: ua.NewLocalizedText("n"),
	}
	require.NoError(t, s.AddNode(cfg))
	assert.Error(t, s.AddNode(cfg))
}
