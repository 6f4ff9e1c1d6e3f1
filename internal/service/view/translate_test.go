package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencourt/uastack/pkg/addrspace"
	"github.com/avencourt/uastack/pkg/addrspace/memspace"
	"github.com/avencourt/uastack/pkg/ua"
)

func TestTranslateSingleElementMatch(t *testing.T) {
	e := NewEngine(memspace.NewSampleSpace(), DefaultConfig(), nil)

	result := e.TranslateBrowsePath(addrspace.ObjectsFolder, []ua.RelativePathElement{
		{
			ReferenceTypeID: addrspace.Organizes,
			IncludeSubtypes: true,
			TargetName:      ua.NewQualifiedName(1, "Device"),
		},
	})
	require.Equal(t, ua.StatusGood, result.StatusCode)
	require.Len(t, result.Targets, 1)
	assert.True(t, result.Targets[0].TargetID.NodeID.Equal(ua.NewStringNodeID(1, "Demo.Device")))
	assert.Equal(t, ua.RemainingPathComplete, result.Targets[0].RemainingPathIndex)
}

func TestTranslateTwoElementPath(t *testing.T) {
	e := NewEngine(memspace.NewSampleSpace(), DefaultConfig(), nil)

	result := e.TranslateBrowsePath(addrspace.ObjectsFolder, []ua.RelativePathElement{
		{
			ReferenceTypeID: addrspace.HierarchicalReferences,
			IncludeSubtypes: true,
			TargetName:      ua.NewQualifiedName(1, "Device"),
		},
		{
			ReferenceTypeID: addrspace.HasChild,
			IncludeSubtypes: true,
			TargetName:      ua.NewQualifiedName(1, "Temperature"),
		},
	})
	require.Equal(t, ua.StatusGood, result.StatusCode)
	require.Len(t, result.Targets, 1)
	assert.True(t, result.Targets[0].TargetID.NodeID.Equal(ua.NewStringNodeID(1, "Demo.Device.Temperature")))
}

func TestTranslateNoMatchOnFirstElement(t *testing.T) {
	e := NewEngine(memspace.NewSampleSpace(), DefaultConfig(), nil)

	result := e.TranslateBrowsePath(addrspace.ObjectsFolder, []ua.RelativePathElement{
		{
			ReferenceTypeID: addrspace.Organizes,
			IncludeSubtypes: true,
			TargetName:      ua.NewQualifiedName(1, "NoSuchName"),
		},
		{
			ReferenceTypeID: addrspace.HasChild,
			IncludeSubtypes: true,
			TargetName:      ua.NewQualifiedName(1, "Temperature"),
		},
	})
	assert.Equal(t, ua.StatusBadNoMatch, result.StatusCode)
	assert.Empty(t, result.Targets)
}

func TestTranslateEmptyTargetName(t *testing.T) {
	e := NewEngine(memspace.NewSampleSpace(), DefaultConfig(), nil)

	result := e.TranslateBrowsePath(addrspace.ObjectsFolder, []ua.RelativePathElement{
		{ReferenceTypeID: addrspace.Organizes, TargetName: ua.QualifiedName{}},
	})
	assert.Equal(t, ua.StatusBadBrowseNameInvalid, result.StatusCode)
}

func TestTranslateEmptyPath(t *testing.T) {
	e := NewEngine(memspace.NewSampleSpace(), DefaultConfig(), nil)
	result := e.TranslateBrowsePath(addrspace.ObjectsFolder, nil)
	assert.Equal(t, ua.StatusBadNothingToDo, result.StatusCode)
}

func TestTranslateUnknownStartingNode(t *testing.T) {
	e := NewEngine(memspace.NewSampleSpace(), DefaultConfig(), nil)
	result := e.TranslateBrowsePath(ua.NewStringNodeID(1, "No.Such"), []ua.RelativePathElement{
		{TargetName: ua.NewQualifiedName(0, "x")},
	})
	assert.Equal(t, ua.StatusBadNodeIDUnknown, result.StatusCode)
}

// remoteSpace builds A --Organizes--> B --Organizes--> (remote target).
func remoteSpace(t *testing.T) (*memspace.Space, ua.NodeID) {
	t.Helper()
	s := memspace.New()
	refType := func(id ua.NodeID, name string) {
		require.NoError(t, s.AddNode(memspace.NodeConfig{
			ID:          id,
			Class:       ua.NodeClassReferenceType,
			BrowseName:  ua.NewQualifiedName(0, name),
			DisplayName: ua.NewLocalizedText(name),
		}))
	}
	refType(addrspace.HasSubtype, "HasSubtype")
	refType(addrspace.Organizes, "Organizes")

	a := ua.NewStringNodeID(1, "A")
	b := ua.NewStringNodeID(1, "B")
	for _, n := range []struct {
		id   ua.NodeID
		name string
	}{{a, "A"}, {b, "B"}} {
		require.NoError(t, s.AddNode(memspace.NodeConfig{
			ID:          n.id,
			Class:       ua.NodeClassObject,
			BrowseName:  ua.NewQualifiedName(1, n.name),
			DisplayName: ua.NewLocalizedText(n.name),
		}))
	}
	require.NoError(t, s.AddReference(a, addrspace.Organizes, ua.NewExpandedNodeID(b)))

	remote := ua.ExpandedNodeID{
		NodeID:      ua.NewStringNodeID(2, "Remote.Target"),
		ServerIndex: 1,
	}
	require.NoError(t, s.AddReference(b, addrspace.Organizes, remote))
	return s, a
}

func TestTranslateOutOfServerRemainder(t *testing.T) {
	space, start := remoteSpace(t)
	e := NewEngine(space, DefaultConfig(), nil)

	result := e.TranslateBrowsePath(start, []ua.RelativePathElement{
		{
			ReferenceTypeID: addrspace.Organizes,
			TargetName:      ua.NewQualifiedName(1, "B"),
		},
		{
			ReferenceTypeID: addrspace.Organizes,
			TargetName:      ua.NewQualifiedName(2, "Target"),
		},
	})
	require.Equal(t, ua.StatusUncertainReferenceOutOfServer, result.StatusCode)
	require.Len(t, result.Targets, 1)
	assert.Equal(t, uint32(1), result.Targets[0].RemainingPathIndex,
		"the remainder records the element index at which the path left the server")
	assert.Equal(t, uint32(1), result.Targets[0].TargetID.ServerIndex)
}

func TestTranslateStatusMapping(t *testing.T) {
	assert.Equal(t, ua.StatusGood, translateStatus(ua.StatusGood))
	assert.Equal(t, ua.StatusBadNodeIDUnknown, translateStatus(ua.StatusBadNodeIDUnknown))
	assert.Equal(t, ua.StatusBadNoMatch, translateStatus(ua.StatusBadReferenceTypeIDInvalid))
	assert.Equal(t, ua.StatusBadQueryTooComplex, translateStatus(ua.StatusBadOutOfMemory))
	assert.Equal(t, ua.StatusBadQueryTooComplex, translateStatus(ua.StatusBadNoContinuationPoints))
	assert.Equal(t, ua.StatusBadQueryTooComplex, translateStatus(ua.StatusBadViewIDUnknown))
	assert.Equal(t, ua.StatusBadSessionClosed, translateStatus(ua.StatusBadSessionClosed))
}
