package addrspace

import "github.com/avencourt/uastack/pkg/ua"

// Well-known ns=0 nodes used by the traversal engines and the sample
// address space.
var (
	RootFolder    = ua.NewNumericNodeID(0, 84)
	ObjectsFolder = ua.NewNumericNodeID(0, 85)
	TypesFolder   = ua.NewNumericNodeID(0, 86)
	ViewsFolder   = ua.NewNumericNodeID(0, 87)

	References               = ua.NewNumericNodeID(0, 31)
	NonHierarchicalReferences = ua.NewNumericNodeID(0, 32)
	HierarchicalReferences   = ua.NewNumericNodeID(0, 33)
	HasChild                 = ua.NewNumericNodeID(0, 34)
	Organizes                = ua.NewNumericNodeID(0, 35)
	HasModellingRule         = ua.NewNumericNodeID(0, 37)
	HasTypeDefinition        = ua.NewNumericNodeID(0, 40)
	Aggregates               = ua.NewNumericNodeID(0, 44)
	HasSubtype               = ua.NewNumericNodeID(0, 45)
	HasProperty              = ua.NewNumericNodeID(0, 46)
	HasComponent             = ua.NewNumericNodeID(0, 47)
	HasOrderedComponent      = ua.NewNumericNodeID(0, 49)

	FolderType         = ua.NewNumericNodeID(0, 61)
	BaseObjectType     = ua.NewNumericNodeID(0, 58)
	BaseDataVariableType = ua.NewNumericNodeID(0, 63)
)
