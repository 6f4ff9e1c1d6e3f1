package memspace

import (
	"github.com/avencourt/uastack/pkg/addrspace"
	"github.com/avencourt/uastack/pkg/ua"
)

// NewSampleSpace builds the small address space used by the demo server
// and the CLI browse command: the standard folder roots, the reference
// type hierarchy, and a demo device with a few variables and a method.
func NewSampleSpace() *Space {
	s := New()

	folder := func(id ua.NodeID, name string) {
		must(s.AddNode(NodeConfig{
			ID:             id,
			Class:          ua.NodeClassObject,
			BrowseName:     ua.NewQualifiedName(0, name),
			DisplayName:    ua.NewLocalizedText(name),
			TypeDefinition: addrspace.FolderType,
		}))
	}
	refType := func(id ua.NodeID, name string) {
		must(s.AddNode(NodeConfig{
			ID:          id,
			Class:       ua.NodeClassReferenceType,
			BrowseName:  ua.NewQualifiedName(0, name),
			DisplayName: ua.NewLocalizedText(name),
		}))
	}

	folder(addrspace.RootFolder, "Root")
	folder(addrspace.ObjectsFolder, "Objects")
	folder(addrspace.TypesFolder, "Types")
	folder(addrspace.ViewsFolder, "Views")

	refType(addrspace.References, "References")
	refType(addrspace.NonHierarchicalReferences, "NonHierarchicalReferences")
	refType(addrspace.HierarchicalReferences, "HierarchicalReferences")
	refType(addrspace.HasChild, "HasChild")
	refType(addrspace.Organizes, "Organizes")
	refType(addrspace.HasTypeDefinition, "HasTypeDefinition")
	refType(addrspace.Aggregates, "Aggregates")
	refType(addrspace.HasSubtype, "HasSubtype")
	refType(addrspace.HasProperty, "HasProperty")
	refType(addrspace.HasComponent, "HasComponent")

	must(s.AddNode(NodeConfig{
		ID:          addrspace.FolderType,
		Class:       ua.NodeClassObjectType,
		BrowseName:  ua.NewQualifiedName(0, "FolderType"),
		DisplayName: ua.NewLocalizedText("FolderType"),
	}))
	must(s.AddNode(NodeConfig{
		ID:          addrspace.BaseObjectType,
		Class:       ua.NodeClassObjectType,
		BrowseName:  ua.NewQualifiedName(0, "BaseObjectType"),
		DisplayName: ua.NewLocalizedText("BaseObjectType"),
	}))
	must(s.AddNode(NodeConfig{
		ID:          addrspace.BaseDataVariableType,
		Class:       ua.NodeClassVariableType,
		BrowseName:  ua.NewQualifiedName(0, "BaseDataVariableType"),
		DisplayName: ua.NewLocalizedText("BaseDataVariableType"),
	}))

	local := ua.NewExpandedNodeID

	// Folder hierarchy.
	must(s.AddReference(addrspace.RootFolder, addrspace.Organizes, local(addrspace.ObjectsFolder)))
	must(s.AddReference(addrspace.RootFolder, addrspace.Organizes, local(addrspace.TypesFolder)))
	must(s.AddReference(addrspace.RootFolder, addrspace.Organizes, local(addrspace.ViewsFolder)))

	// Reference type hierarchy via HasSubtype.
	sub := func(parent, child ua.NodeID) {
		must(s.AddReference(parent, addrspace.HasSubtype, local(child)))
	}
	sub(addrspace.References, addrspace.HierarchicalReferences)
	sub(addrspace.References, addrspace.NonHierarchicalReferences)
	sub(addrspace.HierarchicalReferences, addrspace.HasChild)
	sub(addrspace.HierarchicalReferences, addrspace.Organizes)
	sub(addrspace.HasChild, addrspace.Aggregates)
	sub(addrspace.HasChild, addrspace.HasSubtype)
	sub(addrspace.Aggregates, addrspace.HasComponent)
	sub(addrspace.Aggregates, addrspace.HasProperty)

	// Demo device: an object with two variables, a property and a
	// method, organized under Objects.
	device := ua.NewStringNodeID(1, "Demo.Device")
	must(s.AddNode(NodeConfig{
		ID:             device,
		Class:          ua.NodeClassObject,
		BrowseName:     ua.NewQualifiedName(1, "Device"),
		DisplayName:    ua.NewLocalizedText("Demo Device"),
		TypeDefinition: addrspace.BaseObjectType,
	}))
	must(s.AddReference(addrspace.ObjectsFolder, addrspace.Organizes, local(device)))

	variable := func(id ua.NodeID, name string) {
		must(s.AddNode(NodeConfig{
			ID:             id,
			Class:          ua.NodeClassVariable,
			BrowseName:     ua.NewQualifiedName(1, name),
			DisplayName:    ua.NewLocalizedText(name),
			TypeDefinition: addrspace.BaseDataVariableType,
		}))
		must(s.AddReference(device, addrspace.HasComponent, local(id)))
	}
	variable(ua.NewStringNodeID(1, "Demo.Device.Temperature"), "Temperature")
	variable(ua.NewStringNodeID(1, "Demo.Device.Pressure"), "Pressure")

	serial := ua.NewStringNodeID(1, "Demo.Device.SerialNumber")
	must(s.AddNode(NodeConfig{
		ID:          serial,
		Class:       ua.NodeClassVariable,
		BrowseName:  ua.NewQualifiedName(1, "SerialNumber"),
		DisplayName: ua.NewLocalizedText("SerialNumber"),
	}))
	must(s.AddReference(device, addrspace.HasProperty, local(serial)))

	reset := ua.NewStringNodeID(1, "Demo.Device.Reset")
	must(s.AddNode(NodeConfig{
		ID:          reset,
		Class:       ua.NodeClassMethod,
		BrowseName:  ua.NewQualifiedName(1, "Reset"),
		DisplayName: ua.NewLocalizedText("Reset"),
	}))
	must(s.AddReference(device, addrspace.HasComponent, local(reset)))

	return s
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
