package ua

// BrowseDirection selects which reference orientations a Browse
// traverses.
type BrowseDirection uint32

const (
	BrowseDirectionForward BrowseDirection = iota
	BrowseDirectionInverse
	BrowseDirectionBoth
)

func (d BrowseDirection) String() string {
	switch d {
	case BrowseDirectionForward:
		return "Forward"
	case BrowseDirectionInverse:
		return "Inverse"
	case BrowseDirectionBoth:
		return "Both"
	}
	return "Invalid"
}

// Matches reports whether a reference with the given orientation passes
// the direction filter.
func (d BrowseDirection) Matches(isForward bool) bool {
	switch d {
	case BrowseDirectionBoth:
		return true
	case BrowseDirectionForward:
		return isForward
	case BrowseDirectionInverse:
		return !isForward
	}
	return false
}

// Browse result-mask bits selecting which ReferenceDescription fields
// are populated.
const (
	ResultMaskReferenceType uint32 = 1 << iota
	ResultMaskIsForward
	ResultMaskNodeClass
	ResultMaskBrowseName
	ResultMaskDisplayName
	ResultMaskTypeDefinition

	ResultMaskAll uint32 = 0x3F
)

// RequestHeader is common to every service request. The authentication
// token identifies the session on every request after CreateSession.
type RequestHeader struct {
	AuthenticationToken NodeID
	Timestamp           DateTime
	RequestHandle       uint32
	ReturnDiagnostics   uint32
	TimeoutHint         uint32
}

// ResponseHeader is common to every service response.
type ResponseHeader struct {
	Timestamp     DateTime
	RequestHandle uint32
	ServiceResult StatusCode
}

// SignatureData carries a signature and the URI of the algorithm that
// produced it.
type SignatureData struct {
	Algorithm String
	Signature ByteString
}

// ApplicationDescription identifies the client application in
// CreateSession.
type ApplicationDescription struct {
	ApplicationURI  String
	ProductURI      String
	ApplicationName LocalizedText
	ApplicationType uint32
	GatewayServerURI String
}

// CreateSessionRequest asks the server to create a session on the
// current secure channel.
type CreateSessionRequest struct {
	Header                  RequestHeader
	ClientDescription       ApplicationDescription
	ServerURI               String
	EndpointURL             String
	SessionName             String
	ClientNonce             ByteString
	ClientCertificate       ByteString
	RequestedSessionTimeout float64
	MaxResponseMessageSize  uint32
}

// CreateSessionResponse returns the session id, the authentication
// token to present on later requests, the server nonce and the server's
// signature over clientCert+clientNonce.
type CreateSessionResponse struct {
	Header                ResponseHeader
	SessionID             NodeID
	AuthenticationToken   NodeID
	RevisedSessionTimeout float64
	ServerNonce           ByteString
	ServerCertificate     ByteString
	ServerSignature       SignatureData
}

// ActivateSessionRequest activates (or re-activates on a new channel) a
// created session with a user identity.
type ActivateSessionRequest struct {
	Header            RequestHeader
	ClientSignature   SignatureData
	UserIdentityToken ExtensionObject
	UserTokenSignature SignatureData
	LocaleIDs         []String
}

// ActivateSessionResponse acknowledges activation and returns the
// session's server nonce.
type ActivateSessionResponse struct {
	Header      ResponseHeader
	ServerNonce ByteString
	Results     []StatusCode
}

// CloseSessionRequest terminates a session.
type CloseSessionRequest struct {
	Header              RequestHeader
	DeleteSubscriptions bool
}

// CloseSessionResponse acknowledges CloseSession.
type CloseSessionResponse struct {
	Header ResponseHeader
}

// ViewDescription scopes a browse to a view; a null ViewID means the
// whole address space.
type ViewDescription struct {
	ViewID      NodeID
	Timestamp   DateTime
	ViewVersion uint32
}

// BrowseDescription is one Browse operation: a source node plus the
// direction, reference-type, node-class and result filters.
type BrowseDescription struct {
	NodeID          NodeID
	Direction       BrowseDirection
	ReferenceTypeID NodeID
	IncludeSubtypes bool
	NodeClassMask   uint32
	ResultMask      uint32
}

// ReferenceDescription is one emitted reference. Fields outside the
// request's result mask keep their indeterminate zero value.
type ReferenceDescription struct {
	ReferenceTypeID NodeID
	IsForward       bool
	NodeID          ExpandedNodeID
	BrowseName      QualifiedName
	DisplayName     LocalizedText
	NodeClass       NodeClass
	TypeDefinition  ExpandedNodeID
}

// BrowseResult is the per-operation outcome of Browse or BrowseNext.
type BrowseResult struct {
	StatusCode        StatusCode
	ContinuationPoint ByteString
	References        []ReferenceDescription
}

// BrowseRequest enumerates references of one or more source nodes.
type BrowseRequest struct {
	Header                        RequestHeader
	View                          ViewDescription
	RequestedMaxReferencesPerNode uint32
	NodesToBrowse                 []BrowseDescription
}

// BrowseResponse carries one BrowseResult per requested node.
type BrowseResponse struct {
	Header  ResponseHeader
	Results []BrowseResult
}

// BrowseNextRequest resumes or releases saved continuation points.
type BrowseNextRequest struct {
	Header                    RequestHeader
	ReleaseContinuationPoints bool
	ContinuationPoints        []ByteString
}

// BrowseNextResponse carries one BrowseResult per continuation point.
type BrowseNextResponse struct {
	Header  ResponseHeader
	Results []BrowseResult
}

// RelativePathElement is one step of a relative path: follow references
// of the given type (and optionally subtypes), in the given direction,
// to a target with the given browse name.
type RelativePathElement struct {
	ReferenceTypeID NodeID
	IsInverse       bool
	IncludeSubtypes bool
	TargetName      QualifiedName
}

// RelativePath is an ordered sequence of path elements.
type RelativePath struct {
	Elements []RelativePathElement
}

// BrowsePath is one TranslateBrowsePathsToNodeIds operation.
type BrowsePath struct {
	StartingNode NodeID
	RelativePath RelativePath
}

// BrowsePathTarget is one matched target. RemainingPathIndex is the
// index of the first unprocessed element for targets that left the
// server, or MaxUint32 when the whole path was processed.
type BrowsePathTarget struct {
	TargetID           ExpandedNodeID
	RemainingPathIndex uint32
}

// RemainingPathComplete marks a target for which no path elements
// remain.
const RemainingPathComplete uint32 = 0xFFFFFFFF

// BrowsePathResult is the per-path outcome of a translate operation.
type BrowsePathResult struct {
	StatusCode StatusCode
	Targets    []BrowsePathTarget
}

// TranslateBrowsePathsRequest resolves browse paths to node ids.
type TranslateBrowsePathsRequest struct {
	Header      RequestHeader
	BrowsePaths []BrowsePath
}

// TranslateBrowsePathsResponse carries one result per path.
type TranslateBrowsePathsResponse struct {
	Header  ResponseHeader
	Results []BrowsePathResult
}

// ServiceFault is the generic failure response for any service.
type ServiceFault struct {
	Header ResponseHeader
}

// ns=0 numeric ids of the service message data types and their
// DefaultBinary encoding nodes (OPC UA Part 4 / NodeIds.csv).
const (
	TypeIDCreateSessionRequest          uint32 = 459
	TypeIDCreateSessionResponse         uint32 = 462
	TypeIDActivateSessionRequest        uint32 = 465
	TypeIDActivateSessionResponse       uint32 = 468
	TypeIDCloseSessionRequest           uint32 = 471
	TypeIDCloseSessionResponse          uint32 = 474
	TypeIDBrowseRequest                 uint32 = 525
	TypeIDBrowseResponse                uint32 = 528
	TypeIDBrowseNextRequest             uint32 = 531
	TypeIDBrowseNextResponse            uint32 = 534
	TypeIDTranslateBrowsePathsRequest   uint32 = 552
	TypeIDTranslateBrowsePathsResponse  uint32 = 555
	TypeIDServiceFault                  uint32 = 395

	BinaryIDCreateSessionRequest         uint32 = 461
	BinaryIDCreateSessionResponse        uint32 = 464
	BinaryIDActivateSessionRequest       uint32 = 467
	BinaryIDActivateSessionResponse      uint32 = 470
	BinaryIDCloseSessionRequest          uint32 = 473
	BinaryIDCloseSessionResponse         uint32 = 476
	BinaryIDBrowseRequest                uint32 = 527
	BinaryIDBrowseResponse               uint32 = 530
	BinaryIDBrowseNextRequest            uint32 = 533
	BinaryIDBrowseNextResponse           uint32 = 536
	BinaryIDTranslateBrowsePathsRequest  uint32 = 554
	BinaryIDTranslateBrowsePathsResponse uint32 = 557
	BinaryIDServiceFault                 uint32 = 397
)

func init() {
	for _, t := range []*EncodeableType{
		{TypeName: "CreateSessionRequest", TypeID: TypeIDCreateSessionRequest, BinaryEncodingTypeID: BinaryIDCreateSessionRequest,
			New: func() any { return new(CreateSessionRequest) }, Clear: func(v any) { *v.(*CreateSessionRequest) = CreateSessionRequest{} }},
		{TypeName: "CreateSessionResponse", TypeID: TypeIDCreateSessionResponse, BinaryEncodingTypeID: BinaryIDCreateSessionResponse,
			New: func() any { return new(CreateSessionResponse) }, Clear: func(v any) { *v.(*CreateSessionResponse) = CreateSessionResponse{} }},
		{TypeName: "ActivateSessionRequest", TypeID: TypeIDActivateSessionRequest, BinaryEncodingTypeID: BinaryIDActivateSessionRequest,
			New: func() any { return new(ActivateSessionRequest) }, Clear: func(v any) { *v.(*ActivateSessionRequest) = ActivateSessionRequest{} }},
		{TypeName: "ActivateSessionResponse", TypeID: TypeIDActivateSessionResponse, BinaryEncodingTypeID: BinaryIDActivateSessionResponse,
			New: func() any { return new(ActivateSessionResponse) }, Clear: func(v any) { *v.(*ActivateSessionResponse) = ActivateSessionResponse{} }},
		{TypeName: "CloseSessionRequest", TypeID: TypeIDCloseSessionRequest, BinaryEncodingTypeID: BinaryIDCloseSessionRequest,
			New: func() any { return new(CloseSessionRequest) }, Clear: func(v any) { *v.(*CloseSessionRequest) = CloseSessionRequest{} }},
		{TypeName: "CloseSessionResponse", TypeID: TypeIDCloseSessionResponse, BinaryEncodingTypeID: BinaryIDCloseSessionResponse,
			New: func() any { return new(CloseSessionResponse) }, Clear: func(v any) { *v.(*CloseSessionResponse) = CloseSessionResponse{} }},
		{TypeName: "BrowseRequest", TypeID: TypeIDBrowseRequest, BinaryEncodingTypeID: BinaryIDBrowseRequest,
			New: func() any { return new(BrowseRequest) }, Clear: func(v any) { *v.(*BrowseRequest) = BrowseRequest{} }},
		{TypeName: "BrowseResponse", TypeID: TypeIDBrowseResponse, BinaryEncodingTypeID: BinaryIDBrowseResponse,
			New: func() any { return new(BrowseResponse) }, Clear: func(v any) { *v.(*BrowseResponse) = BrowseResponse{} }},
		{TypeName: "BrowseNextRequest", TypeID: TypeIDBrowseNextRequest, BinaryEncodingTypeID: BinaryIDBrowseNextRequest,
			New: func() any { return new(BrowseNextRequest) }, Clear: func(v any) { *v.(*BrowseNextRequest) = BrowseNextRequest{} }},
		{TypeName: "BrowseNextResponse", TypeID: TypeIDBrowseNextResponse, BinaryEncodingTypeID: BinaryIDBrowseNextResponse,
			New: func() any { return new(BrowseNextResponse) }, Clear: func(v any) { *v.(*BrowseNextResponse) = BrowseNextResponse{} }},
		{TypeName: "TranslateBrowsePathsToNodeIdsRequest", TypeID: TypeIDTranslateBrowsePathsRequest, BinaryEncodingTypeID: BinaryIDTranslateBrowsePathsRequest,
			New: func() any { return new(TranslateBrowsePathsRequest) }, Clear: func(v any) { *v.(*TranslateBrowsePathsRequest) = TranslateBrowsePathsRequest{} }},
		{TypeName: "TranslateBrowsePathsToNodeIdsResponse", TypeID: TypeIDTranslateBrowsePathsResponse, BinaryEncodingTypeID: BinaryIDTranslateBrowsePathsResponse,
			New: func() any { return new(TranslateBrowsePathsResponse) }, Clear: func(v any) { *v.(*TranslateBrowsePathsResponse) = TranslateBrowsePathsResponse{} }},
		{TypeName: "ServiceFault", TypeID: TypeIDServiceFault, BinaryEncodingTypeID: BinaryIDServiceFault,
			New: func() any { return new(ServiceFault) }, Clear: func(v any) { *v.(*ServiceFault) = ServiceFault{} }},
	} {
		RegisterEncodeableType(t)
	}
}
