package ua

import "fmt"

// StatusCode is an OPC UA status code as defined in Part 4 and Part 6.
// The two most significant bits encode the severity: 00 = good,
// 01 = uncertain, 10 = bad.
type StatusCode uint32

const (
	StatusGood StatusCode = 0x00000000

	StatusUncertainReferenceOutOfServer StatusCode = 0x406C0000

	StatusBadUnexpectedError          StatusCode = 0x80010000
	StatusBadOutOfMemory              StatusCode = 0x80030000
	StatusBadEncodingError            StatusCode = 0x80060000
	StatusBadTimeout                  StatusCode = 0x800A0000
	StatusBadNothingToDo              StatusCode = 0x800F0000
	StatusBadTooManyOperations        StatusCode = 0x80100000
	StatusBadIdentityTokenInvalid     StatusCode = 0x80200000
	StatusBadSecureChannelIDInvalid   StatusCode = 0x80220000
	StatusBadSessionIDInvalid         StatusCode = 0x80250000
	StatusBadSessionClosed            StatusCode = 0x80260000
	StatusBadSessionNotActivated      StatusCode = 0x80270000
	StatusBadNodeIDInvalid            StatusCode = 0x80330000
	StatusBadNodeIDUnknown            StatusCode = 0x80340000
	StatusBadAttributeIDInvalid       StatusCode = 0x80350000
	StatusBadContinuationPointInvalid StatusCode = 0x804A0000
	StatusBadNoContinuationPoints     StatusCode = 0x804B0000
	StatusBadReferenceTypeIDInvalid   StatusCode = 0x804C0000
	StatusBadBrowseDirectionInvalid   StatusCode = 0x804D0000
	StatusBadBrowseNameInvalid        StatusCode = 0x80600000
	StatusBadViewIDUnknown            StatusCode = 0x806B0000
	StatusBadQueryTooComplex          StatusCode = 0x806E0000
	StatusBadNoMatch                  StatusCode = 0x806F0000
	StatusBadInvalidArgument          StatusCode = 0x80AB0000
	StatusBadConnectionClosed         StatusCode = 0x80AE0000
	StatusBadInvalidState             StatusCode = 0x80AF0000
	StatusBadSecureChannelClosed      StatusCode = 0x80860000
)

var statusNames = map[StatusCode]string{
	StatusGood:                          "Good",
	StatusUncertainReferenceOutOfServer: "UncertainReferenceOutOfServer",
	StatusBadUnexpectedError:            "BadUnexpectedError",
	StatusBadOutOfMemory:                "BadOutOfMemory",
	StatusBadEncodingError:              "BadEncodingError",
	StatusBadTimeout:                    "BadTimeout",
	StatusBadNothingToDo:                "BadNothingToDo",
	StatusBadTooManyOperations:          "BadTooManyOperations",
	StatusBadIdentityTokenInvalid:       "BadIdentityTokenInvalid",
	StatusBadSecureChannelIDInvalid:     "BadSecureChannelIdInvalid",
	StatusBadSessionIDInvalid:           "BadSessionIdInvalid",
	StatusBadSessionClosed:              "BadSessionClosed",
	StatusBadSessionNotActivated:        "BadSessionNotActivated",
	StatusBadNodeIDInvalid:              "BadNodeIdInvalid",
	StatusBadNodeIDUnknown:              "BadNodeIdUnknown",
	StatusBadAttributeIDInvalid:         "BadAttributeIdInvalid",
	StatusBadContinuationPointInvalid:   "BadContinuationPointInvalid",
	StatusBadNoContinuationPoints:       "BadNoContinuationPoints",
	StatusBadReferenceTypeIDInvalid:     "BadReferenceTypeIdInvalid",
	StatusBadBrowseDirectionInvalid:     "BadBrowseDirectionInvalid",
	StatusBadBrowseNameInvalid:          "BadBrowseNameInvalid",
	StatusBadViewIDUnknown:              "BadViewIdUnknown",
	StatusBadQueryTooComplex:            "BadQueryTooComplex",
	StatusBadNoMatch:                    "BadNoMatch",
	StatusBadInvalidArgument:            "BadInvalidArgument",
	StatusBadConnectionClosed:           "BadConnectionClosed",
	StatusBadInvalidState:               "BadInvalidState",
	StatusBadSecureChannelClosed:        "BadSecureChannelClosed",
}

func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StatusCode(0x%08X)", uint32(s))
}

// IsGood reports whether the severity bits indicate success.
func (s StatusCode) IsGood() bool { return s&0xC0000000 == 0 }

// IsUncertain reports whether the severity bits indicate a non-fatal,
// uncertain result.
func (s StatusCode) IsUncertain() bool { return s&0xC0000000 == 0x40000000 }

// IsBad reports whether the severity bits indicate failure.
func (s StatusCode) IsBad() bool { return s&0x80000000 != 0 }
