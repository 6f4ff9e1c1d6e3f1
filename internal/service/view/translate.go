package view

import (
	"github.com/avencourt/uastack/pkg/ua"
)

// TranslateBrowsePath resolves one browse path: starting from a node,
// each relative-path element browses the current source set and keeps
// the targets whose browse name matches. Targets on other servers
// cannot be chased and are reported with the index of the element at
// which they were encountered.
func (e *Engine) TranslateBrowsePath(start ua.NodeID, elements []ua.RelativePathElement) ua.BrowsePathResult {
	if len(elements) == 0 {
		return ua.BrowsePathResult{StatusCode: ua.StatusBadNothingToDo}
	}
	if start.IsNull() {
		return ua.BrowsePathResult{StatusCode: ua.StatusBadNodeIDInvalid}
	}

	sources := []ua.NodeID{start}
	var matches []ua.ExpandedNodeID
	var remaining []ua.BrowsePathTarget

	for i, elem := range elements {
		if elem.TargetName.IsEmpty() {
			return ua.BrowsePathResult{StatusCode: ua.StatusBadBrowseNameInvalid}
		}
		direction := ua.BrowseDirectionForward
		if elem.IsInverse {
			direction = ua.BrowseDirectionInverse
		}
		includeSubtypes := elem.IncludeSubtypes
		if elem.ReferenceTypeID.IsNull() {
			includeSubtypes = false
		}
		last := i == len(elements)-1

		var next []ua.NodeID
		for _, src := range sources {
			out := e.compute(BrowseParams{
				Node:            src,
				Direction:       direction,
				ReferenceTypeID: elem.ReferenceTypeID,
				IncludeSubtypes: includeSubtypes,
				ResultMask:      ua.ResultMaskAll,
			})
			if st := translateStatus(out.Status); st != ua.StatusGood {
				return ua.BrowsePathResult{StatusCode: st}
			}
			for _, ref := range out.References {
				switch {
				case ref.NodeID.IsLocal() && ref.BrowseName.Equal(elem.TargetName):
					if last {
						if len(matches) >= e.cfg.MaxBrowsePathMatches {
							return ua.BrowsePathResult{StatusCode: ua.StatusBadQueryTooComplex}
						}
						matches = append(matches, ref.NodeID.Copy())
					} else {
						next = append(next, ref.NodeID.NodeID.Copy())
					}
				case !ref.NodeID.IsLocal():
					if len(remaining) >= e.cfg.MaxBrowsePathRemaining {
						return ua.BrowsePathResult{StatusCode: ua.StatusBadQueryTooComplex}
					}
					remaining = append(remaining, ua.BrowsePathTarget{
						TargetID:           ref.NodeID.Copy(),
						RemainingPathIndex: uint32(i),
					})
				}
			}
		}
		sources = next
		if len(sources) == 0 {
			break
		}
	}

	result := ua.BrowsePathResult{}
	for _, m := range matches {
		result.Targets = append(result.Targets, ua.BrowsePathTarget{
			TargetID:           m,
			RemainingPathIndex: ua.RemainingPathComplete,
		})
	}
	result.Targets = append(result.Targets, remaining...)

	switch {
	case len(matches) > 0:
		result.StatusCode = ua.StatusGood
	case len(remaining) > 0:
		result.StatusCode = ua.StatusUncertainReferenceOutOfServer
	default:
		result.StatusCode = ua.StatusBadNoMatch
	}
	return result
}

// translateStatus maps a Browse status onto the translate error
// surface.
func translateStatus(browse ua.StatusCode) ua.StatusCode {
	switch browse {
	case ua.StatusGood:
		return ua.StatusGood
	case ua.StatusBadNodeIDUnknown:
		return ua.StatusBadNodeIDUnknown
	case ua.StatusBadReferenceTypeIDInvalid:
		return ua.StatusBadNoMatch
	case ua.StatusBadOutOfMemory, ua.StatusBadNoContinuationPoints, ua.StatusBadViewIDUnknown:
		return ua.StatusBadQueryTooComplex
	}
	return browse
}
