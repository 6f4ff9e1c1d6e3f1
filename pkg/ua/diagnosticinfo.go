package ua

// DiagnosticInfo carries vendor-specific diagnostics for a status code.
// Inner forms a singly-linked owning chain; all chain operations iterate
// so that adversarially deep chains cannot exhaust the stack.
type DiagnosticInfo struct {
	SymbolicID          int32
	NamespaceURI        int32
	Locale              int32
	LocalizedText       int32
	AdditionalInfo      String
	InnerStatusCode     StatusCode
	InnerDiagnosticInfo *DiagnosticInfo
}

// Clear releases the additional info and the whole inner chain,
// resetting to the zero value.
func (d *DiagnosticInfo) Clear() {
	// Detach the chain first so each link is cleared exactly once.
	inner := d.InnerDiagnosticInfo
	*d = DiagnosticInfo{}
	for inner != nil {
		next := inner.InnerDiagnosticInfo
		*inner = DiagnosticInfo{}
		inner = next
	}
}

// Copy deep-copies the DiagnosticInfo including the inner chain.
func (d DiagnosticInfo) Copy() DiagnosticInfo {
	c := DiagnosticInfo{
		SymbolicID:      d.SymbolicID,
		NamespaceURI:    d.NamespaceURI,
		Locale:          d.Locale,
		LocalizedText:   d.LocalizedText,
		AdditionalInfo:  d.AdditionalInfo.Copy(),
		InnerStatusCode: d.InnerStatusCode,
	}
	tail := &c.InnerDiagnosticInfo
	for src := d.InnerDiagnosticInfo; src != nil; src = src.InnerDiagnosticInfo {
		link := &DiagnosticInfo{
			SymbolicID:      src.SymbolicID,
			NamespaceURI:    src.NamespaceURI,
			Locale:          src.Locale,
			LocalizedText:   src.LocalizedText,
			AdditionalInfo:  src.AdditionalInfo.Copy(),
			InnerStatusCode: src.InnerStatusCode,
		}
		*tail = link
		tail = &link.InnerDiagnosticInfo
	}
	return c
}

// Compare is a total order over the scalar fields, the additional info,
// and then the inner chains, walked iteratively. A shorter chain orders
// before a longer one with an equal prefix.
func (d DiagnosticInfo) Compare(o DiagnosticInfo) int {
	left, right := &d, &o
	for {
		if c := compareInt32(left.SymbolicID, right.SymbolicID); c != 0 {
			return c
		}
		if c := compareInt32(left.NamespaceURI, right.NamespaceURI); c != 0 {
			return c
		}
		if c := compareInt32(left.Locale, right.Locale); c != 0 {
			return c
		}
		if c := compareInt32(left.LocalizedText, right.LocalizedText); c != 0 {
			return c
		}
		if c := left.AdditionalInfo.Compare(right.AdditionalInfo); c != 0 {
			return c
		}
		if left.InnerStatusCode != right.InnerStatusCode {
			if left.InnerStatusCode < right.InnerStatusCode {
				return -1
			}
			return 1
		}
		left, right = left.InnerDiagnosticInfo, right.InnerDiagnosticInfo
		switch {
		case left == nil && right == nil:
			return 0
		case left == nil:
			return -1
		case right == nil:
			return 1
		}
	}
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
