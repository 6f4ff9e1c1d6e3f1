package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension is a closed index interval within one dimension of a
// NumericRange.
type Dimension struct {
	Start uint32
	End   uint32
}

// NumericRange addresses a sub-block of an array value, one closed
// interval per dimension. A one-dimensional range may also address into
// a String or ByteString scalar.
type NumericRange struct {
	Dimensions []Dimension
}

// NewNumericRange builds a one-dimensional range [start, end].
func NewNumericRange(start, end uint32) *NumericRange {
	return &NumericRange{Dimensions: []Dimension{{Start: start, End: end}}}
}

// ParseNumericRange parses the OPC UA textual range syntax: one
// "start:end" interval or single index per dimension, dimensions
// separated by commas ("2", "1:3", "0:1,2:4"). In an interval start must
// be strictly less than end ("2:2" is rejected); single indices map to
// [i, i].
func ParseNumericRange(s string) (*NumericRange, error) {
	if s == "" {
		return nil, fmt.Errorf("empty numeric range")
	}
	parts := strings.Split(s, ",")
	r := &NumericRange{Dimensions: make([]Dimension, 0, len(parts))}
	for _, part := range parts {
		lo, hi, found := strings.Cut(part, ":")
		start, err := strconv.ParseUint(lo, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric range %q: %w", s, err)
		}
		end := start
		if found {
			end, err = strconv.ParseUint(hi, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid numeric range %q: %w", s, err)
			}
			if end < start {
				return nil, fmt.Errorf("invalid numeric range %q: end before start", s)
			}
			if end == start {
				return nil, fmt.Errorf("invalid numeric range %q: degenerate interval", s)
			}
		}
		r.Dimensions = append(r.Dimensions, Dimension{Start: uint32(start), End: uint32(end)})
	}
	return r, nil
}

func (r *NumericRange) String() string {
	var sb strings.Builder
	for i, d := range r.Dimensions {
		if i > 0 {
			sb.WriteByte(',')
		}
		if d.Start == d.End {
			fmt.Fprintf(&sb, "%d", d.Start)
		} else {
			fmt.Fprintf(&sb, "%d:%d", d.Start, d.End)
		}
	}
	return sb.String()
}

// HasRange reports whether the range addresses at least one element of
// the variant: a one-dimensional range applies to String/ByteString
// scalars and to arrays whose length exceeds the start index.
// Multi-dimensional ranges are not supported.
func (v *Variant) HasRange(r *NumericRange) (bool, error) {
	switch len(r.Dimensions) {
	case 0:
		return false, ErrInvalidArgument
	case 1:
	default:
		return false, ErrUnsupported
	}
	start := int(r.Dimensions[0].Start)
	if v.Kind == VariantScalar {
		switch s := v.Value.(type) {
		case String:
			return s.Len() > 0 && start < s.Len(), nil
		case ByteString:
			return s.Len() > 0 && start < s.Len(), nil
		}
		return false, nil
	}
	if v.Kind != VariantArray {
		return false, nil
	}
	n := sliceLen(v.Value)
	return n > 0 && start < n, nil
}

// GetRange extracts the addressed sub-value of src into v: a scalar of
// the same kind for String/ByteString sources, an array of the same
// kind with the addressed elements deep-copied otherwise. The end index
// is silently clipped to the last element; a start past the end yields
// an empty result.
func (v *Variant) GetRange(src *Variant, r *NumericRange) error {
	switch len(r.Dimensions) {
	case 0:
		return ErrInvalidArgument
	case 1:
	default:
		return ErrUnsupported
	}
	dim := r.Dimensions[0]
	v.Clear()

	if src.Kind == VariantScalar {
		switch s := src.Value.(type) {
		case String:
			v.Type = IDString
			v.Kind = VariantScalar
			v.Value = String{Data: sliceBytesRange(s.Data, dim)}
			return nil
		case ByteString:
			v.Type = IDByteString
			v.Kind = VariantScalar
			v.Value = ByteString{Data: sliceBytesRange(s.Data, dim)}
			return nil
		}
		return ErrInvalidArgument
	}
	if src.Kind != VariantArray {
		return ErrInvalidArgument
	}

	n := sliceLen(src.Value)
	v.Type = src.Type
	v.Kind = VariantArray
	start := int(dim.Start)
	if start >= n {
		return nil
	}
	end := int(dim.End)
	if end >= n {
		end = n - 1
	}
	sub, err := subSlicePayload(src.Value, start, end)
	if err != nil {
		v.Clear()
		return err
	}
	out, err := copySlicePayload(sub)
	if err != nil {
		v.Clear()
		return err
	}
	v.Value = out
	return nil
}

// SetRange overwrites the addressed slice of v with the elements of
// src. The builtin types and shapes must match and src must hold
// exactly end-start+1 elements; the end index is clipped to v's length
// and out-of-window source elements are dropped silently.
func (v *Variant) SetRange(src *Variant, r *NumericRange) error {
	switch len(r.Dimensions) {
	case 0:
		return ErrInvalidArgument
	case 1:
	default:
		return ErrUnsupported
	}
	dim := r.Dimensions[0]
	if v.Type != src.Type {
		return ErrTypeMismatch
	}

	if src.Kind == VariantScalar {
		switch s := src.Value.(type) {
		case String:
			d, ok := v.Value.(String)
			if !ok || v.Kind != VariantScalar {
				return ErrTypeMismatch
			}
			return setBytesRange(d.Data, s.Data, dim)
		case ByteString:
			d, ok := v.Value.(ByteString)
			if !ok || v.Kind != VariantScalar {
				return ErrTypeMismatch
			}
			return setBytesRange(d.Data, s.Data, dim)
		}
		return ErrTypeMismatch
	}

	if src.Kind != VariantArray || v.Kind != VariantArray {
		return ErrTypeMismatch
	}
	width := int(dim.End-dim.Start) + 1
	if sliceLen(src.Value) != width {
		return ErrInvalidArgument
	}
	n := sliceLen(v.Value)
	start := int(dim.Start)
	if n <= 0 || start >= n {
		return nil
	}
	end := int(dim.End)
	if end >= n {
		end = n - 1
	}
	return setSliceRange(v.Value, src.Value, start, end)
}

// sliceBytesRange copies bytes [start, min(end, len-1)] into a fresh
// buffer; empty (non-null) when start is past the end.
func sliceBytesRange(data []byte, dim Dimension) []byte {
	start := int(dim.Start)
	if start >= len(data) {
		return []byte{}
	}
	end := int(dim.End)
	if end >= len(data) {
		end = len(data) - 1
	}
	out := make([]byte, end-start+1)
	copy(out, data[start:end+1])
	return out
}

// setBytesRange overwrites dst[start..] in place from src, requiring
// src to span exactly the range width and clipping to dst's length.
func setBytesRange(dst, src []byte, dim Dimension) error {
	width := int(dim.End-dim.Start) + 1
	if len(src) != width {
		return ErrInvalidArgument
	}
	start := int(dim.Start)
	if len(dst) == 0 || start >= len(dst) {
		return nil
	}
	end := int(dim.End)
	if end >= len(dst) {
		end = len(dst) - 1
	}
	copy(dst[start:end+1], src)
	return nil
}

// subSlicePayload returns the aliased subslice [start, end] of an array
// payload; callers deep-copy before storing it.
func subSlicePayload(val any, start, end int) (any, error) {
	hi := end + 1
	switch s := val.(type) {
	case []bool:
		return s[start:hi], nil
	case []int8:
		return s[start:hi], nil
	case []byte:
		return s[start:hi], nil
	case []int16:
		return s[start:hi], nil
	case []uint16:
		return s[start:hi], nil
	case []int32:
		return s[start:hi], nil
	case []uint32:
		return s[start:hi], nil
	case []int64:
		return s[start:hi], nil
	case []uint64:
		return s[start:hi], nil
	case []float32:
		return s[start:hi], nil
	case []float64:
		return s[start:hi], nil
	case []String:
		return s[start:hi], nil
	case []DateTime:
		return s[start:hi], nil
	case []Guid:
		return s[start:hi], nil
	case []ByteString:
		return s[start:hi], nil
	case []XmlElement:
		return s[start:hi], nil
	case []NodeID:
		return s[start:hi], nil
	case []ExpandedNodeID:
		return s[start:hi], nil
	case []StatusCode:
		return s[start:hi], nil
	case []QualifiedName:
		return s[start:hi], nil
	case []LocalizedText:
		return s[start:hi], nil
	case []ExtensionObject:
		return s[start:hi], nil
	case []DataValue:
		return s[start:hi], nil
	case []Variant:
		return s[start:hi], nil
	case []DiagnosticInfo:
		return s[start:hi], nil
	}
	return nil, ErrInvalidArgument
}

// setSliceRange overwrites dst[start..end] with deep copies of the
// leading elements of src.
func setSliceRange(dst, src any, start, end int) error {
	switch d := dst.(type) {
	case []bool:
		return setPOD(d, src, start, end)
	case []int8:
		return setPOD(d, src, start, end)
	case []byte:
		return setPOD(d, src, start, end)
	case []int16:
		return setPOD(d, src, start, end)
	case []uint16:
		return setPOD(d, src, start, end)
	case []int32:
		return setPOD(d, src, start, end)
	case []uint32:
		return setPOD(d, src, start, end)
	case []int64:
		return setPOD(d, src, start, end)
	case []uint64:
		return setPOD(d, src, start, end)
	case []float32:
		return setPOD(d, src, start, end)
	case []float64:
		return setPOD(d, src, start, end)
	case []DateTime:
		return setPOD(d, src, start, end)
	case []StatusCode:
		return setPOD(d, src, start, end)
	case []Guid:
		return setPOD(d, src, start, end)
	case []String:
		return setDeep(d, src, start, end, String.Copy)
	case []ByteString:
		return setDeep(d, src, start, end, ByteString.Copy)
	case []XmlElement:
		return setDeep(d, src, start, end, XmlElement.Copy)
	case []NodeID:
		return setDeep(d, src, start, end, NodeID.Copy)
	case []ExpandedNodeID:
		return setDeep(d, src, start, end, ExpandedNodeID.Copy)
	case []QualifiedName:
		return setDeep(d, src, start, end, QualifiedName.Copy)
	case []LocalizedText:
		return setDeep(d, src, start, end, LocalizedText.Copy)
	case []ExtensionObject:
		return setDeep(d, src, start, end, ExtensionObject.Copy)
	case []DiagnosticInfo:
		return setDeep(d, src, start, end, DiagnosticInfo.Copy)
	case []DataValue:
		s, ok := src.([]DataValue)
		if !ok {
			return ErrTypeMismatch
		}
		for i := 0; i <= end-start; i++ {
			if err := d[start+i].CopyFrom(&s[i]); err != nil {
				return err
			}
		}
		return nil
	case []Variant:
		s, ok := src.([]Variant)
		if !ok {
			return ErrTypeMismatch
		}
		for i := 0; i <= end-start; i++ {
			if err := d[start+i].CopyFrom(&s[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return ErrTypeMismatch
}

func setPOD[T any](d []T, src any, start, end int) error {
	s, ok := src.([]T)
	if !ok {
		return ErrTypeMismatch
	}
	copy(d[start:end+1], s)
	return nil
}

func setDeep[T any](d []T, src any, start, end int, cp func(T) T) error {
	s, ok := src.([]T)
	if !ok {
		return ErrTypeMismatch
	}
	for i := 0; i <= end-start; i++ {
		d[start+i] = cp(s[i])
	}
	return nil
}
