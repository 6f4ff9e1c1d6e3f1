package ua

import (
	"cmp"
	"errors"
	"math"
)

// VariantKind is the array shape of a Variant payload.
type VariantKind uint8

const (
	VariantScalar VariantKind = iota
	VariantArray
	VariantMatrix
)

func (k VariantKind) String() string {
	switch k {
	case VariantScalar:
		return "Scalar"
	case VariantArray:
		return "Array"
	case VariantMatrix:
		return "Matrix"
	}
	return "Unknown"
}

var (
	// ErrInvalidArgument reports a payload that does not match the
	// declared builtin type and shape.
	ErrInvalidArgument = errors.New("ua: invalid argument")
	// ErrTypeMismatch reports an operation across differently-typed
	// variants.
	ErrTypeMismatch = errors.New("ua: variant type mismatch")
	// ErrUnsupported reports an operation not defined for the shape,
	// such as multi-dimensional range access.
	ErrUnsupported = errors.New("ua: unsupported operation")
	// ErrTooLarge reports a matrix whose total length exceeds int32.
	ErrTooLarge = errors.New("ua: total length exceeds int32 range")
)

// Variant is a self-describing value: a builtin type tag plus a scalar,
// one-dimensional array or N-dimensional matrix payload.
//
// Payload conventions, by shape:
//
//   - Scalar: the Go value for the kind (bool, int8, ... String,
//     DateTime, StatusCode). Kinds with structured payloads are boxed:
//     *Guid, *NodeID, *ExpandedNodeID, *QualifiedName, *LocalizedText,
//     *ExtensionObject, *DataValue, *DiagnosticInfo. A Null scalar
//     holds nil. A scalar Variant payload is forbidden.
//   - Array: the matching slice type ([]bool, ... []NodeID, []Variant).
//     Structured kinds are stored by value in slices. Null arrays are
//     forbidden; empty arrays hold a nil or empty slice.
//   - Matrix: the same flat slice plus Dimensions, whose product must
//     equal the slice length and fit in int32.
//
// DoNotClear marks the payload as borrowed: Clear resets the variant
// without touching the payload, so two variants may alias one payload
// with exactly one owner.
type Variant struct {
	Type       BuiltinID
	Kind       VariantKind
	Dimensions []int32
	Value      any
	DoNotClear bool
}

// NewScalarVariant builds a scalar variant after validating that the
// payload matches the builtin type. A Variant-typed scalar is rejected:
// only arrays of Variant are representable.
func NewScalarVariant(id BuiltinID, value any) (Variant, error) {
	v := Variant{Type: id, Kind: VariantScalar, Value: value}
	if err := v.validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

// NewArrayVariant builds a one-dimensional array variant from the
// matching slice type.
func NewArrayVariant(id BuiltinID, slice any) (Variant, error) {
	v := Variant{Type: id, Kind: VariantArray, Value: slice}
	if err := v.validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

// NewMatrixVariant builds a matrix variant. The product of dims must
// equal the backing slice length and must not exceed int32.
func NewMatrixVariant(id BuiltinID, slice any, dims []int32) (Variant, error) {
	v := Variant{Type: id, Kind: VariantMatrix, Value: slice, Dimensions: dims}
	if err := v.validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

// MustVariant panics if err is non-nil; for literals in tests and
// sample data.
func MustVariant(v Variant, err error) Variant {
	if err != nil {
		panic(err)
	}
	return v
}

// IsNull reports whether the variant is the Null scalar.
func (v *Variant) IsNull() bool {
	return v.Type == IDNull && v.Kind == VariantScalar
}

// ArrayLength returns the number of elements of an array or matrix
// payload, and -1 for scalars.
func (v *Variant) ArrayLength() int {
	if v.Kind == VariantScalar {
		return -1
	}
	return sliceLen(v.Value)
}

// Clear releases the payload unless it is borrowed, then resets the
// variant to the Null scalar. Clear is idempotent.
func (v *Variant) Clear() {
	*v = Variant{}
}

// CopyFrom deep-copies src into v. The destination is cleared first and
// left cleared if the copy cannot be completed, so a failed copy owns
// nothing.
func (v *Variant) CopyFrom(src *Variant) error {
	v.Clear()
	if err := src.validate(); err != nil {
		return err
	}
	switch src.Kind {
	case VariantScalar:
		val, err := copyScalarPayload(src.Value)
		if err != nil {
			return err
		}
		v.Value = val
	case VariantArray:
		val, err := copySlicePayload(src.Value)
		if err != nil {
			v.Clear()
			return err
		}
		v.Value = val
	case VariantMatrix:
		val, err := copySlicePayload(src.Value)
		if err != nil {
			v.Clear()
			return err
		}
		v.Value = val
		v.Dimensions = append([]int32(nil), src.Dimensions...)
	}
	v.Type = src.Type
	v.Kind = src.Kind
	return nil
}

// ShallowCopyFrom aliases src's payload into v and marks v borrowed, so
// clearing v leaves the payload with its original owner.
func (v *Variant) ShallowCopyFrom(src *Variant) {
	*v = *src
	v.DoNotClear = true
}

// MoveFrom transfers ownership of src's payload to v; src keeps an
// aliased view marked borrowed.
func (v *Variant) MoveFrom(src *Variant) {
	*v = *src
	src.DoNotClear = true
}

// Compare is a total order: builtin type first, then shape ordinal,
// then payload. Arrays order by length then lexicographically; matrices
// by dimension count, then dimensions left to right, then payload.
func (v *Variant) Compare(o *Variant) (int, error) {
	if v.Type != o.Type {
		return cmp.Compare(v.Type, o.Type), nil
	}
	if v.Kind != o.Kind {
		return cmp.Compare(v.Kind, o.Kind), nil
	}
	switch v.Kind {
	case VariantScalar:
		return compareScalarPayload(v.Value, o.Value)
	case VariantArray:
		ln, lo := sliceLen(v.Value), sliceLen(o.Value)
		if ln != lo {
			return cmp.Compare(ln, lo), nil
		}
		return compareSlicePayload(v.Value, o.Value)
	case VariantMatrix:
		if len(v.Dimensions) != len(o.Dimensions) {
			return cmp.Compare(len(v.Dimensions), len(o.Dimensions)), nil
		}
		for i := range v.Dimensions {
			if v.Dimensions[i] != o.Dimensions[i] {
				return cmp.Compare(v.Dimensions[i], o.Dimensions[i]), nil
			}
		}
		return compareSlicePayload(v.Value, o.Value)
	}
	return 0, ErrInvalidArgument
}

// Equal reports deep equality; it returns false on shape or type
// mismatch rather than propagating an error.
func (v *Variant) Equal(o *Variant) bool {
	c, err := v.Compare(o)
	return err == nil && c == 0
}

// validate checks the payload invariants: the payload's Go type matches
// the builtin tag and shape (an array payload may also be nil, meaning
// empty), Null arrays and scalar Variants are rejected, and matrix dimensions multiply to the payload length
// without exceeding int32.
func (v *Variant) validate() error {
	if !v.Type.Valid() {
		return ErrInvalidArgument
	}
	switch v.Kind {
	case VariantScalar:
		if v.Type == IDNull {
			if v.Value != nil {
				return ErrInvalidArgument
			}
			return nil
		}
		if v.Type == IDVariant {
			// Part 6: a Variant value shall not itself be a Variant,
			// but it may be an array of Variants.
			return ErrInvalidArgument
		}
		if scalarTypeOf(v.Value) != v.Type {
			return ErrInvalidArgument
		}
		return nil
	case VariantArray, VariantMatrix:
		if v.Type == IDNull {
			return ErrInvalidArgument
		}
		if v.Value != nil && sliceTypeOf(v.Value) != v.Type {
			return ErrInvalidArgument
		}
		if v.Kind == VariantMatrix {
			total, err := matrixLength(v.Dimensions)
			if err != nil {
				return err
			}
			if int(total) != sliceLen(v.Value) {
				return ErrInvalidArgument
			}
		}
		return nil
	}
	return ErrInvalidArgument
}

// matrixLength computes the product of dims, rejecting non-positive
// dimensions and products beyond int32.
func matrixLength(dims []int32) (int64, error) {
	if len(dims) == 0 {
		return 0, ErrInvalidArgument
	}
	total := int64(1)
	for _, d := range dims {
		if d <= 0 {
			return 0, ErrInvalidArgument
		}
		total *= int64(d)
		if total > math.MaxInt32 {
			return 0, ErrTooLarge
		}
	}
	return total, nil
}

// scalarTypeOf maps a scalar payload's concrete Go type to its builtin
// id, or IDNull when the payload is not a recognized scalar type.
func scalarTypeOf(val any) BuiltinID {
	switch val.(type) {
	case bool:
		return IDBoolean
	case int8:
		return IDSByte
	case byte:
		return IDByte
	case int16:
		return IDInt16
	case uint16:
		return IDUInt16
	case int32:
		return IDInt32
	case uint32:
		return IDUInt32
	case int64:
		return IDInt64
	case uint64:
		return IDUInt64
	case float32:
		return IDFloat
	case float64:
		return IDDouble
	case String:
		return IDString
	case DateTime:
		return IDDateTime
	case *Guid:
		return IDGuid
	case ByteString:
		return IDByteString
	case XmlElement:
		return IDXmlElement
	case *NodeID:
		return IDNodeID
	case *ExpandedNodeID:
		return IDExpandedNodeID
	case StatusCode:
		return IDStatusCode
	case *QualifiedName:
		return IDQualifiedName
	case *LocalizedText:
		return IDLocalizedText
	case *ExtensionObject:
		return IDExtensionObject
	case *DataValue:
		return IDDataValue
	case *DiagnosticInfo:
		return IDDiagnosticInfo
	}
	return IDNull
}

// sliceTypeOf maps an array payload's concrete Go type to its builtin
// id, or IDNull when the payload is not a recognized slice type.
func sliceTypeOf(val any) BuiltinID {
	switch val.(type) {
	case []bool:
		return IDBoolean
	case []int8:
		return IDSByte
	case []byte:
		return IDByte
	case []int16:
		return IDInt16
	case []uint16:
		return IDUInt16
	case []int32:
		return IDInt32
	case []uint32:
		return IDUInt32
	case []int64:
		return IDInt64
	case []uint64:
		return IDUInt64
	case []float32:
		return IDFloat
	case []float64:
		return IDDouble
	case []String:
		return IDString
	case []DateTime:
		return IDDateTime
	case []Guid:
		return IDGuid
	case []ByteString:
		return IDByteString
	case []XmlElement:
		return IDXmlElement
	case []NodeID:
		return IDNodeID
	case []ExpandedNodeID:
		return IDExpandedNodeID
	case []StatusCode:
		return IDStatusCode
	case []QualifiedName:
		return IDQualifiedName
	case []LocalizedText:
		return IDLocalizedText
	case []ExtensionObject:
		return IDExtensionObject
	case []DataValue:
		return IDDataValue
	case []Variant:
		return IDVariant
	case []DiagnosticInfo:
		return IDDiagnosticInfo
	}
	return IDNull
}

func sliceLen(val any) int {
	switch s := val.(type) {
	case nil:
		return 0
	case []bool:
		return len(s)
	case []int8:
		return len(s)
	case []byte:
		return len(s)
	case []int16:
		return len(s)
	case []uint16:
		return len(s)
	case []int32:
		return len(s)
	case []uint32:
		return len(s)
	case []int64:
		return len(s)
	case []uint64:
		return len(s)
	case []float32:
		return len(s)
	case []float64:
		return len(s)
	case []String:
		return len(s)
	case []DateTime:
		return len(s)
	case []Guid:
		return len(s)
	case []ByteString:
		return len(s)
	case []XmlElement:
		return len(s)
	case []NodeID:
		return len(s)
	case []ExpandedNodeID:
		return len(s)
	case []StatusCode:
		return len(s)
	case []QualifiedName:
		return len(s)
	case []LocalizedText:
		return len(s)
	case []ExtensionObject:
		return len(s)
	case []DataValue:
		return len(s)
	case []Variant:
		return len(s)
	case []DiagnosticInfo:
		return len(s)
	}
	return 0
}

// copyScalarPayload deep-copies a scalar payload, boxing pointer kinds
// into fresh allocations.
func copyScalarPayload(val any) (any, error) {
	switch s := val.(type) {
	case nil, bool, int8, byte, int16, uint16, int32, uint32, int64, uint64,
		float32, float64, DateTime, StatusCode:
		return s, nil
	case String:
		return s.Copy(), nil
	case ByteString:
		return s.Copy(), nil
	case XmlElement:
		return s.Copy(), nil
	case *Guid:
		g := *s
		return &g, nil
	case *NodeID:
		n := s.Copy()
		return &n, nil
	case *ExpandedNodeID:
		e := s.Copy()
		return &e, nil
	case *QualifiedName:
		q := s.Copy()
		return &q, nil
	case *LocalizedText:
		l := s.Copy()
		return &l, nil
	case *ExtensionObject:
		e := s.Copy()
		return &e, nil
	case *DataValue:
		var d DataValue
		if err := d.CopyFrom(s); err != nil {
			return nil, err
		}
		return &d, nil
	case *DiagnosticInfo:
		d := s.Copy()
		return &d, nil
	}
	return nil, ErrInvalidArgument
}

// copySlicePayload deep-copies an array payload element-wise.
func copySlicePayload(val any) (any, error) {
	switch s := val.(type) {
	case nil:
		return nil, nil
	case []bool:
		return dupPOD(s), nil
	case []int8:
		return dupPOD(s), nil
	case []byte:
		return dupPOD(s), nil
	case []int16:
		return dupPOD(s), nil
	case []uint16:
		return dupPOD(s), nil
	case []int32:
		return dupPOD(s), nil
	case []uint32:
		return dupPOD(s), nil
	case []int64:
		return dupPOD(s), nil
	case []uint64:
		return dupPOD(s), nil
	case []float32:
		return dupPOD(s), nil
	case []float64:
		return dupPOD(s), nil
	case []DateTime:
		return dupPOD(s), nil
	case []StatusCode:
		return dupPOD(s), nil
	case []Guid:
		return dupPOD(s), nil
	case []String:
		return dupDeep(s, String.Copy), nil
	case []ByteString:
		return dupDeep(s, ByteString.Copy), nil
	case []XmlElement:
		return dupDeep(s, XmlElement.Copy), nil
	case []NodeID:
		return dupDeep(s, NodeID.Copy), nil
	case []ExpandedNodeID:
		return dupDeep(s, ExpandedNodeID.Copy), nil
	case []QualifiedName:
		return dupDeep(s, QualifiedName.Copy), nil
	case []LocalizedText:
		return dupDeep(s, LocalizedText.Copy), nil
	case []ExtensionObject:
		return dupDeep(s, ExtensionObject.Copy), nil
	case []DiagnosticInfo:
		return dupDeep(s, DiagnosticInfo.Copy), nil
	case []DataValue:
		out := make([]DataValue, len(s))
		for i := range s {
			if err := out[i].CopyFrom(&s[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []Variant:
		out := make([]Variant, len(s))
		for i := range s {
			if err := out[i].CopyFrom(&s[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return nil, ErrInvalidArgument
}

func dupPOD[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func dupDeep[T any](s []T, cp func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i := range s {
		out[i] = cp(s[i])
	}
	return out
}

// compareScalarPayload compares two scalar payloads of the same builtin
// type.
func compareScalarPayload(a, b any) (int, error) {
	switch l := a.(type) {
	case nil:
		if b == nil {
			return 0, nil
		}
		return 0, ErrTypeMismatch
	case bool:
		r, ok := b.(bool)
		if !ok {
			return 0, ErrTypeMismatch
		}
		switch {
		case l == r:
			return 0, nil
		case !l:
			return -1, nil
		}
		return 1, nil
	case int8:
		return cmpWith(l, b)
	case byte:
		return cmpWith(l, b)
	case int16:
		return cmpWith(l, b)
	case uint16:
		return cmpWith(l, b)
	case int32:
		return cmpWith(l, b)
	case uint32:
		return cmpWith(l, b)
	case int64:
		return cmpWith(l, b)
	case uint64:
		return cmpWith(l, b)
	case float32:
		return cmpWith(l, b)
	case float64:
		return cmpWith(l, b)
	case DateTime:
		return cmpWith(l, b)
	case StatusCode:
		return cmpWith(l, b)
	case String:
		r, ok := b.(String)
		if !ok {
			return 0, ErrTypeMismatch
		}
		return l.Compare(r), nil
	case ByteString:
		r, ok := b.(ByteString)
		if !ok {
			return 0, ErrTypeMismatch
		}
		return l.Compare(r), nil
	case XmlElement:
		r, ok := b.(XmlElement)
		if !ok {
			return 0, ErrTypeMismatch
		}
		return l.Compare(r), nil
	case *Guid:
		r, ok := b.(*Guid)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	case *NodeID:
		r, ok := b.(*NodeID)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	case *ExpandedNodeID:
		r, ok := b.(*ExpandedNodeID)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	case *QualifiedName:
		r, ok := b.(*QualifiedName)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	case *LocalizedText:
		r, ok := b.(*LocalizedText)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	case *ExtensionObject:
		r, ok := b.(*ExtensionObject)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	case *DataValue:
		r, ok := b.(*DataValue)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(r)
	case *DiagnosticInfo:
		r, ok := b.(*DiagnosticInfo)
		if !ok || l == nil || r == nil {
			return 0, ErrTypeMismatch
		}
		return l.Compare(*r), nil
	}
	return 0, ErrTypeMismatch
}

func cmpWith[T cmp.Ordered](l T, b any) (int, error) {
	r, ok := b.(T)
	if !ok {
		return 0, ErrTypeMismatch
	}
	return cmp.Compare(l, r), nil
}

// compareSlicePayload compares equal-length array payloads element-wise,
// lexicographically.
func compareSlicePayload(a, b any) (int, error) {
	switch l := a.(type) {
	case nil:
		if b == nil {
			return 0, nil
		}
		return 0, ErrTypeMismatch
	case []bool:
		r, ok := b.([]bool)
		if !ok {
			return 0, ErrTypeMismatch
		}
		for i := range l {
			if l[i] != r[i] {
				if !l[i] {
					return -1, nil
				}
				return 1, nil
			}
		}
		return 0, nil
	case []int8:
		return cmpSliceWith(l, b)
	case []byte:
		return cmpSliceWith(l, b)
	case []int16:
		return cmpSliceWith(l, b)
	case []uint16:
		return cmpSliceWith(l, b)
	case []int32:
		return cmpSliceWith(l, b)
	case []uint32:
		return cmpSliceWith(l, b)
	case []int64:
		return cmpSliceWith(l, b)
	case []uint64:
		return cmpSliceWith(l, b)
	case []float32:
		return cmpSliceWith(l, b)
	case []float64:
		return cmpSliceWith(l, b)
	case []DateTime:
		return cmpSliceWith(l, b)
	case []StatusCode:
		return cmpSliceWith(l, b)
	case []String:
		return cmpSliceDeep(l, b, String.Compare)
	case []ByteString:
		return cmpSliceDeep(l, b, ByteString.Compare)
	case []XmlElement:
		return cmpSliceDeep(l, b, XmlElement.Compare)
	case []Guid:
		return cmpSliceDeep(l, b, Guid.Compare)
	case []NodeID:
		return cmpSliceDeep(l, b, NodeID.Compare)
	case []ExpandedNodeID:
		return cmpSliceDeep(l, b, ExpandedNodeID.Compare)
	case []QualifiedName:
		return cmpSliceDeep(l, b, QualifiedName.Compare)
	case []LocalizedText:
		return cmpSliceDeep(l, b, LocalizedText.Compare)
	case []DiagnosticInfo:
		return cmpSliceDeep(l, b, DiagnosticInfo.Compare)
	case []ExtensionObject:
		return cmpSliceDeep(l, b, ExtensionObject.Compare)
	case []DataValue:
		r, ok := b.([]DataValue)
		if !ok {
			return 0, ErrTypeMismatch
		}
		for i := range l {
			c, err := l[i].Compare(&r[i])
			if err != nil || c != 0 {
				return c, err
			}
		}
		return 0, nil
	case []Variant:
		r, ok := b.([]Variant)
		if !ok {
			return 0, ErrTypeMismatch
		}
		for i := range l {
			c, err := l[i].Compare(&r[i])
			if err != nil || c != 0 {
				return c, err
			}
		}
		return 0, nil
	}
	return 0, ErrTypeMismatch
}

func cmpSliceWith[T cmp.Ordered](l []T, b any) (int, error) {
	r, ok := b.([]T)
	if !ok {
		return 0, ErrTypeMismatch
	}
	for i := range l {
		if c := cmp.Compare(l[i], r[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func cmpSliceDeep[T any](l []T, b any, f func(T, T) int) (int, error) {
	r, ok := b.([]T)
	if !ok {
		return 0, ErrTypeMismatch
	}
	for i := range l {
		if c := f(l[i], r[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}
