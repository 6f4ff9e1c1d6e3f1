package ua

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantScalarConstructors(t *testing.T) {
	cases := []struct {
		id    BuiltinID
		value any
	}{
		{IDBoolean, true},
		{IDSByte, int8(-5)},
		{IDByte, byte(5)},
		{IDInt16, int16(-1000)},
		{IDUInt16, uint16(1000)},
		{IDInt32, int32(-100000)},
		{IDUInt32, uint32(100000)},
		{IDInt64, int64(-1 << 40)},
		{IDUInt64, uint64(1 << 40)},
		{IDFloat, float32(1.5)},
		{IDDouble, 2.5},
		{IDString, NewString("hello")},
		{IDDateTime, DateTime(42)},
		{IDGuid, &Guid{Data1: 1}},
		{IDByteString, NewByteString([]byte{1, 2})},
		{IDXmlElement, XmlElement{Data: []byte("<a/>")}},
		{IDNodeID, &NodeID{Namespace: 1, Type: IdentifierNumeric, Numeric: 7}},
		{IDStatusCode, StatusBadNodeIDUnknown},
		{IDQualifiedName, &QualifiedName{NamespaceIndex: 1, Name: NewString("q")}},
		{IDLocalizedText, &LocalizedText{Text: NewString("t")}},
		{IDDataValue, &DataValue{Status: StatusGood}},
		{IDDiagnosticInfo, &DiagnosticInfo{SymbolicID: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.id.String(), func(t *testing.T) {
			v, err := NewScalarVariant(tc.id, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.id, v.Type)
			assert.Equal(t, VariantScalar, v.Kind)
		})
	}
}

func TestVariantScalarTypeMismatchRejected(t *testing.T) {
	_, err := NewScalarVariant(IDInt32, int64(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewScalarVariant(IDString, "bare go string")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVariantInVariantRejected(t *testing.T) {
	inner := MustVariant(NewScalarVariant(IDInt32, int32(1)))

	_, err := NewScalarVariant(IDVariant, &inner)
	assert.ErrorIs(t, err, ErrInvalidArgument, "scalar variant-in-variant must be rejected")

	// Arrays of Variant are the one permitted nesting.
	arr, err := NewArrayVariant(IDVariant, []Variant{inner})
	require.NoError(t, err)
	assert.Equal(t, 1, arr.ArrayLength())
}

func TestVariantNullArrayRejected(t *testing.T) {
	_, err := NewArrayVariant(IDNull, []bool{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVariantClearIdempotent(t *testing.T) {
	v := MustVariant(NewArrayVariant(IDString, []String{NewString("a"), NewString("b")}))
	v.Clear()
	assert.True(t, v.IsNull())
	v.Clear()
	assert.True(t, v.IsNull())
	assert.Nil(t, v.Value)
	assert.Nil(t, v.Dimensions)
}

func TestVariantCopyRoundTrip(t *testing.T) {
	variants := []Variant{
		{},
		MustVariant(NewScalarVariant(IDBoolean, true)),
		MustVariant(NewScalarVariant(IDDouble, 3.25)),
		MustVariant(NewScalarVariant(IDString, NewString("abc"))),
		MustVariant(NewScalarVariant(IDNodeID, &NodeID{Type: IdentifierString, Text: NewString("n")})),
		MustVariant(NewArrayVariant(IDInt32, []int32{1, 2, 3})),
		MustVariant(NewArrayVariant(IDString, []String{NewString("x"), {}})),
		MustVariant(NewArrayVariant(IDVariant, []Variant{
			MustVariant(NewScalarVariant(IDInt32, int32(9))),
		})),
		MustVariant(NewMatrixVariant(IDInt32, []int32{1, 2, 3, 4, 5, 6}, []int32{2, 3})),
	}
	for _, src := range variants {
		var dst Variant
		require.NoError(t, dst.CopyFrom(&src))
		cmp, err := dst.Compare(&src)
		require.NoError(t, err)
		assert.Equal(t, 0, cmp)
	}
}

func TestVariantCopyIsDeep(t *testing.T) {
	src := MustVariant(NewArrayVariant(IDString, []String{NewString("aa")}))
	var dst Variant
	require.NoError(t, dst.CopyFrom(&src))

	src.Value.([]String)[0].Data[0] = 'Z'
	assert.Equal(t, "aa", dst.Value.([]String)[0].Value())
}

func TestVariantMovePreservesValue(t *testing.T) {
	src := MustVariant(NewArrayVariant(IDInt32, []int32{10, 20}))
	var snapshot Variant
	require.NoError(t, snapshot.CopyFrom(&src))

	var dst Variant
	dst.MoveFrom(&src)
	assert.True(t, src.DoNotClear)

	cmp, err := dst.Compare(&snapshot)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestVariantShallowCopyAliases(t *testing.T) {
	src := MustVariant(NewArrayVariant(IDInt32, []int32{1}))
	var alias Variant
	alias.ShallowCopyFrom(&src)
	assert.True(t, alias.DoNotClear)
	assert.False(t, src.DoNotClear)

	cmp, err := alias.Compare(&src)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestVariantCompareOrdering(t *testing.T) {
	// Type tag decides first.
	a := MustVariant(NewScalarVariant(IDBoolean, true))
	b := MustVariant(NewScalarVariant(IDInt32, int32(0)))
	cmp, err := a.Compare(&b)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	// Shape ordinal decides next.
	scalar := MustVariant(NewScalarVariant(IDInt32, int32(5)))
	array := MustVariant(NewArrayVariant(IDInt32, []int32{5}))
	cmp, err = scalar.Compare(&array)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	// Array length decides before content.
	short := MustVariant(NewArrayVariant(IDInt32, []int32{9, 9}))
	long := MustVariant(NewArrayVariant(IDInt32, []int32{0, 0, 0}))
	cmp, err = short.Compare(&long)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	// Equal length arrays compare lexicographically.
	x := MustVariant(NewArrayVariant(IDInt32, []int32{1, 2}))
	y := MustVariant(NewArrayVariant(IDInt32, []int32{1, 3}))
	cmp, err = x.Compare(&y)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	// Matrices order by dimensions before payload.
	m1 := MustVariant(NewMatrixVariant(IDInt32, []int32{1, 2, 3, 4}, []int32{2, 2}))
	m2 := MustVariant(NewMatrixVariant(IDInt32, []int32{1, 2, 3, 4, 5, 6}, []int32{2, 3}))
	cmp, err = m1.Compare(&m2)
	require.NoError(t, err)
	assert.Negative(t, cmp)
}

func TestMatrixDimensionValidation(t *testing.T) {
	_, err := NewMatrixVariant(IDInt32, []int32{1, 2, 3}, []int32{2, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument, "length must equal dimension product")

	_, err = NewMatrixVariant(IDInt32, []int32{1}, []int32{1, -1})
	assert.ErrorIs(t, err, ErrInvalidArgument, "non-positive dimensions are invalid")

	_, err = NewMatrixVariant(IDInt32, []int32{}, []int32{math.MaxInt32, math.MaxInt32})
	assert.ErrorIs(t, err, ErrTooLarge, "dimension product must fit in int32")
}

func TestDataValueOrdering(t *testing.T) {
	base := DataValue{
		Value:           MustVariant(NewScalarVariant(IDInt32, int32(1))),
		Status:          StatusGood,
		ServerTimestamp: 100,
	}
	higherStatus := base
	higherStatus.Status = StatusBadOutOfMemory
	cmp, err := base.Compare(&higherStatus)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	laterServer := base
	laterServer.ServerTimestamp = 200
	cmp, err = base.Compare(&laterServer)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	finerServer := base
	finerServer.ServerPicoseconds = 10
	cmp, err = base.Compare(&finerServer)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	laterSource := base
	laterSource.SourceTimestamp = 5
	cmp, err = base.Compare(&laterSource)
	require.NoError(t, err)
	assert.Negative(t, cmp)

	biggerValue := base
	biggerValue.Value = MustVariant(NewScalarVariant(IDInt32, int32(2)))
	cmp, err = base.Compare(&biggerValue)
	require.NoError(t, err)
	assert.Negative(t, cmp)
}

func TestDataValueCopyClearsOnFailureAndRoundTrips(t *testing.T) {
	src := DataValue{
		Value:             MustVariant(NewScalarVariant(IDString, NewString("v"))),
		Status:            StatusGood,
		SourceTimestamp:   7,
		SourcePicoseconds: 3,
		ServerTimestamp:   9,
		ServerPicoseconds: 4,
	}
	var dst DataValue
	require.NoError(t, dst.CopyFrom(&src))
	cmp, err := dst.Compare(&src)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestDiagnosticInfoChainOps(t *testing.T) {
	chain := DiagnosticInfo{
		SymbolicID:     1,
		AdditionalInfo: NewString("outer"),
		InnerDiagnosticInfo: &DiagnosticInfo{
			SymbolicID:     2,
			AdditionalInfo: NewString("middle"),
			InnerDiagnosticInfo: &DiagnosticInfo{
				SymbolicID: 3,
			},
		},
	}

	cp := chain.Copy()
	assert.Equal(t, 0, cp.Compare(chain))

	// The copied chain is independent.
	chain.InnerDiagnosticInfo.SymbolicID = 99
	assert.NotEqual(t, 0, cp.Compare(chain))

	// Shorter chains order before longer ones with an equal prefix.
	short := cp.Copy()
	short.InnerDiagnosticInfo.InnerDiagnosticInfo = nil
	assert.Negative(t, short.Compare(cp))

	// Clear releases the whole chain and is idempotent.
	cp.Clear()
	assert.Nil(t, cp.InnerDiagnosticInfo)
	assert.Equal(t, DiagnosticInfo{}, cp)
	cp.Clear()
	assert.Equal(t, DiagnosticInfo{}, cp)
}

func TestDiagnosticInfoDeepChainClear(t *testing.T) {
	// An adversarially deep chain must clear without stack growth.
	head := &DiagnosticInfo{}
	cur := head
	for i := 0; i < 100000; i++ {
		cur.InnerDiagnosticInfo = &DiagnosticInfo{SymbolicID: int32(i)}
		cur = cur.InnerDiagnosticInfo
	}
	head.Clear()
	assert.Nil(t, head.InnerDiagnosticInfo)
}
