package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
)

func TestSetOperationNarrowsToSourceType(t *testing.T) {
	var src, out Value
	require.NoError(t, src.SetInt(10))
	require.NoError(t, out.SetOperation(Add, 2.5, &src))
	assert.Equal(t, Int, out.Type())
	i, _ := out.AsInt()
	assert.Equal(t, int32(12), i)

	require.NoError(t, out.SetOperation(Subtract, 12.5, &src))
	i, _ = out.AsInt()
	assert.Equal(t, int32(-2), i)

	require.NoError(t, src.SetUint(3))
	require.NoError(t, out.SetOperation(Subtract, 10, &src))
	u, _ := out.AsUint()
	assert.Equal(t, uint32(0), u)

	require.NoError(t, src.SetChar(250))
	require.NoError(t, out.SetOperation(Multiply, 2, &src))
	c, _ := out.AsChar()
	assert.Equal(t, byte(255), c)

	require.NoError(t, src.SetInt(math.MaxInt32))
	require.NoError(t, out.SetOperation(Add, 1000, &src))
	i, _ = out.AsInt()
	assert.Equal(t, int32(math.MaxInt32), i)
}

func TestSetOperationFloatingPoint(t *testing.T) {
	var src, out Value
	require.NoError(t, src.SetFloat(1.5))
	require.NoError(t, out.SetOperation(Divide, 0.5, &src))
	f, _ := out.AsFloat()
	assert.Equal(t, float32(3), f)

	require.NoError(t, src.SetDouble(0.25))
	require.NoError(t, out.SetOperation(Multiply, 4, &src))
	d, _ := out.AsDouble()
	assert.Equal(t, 1.0, d)
}

func TestSetOperationInPlace(t *testing.T) {
	var v Value
	require.NoError(t, v.SetInt(7))
	require.NoError(t, v.SetOperation(Multiply, 3, &v))
	i, _ := v.AsInt()
	assert.Equal(t, int32(21), i)
}

func TestSetOperationOnBool(t *testing.T) {
	var src, out Value
	require.NoError(t, src.SetBool(false))
	require.NoError(t, out.SetOperation(Add, 1, &src))
	assert.Equal(t, Bool, out.Type())
	b, _ := out.AsBool()
	assert.True(t, b)

	require.NoError(t, src.SetBool(true))
	require.NoError(t, out.SetOperation(Subtract, 1, &src))
	assert.Equal(t, Bool, out.Type())
	b, _ = out.AsBool()
	assert.False(t, b)

	require.NoError(t, out.SetOperation(Multiply, 0.5, &src))
	b, _ = out.AsBool()
	assert.True(t, b, "0.5 is nonzero")
}

func TestSetOperationErrors(t *testing.T) {
	var src, out Value
	require.NoError(t, out.SetInt(99))

	require.NoError(t, src.SetInt(1))
	assert.ErrorIs(t, out.SetOperation(Divide, 0, &src), errcode.InvalidInput)
	assert.ErrorIs(t, out.SetOperation(Operator(42), 1, &src), errcode.InvalidInput)

	require.NoError(t, src.SetString("5"))
	assert.ErrorIs(t, out.SetOperation(Add, 1, &src), errcode.InvalidInput)
	src.SetList()
	assert.ErrorIs(t, out.SetOperation(Add, 1, &src), errcode.InvalidInput)
	assert.ErrorIs(t, out.SetOperation(Add, 1, nil), errcode.NoInput)

	i, _ := out.AsInt()
	assert.Equal(t, int32(99), i, "failed operation must not touch the destination")
}

func TestCompareScalars(t *testing.T) {
	var a, b Value
	require.NoError(t, a.SetInt(3))
	require.NoError(t, b.SetInt(5))

	cases := []struct {
		cond Condition
		want bool
	}{
		{LessThan, true},
		{LessThanEqual, true},
		{GreaterThan, false},
		{GreaterThanEqual, false},
		{Equal, false},
		{NotEqual, true},
	}
	for _, c := range cases {
		got, err := Compare(&a, &b, c.cond)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "3 %v 5", c.cond)
	}

	require.NoError(t, a.SetBool(true))
	require.NoError(t, b.SetBool(false))
	got, err := Compare(&a, &b, GreaterThan)
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, a.SetFloat(1.25))
	require.NoError(t, b.SetFloat(1.25))
	got, _ = Compare(&a, &b, GreaterThanEqual)
	assert.True(t, got)
}

func TestCompareStrings(t *testing.T) {
	var a, b Value
	require.NoError(t, a.SetString("on"))
	require.NoError(t, b.SetString("on"))
	got, err := Compare(&a, &b, Equal)
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, b.SetString("off"))
	got, _ = Compare(&a, &b, NotEqual)
	assert.True(t, got)

	_, err = Compare(&a, &b, LessThan)
	assert.ErrorIs(t, err, errcode.InvalidInput)
}

func TestCompareRejectsMismatchedAndCompositeTypes(t *testing.T) {
	var a, b Value
	require.NoError(t, a.SetInt(1))
	require.NoError(t, b.SetFloat(1))
	_, err := Compare(&a, &b, Equal)
	assert.ErrorIs(t, err, errcode.InvalidInput)

	require.NoError(t, a.SetBinary([]byte{1}))
	require.NoError(t, b.SetBinary([]byte{1}))
	_, err = Compare(&a, &b, Equal)
	assert.ErrorIs(t, err, errcode.InvalidInput)

	a.SetList()
	b.SetList()
	_, err = Compare(&a, &b, Equal)
	assert.ErrorIs(t, err, errcode.InvalidInput)

	_, err = Compare(&a, nil, Equal)
	assert.ErrorIs(t, err, errcode.NoInput)
}
