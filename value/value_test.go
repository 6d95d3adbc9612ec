package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
)

func TestZeroValueIsEmpty(t *testing.T) {
	var v Value
	assert.True(t, v.IsEmpty())
	assert.Equal(t, Void, v.Type())
	assert.Equal(t, 0, v.Size())
	assert.Nil(t, v.Bytes())
}

func TestRoundTripPrimitives(t *testing.T) {
	var v Value

	require.NoError(t, v.SetChar('x'))
	c, err := v.AsChar()
	require.NoError(t, err)
	assert.Equal(t, byte('x'), c)

	require.NoError(t, v.SetBool(true))
	b, err := v.AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	require.NoError(t, v.SetInt(42))
	i, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)
	assert.Equal(t, 4, v.Size())

	require.NoError(t, v.SetInt(-2147483648))
	i, err = v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-2147483648), i)

	require.NoError(t, v.SetUint(4294967295))
	u, err := v.AsUint()
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), u)

	require.NoError(t, v.SetFloat(3.25))
	f, err := v.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(3.25), f)

	require.NoError(t, v.SetDouble(-1.0e300))
	d, err := v.AsDouble()
	require.NoError(t, err)
	assert.Equal(t, -1.0e300, d)

	require.NoError(t, v.SetString("hello"))
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	require.NoError(t, v.SetBinary([]byte{1, 2, 3}))
	raw := make([]byte, 8)
	n, err := v.GetBinary(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw[:n])

	require.NoError(t, v.SetVector3Float(Vec3F{1, 2, 3}))
	vf, err := v.AsVector3Float()
	require.NoError(t, err)
	assert.Equal(t, Vec3F{1, 2, 3}, vf)
	assert.Equal(t, 12, v.Size())

	require.NoError(t, v.SetVector3Double(Vec3D{-1, 0.5, 1e10}))
	vd, err := v.AsVector3Double()
	require.NoError(t, err)
	assert.Equal(t, Vec3D{-1, 0.5, 1e10}, vd)
	assert.Equal(t, 24, v.Size())

	v.Free()
	assert.True(t, v.IsEmpty())
}

func TestStringIsTerminated(t *testing.T) {
	var v Value
	require.NoError(t, v.SetString("abc"))
	assert.Equal(t, 4, v.Size())
	assert.Equal(t, []byte{'a', 'b', 'c', 0}, v.Bytes())

	// Length is found by scanning for the terminator.
	require.NoError(t, v.SetString("ab\x00cd"))
	s, _ := v.AsString()
	assert.Equal(t, "ab", s)
	assert.Equal(t, 3, v.Size())
}

func TestGetStringBufferBounds(t *testing.T) {
	var v Value
	require.NoError(t, v.SetString("abcd"))

	dst := make([]byte, 4)
	_, err := v.GetString(dst)
	assert.ErrorIs(t, err, errcode.OutOfMemory)

	dst = make([]byte, 5)
	n, err := v.GetString(dst)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("abcd\x00"), dst)

	_, err = v.GetBinary(make([]byte, 2))
	assert.ErrorIs(t, err, errcode.OutOfMemory)
}

func TestFreeIsIdempotent(t *testing.T) {
	var v Value
	v.Init()
	v.Free()
	assert.True(t, v.IsEmpty())
	v.Free()
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.Size())
}

func TestSetReleasesPreviousContents(t *testing.T) {
	var v Value
	v.SetList()
	var one Value
	require.NoError(t, one.SetInt(1))
	require.NoError(t, v.PushBack(&one))

	require.NoError(t, v.SetInt(7))
	assert.Equal(t, Int, v.Type())
	_, err := v.Len()
	assert.ErrorIs(t, err, errcode.InvalidInput)
}

func TestSetCopyIsDeep(t *testing.T) {
	var src, dst Value
	require.NoError(t, src.SetBinary([]byte{9, 8, 7}))
	require.NoError(t, dst.SetCopy(&src))
	src.Free()
	assert.Equal(t, []byte{9, 8, 7}, dst.Bytes())

	require.NoError(t, dst.SetCopy(&dst))
	assert.Equal(t, []byte{9, 8, 7}, dst.Bytes())

	assert.ErrorIs(t, dst.SetCopy(nil), errcode.NoInput)
}

func TestStringer(t *testing.T) {
	var v Value
	assert.Equal(t, "void", v.String())
	require.NoError(t, v.SetInt(-3))
	assert.Equal(t, "int(-3)", v.String())
	require.NoError(t, v.SetString("on"))
	assert.Equal(t, `string("on")`, v.String())
	require.NoError(t, v.SetBinary([]byte{0xAB, 0x01}))
	assert.Equal(t, "binary(AB01)", v.String())
}
