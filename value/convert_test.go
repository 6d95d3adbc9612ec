package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
)

func convert(t *testing.T, to DataType, src *Value) *Value {
	t.Helper()
	var out Value
	require.NoError(t, out.SetConverted(to, src))
	require.Equal(t, to, out.Type())
	return &out
}

func TestNumericNarrowing(t *testing.T) {
	var v Value

	require.NoError(t, v.SetFloat(-7.9))
	i, err := convert(t, Int, &v).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-7), i)

	require.NoError(t, v.SetDouble(1e12))
	i, _ = convert(t, Int, &v).AsInt()
	assert.Equal(t, int32(math.MaxInt32), i)

	require.NoError(t, v.SetInt(-5))
	u, _ := convert(t, UnsignedInt, &v).AsUint()
	assert.Equal(t, uint32(0), u)

	require.NoError(t, v.SetUint(4000000000))
	i, _ = convert(t, Int, &v).AsInt()
	assert.Equal(t, int32(math.MaxInt32), i)

	require.NoError(t, v.SetDouble(math.NaN()))
	i, _ = convert(t, Int, &v).AsInt()
	assert.Equal(t, int32(0), i)

	require.NoError(t, v.SetInt(300))
	c, _ := convert(t, Char, &v).AsChar()
	assert.Equal(t, byte(255), c)
}

func TestBoolConversion(t *testing.T) {
	var v Value
	require.NoError(t, v.SetFloat(0.25))
	b, _ := convert(t, Bool, &v).AsBool()
	assert.True(t, b)

	require.NoError(t, v.SetInt(0))
	b, _ = convert(t, Bool, &v).AsBool()
	assert.False(t, b)

	require.NoError(t, v.SetBool(true))
	i, _ := convert(t, Int, &v).AsInt()
	assert.Equal(t, int32(1), i)

	require.NoError(t, v.SetString("true"))
	b, _ = convert(t, Bool, &v).AsBool()
	assert.True(t, b)

	require.NoError(t, v.SetString("0"))
	b, _ = convert(t, Bool, &v).AsBool()
	assert.False(t, b)
}

func TestNumericToString(t *testing.T) {
	cases := []struct {
		set  func(v *Value) error
		want string
	}{
		{func(v *Value) error { return v.SetInt(-42) }, "-42"},
		{func(v *Value) error { return v.SetUint(42) }, "42"},
		{func(v *Value) error { return v.SetFloat(2.5) }, "2.500000"},
		{func(v *Value) error { return v.SetDouble(-0.125) }, "-0.125000"},
		{func(v *Value) error { return v.SetBool(false) }, "false"},
		{func(v *Value) error { return v.SetChar('Z') }, "Z"},
	}
	for _, c := range cases {
		var v Value
		require.NoError(t, c.set(&v))
		s, err := convert(t, String, &v).AsString()
		require.NoError(t, err)
		assert.Equal(t, c.want, s)
	}
}

func TestStringToNumericUsesLegacyParser(t *testing.T) {
	var v Value
	require.NoError(t, v.SetString("12.75"))
	i, _ := convert(t, Int, &v).AsInt()
	assert.Equal(t, int32(12), i)
	d, _ := convert(t, Double, &v).AsDouble()
	assert.Equal(t, 12.75, d)

	for _, bad := range []string{"1.2.3", "12abc", "abc", ""} {
		require.NoError(t, v.SetString(bad))
		f, err := convert(t, Float, &v).AsFloat()
		require.NoError(t, err)
		assert.Zero(t, f, "input %q", bad)
	}

	require.NoError(t, v.SetString("Hi"))
	c, _ := convert(t, Char, &v).AsChar()
	assert.Equal(t, byte('H'), c)
}

func TestSignedTextRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, v.SetInt(-42))
	back, _ := convert(t, Int, convert(t, String, &v)).AsInt()
	assert.Equal(t, int32(-42), back)

	require.NoError(t, v.SetString("+7.5"))
	f, _ := convert(t, Float, &v).AsFloat()
	assert.Equal(t, float32(7.5), f)
}

func TestFloatTextKeepsSixDecimals(t *testing.T) {
	var v Value
	require.NoError(t, v.SetDouble(1e-7))
	s := convert(t, String, &v)
	text, _ := s.AsString()
	assert.Equal(t, "0.000000", text)
	d, _ := convert(t, Double, s).AsDouble()
	assert.Zero(t, d, "magnitudes below 5e-7 do not survive text")
}

func TestBinaryReinterpretation(t *testing.T) {
	var v Value
	require.NoError(t, v.SetInt(0x01020304))
	bin := convert(t, Binary, &v)
	assert.Equal(t, []byte{4, 3, 2, 1}, bin.Bytes())

	back, _ := convert(t, Int, bin).AsInt()
	assert.Equal(t, int32(0x01020304), back)

	// Short binaries are zero padded.
	require.NoError(t, v.SetBinary([]byte{0xFF}))
	i, _ := convert(t, Int, &v).AsInt()
	assert.Equal(t, int32(0xFF), i)

	// Binary text stops at the first NUL.
	require.NoError(t, v.SetBinary([]byte{'o', 'k', 0, 'x'}))
	s, _ := convert(t, String, &v).AsString()
	assert.Equal(t, "ok", s)

	require.NoError(t, v.SetVector3Float(Vec3F{1, -2, 3}))
	vb := convert(t, Binary, &v)
	assert.Equal(t, 12, vb.Size())
	vf, _ := convert(t, Vector3Float, vb).AsVector3Float()
	assert.Equal(t, Vec3F{1, -2, 3}, vf)
}

func TestVectorConversion(t *testing.T) {
	var v Value
	require.NoError(t, v.SetVector3Float(Vec3F{0.5, 1.5, -2}))
	d, _ := convert(t, Vector3Double, &v).AsVector3Double()
	assert.Equal(t, Vec3D{0.5, 1.5, -2}, d)

	require.NoError(t, v.SetVector3Double(Vec3D{0.1, 0.2, 0.3}))
	f, _ := convert(t, Vector3Float, &v).AsVector3Float()
	assert.Equal(t, Vec3F{0.1, 0.2, 0.3}, f)
}

func TestRoundTripClosure(t *testing.T) {
	var v Value
	for _, i := range []int32{0, 1, -1, 12345, -65536, 1 << 20} {
		require.NoError(t, v.SetInt(i))
		back, _ := convert(t, Int, convert(t, Float, &v)).AsInt()
		assert.Equal(t, i, back)
		back, _ = convert(t, Int, convert(t, String, &v)).AsInt()
		assert.Equal(t, i, back)
		back, _ = convert(t, Int, convert(t, Double, &v)).AsInt()
		assert.Equal(t, i, back)
	}

	prev := math.Inf(-1)
	for _, d := range []float64{-1e5, -3.3, 0, 0.1, 2.7182818284, 1e7} {
		require.NoError(t, v.SetDouble(d))
		back, _ := convert(t, Double, convert(t, Float, &v)).AsDouble()
		assert.InDelta(t, d, back, math.Abs(d)*1e-6+1e-7)
		assert.GreaterOrEqual(t, back, prev)
		prev = back
	}

	require.NoError(t, v.SetFloat(3.5))
	back, _ := convert(t, Float, convert(t, String, &v)).AsFloat()
	assert.Equal(t, float32(3.5), back)
}

func TestSameTypeConversionCopies(t *testing.T) {
	var v Value
	v.SetList()
	require.NoError(t, v.PushBack(intValue(t, 4)))
	cp := convert(t, List, &v)
	v.Free()
	n, err := cp.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUndefinedConversions(t *testing.T) {
	var v, out Value
	require.NoError(t, v.SetVector3Float(Vec3F{1, 2, 3}))
	assert.ErrorIs(t, out.SetConverted(Int, &v), errcode.InvalidInput)
	assert.ErrorIs(t, out.SetConverted(String, &v), errcode.InvalidInput)

	require.NoError(t, v.SetInt(1))
	assert.ErrorIs(t, out.SetConverted(Vector3Float, &v), errcode.InvalidInput)
	require.NoError(t, out.SetInt(7))
	assert.ErrorIs(t, out.SetConverted(Void, &v), errcode.InvalidInput)
	assert.Equal(t, Int, out.Type(), "failed conversion must not free the destination")
	assert.ErrorIs(t, out.SetConverted(List, &v), errcode.InvalidInput)

	v.SetList()
	assert.ErrorIs(t, out.SetConverted(Binary, &v), errcode.InvalidInput)
	assert.ErrorIs(t, out.SetConverted(Int, &v), errcode.InvalidInput)

	v.Free()
	assert.ErrorIs(t, out.SetConverted(Int, &v), errcode.InvalidInput)
	assert.ErrorIs(t, out.SetConverted(Int, nil), errcode.NoInput)
	assert.True(t, out.IsEmpty())
}

func TestFailedConversionKeepsDestination(t *testing.T) {
	var v, out Value
	require.NoError(t, out.SetInt(77))
	require.NoError(t, v.SetVector3Double(Vec3D{}))
	require.Error(t, out.SetConverted(Int, &v))
	i, _ := out.AsInt()
	assert.Equal(t, int32(77), i)
}

func TestParseStrict(t *testing.T) {
	f, err := ParseStrict("1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)
	_, err = ParseStrict("1.5x")
	assert.ErrorIs(t, err, errcode.InvalidInput)
	assert.Zero(t, ParseLegacy("1.5x"))
}
