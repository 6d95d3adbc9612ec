package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
)

func intValue(t *testing.T, i int32) *Value {
	t.Helper()
	var v Value
	require.NoError(t, v.SetInt(i))
	return &v
}

func popInt(t *testing.T, pop func() (Value, error)) int32 {
	t.Helper()
	got, err := pop()
	require.NoError(t, err)
	defer got.Free()
	i, err := got.AsInt()
	require.NoError(t, err)
	return i
}

func TestListFIFO(t *testing.T) {
	var l Value
	l.SetList()
	for i := int32(1); i <= 3; i++ {
		require.NoError(t, l.PushBack(intValue(t, i)))
		n, err := l.Len()
		require.NoError(t, err)
		assert.Equal(t, int(i), n)
	}
	for want := int32(1); want <= 3; want++ {
		front, err := l.Index(0)
		require.NoError(t, err)
		fi, _ := front.AsInt()
		assert.Equal(t, want, fi)

		assert.Equal(t, want, popInt(t, l.PopFront))
		n, _ := l.Len()
		assert.Equal(t, int(3-want), n)
	}
	_, err := l.PopFront()
	assert.ErrorIs(t, err, errcode.InvalidInput)
}

func TestListLIFO(t *testing.T) {
	var l Value
	l.SetList()
	for i := int32(1); i <= 3; i++ {
		require.NoError(t, l.PushBack(intValue(t, i)))
	}
	for want := int32(3); want >= 1; want-- {
		assert.Equal(t, want, popInt(t, l.PopBack))
	}
	_, err := l.PopBack()
	assert.ErrorIs(t, err, errcode.InvalidInput)

	// The list stays usable once drained.
	require.NoError(t, l.PushBack(intValue(t, 9)))
	assert.Equal(t, int32(9), popInt(t, l.PopBack))
}

func TestListPushFront(t *testing.T) {
	var l Value
	l.SetList()
	for i := int32(1); i <= 3; i++ {
		require.NoError(t, l.PushFront(intValue(t, i)))
	}
	var got []int32
	require.NoError(t, l.Each(func(_ int, x *Value) bool {
		i, _ := x.AsInt()
		got = append(got, i)
		return true
	}))
	assert.Equal(t, []int32{3, 2, 1}, got)
	assert.Equal(t, int32(1), popInt(t, l.PopBack))
	assert.Equal(t, int32(3), popInt(t, l.PopFront))
	assert.Equal(t, int32(2), popInt(t, l.PopFront))
}

func TestListPushCopiesElement(t *testing.T) {
	var l, s Value
	l.SetList()
	require.NoError(t, s.SetString("a"))
	require.NoError(t, l.PushBack(&s))
	require.NoError(t, s.SetString("b"))

	first, err := l.Index(0)
	require.NoError(t, err)
	got, _ := first.AsString()
	assert.Equal(t, "a", got)
}

func TestListIndexBounds(t *testing.T) {
	var l Value
	l.SetList()
	require.NoError(t, l.PushBack(intValue(t, 5)))

	_, err := l.Index(1)
	assert.ErrorIs(t, err, errcode.InvalidInput)
	_, err = l.Index(-1)
	assert.ErrorIs(t, err, errcode.InvalidInput)
}

func TestListOpsRejectNonList(t *testing.T) {
	v := intValue(t, 1)
	assert.ErrorIs(t, v.PushBack(intValue(t, 2)), errcode.InvalidInput)
	assert.ErrorIs(t, v.PushFront(intValue(t, 2)), errcode.InvalidInput)
	_, err := v.PopBack()
	assert.ErrorIs(t, err, errcode.InvalidInput)
	_, err = v.PopFront()
	assert.ErrorIs(t, err, errcode.InvalidInput)
	_, err = v.Len()
	assert.ErrorIs(t, err, errcode.InvalidInput)
	_, err = v.Index(0)
	assert.ErrorIs(t, err, errcode.InvalidInput)

	var l Value
	l.SetList()
	assert.ErrorIs(t, l.PushBack(nil), errcode.NoInput)
}

func TestListDeepCopyAndFree(t *testing.T) {
	var inner, outer Value
	inner.SetList()
	require.NoError(t, inner.PushBack(intValue(t, 1)))
	require.NoError(t, inner.PushBack(intValue(t, 2)))

	outer.SetList()
	require.NoError(t, outer.PushBack(&inner))
	require.NoError(t, outer.PushBack(intValue(t, 3)))

	var cp Value
	require.NoError(t, cp.SetCopy(&outer))
	outer.Free()
	inner.Free()
	assert.True(t, outer.IsEmpty())

	n, err := cp.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	nested, err := cp.Index(0)
	require.NoError(t, err)
	m, err := nested.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, m)
	assert.Equal(t, "list[list[int(1) int(2)] int(3)]", cp.String())

	cp.Free()
	assert.True(t, cp.IsEmpty())
	cp.Free()
}

func TestListPushSelf(t *testing.T) {
	var l Value
	l.SetList()
	require.NoError(t, l.PushBack(intValue(t, 1)))
	require.NoError(t, l.PushBack(&l))

	n, _ := l.Len()
	assert.Equal(t, 2, n)
	nested, err := l.Index(1)
	require.NoError(t, err)
	m, _ := nested.Len()
	assert.Equal(t, 1, m)
}
