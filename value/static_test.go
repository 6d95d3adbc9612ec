//go:build !nimbus_dynamic

package value

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
)

func TestStaticCapacity(t *testing.T) {
	require.False(t, Dynamic)

	var v Value
	// 63 characters plus the terminator fill the inline buffer exactly.
	require.NoError(t, v.SetString(strings.Repeat("a", MaxStaticSize-1)))
	assert.Equal(t, MaxStaticSize, v.Size())

	require.NoError(t, v.SetString("keep"))
	err := v.SetString(strings.Repeat("b", MaxStaticSize))
	assert.ErrorIs(t, err, errcode.OutOfMemory)
	s, _ := v.AsString()
	assert.Equal(t, "keep", s)

	assert.ErrorIs(t, v.SetBinary(make([]byte, MaxStaticSize+1)), errcode.OutOfMemory)
	assert.Equal(t, String, v.Type())
}

func TestStaticListElementsShareCapacity(t *testing.T) {
	var big, l Value
	require.NoError(t, big.SetBinary(make([]byte, MaxStaticSize)))
	l.SetList()
	require.NoError(t, l.PushBack(&big))
	n, _ := l.Len()
	assert.Equal(t, 1, n)
}

func TestLargeDoubleTextExceedsInlineBuffer(t *testing.T) {
	var v, out Value
	require.NoError(t, v.SetDouble(1e300))
	require.NoError(t, out.SetInt(1))
	assert.ErrorIs(t, out.SetConverted(String, &v), errcode.OutOfMemory)
	assert.Equal(t, Int, out.Type())
}
