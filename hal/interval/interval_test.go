package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

type manual struct {
	cbs  map[ID]value.Callback
	next ID
}

func (m *manual) Init(registry.Instance) error { return nil }
func (m *manual) AddCallbackInterval(_ registry.Instance, _ time.Duration, cb value.Callback) (ID, error) {
	m.next++
	m.cbs[m.next] = cb
	return m.next, nil
}
func (m *manual) RemoveInterval(_ registry.Instance, id ID) error {
	if _, ok := m.cbs[id]; !ok {
		return errcode.NotFound
	}
	delete(m.cbs, id)
	return nil
}
func (m *manual) fire() {
	var empty value.Value
	for _, cb := range m.cbs {
		cb(&empty)
	}
}

func TestIntervalAddRemove(t *testing.T) {
	iv := New(DefaultCapacity)
	d := &manual{cbs: map[ID]value.Callback{}}
	h, err := iv.AddDriverInstance(d, "timer0", nil)
	require.NoError(t, err)
	require.NoError(t, iv.Init(h))

	fired := 0
	id, err := iv.AddCallbackInterval(h, time.Second, func(v *value.Value) {
		assert.True(t, v.IsEmpty())
		fired++
	})
	require.NoError(t, err)
	d.fire()
	d.fire()
	assert.Equal(t, 2, fired)

	require.NoError(t, iv.RemoveInterval(h, id))
	d.fire()
	assert.Equal(t, 2, fired)
	assert.ErrorIs(t, iv.RemoveInterval(h, id), errcode.NotFound)
}

func TestIntervalArguments(t *testing.T) {
	iv := New(1)
	h, _ := iv.AddDriverInstance(&manual{cbs: map[ID]value.Callback{}}, "timer0", nil)
	_, err := iv.AddCallbackInterval(h, 0, func(*value.Value) {})
	assert.ErrorIs(t, err, errcode.InvalidInput)
	_, err = iv.AddCallbackInterval(h, time.Second, nil)
	assert.ErrorIs(t, err, errcode.NoInput)
	_, err = iv.AddCallbackInterval(h+1, time.Second, func(*value.Value) {})
	assert.ErrorIs(t, err, errcode.Invalid)
}
