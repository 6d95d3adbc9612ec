package nfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus-go/errcode"
	"nimbus-go/registry"
	"nimbus-go/value"
)

type tag struct {
	recs []Record
	cb   value.Callback
}

func (t *tag) Init(registry.Instance) error { return nil }
func (t *tag) SetMessage(_ registry.Instance, recs []Record) error {
	t.recs = append([]Record(nil), recs...)
	return nil
}
func (t *tag) GetNumStoredRecords(registry.Instance) (int, error) { return len(t.recs), nil }
func (t *tag) GetRecord(_ registry.Instance, i int) (Record, error) {
	if i >= len(t.recs) {
		return Record{}, errcode.InvalidInput
	}
	return t.recs[i], nil
}
func (t *tag) RegisterMessageReceivedCallback(_ registry.Instance, cb value.Callback) error {
	t.cb = cb
	return nil
}

func TestMessages(t *testing.T) {
	n := New(DefaultCapacity)
	d := &tag{}
	h, err := n.AddDriverInstance(d, "nfc0", nil)
	require.NoError(t, err)
	require.NoError(t, n.Init(h))

	require.NoError(t, n.SetMessage(h, []Record{URIRecord("https://example.com"), TextRecord("hello")}))
	count, err := n.GetNumStoredRecords(h)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	r, err := n.GetRecord(h, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(r.Payload))
	assert.Equal(t, "en", r.Lang)
	_, err = n.GetRecord(h, 2)
	assert.ErrorIs(t, err, errcode.InvalidInput)

	var v value.Value
	require.NoError(t, v.SetInt(-3))
	require.NoError(t, n.SetMessageValue(h, &v))
	assert.Equal(t, "-3", string(d.recs[0].Payload))

	assert.ErrorIs(t, n.SetMessage(h, make([]Record, MaxRecords+1)), errcode.OutOfMemory)
	assert.ErrorIs(t, n.RegisterMessageReceivedCallback(h, nil), errcode.NoInput)
}
