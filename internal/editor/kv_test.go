package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRoundTrip(t *testing.T) {
	kv := NewKVEditor(nil, nil)
	kv.Add("certification", "INVIMA XYZ")
	kv.Add("origin", "CO")
	kv.Add("shelf_life", "24m")

	folded := kv.Map()
	require.Len(t, folded, 3)

	rebuilt := NewKVEditor(folded, nil)
	assert.ElementsMatch(t, kv.Rows(), rebuilt.Rows())
}

func TestKVDuplicateKeyLastWins(t *testing.T) {
	kv := NewKVEditor(nil, nil)
	kv.Add("origin", "CO")
	kv.Add("origin", "US")

	m := kv.Map()
	require.Len(t, m, 1)
	assert.Equal(t, "US", m["origin"])
}

func TestKVBlankKeyIsNoOp(t *testing.T) {
	var pushed map[string]string
	kv := NewKVEditor(nil, func(m map[string]string) { pushed = m })

	kv.Add("", "value")
	kv.Add("   ", "value")

	assert.Empty(t, kv.Rows())
	assert.Nil(t, pushed, "blank key must not publish a map")
}

func TestKVUpdateInPlace(t *testing.T) {
	kv := NewKVEditor(map[string]string{"a": "1", "b": "2"}, nil)

	kv.Update(0, "a", "changed")
	rows := kv.Rows()
	assert.Equal(t, KVRow{Key: "a", Value: "changed"}, rows[0])

	// out of range is ignored
	kv.Update(99, "zz", "x")
	assert.Len(t, kv.Rows(), 2)
}

func TestKVRemoveByPosition(t *testing.T) {
	kv := NewKVEditor(map[string]string{"a": "1", "b": "2"}, nil)

	kv.Remove(0)
	require.Len(t, kv.Rows(), 1)
	assert.Equal(t, "b", kv.Rows()[0].Key)

	kv.Remove(5)
	assert.Len(t, kv.Rows(), 1)
}

func TestKVMutationsPushFoldedMap(t *testing.T) {
	var pushed map[string]string
	kv := NewKVEditor(nil, func(m map[string]string) { pushed = m })

	kv.Add("k", "v")
	require.Equal(t, map[string]string{"k": "v"}, pushed)

	kv.Update(0, "k", "v2")
	require.Equal(t, map[string]string{"k": "v2"}, pushed)

	kv.Remove(0)
	assert.Empty(t, pushed)
}
