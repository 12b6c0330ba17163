package editor

import (
	"sort"
	"strings"
)

// KVRow is one editable key/value pair of an extra-attributes map.
type KVRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KVEditor edits a free-form string map as an ordered row list. Rows
// are reconstructed from the map when the editor opens; every mutation
// folds them back into a map (last write wins on duplicate keys) and
// pushes the result to the owning buffer.
//
// Row order is the reconstruction order (sorted keys), not the order
// keys were originally added in. Nothing relies on it being stable
// across independent edits.
type KVEditor struct {
	rows     []KVRow
	onChange func(map[string]string)
}

func NewKVEditor(m map[string]string, onChange func(map[string]string)) *KVEditor {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]KVRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, KVRow{Key: k, Value: m[k]})
	}
	return &KVEditor{rows: rows, onChange: onChange}
}

// Add appends a row. A blank key is silently ignored.
func (e *KVEditor) Add(key, value string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	e.rows = append(e.rows, KVRow{Key: key, Value: value})
	e.publish()
}

// Update rewrites the row at idx in place. Out-of-range is a no-op.
func (e *KVEditor) Update(idx int, key, value string) {
	if idx < 0 || idx >= len(e.rows) {
		return
	}
	e.rows[idx] = KVRow{Key: key, Value: value}
	e.publish()
}

// Remove deletes the row at idx. Out-of-range is a no-op.
func (e *KVEditor) Remove(idx int) {
	if idx < 0 || idx >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:idx], e.rows[idx+1:]...)
	e.publish()
}

func (e *KVEditor) Rows() []KVRow {
	out := make([]KVRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// Map folds the rows into the persisted representation. Later rows
// overwrite earlier ones sharing a key.
func (e *KVEditor) Map() map[string]string {
	m := make(map[string]string, len(e.rows))
	for _, r := range e.rows {
		m[r.Key] = r.Value
	}
	return m
}

func (e *KVEditor) publish() {
	if e.onChange != nil {
		e.onChange(e.Map())
	}
}
