package models

import (
	"encoding/json"
	"iter"
)

// Ordered is an insertion-ordered mapping from string ids to V. Setting an
// existing id replaces the value in place, so ids stay unique.
//
// It serializes as a JSON array of {"key","value"} pairs so order survives a
// round trip through the durable store.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrdered[V any]() Ordered[V] {
	return Ordered[V]{values: map[string]V{}}
}

func (o *Ordered[V]) Set(key string, v V) {
	if o.values == nil {
		o.values = map[string]V{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o Ordered[V]) Len() int {
	return len(o.keys)
}

// Keys returns a copy of the ids in order.
func (o Ordered[V]) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Head returns a new mapping holding the first n entries.
func (o Ordered[V]) Head(n int) Ordered[V] {
	out := NewOrdered[V]()
	for i, k := range o.keys {
		if i >= n {
			break
		}
		out.Set(k, o.values[k])
	}
	return out
}

// Clone returns a copy that can be modified without touching o. Values are
// copied shallowly.
func (o Ordered[V]) Clone() Ordered[V] {
	return o.Head(len(o.keys))
}

type orderedEntry[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	entries := make([]orderedEntry[V], 0, len(o.keys))
	for _, k := range o.keys {
		entries = append(entries, orderedEntry[V]{Key: k, Value: o.values[k]})
	}
	return json.Marshal(entries)
}

func (o *Ordered[V]) UnmarshalJSON(b []byte) error {
	var entries []orderedEntry[V]
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	*o = NewOrdered[V]()
	for _, e := range entries {
		o.Set(e.Key, e.Value)
	}
	return nil
}
