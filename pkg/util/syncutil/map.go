// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package syncutil

import "sync"

// Map is like a Go map[K]*V but is safe for concurrent use by multiple
// goroutines without additional locking or coordination. It is a thin,
// type-safe wrapper around sync.Map.
//
// Map is optimized for entries that are written once and read many times, such
// as memo tables whose values are a pure function of their keys.
//
// The zero Map is empty and ready for use. A Map must not be copied after first
// use.
type Map[K comparable, V any] struct {
	m sync.Map
}

// Load returns the value stored in the map for a key, or nil if no value is
// present. The ok result indicates whether value was found in the map.
func (m *Map[K, V]) Load(key K) (value *V, ok bool) {
	v, ok := m.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*V), true
}

// Store sets the value for a key.
func (m *Map[K, V]) Store(key K, value *V) {
	m.m.Store(key, value)
}

// LoadOrStore returns the existing value for the key if present. Otherwise, it
// stores and returns the given value. The loaded result is true if the value
// was loaded, false if stored.
func (m *Map[K, V]) LoadOrStore(key K, value *V) (actual *V, loaded bool) {
	v, loaded := m.m.LoadOrStore(key, value)
	return v.(*V), loaded
}

// Delete deletes the value for a key.
func (m *Map[K, V]) Delete(key K) {
	m.m.Delete(key)
}

// Range calls f sequentially for each key and value present in the map. If f
// returns false, range stops the iteration.
//
// Range does not necessarily correspond to any consistent snapshot of the
// Map's contents.
func (m *Map[K, V]) Range(f func(key K, value *V) bool) {
	m.m.Range(func(key, value any) bool {
		return f(key.(K), value.(*V))
	})
}
