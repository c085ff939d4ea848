// Package storage defines the key-value persistence port used by the
// training engines. Values are opaque serialized blobs; corrupt or
// missing data always decodes to a caller-supplied default.
package storage

import (
	"encoding/json"
	"sync"
)

// KV is the persistence port. Implementations must treat values as
// opaque strings.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// LoadJSON decodes the blob stored under key into out. It returns true
// only when the key existed and decoded cleanly; on a missing key or a
// corrupt blob it returns false and leaves out untouched, so callers can
// assert the fallback path instead of relying on swallowed errors.
func LoadJSON(kv KV, key string, out any) bool {
	raw, ok := kv.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

// SaveJSON serializes v and stores it under key. Persistence is best
// effort; encoding failures surface as errors but engines never let them
// reach their callers.
func SaveJSON(kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(key, string(raw))
}

// Memory is an in-process KV implementation, used in tests and as the
// fallback when no database is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
