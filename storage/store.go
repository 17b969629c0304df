package storage

import (
	"strconv"
	"sync"
)

// Keys written by the simulation.
const (
	KeyCurrentWave   = "currentWave"
	KeyPlayerHealth  = "playerHealth"
	KeyPlayerAmmo    = "playerAmmo"
	KeyPlayerTokens  = "playerTokens"
	KeyShopPurchases = "shopPurchases"
	KeyActiveHires   = "activeHires"
)

// Store is a flat string key/value store that survives scene changes.
type Store interface {
	Load(key string) (string, bool)
	Save(key, value string) error
	Delete(key string) error
}

// LoadInt reads an integer value, reporting false when the key is missing
// or does not parse.
func LoadInt(s Store, key string) (int, bool) {
	if s == nil {
		return 0, false
	}
	raw, ok := s.Load(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func SaveInt(s Store, key string, v int) error {
	if s == nil {
		return nil
	}
	return s.Save(key, strconv.Itoa(v))
}

// MemoryStore keeps values in a map. The zero value is ready to use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
