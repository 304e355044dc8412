package kvstore

import (
	"encoding/json"
	"sync"
)

var _ Store = (*MemStore)(nil)

// MemStore almacén volátil en memoria: el doble de prueba con el que se
// testea el motor sin tocar persistencia real, y el driver "memory" en
// desarrollo.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore construye un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Read(key string, v any) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (s *MemStore) Write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
