package redirectguard

import "sync"

// MemoryStorage is an in-process Storage. The zero value is ready to use.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// Get returns the stored value for key.
func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key.
func (m *MemoryStorage) Set(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
}

// Remove deletes key.
func (m *MemoryStorage) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
