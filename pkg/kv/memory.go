package kv

import "sync"

type Memory struct {
	values map[string]string
	mtx    *sync.RWMutex
}

var _ Store = &Memory{}

// InMemory creates a store that only lives as long as the process
func InMemory() *Memory {
	return &Memory{
		values: map[string]string{},
		mtx:    &sync.RWMutex{},
	}
}

func (m *Memory) Get(key string) (string, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
