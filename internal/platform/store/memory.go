package store

import (
	"context"
	"sort"
	"sync"
)

// Memory keeps documents in process memory.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{docs: map[string][]byte{}}
}

func (m *Memory) Raw(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

// PutRaw stores bytes verbatim, bypassing JSON encoding.
func (m *Memory) PutRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), raw...)
}

func (m *Memory) View(ctx context.Context, fn func(Reader) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(memorySnapshot{docs: m.docs})
}

func (m *Memory) Update(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &memoryTx{base: m.docs, staged: map[string][]byte{}, removed: map[string]bool{}}
	if err := fn(tx); err != nil {
		return err
	}
	for key := range tx.removed {
		delete(m.docs, key)
	}
	for key, raw := range tx.staged {
		m.docs[key] = raw
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.docs, key)
	}
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.docs))
	for key := range m.docs {
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}

type memorySnapshot struct {
	docs map[string][]byte
}

func (s memorySnapshot) Raw(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

type memoryTx struct {
	base    map[string][]byte
	staged  map[string][]byte
	removed map[string]bool
}

func (t *memoryTx) Raw(_ context.Context, key string) ([]byte, bool, error) {
	if raw, ok := t.staged[key]; ok {
		return append([]byte(nil), raw...), true, nil
	}
	if t.removed[key] {
		return nil, false, nil
	}
	raw, ok := t.base[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (t *memoryTx) Put(_ context.Context, key string, value []byte) error {
	delete(t.removed, key)
	t.staged[key] = append([]byte(nil), value...)
	return nil
}

func (t *memoryTx) Remove(_ context.Context, key string) error {
	delete(t.staged, key)
	t.removed[key] = true
	return nil
}
