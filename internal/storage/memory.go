package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Document for tests and ephemeral runs.
type Memory struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// NewMemory returns a Memory document, optionally pre-populated.
func NewMemory(initial []byte) *Memory {
	m := &Memory{}
	if initial != nil {
		m.data = append([]byte(nil), initial...)
	}
	return m
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte{}, data...)
	m.writes++
	return nil
}

// Writes returns how many successful writes have been made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
