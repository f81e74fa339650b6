/*
Copyright (c) 2025 Odd Kin <oddkin@oddkin.co>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryBackend implements Backend for in-memory storage.
// Nothing survives the process; it backs memory:// repositories and tests.
type MemoryBackend struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

// NewMemoryBackend creates a new in-memory storage backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string][]byte),
	}
}

// Store saves a copy of data in memory and returns a mock URL
func (m *MemoryBackend) Store(_ context.Context, key string, data []byte) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	m.data[key] = dataCopy

	return m.GetURL(key), nil
}

// Retrieve returns a copy of the stored data
func (m *MemoryBackend) Retrieve(_ context.Context, key string) ([]byte, error) {
	data, ok := m.GetData(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return data, nil
}

// GetURL returns the mock URL for accessing the stored object
func (m *MemoryBackend) GetURL(key string) string {
	return fmt.Sprintf("memory://localhost/%s", key)
}

// GetData returns the stored data for a key
func (m *MemoryBackend) GetData(key string) ([]byte, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	data, exists := m.data[key]
	if !exists {
		return nil, false
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return dataCopy, true
}

// Keys returns the stored keys in lexical order
func (m *MemoryBackend) Keys() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
