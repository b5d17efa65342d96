// Copyright 2024 The astra-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import "sync"

// MemBackend is an in-memory Backend, primarily for tests and examples.
type MemBackend struct {
	mu    sync.RWMutex
	value string
}

// NewMemBackend returns an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{}
}

// Write replaces the stored value.
func (b *MemBackend) Write(data string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = data
	return nil
}

// Read returns the stored value. An empty backend reads as the empty
// string, mirroring a freshly created file.
func (b *MemBackend) Read() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value, nil
}

// Cleanup is a no-op; the stored value survives, mirroring the
// non-destructive sync performed by the file backend.
func (b *MemBackend) Cleanup() error {
	return nil
}
