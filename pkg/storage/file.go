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

import (
	"fmt"
	"os"
)

// FileBackend persists the value as the full contents of a single file.
// Every Write overwrites the file; the value is treated as opaque bytes.
type FileBackend struct {
	path string
}

// NewFileBackend creates (truncating if present) the file at path and
// returns a backend over it.
func NewFileBackend(path string) (*FileBackend, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close backend file %s: %w", path, err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the location of the backing file.
func (b *FileBackend) Path() string {
	return b.path
}

// Write replaces the file contents with data.
func (b *FileBackend) Write(data string) error {
	if err := os.WriteFile(b.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write backend file %s: %w", b.path, err)
	}
	return nil
}

// Read returns the full file contents.
func (b *FileBackend) Read() (string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return "", fmt.Errorf("failed to read backend file %s: %w", b.path, err)
	}
	return string(data), nil
}

// Cleanup flushes the file to disk.
func (b *FileBackend) Cleanup() error {
	f, err := os.OpenFile(b.path, os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open backend file %s: %w", b.path, err)
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync backend file %s: %w", b.path, err)
	}
	return nil
}
