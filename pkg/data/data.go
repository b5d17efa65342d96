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

// Package data provides a generic data-handling actor that forwards the
// payload of every regular envelope to a pluggable storage backend.
package data

import (
	"log"

	"github.com/astralab/astra-go/pkg/actor"
	"github.com/astralab/astra-go/pkg/storage"
)

// DataActor persists incoming message payloads through a storage backend.
// The backend is exclusively owned by the actor; other components interact
// with it only through envelopes or the composition passthroughs below.
type DataActor struct {
	backend storage.Backend
}

// New creates a DataActor over the given backend.
func New(backend storage.Backend) *DataActor {
	return &DataActor{backend: backend}
}

// Receive writes the payload of a regular envelope to the backend. A
// shutdown envelope triggers a backend cleanup before the loop terminates.
// Backend failures are returned to the hosting loop, which reports them and
// keeps running.
func (a *DataActor) Receive(msg actor.Message[string]) error {
	switch msg.Type {
	case actor.MessageShutdown:
		log.Println("[INFO] Shutting down DataActor")
		return a.backend.Cleanup()
	default:
		return a.backend.Write(msg.Payload)
	}
}

// Cleanup releases the backend. Failures are logged, never propagated, so a
// failing backend cannot stall a shutdown sequence.
func (a *DataActor) Cleanup() {
	if err := a.backend.Cleanup(); err != nil {
		log.Printf("[ERROR] Failed to clean up backend: %v", err)
	}
}

// WriteToBackend writes data directly, bypassing the mailbox. Intended for
// actors composed around a DataActor, such as the snapshot actor.
func (a *DataActor) WriteToBackend(data string) error {
	return a.backend.Write(data)
}

// ReadFromBackend reads the persisted value directly.
func (a *DataActor) ReadFromBackend() (string, error) {
	return a.backend.Read()
}

// CleanupBackend releases the backend and reports the outcome to the
// caller, unlike Cleanup.
func (a *DataActor) CleanupBackend() error {
	return a.backend.Cleanup()
}
