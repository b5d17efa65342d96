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

package data

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralab/astra-go/pkg/actor"
	"github.com/astralab/astra-go/pkg/storage"
)

func TestDataActorBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	backend, err := storage.NewFileBackend(path)
	require.NoError(t, err)

	a := New(backend)
	require.NoError(t, a.WriteToBackend("Hello, actor!"))

	data, err := a.ReadFromBackend()
	require.NoError(t, err)
	assert.Equal(t, "Hello, actor!", data)

	require.NoError(t, a.CleanupBackend())
}

func TestDataActorReceivePersistsPayload(t *testing.T) {
	backend := storage.NewMemBackend()
	a := New(backend)

	require.NoError(t, a.Receive(actor.NewMessage("persisted")))

	data, err := backend.Read()
	require.NoError(t, err)
	assert.Equal(t, "persisted", data)
}

func TestDataActorReceiveShutdown(t *testing.T) {
	a := New(storage.NewMemBackend())
	assert.NoError(t, a.Receive(actor.NewShutdown[string]()))
}

// failingBackend returns a fixed error from every operation.
type failingBackend struct{ err error }

func (b *failingBackend) Write(string) error    { return b.err }
func (b *failingBackend) Read() (string, error) { return "", b.err }
func (b *failingBackend) Cleanup() error        { return b.err }

func TestDataActorPropagatesBackendFailure(t *testing.T) {
	backendErr := errors.New("disk on fire")
	a := New(&failingBackend{err: backendErr})

	assert.ErrorIs(t, a.Receive(actor.NewMessage("payload")), backendErr)
	assert.ErrorIs(t, a.CleanupBackend(), backendErr)
	// Cleanup swallows the failure.
	a.Cleanup()
}

func TestDataActorInSystem(t *testing.T) {
	backend := storage.NewMemBackend()
	sys := actor.NewSystem[string]()
	sys.AddActor("data", New(backend))

	require.NoError(t, sys.SendMessage("data", "through the mailbox"))
	sys.Shutdown()
	sys.Wait()

	data, err := backend.Read()
	require.NoError(t, err)
	assert.Equal(t, "through the mailbox", data)
}
