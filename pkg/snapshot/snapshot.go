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

// Package snapshot provides an actor that keeps a mutable string state and
// periodically persists it through a wrapped data-handling actor.
//
// The persisted representation is "<actor_id>:<state>"; only the first
// colon separates the two, so the state itself may contain colons. Loading
// a snapshot whose actor id does not match the instance is a silent no-op.
package snapshot

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/astralab/astra-go/pkg/data"
	"github.com/astralab/astra-go/pkg/metrics"
	"github.com/astralab/astra-go/pkg/storage"
)

// DefaultInterval is the period between automatic snapshot saves.
const DefaultInterval = 60 * time.Second

// Separator splits the actor id from the state in the persisted string.
const Separator = ":"

// SnapshotActor couples a mutable in-memory state with a DataActor used to
// persist point-in-time copies of it. A dedicated periodic task saves the
// state on a fixed interval until its shutdown signal fires.
type SnapshotActor struct {
	mu        sync.Mutex
	state     string
	dataActor *data.DataActor
	actorID   string
	interval  time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

// New creates a SnapshotActor identified by actorID, persisting through the
// given backend.
func New(actorID string, backend storage.Backend) *SnapshotActor {
	return &SnapshotActor{
		dataActor: data.New(backend),
		actorID:   actorID,
		interval:  DefaultInterval,
		stop:      make(chan struct{}),
	}
}

// SetInterval overrides the autosave period. It must be called before
// StartPeriodicTask.
func (a *SnapshotActor) SetInterval(d time.Duration) {
	if d > 0 {
		a.interval = d
	}
}

// SetState replaces the in-memory state. It has no side effect beyond the
// field itself; persistence happens only through SaveState.
func (a *SnapshotActor) SetState(state string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = state
}

// GetState returns the current in-memory state.
func (a *SnapshotActor) GetState() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SaveState persists "<actor_id>:<state>" through the data actor's write
// path. Backend errors are propagated to the caller.
func (a *SnapshotActor) SaveState() error {
	return a.dataActor.WriteToBackend(a.actorID + Separator + a.GetState())
}

// LoadState reads the persisted snapshot and, if its actor id prefix
// matches this instance, replaces the in-memory state. A mismatched or
// unparseable snapshot leaves the state untouched without an error; only
// backend read failures are propagated.
func (a *SnapshotActor) LoadState() error {
	persisted, err := a.dataActor.ReadFromBackend()
	if err != nil {
		return err
	}
	parts := strings.SplitN(persisted, Separator, 2)
	if len(parts) == 2 && parts[0] == a.actorID {
		a.SetState(parts[1])
	}
	return nil
}

// StartPeriodicTask saves the state every interval until SignalShutdown is
// called or ctx is canceled. Save failures are logged and counted, never
// propagated. The shutdown signal is checked again after every tick so a
// stop request is honored without waiting out another interval. The method
// blocks; run it on its own goroutine and join it for a clean stop.
func (a *SnapshotActor) StartPeriodicTask(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			log.Printf("[INFO] Snapshot task for %s stopped", a.actorID)
			return
		case <-ctx.Done():
			log.Printf("[INFO] Snapshot task for %s canceled", a.actorID)
			return
		case <-ticker.C:
			// Prefer shutdown when it raced the tick.
			select {
			case <-a.stop:
				log.Printf("[INFO] Snapshot task for %s stopped", a.actorID)
				return
			default:
			}
			if err := a.SaveState(); err != nil {
				metrics.SnapshotFailuresTotal.Inc()
				log.Printf("[ERROR] Failed to save state for %s: %v", a.actorID, err)
			} else {
				metrics.SnapshotsSavedTotal.Inc()
			}
		}
	}
}

// SignalShutdown fires the periodic task's shutdown signal. It is
// idempotent and does not wait for the task to observe it; callers join the
// task separately.
func (a *SnapshotActor) SignalShutdown() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
}
