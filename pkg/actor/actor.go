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

// Package actor provides an asynchronous in-process actor runtime. Actors
// are independent units of state that communicate exclusively through
// messages delivered to bounded per-actor mailboxes; each actor runs on its
// own goroutine and can be told to shut down cooperatively.
package actor

// Actor is the contract any schedulable unit must implement. An actor
// instance is exclusively owned by its task loop after registration: no
// other component may touch it directly, all interaction goes through
// envelopes.
type Actor[M any] interface {
	// Receive consumes exactly one envelope. It must not block
	// indefinitely; the runtime is cooperatively scheduled. A returned
	// error is reported and does not crash the hosting task loop.
	// Shutdown envelopes are delivered here too, so an actor can release
	// message-scoped resources before its loop terminates.
	Receive(msg Message[M]) error

	// Cleanup is invoked exactly once after the task loop exits, whether
	// by shutdown envelope or mailbox closure. It is best-effort:
	// implementations report failures themselves and never propagate them.
	Cleanup()
}
