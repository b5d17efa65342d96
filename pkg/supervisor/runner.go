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

package supervisor

import (
	"log"
	"sync"
	"time"

	"github.com/astralab/astra-go/pkg/actor"
	"github.com/astralab/astra-go/pkg/metrics"
)

// DefaultRestartDelay is the pause inserted before a supervised actor is
// re-registered, so a persistently failing actor cannot thrash in a tight
// restart loop.
const DefaultRestartDelay = 1 * time.Second

// Failure describes an escalated actor failure.
type Failure struct {
	ActorName string
	Err       error
}

// Runner executes supervisor directives for actors registered through it.
// It installs itself as the system's failure handler; on a restart
// directive it stops the failing actor and re-registers a fresh instance
// from the actor's factory, and on an escalate directive it publishes the
// failure for the caller's own supervisor to consume.
//
// The handler runs on the failing actor's goroutine, so every action it
// takes is non-blocking.
type Runner[M any] struct {
	sup          *Supervisor
	sys          *actor.ActorSystem[M]
	mu           sync.Mutex
	factories    map[string]func() actor.Actor[M]
	restarting   map[string]bool
	restartDelay time.Duration
	escalations  chan Failure
}

// NewRunner wires a supervisor into the given actor system and returns the
// runner managing its directives.
func NewRunner[M any](sup *Supervisor, sys *actor.ActorSystem[M]) *Runner[M] {
	r := &Runner[M]{
		sup:          sup,
		sys:          sys,
		factories:    make(map[string]func() actor.Actor[M]),
		restarting:   make(map[string]bool),
		restartDelay: DefaultRestartDelay,
		escalations:  make(chan Failure, 16),
	}
	sys.SetFailureHandler(r.handleFailure)
	return r
}

// SetRestartDelay overrides the pause before each restart. Negative values
// are ignored.
func (r *Runner[M]) SetRestartDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d >= 0 {
		r.restartDelay = d
	}
}

// Supervise registers a fresh actor built by factory under name and keeps
// the factory for later restarts.
func (r *Runner[M]) Supervise(name string, factory func() actor.Actor[M]) {
	r.mu.Lock()
	r.factories[name] = factory
	r.mu.Unlock()
	r.sys.AddActor(name, factory())
}

// Escalations returns the stream of failures the supervisor decided to
// escalate. The channel is bounded; when nobody consumes it, further
// escalations are logged and dropped.
func (r *Runner[M]) Escalations() <-chan Failure {
	return r.escalations
}

func (r *Runner[M]) handleFailure(name string, err error) {
	switch r.sup.HandleFailure(name, err) {
	case DirectiveRestart:
		r.restart(name)
	case DirectiveEscalate:
		select {
		case r.escalations <- Failure{ActorName: name, Err: err}:
		default:
			log.Printf("[ERROR] Escalation queue full, dropping failure of actor %s: %v", name, err)
		}
	case DirectiveIgnore:
		// The loop already continues on its own.
	}
}

// restart tears the failing actor down and, after the restart delay,
// re-registers a fresh instance. Failures arriving while a restart is
// already pending are coalesced into it, so a burst of errors from the
// doomed instance yields a single restart. Actors the runner never
// registered cannot be rebuilt and are left alone.
func (r *Runner[M]) restart(name string) {
	r.mu.Lock()
	factory, ok := r.factories[name]
	if ok && r.restarting[name] {
		r.mu.Unlock()
		return
	}
	if ok {
		r.restarting[name] = true
	}
	delay := r.restartDelay
	r.mu.Unlock()

	if !ok {
		log.Printf("[ERROR] No factory for actor %s, cannot restart", name)
		return
	}
	if err := r.sys.StopActor(name); err != nil {
		log.Printf("[ERROR] Failed to stop actor %s for restart: %v", name, err)
	}

	// The delay runs off the failing actor's goroutine; the handler itself
	// stays non-blocking.
	go func() {
		time.Sleep(delay)
		r.sys.AddActor(name, factory())
		metrics.SupervisorRestartsTotal.WithLabelValues(name).Inc()
		r.mu.Lock()
		r.restarting[name] = false
		r.mu.Unlock()
	}()
}
