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

package actor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/astralab/astra-go/pkg/logging"
	"github.com/astralab/astra-go/pkg/metrics"
)

// ErrActorNotFound is returned by SendMessage when no actor is registered
// under the requested name.
var ErrActorNotFound = errors.New("actor not found")

// FailureHandler is notified whenever an actor's Receive returns an error.
// It runs on the failing actor's own goroutine, so implementations must not
// block on that actor's mailbox.
type FailureHandler func(actorName string, err error)

// ActorSystem routes messages by name to registered actors. Each registered
// actor owns a bounded mailbox and a goroutine that drains it; the system
// holds only the send side of the mailbox.
//
// Registering a second actor under an existing name silently overwrites the
// routing entry and orphans the previous actor's loop, which keeps draining
// its old mailbox until a shutdown envelope arrives or the mailbox closes.
// Callers are responsible for keeping names unique.
type ActorSystem[M any] struct {
	mu        sync.RWMutex
	actors    map[string]*Mailbox[M]
	wg        sync.WaitGroup
	capacity  int
	logger    logging.Logger
	onFailure FailureHandler
}

// NewSystem creates an empty actor system with the default mailbox capacity
// and a console logger.
func NewSystem[M any]() *ActorSystem[M] {
	return &ActorSystem[M]{
		actors:   make(map[string]*Mailbox[M]),
		capacity: DefaultMailboxSize,
		logger:   logging.NewConsoleLogger(),
	}
}

// SetMailboxCapacity overrides the capacity used for mailboxes of actors
// registered afterwards. Existing mailboxes are unaffected.
func (s *ActorSystem[M]) SetMailboxCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.capacity = n
	}
}

// SetLogger replaces the diagnostic sink. A nil logger restores the console
// default.
func (s *ActorSystem[M]) SetLogger(l logging.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		l = logging.NewConsoleLogger()
	}
	s.logger = l
}

// SetFailureHandler installs a hook invoked on every Receive failure.
// Intended for wiring in a supervisor; the loop itself never terminates on
// a processing error.
func (s *ActorSystem[M]) SetFailureHandler(h FailureHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFailure = h
}

// AddActor registers an actor under name, creates its bounded mailbox and
// spawns the task loop that drains it. The loop runs until a shutdown
// envelope is processed or the mailbox is closed and drained, then invokes
// the actor's Cleanup exactly once. The registry entry is not removed when
// the loop terminates.
func (s *ActorSystem[M]) AddActor(name string, a Actor[M]) {
	s.mu.Lock()
	if _, exists := s.actors[name]; exists {
		s.logf(logging.LevelInfo, "actor %q re-registered; previous task is orphaned", name)
	}
	mb := NewMailbox[M](s.capacity)
	s.actors[name] = mb
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(name, a, mb)
	}()
}

// runLoop is the task half of the mailbox/task pair: block on the mailbox,
// dispatch to Receive, log-and-continue on error. A panic inside Receive is
// recovered and treated like a processing error, so a misbehaving actor
// never takes the process down. Only a shutdown envelope or mailbox closure
// ends the loop.
func (s *ActorSystem[M]) runLoop(name string, a Actor[M], mb *Mailbox[M]) {
	defer a.Cleanup()
	for {
		msg, err := mb.Receive(context.Background())
		if err != nil {
			s.logf(logging.LevelInfo, "actor %q mailbox closed, stopping", name)
			return
		}
		if rerr := s.dispatch(name, a, msg); rerr != nil {
			metrics.ActorErrorsTotal.WithLabelValues(name).Inc()
			s.logf(logging.LevelError, "actor %q failed to process message: %v", name, rerr)
			s.mu.RLock()
			handler := s.onFailure
			s.mu.RUnlock()
			if handler != nil {
				handler(name, rerr)
			}
		} else {
			metrics.MessagesProcessedTotal.Inc()
		}
		if msg.Type == MessageShutdown {
			s.logf(logging.LevelInfo, "actor %q shutting down", name)
			return
		}
	}
}

// dispatch invokes Receive and converts a panic into an error.
func (s *ActorSystem[M]) dispatch(name string, a Actor[M], msg Message[M]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("actor %q panicked: %v", name, r)
		}
	}()
	return a.Receive(msg)
}

// SendMessage wraps payload in a regular envelope and enqueues it on the
// named actor's mailbox, blocking while the mailbox is full. It returns
// ErrActorNotFound if no actor is registered under name and a delivery
// error if the mailbox has been closed.
func (s *ActorSystem[M]) SendMessage(name string, payload M) error {
	mb, err := s.lookup(name)
	if err != nil {
		return err
	}
	if err := mb.Send(NewMessage(payload)); err != nil {
		return fmt.Errorf("failed to deliver to actor %q: %w", name, err)
	}
	metrics.MessagesSentTotal.Inc()
	return nil
}

// TrySendMessage is the rejecting variant of SendMessage: instead of
// blocking on a full mailbox it fails fast with ErrMailboxFull.
func (s *ActorSystem[M]) TrySendMessage(name string, payload M) error {
	mb, err := s.lookup(name)
	if err != nil {
		return err
	}
	if err := mb.TrySend(NewMessage(payload)); err != nil {
		return fmt.Errorf("failed to deliver to actor %q: %w", name, err)
	}
	metrics.MessagesSentTotal.Inc()
	return nil
}

// StopActor enqueues a shutdown envelope for a single actor without
// blocking. Delivery is best-effort: a full mailbox yields ErrMailboxFull.
// The registry entry is kept; re-registering under the same name installs a
// fresh mailbox.
func (s *ActorSystem[M]) StopActor(name string) error {
	mb, err := s.lookup(name)
	if err != nil {
		return err
	}
	if err := mb.TrySend(NewShutdown[M]()); err != nil {
		return fmt.Errorf("failed to stop actor %q: %w", name, err)
	}
	return nil
}

// Shutdown enqueues a shutdown envelope to every registered actor.
// Delivery is best-effort and non-blocking: a failure to reach one actor is
// logged and does not delay delivery to the others. There is no
// all-or-nothing fence; callers that need to observe termination should
// follow up with Wait.
func (s *ActorSystem[M]) Shutdown() {
	s.mu.RLock()
	mailboxes := make(map[string]*Mailbox[M], len(s.actors))
	for name, mb := range s.actors {
		mailboxes[name] = mb
	}
	s.mu.RUnlock()

	for name, mb := range mailboxes {
		if err := mb.TrySend(NewShutdown[M]()); err != nil {
			s.logf(logging.LevelError, "failed to send shutdown to actor %q: %v", name, err)
		}
	}
}

// Wait blocks until every spawned task loop has exited and run its cleanup.
func (s *ActorSystem[M]) Wait() {
	s.wg.Wait()
}

func (s *ActorSystem[M]) lookup(name string) (*Mailbox[M], error) {
	s.mu.RLock()
	mb, ok := s.actors[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("actor %q: %w", name, ErrActorNotFound)
	}
	return mb, nil
}

func (s *ActorSystem[M]) logf(level logging.Level, format string, args ...any) {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	l.Log(level, fmt.Sprintf(format, args...))
}
