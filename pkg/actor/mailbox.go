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
	"sync"
)

// DefaultMailboxSize is the bounded capacity used for mailboxes created by
// the actor system when no explicit capacity is configured.
const DefaultMailboxSize = 100

var (
	// ErrMailboxClosed is returned when sending to or receiving from a
	// mailbox that has been closed.
	ErrMailboxClosed = errors.New("mailbox closed")
	// ErrMailboxFull is returned by TrySend when the mailbox buffer is at
	// capacity and the caller opted out of blocking.
	ErrMailboxFull = errors.New("mailbox full")
)

// Mailbox is a bounded, FIFO, multi-producer/single-consumer message queue
// feeding one actor's task loop. Messages from a single sender are delivered
// in the order they were sent; no ordering holds across distinct senders.
//
// Send blocks the producer while the buffer is full, so a bounded mailbox
// throttles its producers rather than dropping messages. Callers that prefer
// rejection over backpressure should use TrySend.
type Mailbox[M any] struct {
	messages  chan Message[M]
	done      chan struct{}
	closeOnce sync.Once
}

// NewMailbox creates a mailbox with the given buffer capacity. A larger
// capacity lets producers run further ahead of a slow actor at the cost of
// memory.
func NewMailbox[M any](size int) *Mailbox[M] {
	return &Mailbox[M]{
		messages: make(chan Message[M], size),
		done:     make(chan struct{}),
	}
}

// Send enqueues an envelope, blocking while the buffer is full. It returns
// ErrMailboxClosed if the mailbox was closed before the envelope could be
// accepted.
func (mb *Mailbox[M]) Send(msg Message[M]) error {
	select {
	case <-mb.done:
		return ErrMailboxClosed
	default:
	}
	select {
	case mb.messages <- msg:
		return nil
	case <-mb.done:
		return ErrMailboxClosed
	}
}

// TrySend enqueues an envelope without blocking. It returns ErrMailboxFull
// when the buffer is at capacity and ErrMailboxClosed when the mailbox has
// been closed.
func (mb *Mailbox[M]) TrySend(msg Message[M]) error {
	select {
	case <-mb.done:
		return ErrMailboxClosed
	default:
	}
	select {
	case mb.messages <- msg:
		return nil
	case <-mb.done:
		return ErrMailboxClosed
	default:
		return ErrMailboxFull
	}
}

// Receive blocks until an envelope is available, the mailbox is closed and
// drained, or the context is canceled. Pending envelopes are always drained
// before closure is reported, so a Close never discards accepted messages.
func (mb *Mailbox[M]) Receive(ctx context.Context) (Message[M], error) {
	var zero Message[M]
	// Drain pending envelopes before observing closure.
	select {
	case msg := <-mb.messages:
		return msg, nil
	default:
	}
	select {
	case msg := <-mb.messages:
		return msg, nil
	case <-mb.done:
		// A producer may have raced the close; give pending envelopes one
		// more chance before reporting closure.
		select {
		case msg := <-mb.messages:
			return msg, nil
		default:
			return zero, ErrMailboxClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Chan exposes the underlying message channel read-only, for callers that
// need to select over a mailbox alongside other event sources.
func (mb *Mailbox[M]) Chan() <-chan Message[M] {
	return mb.messages
}

// Close marks the mailbox closed. Subsequent sends fail with
// ErrMailboxClosed; envelopes already accepted remain receivable. Close is
// idempotent.
func (mb *Mailbox[M]) Close() {
	mb.closeOnce.Do(func() {
		close(mb.done)
	})
}
