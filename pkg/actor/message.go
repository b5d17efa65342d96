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

// MessageType discriminates between the two kinds of envelope an actor can
// receive from its mailbox.
type MessageType int

const (
	// MessageRegular is an envelope carrying a user payload.
	MessageRegular MessageType = iota
	// MessageShutdown is an envelope instructing the receiving task loop to
	// terminate. It carries no payload and is terminal: no envelope enqueued
	// after it is processed by the same actor.
	MessageShutdown
)

// String returns a human-readable name for the message type.
func (t MessageType) String() string {
	switch t {
	case MessageRegular:
		return "regular"
	case MessageShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Message is the envelope used for all mailbox transport. It wraps either a
// user payload or a shutdown marker. The payload type M must be safe to hand
// off between goroutines.
type Message[M any] struct {
	Type    MessageType
	Payload M
}

// NewMessage wraps a payload in a regular envelope.
func NewMessage[M any](payload M) Message[M] {
	return Message[M]{Type: MessageRegular, Payload: payload}
}

// NewShutdown constructs a shutdown envelope. The payload field is left as
// the zero value and must not be inspected by receivers.
func NewShutdown[M any]() Message[M] {
	return Message[M]{Type: MessageShutdown}
}
