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

// Package network provides the remote collaborators of the actor runtime: a
// transport for sending message bodies to remote addresses and a
// distributed name registry mapping actor ids to node addresses. Both are
// consumed by the core as opaque services reachable by address strings.
package network

import "context"

// Protocol is the capability of sending a message body to a remote address.
type Protocol interface {
	SendMessage(ctx context.Context, address, message string) error
}
