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

package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// DefaultDialTimeout bounds registry connection establishment. When it
// elapses, the registry is to be treated as unavailable.
const DefaultDialTimeout = 5 * time.Second

// ErrActorNotRegistered is returned by LookupActor when the registry holds
// no address for the actor id.
var ErrActorNotRegistered = errors.New("actor not registered")

// Registry is a distributed name registry mapping actor ids to node
// addresses, backed by etcd.
type Registry struct {
	client *clientv3.Client
}

// NewRegistry connects to the etcd cluster at the given endpoints. A
// non-positive dialTimeout falls back to the default.
func NewRegistry(endpoints []string, dialTimeout time.Duration) (*Registry, error) {
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to registry: %w", err)
	}
	return &Registry{client: client}, nil
}

// RegisterActor stores nodeAddress under actorID, overwriting a previous
// registration.
func (r *Registry) RegisterActor(ctx context.Context, actorID, nodeAddress string) error {
	if _, err := r.client.Put(ctx, actorID, nodeAddress); err != nil {
		return fmt.Errorf("failed to register actor %s: %w", actorID, err)
	}
	return nil
}

// LookupActor resolves actorID to the node address it was registered under.
func (r *Registry) LookupActor(ctx context.Context, actorID string) (string, error) {
	resp, err := r.client.Get(ctx, actorID)
	if err != nil {
		return "", fmt.Errorf("failed to look up actor %s: %w", actorID, err)
	}
	if len(resp.Kvs) == 0 {
		return "", fmt.Errorf("actor %s: %w", actorID, ErrActorNotRegistered)
	}
	return string(resp.Kvs[0].Value), nil
}

// Close releases the registry connection.
func (r *Registry) Close() error {
	return r.client.Close()
}
