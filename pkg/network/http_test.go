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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProtocolSendMessage(t *testing.T) {
	var gotMethod, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewHTTPProtocol(5 * time.Second)
	err := p.SendMessage(context.Background(), server.URL, "hello remote actor")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "hello remote actor", gotBody)
}

func TestHTTPProtocolRejectedByRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such actor", http.StatusNotFound)
	}))
	defer server.Close()

	p := NewHTTPProtocol(5 * time.Second)
	err := p.SendMessage(context.Background(), server.URL, "hello")
	assert.Error(t, err)
}

func TestHTTPProtocolUnreachableAddress(t *testing.T) {
	p := NewHTTPProtocol(200 * time.Millisecond)
	err := p.SendMessage(context.Background(), "http://127.0.0.1:1/unreachable", "hello")
	assert.Error(t, err)
}

func TestHTTPProtocolContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	p := NewHTTPProtocol(5 * time.Second)
	err := p.SendMessage(ctx, server.URL, "hello")
	assert.Error(t, err)
}
