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
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single send, connection establishment
// included.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPProtocol sends message bodies as HTTP POST requests to the target
// address.
type HTTPProtocol struct {
	client *http.Client
}

// NewHTTPProtocol creates an HTTP transport with the given request timeout.
// A non-positive timeout falls back to the default.
func NewHTTPProtocol(timeout time.Duration) *HTTPProtocol {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPProtocol{
		client: &http.Client{Timeout: timeout},
	}
}

// SendMessage POSTs message to address. Any status outside 2xx is treated
// as a failed delivery.
func (p *HTTPProtocol) SendMessage(ctx context.Context, address, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", address, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", address, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote %s rejected message: %s", address, resp.Status)
	}
	return nil
}
