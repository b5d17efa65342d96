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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMQTTAddress(t *testing.T) {
	broker, topic, err := splitMQTTAddress("tcp://broker:1883#actors/inbox")
	require.NoError(t, err)
	assert.Equal(t, "tcp://broker:1883", broker)
	assert.Equal(t, "actors/inbox", topic)
}

func TestSplitMQTTAddressKeepsLaterSeparators(t *testing.T) {
	// Only the first '#' splits; the topic may contain more.
	broker, topic, err := splitMQTTAddress("tcp://broker:1883#actors/#")
	require.NoError(t, err)
	assert.Equal(t, "tcp://broker:1883", broker)
	assert.Equal(t, "actors/#", topic)
}

func TestSplitMQTTAddressInvalid(t *testing.T) {
	for _, address := range []string{"", "tcp://broker:1883", "#topic", "tcp://broker:1883#"} {
		_, _, err := splitMQTTAddress(address)
		assert.Error(t, err, "address %q should be rejected", address)
	}
}

func TestMQTTProtocolRejectsMalformedAddress(t *testing.T) {
	p := NewMQTTProtocol("test-client", time.Second)
	err := p.SendMessage(context.Background(), "tcp://broker:1883", "hello")
	assert.Error(t, err)
}
