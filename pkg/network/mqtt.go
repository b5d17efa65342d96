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
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultMQTTTimeout bounds the connect and publish steps of a single send.
const DefaultMQTTTimeout = 10 * time.Second

// MQTTProtocol sends message bodies by publishing them to an MQTT broker.
// The address string has the form "<broker-url>#<topic>", for example
// "tcp://broker:1883#actors/inbox".
type MQTTProtocol struct {
	clientID string
	timeout  time.Duration
}

// NewMQTTProtocol creates an MQTT transport publishing under clientID.
func NewMQTTProtocol(clientID string, timeout time.Duration) *MQTTProtocol {
	if timeout <= 0 {
		timeout = DefaultMQTTTimeout
	}
	if clientID == "" {
		clientID = "astra-transport"
	}
	return &MQTTProtocol{clientID: clientID, timeout: timeout}
}

// SendMessage publishes message at QoS 1 to the topic embedded in address.
// The connection is established per send and torn down afterwards; the
// transport is a collaborator for occasional deliveries, not a streaming
// channel.
func (p *MQTTProtocol) SendMessage(ctx context.Context, address, message string) error {
	broker, topic, err := splitMQTTAddress(address)
	if err != nil {
		return err
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(p.clientID).
		SetConnectTimeout(p.timeout)
	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("timed out connecting to broker %s", broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to broker %s: %w", broker, err)
	}
	defer client.Disconnect(250)

	pub := client.Publish(topic, 1, false, message)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return fmt.Errorf("timed out publishing to %s", address)
	case <-pub.Done():
	}
	if err := pub.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", address, err)
	}
	return nil
}

// splitMQTTAddress separates "<broker-url>#<topic>" on the first '#'.
func splitMQTTAddress(address string) (broker, topic string, err error) {
	broker, topic, ok := strings.Cut(address, "#")
	if !ok || broker == "" || topic == "" {
		return "", "", fmt.Errorf("invalid mqtt address %q, want <broker-url>#<topic>", address)
	}
	return broker, topic, nil
}
