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

// Package config provides configuration management for an astra node:
// runtime sizing, snapshot cadence, storage backend selection and remote
// collaborator endpoints.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// SnapshotConfig controls the periodic snapshot task.
type SnapshotConfig struct {
	IntervalSeconds int `yaml:"interval_seconds" json:"interval_seconds"`
}

// Interval returns the snapshot period as a duration.
func (c SnapshotConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// StorageConfig selects and parameterizes the snapshot storage backend.
type StorageConfig struct {
	// Backend is one of "file", "memory" or "postgres".
	Backend string `yaml:"backend" json:"backend"`
	// Path is the snapshot file location for the file backend.
	Path string `yaml:"path" json:"path"`
	// DSN, Table and Key parameterize the postgres backend.
	DSN   string `yaml:"dsn" json:"dsn"`
	Table string `yaml:"table" json:"table"`
	Key   string `yaml:"key" json:"key"`
}

// RegistryConfig locates the distributed name registry.
type RegistryConfig struct {
	Endpoints          []string `yaml:"endpoints" json:"endpoints"`
	DialTimeoutSeconds int      `yaml:"dial_timeout_seconds" json:"dial_timeout_seconds"`
}

// DialTimeout returns the registry connection timeout as a duration.
func (c RegistryConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutSeconds) * time.Second
}

// NodeConfig represents the overall node configuration.
type NodeConfig struct {
	NodeID      string         `yaml:"node_id" json:"node_id"`
	MetricsPort string         `yaml:"metrics_port" json:"metrics_port"`
	MailboxSize int            `yaml:"mailbox_size" json:"mailbox_size"`
	Snapshot    SnapshotConfig `yaml:"snapshot" json:"snapshot"`
	Storage     StorageConfig  `yaml:"storage" json:"storage"`
	Registry    RegistryConfig `yaml:"registry" json:"registry"`
}

// Config holds the complete configuration.
type Config struct {
	Node NodeConfig `yaml:"node" json:"node"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Node: NodeConfig{
			NodeID:      "astra-node",
			MetricsPort: ":8082",
			MailboxSize: 100,
			Snapshot: SnapshotConfig{
				IntervalSeconds: 60,
			},
			Storage: StorageConfig{
				Backend: "file",
				Path:    "snapshot.txt",
			},
			Registry: RegistryConfig{
				Endpoints:          []string{"http://127.0.0.1:2379"},
				DialTimeoutSeconds: 5,
			},
		},
	}
}

// LoadConfig loads configuration from a file. An empty path yields the
// default configuration.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		log.Println("[INFO] No config file specified, using default configuration")
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(configPath))

	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".json":
		err = json.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	log.Printf("[INFO] Loaded configuration from %s", configPath)
	return config, nil
}

// Validate checks the configuration for values the runtime cannot work
// with.
func (c *Config) Validate() error {
	if c.Node.NodeID == "" {
		return fmt.Errorf("node_id must not be empty")
	}
	if c.Node.MailboxSize <= 0 {
		return fmt.Errorf("mailbox_size must be positive, got %d", c.Node.MailboxSize)
	}
	if c.Node.Snapshot.IntervalSeconds <= 0 {
		return fmt.Errorf("snapshot interval_seconds must be positive, got %d", c.Node.Snapshot.IntervalSeconds)
	}
	switch c.Node.Storage.Backend {
	case "file", "memory":
	case "postgres":
		if c.Node.Storage.Table == "" || c.Node.Storage.Key == "" {
			return fmt.Errorf("postgres storage requires table and key")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Node.Storage.Backend)
	}
	return nil
}
