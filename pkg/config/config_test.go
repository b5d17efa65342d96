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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "astra-node", cfg.Node.NodeID)
	assert.Equal(t, 100, cfg.Node.MailboxSize)
	assert.Equal(t, 60*time.Second, cfg.Node.Snapshot.Interval())
	assert.Equal(t, "file", cfg.Node.Storage.Backend)
	assert.Equal(t, 5*time.Second, cfg.Node.Registry.DialTimeout())
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigYAML(t *testing.T) {
	content := `
node:
  node_id: node-42
  mailbox_size: 10
  snapshot:
    interval_seconds: 5
  storage:
    backend: memory
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "node-42", cfg.Node.NodeID)
	assert.Equal(t, 10, cfg.Node.MailboxSize)
	assert.Equal(t, 5*time.Second, cfg.Node.Snapshot.Interval())
	assert.Equal(t, "memory", cfg.Node.Storage.Backend)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, ":8082", cfg.Node.MetricsPort)
}

func TestLoadConfigJSON(t *testing.T) {
	content := `{"node": {"node_id": "json-node", "mailbox_size": 7,
		"snapshot": {"interval_seconds": 30},
		"storage": {"backend": "file", "path": "snap.txt"}}}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json-node", cfg.Node.NodeID)
	assert.Equal(t, 7, cfg.Node.MailboxSize)
}

func TestLoadConfigUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty node id", func(c *Config) { c.Node.NodeID = "" }},
		{"non-positive mailbox", func(c *Config) { c.Node.MailboxSize = 0 }},
		{"non-positive interval", func(c *Config) { c.Node.Snapshot.IntervalSeconds = 0 }},
		{"unknown backend", func(c *Config) { c.Node.Storage.Backend = "tape" }},
		{"postgres without table", func(c *Config) {
			c.Node.Storage.Backend = "postgres"
			c.Node.Storage.Key = "k"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
