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

// package main is the entrypoint for an astra node: an actor system with a
// supervised data actor and a snapshot actor persisting its state on a
// fixed interval.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/astralab/astra-go/pkg/actor"
	"github.com/astralab/astra-go/pkg/config"
	"github.com/astralab/astra-go/pkg/data"
	"github.com/astralab/astra-go/pkg/metrics"
	"github.com/astralab/astra-go/pkg/snapshot"
	"github.com/astralab/astra-go/pkg/storage"
	"github.com/astralab/astra-go/pkg/supervisor"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml or json config file")
	flag.Parse()

	log.Println("Starting astra node...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Node ID: %s", cfg.Node.NodeID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go metrics.Serve(cfg.Node.MetricsPort)

	backend, err := buildBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}

	// Actor system with a supervised data actor: failed messages restart
	// the actor through the registry.
	system := actor.NewSystem[string]()
	system.SetMailboxCapacity(cfg.Node.MailboxSize)
	runner := supervisor.NewRunner(supervisor.New(supervisor.StrategyRestart), system)
	runner.Supervise("data", func() actor.Actor[string] {
		return data.New(storage.NewMemBackend())
	})

	// Snapshot actor over the durable backend, with its own periodic task.
	snap := snapshot.New(cfg.Node.NodeID, backend)
	snap.SetInterval(cfg.Node.Snapshot.Interval())
	if err := snap.LoadState(); err != nil {
		log.Printf("[ERROR] Failed to load previous snapshot: %v", err)
	} else if state := snap.GetState(); state != "" {
		log.Printf("[INFO] Restored state: %q", state)
	}

	snapshotDone := make(chan struct{})
	go func() {
		defer close(snapshotDone)
		snap.StartPeriodicTask(ctx)
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	<-shutdownChan

	log.Println("Shutdown signal received. Shutting down...")

	// Final snapshot before stopping the periodic task.
	if err := snap.SaveState(); err != nil {
		log.Printf("[ERROR] Failed to save final snapshot: %v", err)
	}
	snap.SignalShutdown()
	<-snapshotDone

	system.Shutdown()
	system.Wait()
	log.Println("Shutdown complete.")
}

// buildBackend constructs the snapshot storage backend selected by the
// configuration.
func buildBackend(cfg *config.Config) (storage.Backend, error) {
	sc := cfg.Node.Storage
	switch sc.Backend {
	case "postgres":
		return storage.NewPostgresBackend(sc.DSN, sc.Table, sc.Key)
	case "memory":
		return storage.NewMemBackend(), nil
	default:
		return storage.NewFileBackend(sc.Path)
	}
}
