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

// package metrics provides Prometheus metrics for the actor runtime.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MessagesSentTotal counts envelopes accepted for delivery through the
	// actor system.
	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_messages_sent_total",
		Help: "The total number of messages routed through the actor system.",
	})

	// MessagesProcessedTotal counts envelopes successfully consumed by an
	// actor's Receive.
	MessagesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_messages_processed_total",
		Help: "The total number of messages processed by actors.",
	})

	// ActorErrorsTotal counts Receive failures per actor.
	ActorErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astra_actor_errors_total",
		Help: "The total number of message processing failures, per actor.",
	},
		[]string{"actor_id"},
	)

	// SupervisorRestartsTotal counts restarts decided by a supervisor.
	SupervisorRestartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astra_supervisor_restarts_total",
		Help: "The total number of times a supervised actor has been restarted.",
	},
		[]string{"actor_id"},
	)

	// SnapshotsSavedTotal counts successful periodic snapshot writes.
	SnapshotsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_snapshots_saved_total",
		Help: "The total number of actor state snapshots written.",
	})

	// SnapshotFailuresTotal counts failed periodic snapshot writes.
	SnapshotFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_snapshot_failures_total",
		Help: "The total number of actor state snapshot writes that failed.",
	})
)

// Serve starts an HTTP server to expose the Prometheus metrics.
func Serve(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	log.Printf("Metrics server listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logFatalf("Metrics server failed: %v", err)
	}
}

// logFatalf can be replaced by tests to prevent process exit.
var logFatalf = log.Fatalf
