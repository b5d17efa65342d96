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

package supervisor

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralab/astra-go/pkg/actor"
)

func TestHandleFailureDirectives(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, DirectiveRestart, New(StrategyRestart).HandleFailure("a", err))
	assert.Equal(t, DirectiveIgnore, New(StrategyIgnore).HandleFailure("a", err))
	assert.Equal(t, DirectiveEscalate, New(StrategyEscalate).HandleFailure("a", err))
}

func TestDirectiveIsUniformAcrossActors(t *testing.T) {
	sup := New(StrategyEscalate)
	err := errors.New("boom")

	// The strategy is fixed at construction and applies to every actor.
	assert.Equal(t, DirectiveEscalate, sup.HandleFailure("first", err))
	assert.Equal(t, DirectiveEscalate, sup.HandleFailure("second", err))
}

// flakyActor fails the first receive of every instance, then succeeds.
type flakyActor struct {
	failures *int32
	failed   bool
}

func (a *flakyActor) Receive(msg actor.Message[string]) error {
	if msg.Type == actor.MessageShutdown {
		return nil
	}
	if !a.failed {
		a.failed = true
		atomic.AddInt32(a.failures, 1)
		return errors.New("first message always fails")
	}
	return nil
}

func (a *flakyActor) Cleanup() {}

func TestRunnerRestartsFailingActor(t *testing.T) {
	sys := actor.NewSystem[string]()
	runner := NewRunner(New(StrategyRestart), sys)
	runner.SetRestartDelay(10 * time.Millisecond)

	var failures int32
	var instances int32
	runner.Supervise("flaky", func() actor.Actor[string] {
		atomic.AddInt32(&instances, 1)
		return &flakyActor{failures: &failures}
	})

	require.NoError(t, sys.SendMessage("flaky", "trigger"))

	// The failure must lead to a fresh instance being registered.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&instances) >= 2
	}, time.Second, 10*time.Millisecond)

	// The replacement instance processes messages normally.
	require.NoError(t, sys.SendMessage("flaky", "after restart"))
	sys.Shutdown()
}

// panickyActor panics on the first regular message of every instance, then
// behaves.
type panickyActor struct {
	panicked bool
}

func (a *panickyActor) Receive(msg actor.Message[string]) error {
	if msg.Type == actor.MessageShutdown {
		return nil
	}
	if !a.panicked {
		a.panicked = true
		panic("receive blew up")
	}
	return nil
}

func (a *panickyActor) Cleanup() {}

func TestRunnerRestartsPanickingActor(t *testing.T) {
	sys := actor.NewSystem[string]()
	runner := NewRunner(New(StrategyRestart), sys)
	runner.SetRestartDelay(10 * time.Millisecond)

	var instances int32
	runner.Supervise("panicky", func() actor.Actor[string] {
		atomic.AddInt32(&instances, 1)
		return &panickyActor{}
	})

	require.NoError(t, sys.SendMessage("panicky", "trigger"))

	// The recovered panic reaches the supervisor like any other failure.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&instances) >= 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, sys.SendMessage("panicky", "after restart"))
	sys.Shutdown()
}

// crashyActor fails every regular message it sees.
type crashyActor struct{}

func (a *crashyActor) Receive(msg actor.Message[string]) error {
	if msg.Type == actor.MessageShutdown {
		return nil
	}
	return errors.New("always fails")
}

func (a *crashyActor) Cleanup() {}

func TestRunnerSpacesOutRestarts(t *testing.T) {
	sys := actor.NewSystem[string]()
	runner := NewRunner(New(StrategyRestart), sys)
	runner.SetRestartDelay(200 * time.Millisecond)

	var instances int32
	runner.Supervise("crashy", func() actor.Actor[string] {
		atomic.AddInt32(&instances, 1)
		return &crashyActor{}
	})

	// Two rapid failures of the same instance coalesce into one pending
	// restart instead of producing one restart each.
	require.NoError(t, sys.SendMessage("crashy", "first"))
	require.NoError(t, sys.SendMessage("crashy", "second"))

	// The replacement must not appear before the delay has elapsed.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&instances))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&instances) == 2
	}, 2*time.Second, 10*time.Millisecond)

	// With no further messages there is nothing left to restart.
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&instances))
	sys.Shutdown()
}

func TestRunnerIgnoreLeavesActorRunning(t *testing.T) {
	sys := actor.NewSystem[string]()
	runner := NewRunner(New(StrategyIgnore), sys)

	var failures int32
	var instances int32
	runner.Supervise("flaky", func() actor.Actor[string] {
		atomic.AddInt32(&instances, 1)
		return &flakyActor{failures: &failures}
	})

	require.NoError(t, sys.SendMessage("flaky", "fails"))
	require.NoError(t, sys.SendMessage("flaky", "succeeds"))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&failures) == 1
	}, time.Second, 10*time.Millisecond)

	sys.Shutdown()
	sys.Wait()

	// The same instance kept running: no restart happened.
	assert.Equal(t, int32(1), atomic.LoadInt32(&instances))
}

func TestRunnerEscalatesFailure(t *testing.T) {
	sys := actor.NewSystem[string]()
	runner := NewRunner(New(StrategyEscalate), sys)

	var failures int32
	runner.Supervise("flaky", func() actor.Actor[string] {
		return &flakyActor{failures: &failures}
	})

	require.NoError(t, sys.SendMessage("flaky", "trigger"))

	select {
	case failure := <-runner.Escalations():
		assert.Equal(t, "flaky", failure.ActorName)
		assert.Error(t, failure.Err)
	case <-time.After(time.Second):
		t.Fatal("Expected an escalated failure")
	}

	sys.Shutdown()
	sys.Wait()
}
