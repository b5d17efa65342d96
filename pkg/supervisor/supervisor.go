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

// package supervisor provides failure policies for actors and a runner that
// executes the resulting directives through the actor system registry.
package supervisor

import (
	"log"
)

// Strategy selects the directive a supervisor produces for every failure.
// It is fixed at construction time and applied uniformly to all actors
// under the supervisor.
type Strategy int

const (
	// StrategyRestart asks the caller to tear down and re-register the
	// failing actor.
	StrategyRestart Strategy = iota
	// StrategyIgnore takes no action; the actor's loop continues on its own.
	StrategyIgnore
	// StrategyEscalate propagates the failure to the caller's own
	// supervisor.
	StrategyEscalate
)

// Directive is the advisory decision produced for a reported failure.
// Executing it is the caller's responsibility; see Runner for the built-in
// executor.
type Directive int

const (
	DirectiveRestart Directive = iota
	DirectiveIgnore
	DirectiveEscalate
)

// String returns a human-readable name for the directive.
func (d Directive) String() string {
	switch d {
	case DirectiveRestart:
		return "restart"
	case DirectiveIgnore:
		return "ignore"
	case DirectiveEscalate:
		return "escalate"
	default:
		return "unknown"
	}
}

// Supervisor translates reported actor failures into directives. It holds
// no mutable state: the directive is a pure function of the configured
// strategy.
type Supervisor struct {
	strategy Strategy
}

// New creates a supervisor with a fixed strategy.
func New(strategy Strategy) *Supervisor {
	return &Supervisor{strategy: strategy}
}

// HandleFailure reports a failure of the named actor and returns the
// directive for it.
func (s *Supervisor) HandleFailure(actorName string, err error) Directive {
	switch s.strategy {
	case StrategyRestart:
		log.Printf("[INFO] Restarting actor %s due to error: %v", actorName, err)
		return DirectiveRestart
	case StrategyEscalate:
		log.Printf("[INFO] Escalating error for actor %s: %v", actorName, err)
		return DirectiveEscalate
	default:
		log.Printf("[INFO] Ignoring error for actor %s: %v", actorName, err)
		return DirectiveIgnore
	}
}
