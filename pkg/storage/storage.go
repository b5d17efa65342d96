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

// Package storage provides the backend capability set consumed by
// data-handling actors, together with file, in-memory and PostgreSQL
// implementations.
//
// A backend instance is exclusively owned by the actor that wraps it and is
// never shared across actors, so implementations only need the level of
// internal synchronization a single-owner access pattern requires.
package storage

import "errors"

// ErrNoData is returned by Read when the backend holds no persisted value.
var ErrNoData = errors.New("no data in backend")

// Backend is the capability set a data-handling actor consumes. Write
// persists the entire value, replacing any previous one; Read returns the
// last persisted value; Cleanup releases backend resources and is safe to
// call more than once.
type Backend interface {
	Write(data string) error
	Read() (string, error)
	Cleanup() error
}
