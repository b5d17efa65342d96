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

// Package logging provides an injectable diagnostic sink for the actor
// runtime. Logging is consumed for diagnostics only and never affects
// control flow: a failing logger is itself only reported, never propagated.
package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Level classifies a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// String returns the bracketed tag used in log output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the sink consumed by runtime components for diagnostics.
type Logger interface {
	Log(level Level, msg string)
}

// ConsoleLogger writes log lines to the standard logger.
type ConsoleLogger struct{}

// NewConsoleLogger returns a logger backed by the stdlib log package.
func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{}
}

// Log writes a single line with a bracketed level prefix.
func (c *ConsoleLogger) Log(level Level, msg string) {
	log.Printf("[%s] %s", level, msg)
}

// FileLogger appends log lines to a file. It is safe for concurrent use.
type FileLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileLogger opens (or creates) the file at path for appending.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &FileLogger{file: f}, nil
}

// Log appends a single line to the file. Write failures are reported to the
// standard logger and otherwise swallowed.
func (f *FileLogger) Log(level Level, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := fmt.Fprintf(f.file, "[%s] %s\n", level, msg); err != nil {
		log.Printf("[ERROR] file logger write failed: %v", err)
	}
}

// Close closes the underlying file.
func (f *FileLogger) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}
