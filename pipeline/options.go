// Copyright 2026 Blink Labs Software
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

package pipeline

import (
	"runtime"
)

// Config holds the configuration of a Pipeline
type Config struct {
	// Workers is the number of parallel decode workers
	Workers int
	// BufferSize is the capacity of the submit, decoded and results channels
	BufferSize int
}

// DefaultConfig returns a Config with one worker per CPU
func DefaultConfig() Config {
	return Config{
		Workers:    max(runtime.NumCPU(), 1),
		BufferSize: 256,
	}
}

// Option is a functional option for configuring a Pipeline
type Option func(*Config)

// WithWorkers sets the number of decode workers. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithBufferSize sets the channel buffer size. Values below 1 are ignored.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.BufferSize = size
		}
	}
}
