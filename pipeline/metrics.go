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
	"sync"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of pipeline counters
type Stats struct {
	Submitted    uint64
	Decoded      uint64
	Failed       uint64
	Released     uint64
	PeakPending  int
	DecodeTime   time.Duration
	StartTime    time.Time
	LastReleased time.Time
}

// metrics tracks pipeline counters. Counters are atomic; the remaining fields
// are guarded by mu.
type metrics struct {
	submitted  atomic.Uint64
	decoded    atomic.Uint64
	failed     atomic.Uint64
	released   atomic.Uint64
	decodeTime atomic.Int64

	mu           sync.RWMutex
	peakPending  int
	startTime    time.Time
	lastReleased time.Time
}

func newMetrics() *metrics {
	return &metrics{
		startTime: time.Now(),
	}
}

func (m *metrics) recordSubmit() {
	m.submitted.Add(1)
}

func (m *metrics) recordDecode(duration time.Duration, err error) {
	if err != nil {
		m.failed.Add(1)
	} else {
		m.decoded.Add(1)
	}
	m.decodeTime.Add(int64(duration))
}

func (m *metrics) recordRelease() {
	m.released.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastReleased = time.Now()
}

func (m *metrics) recordPending(pending int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pending > m.peakPending {
		m.peakPending = pending
	}
}

func (m *metrics) stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Submitted:    m.submitted.Load(),
		Decoded:      m.decoded.Load(),
		Failed:       m.failed.Load(),
		Released:     m.released.Load(),
		PeakPending:  m.peakPending,
		DecodeTime:   time.Duration(m.decodeTime.Load()),
		StartTime:    m.startTime,
		LastReleased: m.lastReleased,
	}
}
