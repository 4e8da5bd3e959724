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
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blinklabs-io/bmap"
	"github.com/blinklabs-io/bmap/tx"
)

// ErrPipelineStopped is returned when submitting to a stopped pipeline
var ErrPipelineStopped = errors.New("pipeline is stopped")

// ErrPipelineNotStarted is returned when submitting before Start
var ErrPipelineNotStarted = errors.New("pipeline not started")

// closedResultsChan is returned by Results() before Start() is called so that
// callers do not block on a nil channel
var closedResultsChan = func() <-chan *Item {
	ch := make(chan *Item)
	close(ch)
	return ch
}()

// Pipeline decodes transactions with a pool of workers and releases the
// results in submission order
type Pipeline struct {
	decoder *bmap.Decoder
	config  Config
	metrics *metrics

	submitChan  chan *Item
	decodedChan chan *Item
	resultsChan chan *Item

	sequence  uint64     // next submission sequence, guarded by seqMu
	seqMu     sync.Mutex // serializes sequence assignment with the enqueue
	ctx       context.Context
	cancel    context.CancelFunc
	started   atomic.Bool
	stopped   atomic.Bool
	workers   sync.WaitGroup
	orderDone chan struct{}
	mu        sync.Mutex   // protects Start/Stop
	submitMu  sync.RWMutex // protects Submit against concurrent Stop
}

// New returns a Pipeline decoding with the specified decoder
func New(decoder *bmap.Decoder, opts ...Option) *Pipeline {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if decoder == nil {
		decoder = bmap.New()
	}
	return &Pipeline{
		decoder: decoder,
		config:  config,
		metrics: newMetrics(),
	}
}

// Start starts the workers and the ordering goroutine
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped.Load() {
		return ErrPipelineStopped
	}
	if p.started.Load() {
		return nil
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.submitChan = make(chan *Item, p.config.BufferSize)
	p.decodedChan = make(chan *Item, p.config.BufferSize)
	p.resultsChan = make(chan *Item, p.config.BufferSize)
	p.orderDone = make(chan struct{})
	for range p.config.Workers {
		p.workers.Add(1)
		go p.worker(p.ctx) //nolint:contextcheck
	}
	go p.order(p.ctx) //nolint:contextcheck
	p.started.Store(true)
	return nil
}

// Submit queues a transaction for decoding. It blocks while the pipeline is
// full and is safe to call concurrently with Stop. Concurrent callers are
// queued one at a time, and a submission that fails leaves no gap in the
// result order.
func (p *Pipeline) Submit(ctx context.Context, txn *tx.Transaction) error {
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	if p.stopped.Load() {
		return ErrPipelineStopped
	}
	// The sequence number is consumed only once the item is queued
	p.seqMu.Lock()
	defer p.seqMu.Unlock()
	item := newItem(txn, p.sequence)
	select {
	case p.submitChan <- item:
		p.sequence++
		p.metrics.recordSubmit()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPipelineStopped
	}
}

// Results returns the channel of decoded items in submission order. It is
// closed by Stop once every submitted item has been released.
func (p *Pipeline) Results() <-chan *Item {
	if !p.started.Load() {
		return closedResultsChan
	}
	return p.resultsChan
}

// Stop stops accepting submissions and waits until every submitted item has
// been released to Results. The caller must keep reading Results until it is
// closed.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started.Load() || p.stopped.Load() {
		return
	}
	p.submitMu.Lock()
	p.stopped.Store(true)
	close(p.submitChan)
	p.submitMu.Unlock()
	p.workers.Wait()
	close(p.decodedChan)
	<-p.orderDone
	p.cancel()
}

// Abort cancels in-flight work and stops the pipeline. Items not yet released
// are discarded.
func (p *Pipeline) Abort() {
	p.mu.Lock()
	if p.started.Load() && !p.stopped.Load() {
		p.cancel()
	}
	p.mu.Unlock()
	p.Stop()
}

// Stats returns the current pipeline counters
func (p *Pipeline) Stats() Stats {
	return p.metrics.stats()
}

func (p *Pipeline) worker(ctx context.Context) {
	defer p.workers.Done()
	for item := range p.submitChan {
		if ctx.Err() != nil {
			continue
		}
		start := time.Now()
		record, err := p.decoder.Decode(ctx, item.txn)
		duration := time.Since(start)
		item.setResult(record, err, duration)
		p.metrics.recordDecode(duration, err)
		select {
		case p.decodedChan <- item:
		case <-ctx.Done():
		}
	}
}

func (p *Pipeline) order(ctx context.Context) {
	defer close(p.orderDone)
	defer close(p.resultsChan)
	buf := newReorderBuffer()
	for item := range p.decodedChan {
		ready := buf.push(item)
		p.metrics.recordPending(buf.len())
		if !p.release(ctx, ready) {
			// Keep draining so that workers never block on decodedChan
			for range p.decodedChan {
			}
			return
		}
	}
	p.release(ctx, buf.flush())
}

func (p *Pipeline) release(ctx context.Context, items []*Item) bool {
	for _, item := range items {
		select {
		case p.resultsChan <- item:
			p.metrics.recordRelease()
		case <-ctx.Done():
			return false
		}
	}
	return true
}
