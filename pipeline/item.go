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
	"time"

	"github.com/blinklabs-io/bmap"
	"github.com/blinklabs-io/bmap/tx"
)

// Item is one submitted transaction and, once decoded, its result
type Item struct {
	sequence       uint64
	txn            *tx.Transaction
	record         bmap.Record
	err            error
	submitTime     time.Time
	decodeDuration time.Duration
}

func newItem(txn *tx.Transaction, sequence uint64) *Item {
	return &Item{
		sequence:   sequence,
		txn:        txn,
		submitTime: time.Now(),
	}
}

// SequenceNumber returns the zero-based submission order of the item
func (i *Item) SequenceNumber() uint64 {
	return i.sequence
}

// Transaction returns the submitted transaction
func (i *Item) Transaction() *tx.Transaction {
	return i.txn
}

// Record returns the decoded record, or nil if decoding failed
func (i *Item) Record() bmap.Record {
	return i.record
}

// Err returns the decode error
func (i *Item) Err() error {
	return i.err
}

// DecodeDuration returns the time spent decoding
func (i *Item) DecodeDuration() time.Duration {
	return i.decodeDuration
}

// Latency returns the time from submission until now
func (i *Item) Latency() time.Duration {
	return time.Since(i.submitTime)
}

func (i *Item) setResult(record bmap.Record, err error, duration time.Duration) {
	i.record = record
	i.err = err
	i.decodeDuration = duration
}
