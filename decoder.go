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

package bmap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/bmap/bitcom"
	"github.com/blinklabs-io/bmap/hashing"
	"github.com/blinklabs-io/bmap/tx"
)

// Decoder turns transactions into protocol-keyed records. A Decoder is
// immutable after New and safe for concurrent use.
type Decoder struct {
	registry    *bitcom.Registry
	hasher      hashing.Hasher
	sink        DiagnosticSink
	logger      *slog.Logger
	mapCommands map[string]MapCommandHandler
}

// DecodeResult is the value delivered by DecodeAsync
type DecodeResult struct {
	Record Record
	Err    error
}

// New returns a Decoder with the specified options applied
func New(options ...DecoderOptionFunc) *Decoder {
	d := &Decoder{
		mapCommands: defaultMapCommands(),
	}
	for _, option := range options {
		option(d)
	}
	if d.registry == nil {
		d.registry = bitcom.DefaultRegistry()
	}
	if d.hasher == nil {
		d.hasher = hashing.SHA256()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.sink == nil {
		d.sink = NewSlogSink(d.logger)
	}
	return d
}

// Registry returns the protocol registry used by the decoder
func (d *Decoder) Registry() *bitcom.Registry {
	return d.registry
}

// Decode decodes a single transaction. The returned error is only non-nil for
// fatal input problems; everything else is reported to the diagnostic sink.
func (d *Decoder) Decode(ctx context.Context, txn *tx.Transaction) (Record, error) {
	if txn == nil {
		return nil, tx.MissingRootKeyError{Key: tx.KeyOut}
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	s := &decodeState{
		d:       d,
		ctx:     ctx,
		txn:     txn,
		record:  make(Record, len(txn.Root)+1),
		output:  NoOutput,
		emitted: make(map[string]int),
	}
	for key, val := range txn.Root {
		s.record[key] = val
	}
	inputs := make([]tx.InputSummary, 0, len(txn.In))
	for _, in := range txn.In {
		summary, err := in.Summary()
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", in.I, err)
		}
		inputs = append(inputs, summary)
	}
	s.record[tx.KeyIn] = inputs
	for idx := range txn.Out {
		s.output = idx
		if err := s.decodeOutput(&txn.Out[idx]); err != nil {
			return nil, err
		}
	}
	relocateLinkage(s.record)
	d.logger.Debug(
		"decoded transaction",
		"component", "bmap",
		"txid", txn.ID,
		"protocols", len(s.emitted),
	)
	return s.record, nil
}

// DecodeJSON parses a transaction object in either wire shape and decodes it
func (d *Decoder) DecodeJSON(ctx context.Context, data []byte) (Record, error) {
	txn, err := tx.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return d.Decode(ctx, txn)
}

// DecodeAsync decodes a transaction in a separate goroutine. The returned
// channel receives exactly one result and is then closed.
func (d *Decoder) DecodeAsync(ctx context.Context, txn *tx.Transaction) <-chan DecodeResult {
	ret := make(chan DecodeResult, 1)
	go func() {
		defer close(ret)
		record, err := d.Decode(ctx, txn)
		ret <- DecodeResult{Record: record, Err: err}
	}()
	return ret
}

var defaultDecoder = sync.OnceValue(func() *Decoder {
	return New()
})

// Decode decodes a transaction with the default registry and hasher, logging
// diagnostics through slog.Default()
func Decode(ctx context.Context, txn *tx.Transaction) (Record, error) {
	return defaultDecoder().Decode(ctx, txn)
}

// decodeState holds everything scoped to a single decode call
type decodeState struct {
	d      *Decoder
	ctx    context.Context
	txn    *tx.Transaction
	record Record
	output int
	// emitted maps a record key to the output of the envelope that set it
	emitted map[string]int
}

func (s *decodeState) diagnose(protocol string, format string, args ...any) {
	s.d.sink.Diagnose(Diagnostic{
		TxID:     s.txn.ID,
		Output:   s.output,
		Protocol: protocol,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (s *decodeState) reporter(protocol string) Reporter {
	return func(format string, args ...any) {
		s.diagnose(protocol, format, args...)
	}
}

func (s *decodeState) decodeOutput(out *tx.Output) error {
	switch out.Shape() {
	case tx.ShapeCell:
		groups, ok := out.Groups()
		if !ok {
			return nil
		}
		for _, env := range s.splitCells(groups) {
			if !env.Known {
				s.emit(env.Protocol, env.Cells)
				continue
			}
			s.decodeEnvelope(env)
		}
	case tx.ShapePositional:
		pos := out.Positional()
		if len(pos.Other) > 0 {
			s.d.logger.Debug(
				"ignoring non-positional output keys",
				"component", "bmap",
				"txid", s.txn.ID,
				"output", s.output,
				"count", len(pos.Other),
			)
		}
		elems, ok := pos.DataElements()
		if !ok {
			return nil
		}
		envs, err := s.splitPositional(elems)
		if err != nil {
			return err
		}
		for _, env := range envs {
			if !env.Known {
				continue
			}
			s.decodeEnvelope(env)
		}
	}
	return nil
}

func (s *decodeState) decodeEnvelope(env Envelope) {
	val, ok := s.normalize(env)
	if !ok {
		return
	}
	s.emit(env.Protocol, val)
}

func (s *decodeState) emit(key string, val any) {
	if prev, ok := s.emitted[key]; ok {
		s.diagnose(key, "replacing record from output %d", prev)
	}
	s.emitted[key] = s.output
	s.record[key] = val
}
