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
	"log/slog"

	"github.com/blinklabs-io/bmap/bitcom"
	"github.com/blinklabs-io/bmap/hashing"
)

type DecoderOptionFunc func(*Decoder)

// WithRegistry specifies the protocol registry. The default is bitcom.DefaultRegistry()
func WithRegistry(registry *bitcom.Registry) DecoderOptionFunc {
	return func(d *Decoder) {
		d.registry = registry
	}
}

// WithHasher specifies the hash capability used for node identifiers. The
// default is hashing.SHA256()
func WithHasher(hasher hashing.Hasher) DecoderOptionFunc {
	return func(d *Decoder) {
		d.hasher = hasher
	}
}

// WithDiagnosticSink specifies where non-fatal problems are reported
func WithDiagnosticSink(sink DiagnosticSink) DecoderOptionFunc {
	return func(d *Decoder) {
		d.sink = sink
	}
}

// WithLogger specifies the logger. Unless WithDiagnosticSink is also used,
// diagnostics are logged through it.
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithMapCommand registers a handler for a MAP command, replacing any
// existing handler for the same command
func WithMapCommand(cmd string, handler MapCommandHandler) DecoderOptionFunc {
	return func(d *Decoder) {
		d.mapCommands[cmd] = handler
	}
}
