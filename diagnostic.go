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
)

// NoOutput is the Output value of diagnostics that are not tied to an output
const NoOutput = -1

// Diagnostic describes a non-fatal problem found while decoding
type Diagnostic struct {
	TxID     string
	Output   int
	Protocol string
	Message  string
}

// DiagnosticSink receives the non-fatal problems found while decoding. Sinks
// shared between decoders must be safe for concurrent use.
type DiagnosticSink interface {
	Diagnose(Diagnostic)
}

// DiagnosticSinkFunc adapts a function to the DiagnosticSink interface
type DiagnosticSinkFunc func(Diagnostic)

func (f DiagnosticSinkFunc) Diagnose(d Diagnostic) {
	f(d)
}

// DiscardSink drops all diagnostics
var DiscardSink DiagnosticSink = DiagnosticSinkFunc(func(Diagnostic) {})

// SlogSink logs diagnostics as warnings
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Diagnose(d Diagnostic) {
	s.logger.Warn(
		d.Message,
		"component", "bmap",
		"txid", d.TxID,
		"output", d.Output,
		"protocol", d.Protocol,
	)
}
