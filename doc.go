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

// Package bmap decodes Bitcom protocol data carried in the OP_RETURN outputs
// of a transaction into a Record keyed by protocol name.
//
// A transaction is accepted in either of two JSON shapes: the positional
// shape, where each output maps keys such as "s2" or "lb3" to pushdata
// values, or the cell-grouped shape, where each output carries a tape of
// cells already split at the "|" chain delimiter.
//
// Decoding runs in four steps for every output:
//
//  1. The input adapter (package tx) locates the pushdata after the OP_RETURN
//     marker.
//  2. The envelope splitter groups the pushdata into one envelope per
//     protocol occurrence.
//  3. The field mapper applies the protocol schema from the registry
//     (package bitcom) to the envelope.
//  4. A protocol normalizer post-processes the mapped fields.
//
// Problems that do not prevent decoding are reported to a DiagnosticSink.
// Only malformed transactions return an error.
//
//	d := bmap.New(bmap.WithLogger(logger))
//	record, err := d.DecodeJSON(ctx, data)
//	if err != nil {
//	    return err
//	}
//	if m, ok := record.Fields(bitcom.ProtocolMAP); ok {
//	    fmt.Println(m["cmd"])
//	}
package bmap
