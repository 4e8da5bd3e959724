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

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blinklabs-io/bmap"
	"github.com/blinklabs-io/bmap/cbor"
)

type recordWriter interface {
	Write(bmap.Record) error
}

// newRecordWriter returns a writer producing JSON lines or a CBOR sequence
func newRecordWriter(w io.Writer, format string, pretty bool) (recordWriter, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return jsonWriter{enc: enc}, nil
	case formatCBOR:
		return cborWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

type jsonWriter struct {
	enc *json.Encoder
}

func (j jsonWriter) Write(record bmap.Record) error {
	return j.enc.Encode(record)
}

type cborWriter struct {
	w io.Writer
}

func (c cborWriter) Write(record bmap.Record) error {
	return cbor.EncodeTo(c.w, record)
}
