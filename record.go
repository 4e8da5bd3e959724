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
	"encoding/json"

	"github.com/blinklabs-io/bmap/cbor"
	"github.com/blinklabs-io/bmap/tx"
)

// Record is the decoded form of a transaction. Protocol names map to their
// decoded value and every other root key of the transaction is passed through.
type Record map[string]any

// Fields returns the decoded fields of a schema protocol
func (r Record) Fields(protocol string) (Fields, bool) {
	ret, ok := r[protocol].(Fields)
	return ret, ok
}

// Inputs returns the transaction inputs with their script detail stripped
func (r Record) Inputs() []tx.InputSummary {
	ret, _ := r[tx.KeyIn].([]tx.InputSummary)
	return ret
}

// Has reports whether the record contains the key
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// MarshalCBOR encodes the record as deterministic CBOR. Numbers passed through
// from the transaction JSON are encoded as CBOR numbers.
func (r Record) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(cborValue(map[string]any(r)))
}

func cborValue(val any) any {
	switch v := val.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case Fields:
		return cborValue(map[string]any(v))
	case map[string]any:
		ret := make(map[string]any, len(v))
		for key, item := range v {
			ret[key] = cborValue(item)
		}
		return ret
	case []any:
		ret := make([]any, len(v))
		for idx, item := range v {
			ret[idx] = cborValue(item)
		}
		return ret
	default:
		return val
	}
}
