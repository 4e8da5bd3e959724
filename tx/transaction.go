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

package tx

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Root keys with a fixed meaning
const (
	KeyIn  = "in"
	KeyOut = "out"
	KeyTx  = "tx"
)

// Shape identifies the wire shape of the outputs of a transaction
type Shape uint8

const (
	ShapeUnknown Shape = iota
	ShapePositional
	ShapeCell
)

func (s Shape) String() string {
	switch s {
	case ShapePositional:
		return "positional"
	case ShapeCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Output is a transaction output in either wire shape. Cell-grouped outputs
// carry Tape; positional outputs carry their raw keys in Pushdata.
type Output struct {
	I        uint32
	E        Edge
	Tape     []Tape
	Pushdata map[string]any
}

func (o *Output) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if _, ok := keys["tape"]; ok {
		var tmp struct {
			I    uint32 `json:"i"`
			E    Edge   `json:"e"`
			Tape []Tape `json:"tape"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return err
		}
		o.I = tmp.I
		o.E = tmp.E
		o.Tape = tmp.Tape
		if o.Tape == nil {
			o.Tape = []Tape{}
		}
		return nil
	}
	fields, err := unmarshalUseNumber[map[string]any](data)
	if err != nil {
		return err
	}
	o.Pushdata = fields
	return nil
}

func (o *Output) Shape() Shape {
	switch {
	case o.Tape != nil:
		return ShapeCell
	case o.Pushdata != nil:
		return ShapePositional
	default:
		return ShapeUnknown
	}
}

// Groups returns the tapes following the OP_RETURN marker tape. The marker
// tape itself is skipped. ok is false when the output carries no marker.
func (o *Output) Groups() (groups []Tape, ok bool) {
	for idx, tape := range o.Tape {
		if tape.IsMarker() {
			return o.Tape[idx+1:], true
		}
	}
	return nil, false
}

// Positional buckets the keys of a positional output
func (o *Output) Positional() PositionalOutput {
	return ParsePositional(o.Pushdata)
}

// Transaction is a parsed transaction with its inputs, outputs and every other
// root key
type Transaction struct {
	In  []Input
	Out []Output
	// ID is the transaction hash taken from tx.h
	ID string
	// Root holds every root key other than in and out, verbatim
	Root map[string]any
}

// ParseJSON parses a transaction object in either wire shape
func ParseJSON(data []byte) (*Transaction, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse transaction: %w", err)
	}
	t := &Transaction{
		Root: make(map[string]any, len(root)),
	}
	for key, raw := range root {
		switch key {
		case KeyIn:
			if err := json.Unmarshal(raw, &t.In); err != nil {
				return nil, fmt.Errorf("parse inputs: %w", err)
			}
		case KeyOut:
			if err := json.Unmarshal(raw, &t.Out); err != nil {
				return nil, fmt.Errorf("parse outputs: %w", err)
			}
		default:
			val, err := unmarshalUseNumber[any](raw)
			if err != nil {
				return nil, fmt.Errorf("parse root key %s: %w", key, err)
			}
			t.Root[key] = val
		}
	}
	if info, ok := t.Root[KeyTx].(map[string]any); ok {
		if h, ok := info["h"].(string); ok {
			t.ID = h
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseJSONList parses either a single transaction object or an array of them
func ParseJSONList(data []byte) ([]*Transaction, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		t, err := ParseJSON(trimmed)
		if err != nil {
			return nil, err
		}
		return []*Transaction{t}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parse transaction list: %w", err)
	}
	ret := make([]*Transaction, 0, len(items))
	for idx, item := range items {
		t, err := ParseJSON(item)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", idx, err)
		}
		ret = append(ret, t)
	}
	return ret, nil
}

// Validate checks the required root keys and that all outputs share a shape
func (t *Transaction) Validate() error {
	if t.In == nil {
		return MissingRootKeyError{Key: KeyIn}
	}
	if t.Out == nil {
		return MissingRootKeyError{Key: KeyOut}
	}
	_, err := t.Shape()
	return err
}

// Shape returns the common shape of the outputs. Outputs with no data in
// either shape are ignored.
func (t *Transaction) Shape() (Shape, error) {
	shape := ShapeUnknown
	for idx := range t.Out {
		s := t.Out[idx].Shape()
		if s == ShapeUnknown {
			continue
		}
		if shape != ShapeUnknown && s != shape {
			return ShapeUnknown, fmt.Errorf("%w: output %d is %s, expected %s", ErrInconsistentShape, idx, s, shape)
		}
		shape = s
	}
	return shape, nil
}

// SpendingInput returns the first input, which node-linking protocols treat as
// the spend of the parent node
func (t *Transaction) SpendingInput() (Input, bool) {
	if len(t.In) == 0 {
		return Input{}, false
	}
	return t.In[0], true
}

func unmarshalUseNumber[T any](data []byte) (T, error) {
	var ret T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err := dec.Decode(&ret)
	return ret, err
}
