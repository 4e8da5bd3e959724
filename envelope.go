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
	"github.com/blinklabs-io/bmap/bitcom"
	"github.com/blinklabs-io/bmap/pushdata"
	"github.com/blinklabs-io/bmap/tx"
)

// Envelope is the run of pushdata elements belonging to one protocol
// occurrence. Elements[0] is the prefix.
type Envelope struct {
	// Protocol is the canonical name, or the raw prefix token when Known is false
	Protocol string
	Known    bool
	Output   int
	Elements []pushdata.Element
	// Cells holds the original cells in the cell-grouped shape
	Cells []tx.Cell
}

// Data returns the elements following the prefix
func (e Envelope) Data() []pushdata.Element {
	if len(e.Elements) == 0 {
		return nil
	}
	return e.Elements[1:]
}

// splitCells turns the tapes following the marker into envelopes. Each tape
// is one envelope; an unregistered prefix is kept as the raw token.
func (s *decodeState) splitCells(groups []tx.Tape) []Envelope {
	ret := make([]Envelope, 0, len(groups))
	for _, group := range groups {
		if len(group.Cell) == 0 {
			continue
		}
		elems := group.Elements()
		s.validateElements(elems)
		token, ok := elems[0].Value()
		if !ok && group.Cell[0].Ops != nil {
			token, ok = *group.Cell[0].Ops, true
		}
		if !ok || token == "" {
			s.diagnose("", "skipping tape %d: prefix element has no value", group.I)
			continue
		}
		env := Envelope{
			Protocol: token,
			Output:   s.output,
			Elements: elems,
			Cells:    group.Cell,
		}
		if name, ok := s.d.registry.ResolvePrefix(token); ok {
			env.Protocol = name
			env.Known = true
		}
		ret = append(ret, env)
	}
	return ret
}

// splitPositional walks the elements following the marker of a positional
// output. A registered prefix at relative index 0 opens an envelope and the
// chain delimiter closes it. An unregistered token at relative index 0 opens
// an unknown envelope that lasts until the next delimiter.
func (s *decodeState) splitPositional(elems []pushdata.Element) ([]Envelope, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	s.validateElements(elems)
	first, _ := elems[0].String()
	if _, ok := s.d.registry.ResolvePrefix(first); !ok {
		return nil, UnrecognizedTransactionError{Output: s.output, Token: first}
	}
	var ret []Envelope
	current := -1
	relativeIndex := 0
	for _, el := range elems {
		str, hasStr := el.String()
		if relativeIndex == 0 && hasStr {
			if name, ok := s.d.registry.ResolvePrefix(str); ok {
				ret = append(ret, Envelope{
					Protocol: name,
					Known:    true,
					Output:   s.output,
					Elements: []pushdata.Element{el},
				})
				current = len(ret) - 1
				relativeIndex = 1
				continue
			}
		}
		if hasStr && str == bitcom.ChainDelimiter {
			relativeIndex = 0
			current = -1
			continue
		}
		if relativeIndex == 0 {
			token, _ := el.Value()
			ret = append(ret, Envelope{
				Protocol: token,
				Output:   s.output,
				Elements: []pushdata.Element{el},
			})
			current = len(ret) - 1
			relativeIndex = 1
			continue
		}
		ret[current].Elements = append(ret[current].Elements, el)
		relativeIndex++
	}
	return ret, nil
}

func (s *decodeState) validateElements(elems []pushdata.Element) {
	for idx := range elems {
		if err := elems[idx].Validate(); err != nil {
			s.diagnose("", "malformed pushdata: %v", err)
		}
	}
}
