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
	"github.com/blinklabs-io/bmap/pushdata"
	"github.com/jinzhu/copier"
)

// Cell is a single pushdata item of the cell-grouped shape
type Cell struct {
	S   *string `json:"s,omitempty"`
	LS  *string `json:"ls,omitempty"`
	B   *string `json:"b,omitempty"`
	LB  *string `json:"lb,omitempty"`
	H   *string `json:"h,omitempty"`
	LH  *string `json:"lh,omitempty"`
	Op  *uint8  `json:"op,omitempty"`
	Ops *string `json:"ops,omitempty"`
	// I is the index within the tape, II the index within the output script
	I  int `json:"i"`
	II int `json:"ii"`
}

// Element converts the cell to a pushdata element positioned at its index
// within the tape
func (c Cell) Element() pushdata.Element {
	return pushdata.Element{
		Position: c.I,
		Opcode:   c.Op,
		Str:      c.S,
		LongStr:  c.LS,
		Bin:      c.B,
		LongBin:  c.LB,
		Hex:      c.H,
		LongHex:  c.LH,
	}
}

// Tape is one group of cells. The upstream parser splits an output script
// into tapes at OP_RETURN and at the chain delimiter.
type Tape struct {
	Cell []Cell `json:"cell"`
	I    int    `json:"i"`
}

// Elements converts every cell of the tape
func (t Tape) Elements() []pushdata.Element {
	ret := make([]pushdata.Element, 0, len(t.Cell))
	for _, c := range t.Cell {
		ret = append(ret, c.Element())
	}
	return ret
}

// IsMarker reports whether the tape is exactly an OP_RETURN or an
// OP_FALSE OP_RETURN sequence
func (t Tape) IsMarker() bool {
	switch len(t.Cell) {
	case 1:
		return isOp(t.Cell[0], pushdata.OpReturn)
	case 2:
		return isOp(t.Cell[0], pushdata.OpFalse) &&
			isOp(t.Cell[1], pushdata.OpReturn)
	default:
		return false
	}
}

func isOp(c Cell, op uint8) bool {
	return c.Op != nil && *c.Op == op
}

// Edge is the address and value information attached to an input or output
type Edge struct {
	A *string `json:"a,omitempty"`
	V *uint64 `json:"v,omitempty"`
	I uint32  `json:"i"`
	H *string `json:"h,omitempty"`
}

// Input is a transaction input. For spending inputs E.H and E.A reference the
// previous transaction and the address of the spent output.
type Input struct {
	I    uint32  `json:"i"`
	Seq  *uint32 `json:"seq,omitempty"`
	E    Edge    `json:"e"`
	Tape []Tape  `json:"tape,omitempty"`
}

// InputSummary is an input with its script tape removed
type InputSummary struct {
	I   uint32  `json:"i"`
	Seq *uint32 `json:"seq,omitempty"`
	E   Edge    `json:"e"`
}

// Summary strips the script tape from the input
func (in Input) Summary() (InputSummary, error) {
	var ret InputSummary
	if err := copier.Copy(&ret, &in); err != nil {
		return InputSummary{}, err
	}
	return ret, nil
}
