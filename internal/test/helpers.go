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

package test

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blinklabs-io/bmap/pushdata"
	"github.com/blinklabs-io/bmap/tx"
)

// Values used for the spending input of fixture transactions
const (
	InputAddress = "1BAESxdBZhXbKagE3hcvsTDXJmE2cfyLhR"
	PrevTxID     = "6d1e3d3a1e3fc2a16ee6cc5bd2d1cd2d39c0e9d0e50f7a2e3dffb0a1e9a2c4b7"
	TxID         = "0e3c9f6b7b3d3c4b9a0a3fe4c1c1bd2f11b6c55a9d6b5ad2a4f0c5c0b1e2d3f4"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Ptr returns a pointer to a copy of v
func Ptr[T any](v T) *T {
	return &v
}

// StrCell returns a cell for a push of a UTF-8 string. Like the upstream
// parser, it carries the string, base64 and hex renditions of the push.
func StrCell(i int, s string) tx.Cell {
	return tx.Cell{
		S: Ptr(s),
		B: Ptr(base64.StdEncoding.EncodeToString([]byte(s))),
		H: Ptr(hex.EncodeToString([]byte(s))),
		I: i,
	}
}

// BinCell returns a cell for a push of arbitrary bytes
func BinCell(i int, data []byte) tx.Cell {
	return tx.Cell{
		B: Ptr(base64.StdEncoding.EncodeToString(data)),
		H: Ptr(hex.EncodeToString(data)),
		I: i,
	}
}

// OpCell returns a cell for a bare opcode
func OpCell(i int, op uint8) tx.Cell {
	return tx.Cell{
		Op: Ptr(op),
		I:  i,
	}
}

// MarkerTape returns the OP_FALSE OP_RETURN tape
func MarkerTape() tx.Tape {
	return tx.Tape{
		Cell: []tx.Cell{
			OpCell(0, pushdata.OpFalse),
			OpCell(1, pushdata.OpReturn),
		},
	}
}

// ReturnTape returns the single OP_RETURN marker tape
func ReturnTape() tx.Tape {
	return tx.Tape{
		Cell: []tx.Cell{
			OpCell(0, pushdata.OpReturn),
		},
	}
}

// StrTape returns a tape of string cells
func StrTape(values ...string) tx.Tape {
	ret := tx.Tape{
		Cell: make([]tx.Cell, 0, len(values)),
	}
	for idx, val := range values {
		ret.Cell = append(ret.Cell, StrCell(idx, val))
	}
	return ret
}

// CellOutput returns a cell-grouped output with the marker tape followed by
// the specified tapes
func CellOutput(tapes ...tx.Tape) tx.Output {
	ret := tx.Output{
		Tape: append([]tx.Tape{MarkerTape()}, tapes...),
	}
	for idx := range ret.Tape {
		ret.Tape[idx].I = idx
	}
	return ret
}

// PositionalOutput returns a positional output with OP_RETURN at position 0
// and the values as string pushes from position 1
func PositionalOutput(values ...string) tx.Output {
	fields := map[string]any{
		"b0": map[string]any{"op": json.Number("106")},
	}
	for idx, val := range values {
		fields[fmt.Sprintf("s%d", idx+1)] = val
	}
	return tx.Output{Pushdata: fields}
}

// FalseReturnPositionalOutput returns a positional output with OP_FALSE
// OP_RETURN at positions 0 and 1 and the values as string pushes from
// position 2
func FalseReturnPositionalOutput(values ...string) tx.Output {
	fields := map[string]any{
		"b0": map[string]any{"op": json.Number("0")},
		"b1": map[string]any{"op": json.Number("106")},
	}
	for idx, val := range values {
		fields[fmt.Sprintf("s%d", idx+2)] = val
	}
	return tx.Output{Pushdata: fields}
}

// Transaction returns a transaction with one spending input and the
// specified outputs
func Transaction(outputs ...tx.Output) *tx.Transaction {
	return &tx.Transaction{
		In: []tx.Input{
			{
				E: tx.Edge{
					A: Ptr(InputAddress),
					H: Ptr(PrevTxID),
				},
				Tape: []tx.Tape{StrTape("3045", "02ab")},
			},
		},
		Out: outputs,
		ID:  TxID,
		Root: map[string]any{
			tx.KeyTx: map[string]any{"h": TxID},
		},
	}
}
