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

package bmap_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/bmap"
	"github.com/blinklabs-io/bmap/bitcom"
	"github.com/blinklabs-io/bmap/cbor"
	"github.com/blinklabs-io/bmap/internal/test"
	"github.com/blinklabs-io/bmap/pushdata"
	"github.com/blinklabs-io/bmap/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cellTxJSON = `{
  "tx": {"h": "d1b2"},
  "blk": {"i": 640000, "t": 1592000000},
  "in": [
    {
      "i": 0,
      "seq": 4294967295,
      "e": {"a": "1BAESxdBZhXbKagE3hcvsTDXJmE2cfyLhR", "h": "ab01", "i": 1},
      "tape": [{"cell": [{"b": "MEUC", "s": "0E\u0002", "i": 0, "ii": 0}], "i": 0}]
    }
  ],
  "out": [
    {
      "i": 0,
      "e": {"v": 0, "i": 0},
      "tape": [
        {"cell": [{"op": 0, "ops": "OP_0", "i": 0, "ii": 0}, {"op": 106, "ops": "OP_RETURN", "i": 1, "ii": 1}], "i": 0},
        {"cell": [
          {"s": "1PuQa7K62MiKCtssSLKy1kh56WWU7MtUR5", "i": 0, "ii": 2},
          {"s": "SET", "i": 1, "ii": 3},
          {"s": "app", "i": 2, "ii": 4},
          {"s": "bmap", "i": 3, "ii": 5}
        ], "i": 1}
      ]
    },
    {"i": 1, "e": {"v": 546, "i": 1, "a": "1BAESxdBZhXbKagE3hcvsTDXJmE2cfyLhR"}, "tape": []}
  ]
}`

const positionalTxJSON = `{
  "tx": {"h": "e2c3"},
  "in": [{"i": 0, "e": {"a": "1BAESxdBZhXbKagE3hcvsTDXJmE2cfyLhR", "h": "ab01", "i": 0}}],
  "out": [
    {
      "i": 0,
      "str": "OP_RETURN 19HxigV4QyBv3tHpQVcUEQyq1pzZVdoAut",
      "e": {"v": 0, "i": 0},
      "b0": {"op": 106},
      "s1": "19HxigV4QyBv3tHpQVcUEQyq1pzZVdoAut",
      "ls2": "hello world",
      "lb2": "aGVsbG8gd29ybGQ=",
      "s3": "text/plain",
      "s4": "UTF-8"
    }
  ]
}`

func TestDecodeJSONCell(t *testing.T) {
	rec := &diagnosticRecorder{}
	record, err := bmap.New(bmap.WithDiagnosticSink(rec)).DecodeJSON(context.Background(), []byte(cellTxJSON))
	require.NoError(t, err)
	assert.Equal(t, bmap.Fields{"cmd": "SET", "app": "bmap"}, record[bitcom.ProtocolMAP])
	assert.Equal(
		t,
		map[string]any{"i": json.Number("640000"), "t": json.Number("1592000000")},
		record["blk"],
	)
	inputs := record.Inputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, uint32(4294967295), *inputs[0].Seq)
	assert.Empty(t, rec.Diagnostics())

	// Inputs are passed through without their tape
	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tape")
}

func TestDecodeJSONPositional(t *testing.T) {
	rec := &diagnosticRecorder{}
	record, err := bmap.New(bmap.WithDiagnosticSink(rec)).DecodeJSON(context.Background(), []byte(positionalTxJSON))
	require.NoError(t, err)
	assert.Equal(
		t,
		bmap.Fields{
			"content":      "hello world",
			"content-type": "text/plain",
			"encoding":     "UTF-8",
		},
		record[bitcom.ProtocolB],
	)
	assert.Empty(t, rec.Diagnostics())
}

func TestDecodeJSONErrors(t *testing.T) {
	d := bmap.New(bmap.WithDiagnosticSink(bmap.DiscardSink))
	_, err := d.DecodeJSON(context.Background(), []byte(`{"out": []}`))
	assert.ErrorIs(t, err, bmap.ErrMissingRootKey)
	_, err = d.DecodeJSON(context.Background(), []byte(`{"in": [], "out": [`))
	assert.Error(t, err)
}

func TestRecordMarshalCBOR(t *testing.T) {
	record, err := bmap.New(bmap.WithDiagnosticSink(bmap.DiscardSink)).DecodeJSON(context.Background(), []byte(cellTxJSON))
	require.NoError(t, err)
	cborData, err := record.MarshalCBOR()
	require.NoError(t, err)
	var decoded map[string]any
	_, err = cbor.Decode(cborData, &decoded)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"cmd": "SET", "app": "bmap"}, decoded[bitcom.ProtocolMAP])
	assert.Equal(
		t,
		map[string]any{"i": uint64(640000), "t": uint64(1592000000)},
		decoded["blk"],
	)
	inputs, ok := decoded[tx.KeyIn].([]any)
	require.True(t, ok)
	require.Len(t, inputs, 1)
	assert.NotContains(t, inputs[0], "tape")

	// Encoding through the cbor package directly uses the same method
	viaPackage, err := cbor.Encode(record)
	require.NoError(t, err)
	assert.Equal(t, cborData, viaPackage)
}

func TestRecordAccessors(t *testing.T) {
	record := bmap.Record{
		bitcom.ProtocolMAP:    bmap.Fields{"cmd": "SET"},
		bitcom.ProtocolBitcom: []string{"echo"},
	}
	fields, ok := record.Fields(bitcom.ProtocolMAP)
	assert.True(t, ok)
	assert.Equal(t, "SET", fields["cmd"])
	_, ok = record.Fields(bitcom.ProtocolBitcom)
	assert.False(t, ok)
	assert.Nil(t, record.Inputs())
	assert.True(t, record.Has(bitcom.ProtocolBitcom))
	assert.False(t, record.Has(bitcom.ProtocolB))
}

// Protocols whose records are produced by dedicated normalizers are covered
// by their own tests
var normalizedProtocols = map[string]bool{
	bitcom.ProtocolMAP:     true,
	bitcom.ProtocolAIP:     true,
	bitcom.ProtocolHAIP:    true,
	bitcom.ProtocolMetanet: true,
	bitcom.ProtocolBitcom:  true,
}

func TestSchemaRoundTrip(t *testing.T) {
	for _, protocol := range bitcom.DefaultRegistry().Protocols() {
		if normalizedProtocols[protocol.Name] {
			continue
		}
		t.Run(protocol.Name, func(t *testing.T) {
			cells := []tx.Cell{test.StrCell(0, protocol.Prefix)}
			expected := bmap.Fields{}
			for idx, field := range protocol.Schema {
				leaf, ok := field.(bitcom.Leaf)
				require.True(t, ok, "unexpected field spec %T", field)
				val := "value-" + leaf.Name
				switch leaf.Hint {
				case bitcom.HintContentType:
					val = "text/plain"
				case bitcom.HintEncoding:
					val = "utf8"
				}
				if leaf.Encoding == pushdata.EncodingBinary {
					cells = append(cells, test.BinCell(idx+1, []byte(val)))
					expected[leaf.Name] = base64.StdEncoding.EncodeToString([]byte(val))
					continue
				}
				cells = append(cells, test.StrCell(idx+1, val))
				expected[leaf.Name] = val
			}
			record, rec := decode(t, test.Transaction(test.CellOutput(tx.Tape{Cell: cells})))
			assert.Equal(t, expected, record[protocol.Name])
			assert.Empty(t, rec.Diagnostics())
		})
	}
}
