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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSet(t *testing.T) {
	testDefs := []struct {
		name     string
		entries  []Fields
		expected Fields
		reports  int
	}{
		{
			name:     "Empty",
			expected: Fields{"cmd": "SET"},
		},
		{
			name: "Pairs",
			entries: []Fields{
				{"key": "a"}, {"val": "1"},
				{"key": "b"}, {"val": "2"},
			},
			expected: Fields{"cmd": "SET", "a": "1", "b": "2"},
		},
		{
			name: "KeyFollowedByKey",
			entries: []Fields{
				{"key": "a"}, {"key": "b"}, {"val": "2"},
			},
			expected: Fields{"cmd": "SET", "b": "2"},
			reports:  1,
		},
		{
			name: "ValueFirst",
			entries: []Fields{
				{"val": "1"}, {"key": "a"}, {"val": "2"},
			},
			expected: Fields{"cmd": "SET", "a": "2"},
			reports:  1,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			var reports []string
			report := func(format string, args ...any) {
				reports = append(reports, fmt.Sprintf(format, args...))
			}
			fields := Fields{"cmd": "SET"}
			mapSet(fields, testDef.entries, report)
			assert.Equal(t, testDef.expected, fields)
			assert.Len(t, reports, testDef.reports)
		})
	}
}

func TestRelocateLinkage(t *testing.T) {
	record := Record{
		"METANET":  Fields{"node": MetanetNode{}},
		"ancestor": []any{"a"},
		"head":     false,
		"blk":      1,
	}
	relocateLinkage(record)
	assert.Equal(
		t,
		Record{
			"METANET": Fields{
				"node":     MetanetNode{},
				"ancestor": []any{"a"},
				"head":     false,
			},
			"blk": 1,
		},
		record,
	)
}

func TestCborValue(t *testing.T) {
	in := map[string]any{
		"int":    json.Number("42"),
		"float":  json.Number("1.5"),
		"fields": Fields{"n": json.Number("-7")},
		"list":   []any{json.Number("1"), "x"},
		"plain":  "text",
	}
	assert.Equal(
		t,
		map[string]any{
			"int":    int64(42),
			"float":  1.5,
			"fields": map[string]any{"n": int64(-7)},
			"list":   []any{int64(1), "x"},
			"plain":  "text",
		},
		cborValue(in),
	)
	// The source is left untouched
	assert.Equal(t, json.Number("42"), in["int"])
}
