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
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/blinklabs-io/bmap/pushdata"
)

// Bucket is the rendition encoded in a positional key
type Bucket uint8

const (
	BucketString Bucket = iota + 1
	BucketBinary
	BucketHex
)

// ParsePositionalKey parses keys of the form [l]<s|b|h><position>, such as
// "s1", "lb4" or "h12"
func ParsePositionalKey(key string) (position int, bucket Bucket, long bool, ok bool) {
	rest := key
	if after, found := strings.CutPrefix(rest, "l"); found {
		long = true
		rest = after
	}
	if len(rest) < 2 {
		return 0, 0, false, false
	}
	switch rest[0] {
	case 's':
		bucket = BucketString
	case 'b':
		bucket = BucketBinary
	case 'h':
		bucket = BucketHex
	default:
		return 0, 0, false, false
	}
	digits := rest[1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, 0, false, false
		}
	}
	pos, err := strconv.Atoi(digits)
	if err != nil || pos < 0 {
		return 0, 0, false, false
	}
	return pos, bucket, long, true
}

// PositionalOutput is the bucketed form of a positional output
type PositionalOutput struct {
	Elements map[int]*pushdata.Element
	// MaxPosition is the highest position observed, or -1 when there are none
	MaxPosition int
	// Other holds keys that are not positional pushdata keys, verbatim
	Other map[string]any
}

// ParsePositional buckets the keys of a positional output by position
func ParsePositional(fields map[string]any) PositionalOutput {
	ret := PositionalOutput{
		Elements:    make(map[int]*pushdata.Element),
		MaxPosition: -1,
		Other:       make(map[string]any),
	}
	for key, value := range fields {
		pos, bucket, long, ok := ParsePositionalKey(key)
		if !ok {
			ret.Other[key] = value
			continue
		}
		el, exists := ret.Elements[pos]
		if !exists {
			el = &pushdata.Element{Position: pos}
		}
		if !assignPositional(el, bucket, long, value) {
			ret.Other[key] = value
			continue
		}
		ret.Elements[pos] = el
		if pos > ret.MaxPosition {
			ret.MaxPosition = pos
		}
	}
	return ret
}

func assignPositional(el *pushdata.Element, bucket Bucket, long bool, value any) bool {
	if bucket == BucketBinary && !long {
		if op, ok := opcodeValue(value); ok {
			el.Opcode = &op
			return true
		}
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	switch bucket {
	case BucketString:
		if long {
			el.LongStr = &s
		} else {
			el.Str = &s
		}
	case BucketBinary:
		if long {
			el.LongBin = &s
		} else {
			el.Bin = &s
		}
	case BucketHex:
		if long {
			el.LongHex = &s
		} else {
			el.Hex = &s
		}
	}
	return true
}

// opcodeValue extracts n from an opcode object of the form {"op": n}
func opcodeValue(value any) (uint8, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return 0, false
	}
	var n float64
	switch v := obj["op"].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case float64:
		n = v
	case int:
		n = float64(v)
	case uint8:
		n = float64(v)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxUint8 || n != math.Trunc(n) {
		return 0, false
	}
	return uint8(n), true
}

// DataStart returns the first position after the OP_RETURN marker
func (p PositionalOutput) DataStart() (int, bool) {
	if p.Elements[0].IsOp(pushdata.OpReturn) {
		return 1, true
	}
	if p.Elements[0].IsOp(pushdata.OpFalse) && p.Elements[1].IsOp(pushdata.OpReturn) {
		return 2, true
	}
	return 0, false
}

// DataElements returns the elements from the first position after the marker
// through MaxPosition, in position order. Positions with no keys are returned
// as empty elements so that offsets are preserved.
func (p PositionalOutput) DataElements() ([]pushdata.Element, bool) {
	start, ok := p.DataStart()
	if !ok {
		return nil, false
	}
	if p.MaxPosition < start {
		return []pushdata.Element{}, true
	}
	ret := make([]pushdata.Element, 0, p.MaxPosition-start+1)
	for pos := start; pos <= p.MaxPosition; pos++ {
		if el, ok := p.Elements[pos]; ok {
			ret = append(ret, *el)
			continue
		}
		ret = append(ret, pushdata.Element{Position: pos})
	}
	return ret, true
}
