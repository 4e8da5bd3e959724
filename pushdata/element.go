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

package pushdata

import (
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	OpFalse  uint8 = 0x00
	OpReturn uint8 = 0x6a
)

// Element is a single pushdata item taken from an output script.
//
// Upstream parsers deliver each push in several renditions (text, base64 and
// hex). For every rendition at most one of the short/long slots is set: the
// long slot is used instead of the short one for large pushes.
type Element struct {
	// Position is the absolute script position in the positional shape and
	// the cell index within its group in the cell-grouped shape
	Position int
	Opcode   *uint8
	Str      *string
	LongStr  *string
	Bin      *string
	LongBin  *string
	Hex      *string
	LongHex  *string
}

// String returns the text rendition of the push
func (e *Element) String() (string, bool) {
	if e == nil {
		return "", false
	}
	if e.Str != nil {
		return *e.Str, true
	}
	if e.LongStr != nil {
		return *e.LongStr, true
	}
	return "", false
}

// Binary returns the base64 rendition of the push
func (e *Element) Binary() (string, bool) {
	if e == nil {
		return "", false
	}
	if e.Bin != nil {
		return *e.Bin, true
	}
	if e.LongBin != nil {
		return *e.LongBin, true
	}
	return "", false
}

func (e *Element) HexString() (string, bool) {
	if e == nil {
		return "", false
	}
	if e.Hex != nil {
		return *e.Hex, true
	}
	if e.LongHex != nil {
		return *e.LongHex, true
	}
	return "", false
}

// Bytes decodes the base64 rendition of the push
func (e *Element) Bytes() ([]byte, error) {
	b64, ok := e.Binary()
	if !ok {
		return nil, ErrFieldMissing
	}
	ret, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 pushdata: %w", err)
	}
	return ret, nil
}

// IsOp reports whether the element is the specified opcode
func (e *Element) IsOp(op uint8) bool {
	return e != nil && e.Opcode != nil && *e.Opcode == op
}

// Empty reports whether the element carries neither an opcode nor any value
func (e *Element) Empty() bool {
	if e == nil {
		return true
	}
	return e.Opcode == nil &&
		e.Str == nil && e.LongStr == nil &&
		e.Bin == nil && e.LongBin == nil &&
		e.Hex == nil && e.LongHex == nil
}

// Value returns the most readable rendition available, preferring text over
// base64 over hex
func (e *Element) Value() (string, bool) {
	if s, ok := e.String(); ok {
		return s, true
	}
	if b, ok := e.Binary(); ok {
		return b, true
	}
	return e.HexString()
}

// Validate checks the short/long exclusivity of each rendition and that the
// binary rendition is valid base64
func (e *Element) Validate() error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Str != nil && e.LongStr != nil {
		errs = append(errs, fmt.Errorf("position %d: both s and ls set", e.Position))
	}
	if e.Bin != nil && e.LongBin != nil {
		errs = append(errs, fmt.Errorf("position %d: both b and lb set", e.Position))
	}
	if e.Hex != nil && e.LongHex != nil {
		errs = append(errs, fmt.Errorf("position %d: both h and lh set", e.Position))
	}
	if _, ok := e.Binary(); ok {
		if _, err := e.Bytes(); err != nil {
			errs = append(errs, fmt.Errorf("position %d: %w", e.Position, err))
		}
	}
	return errors.Join(errs...)
}
