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
	"errors"
	"fmt"

	"github.com/blinklabs-io/bmap/tx"
)

var (
	// ErrUnrecognizedTransaction indicates that the first pushdata after the
	// OP_RETURN marker of a positional output is not a registered prefix
	ErrUnrecognizedTransaction = errors.New("unrecognized transaction")
	// Aliases so callers need not import the tx package for error checks
	ErrMissingRootKey    = tx.ErrMissingRootKey
	ErrInconsistentShape = tx.ErrInconsistentShape
)

// UnrecognizedTransactionError carries the token that failed to resolve
type UnrecognizedTransactionError struct {
	Output int
	Token  string
}

func (e UnrecognizedTransactionError) Error() string {
	return fmt.Sprintf("unrecognized transaction: output %d starts with unknown prefix %q", e.Output, e.Token)
}

func (UnrecognizedTransactionError) Is(target error) bool {
	return target == ErrUnrecognizedTransaction
}

// FieldError describes a schema field that could not be resolved
type FieldError struct {
	Field    string
	Position int
	Err      error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q at position %d: %v", e.Field, e.Position, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}
