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
	"errors"
	"fmt"
)

var (
	ErrMissingRootKey    = errors.New("missing required root key")
	ErrInconsistentShape = errors.New("outputs mix positional and cell-grouped shapes")
)

// MissingRootKeyError names the required root key that was absent
type MissingRootKeyError struct {
	Key string
}

func (e MissingRootKeyError) Error() string {
	return fmt.Sprintf("missing required root key %q", e.Key)
}

func (MissingRootKeyError) Is(target error) bool {
	return target == ErrMissingRootKey
}
