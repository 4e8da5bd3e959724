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

// Package cbor provides deterministic CBOR encoding of decoded records.
//
// This package wraps github.com/fxamacker/cbor/v2. Maps are always encoded
// with core deterministic key ordering so that the same record produces the
// same bytes. Structs without cbor tags fall back to their json tags.
//
// Decoding returns map[string]any for CBOR maps, which matches the shape of
// a decoded record.
package cbor
