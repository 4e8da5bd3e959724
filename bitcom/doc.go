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

// Package bitcom holds the registry of bitcom protocols: the prefix tokens
// that open a protocol envelope inside an OP_RETURN output, their canonical
// names, and the schema describing the fields that follow each prefix.
//
// Most prefixes are base58check addresses; a few (METANET's "meta", BITCOM's
// "$") are literal tokens. Registries are immutable once built; Extend
// returns a new registry, and LoadConfig reads extra protocol definitions
// from YAML.
package bitcom
