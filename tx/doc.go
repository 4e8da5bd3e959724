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

// Package tx models parsed transactions as delivered by upstream indexers and
// adapts their outputs into pushdata elements.
//
// Two output shapes are supported:
//
//   - positional: pushdata keyed by "[l]<s|b|h><position>" (for example
//     "s1", "lb3", "h2"), with opcodes as {"op": n} objects under "b<n>"
//   - cell-grouped: a "tape" list where each tape holds the "cell" list of one
//     protocol envelope, already split at OP_RETURN and the "|" delimiter
//
// A transaction must use a single shape for all of its outputs.
package tx
