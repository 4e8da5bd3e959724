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

// Package pushdata models the pushdata items of an OP_RETURN output and
// resolves which rendition of an item a schema field should receive.
//
// An Element exposes up to three renditions of a push (text, base64 and hex),
// each in a short or long slot. Resolve picks the text or base64 rendition
// according to an EncodingSpec. For EncodingContentType the choice is
// inferred from a Hint using a fixed table of encoding names and MIME types:
//
//	kind, err := pushdata.InferKind(pushdata.Hint{ContentType: &ct})
//
// Binary values are returned as the base64 text delivered by the upstream
// parser; use Element.Bytes for the raw bytes.
package pushdata
