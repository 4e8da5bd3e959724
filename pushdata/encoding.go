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
	"fmt"
	"strings"
)

// Kind is the concrete interpretation of a pushdata value
type Kind uint8

const (
	KindString Kind = iota + 1
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// EncodingSpec describes how a schema field selects its value slot
type EncodingSpec uint8

const (
	EncodingString EncodingSpec = iota
	EncodingBinary
	// EncodingContentType selects string or binary from the content type and
	// encoding hints carried by sibling fields
	EncodingContentType
)

func (e EncodingSpec) String() string {
	switch e {
	case EncodingString:
		return "string"
	case EncodingBinary:
		return "binary"
	case EncodingContentType:
		return "content-type"
	default:
		return fmt.Sprintf("EncodingSpec(%d)", uint8(e))
	}
}

// ParseEncodingSpec is the inverse of EncodingSpec.String
func ParseEncodingSpec(s string) (EncodingSpec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string":
		return EncodingString, nil
	case "binary":
		return EncodingBinary, nil
	case "content-type", "contenttype":
		return EncodingContentType, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

// Hint carries the values that drive content type dependent resolution. A nil
// field means the hint element was not present in the envelope.
type Hint struct {
	Encoding    *string
	ContentType *string
}

// contentKinds maps normalized encoding names and MIME types to a kind.
// It is populated once at package initialization and never written again.
var contentKinds = buildContentKinds(
	map[Kind][]string{
		KindString: {
			"utf8",
			"utf-16",
			"ascii",
			"us-ascii",
			"latin1",
			"iso-8859-1",
			"text",
			"text/plain",
			"text/html",
			"text/markdown",
			"text/css",
			"text/csv",
			"text/xml",
			"text/javascript",
			"application/json",
			"application/javascript",
			"application/x-javascript",
			"application/xml",
			"application/xhtml+xml",
			"application/ld+json",
			"image/svg+xml",
		},
		KindBinary: {
			"binary",
			"gzip",
			"base64",
			"hex",
			"application/octet-stream",
			"application/gzip",
			"application/x-gzip",
			"application/zip",
			"application/pdf",
			"image/png",
			"image/jpeg",
			"image/jpg",
			"image/gif",
			"image/webp",
			"image/bmp",
			"image/x-icon",
			"audio/mpeg",
			"audio/ogg",
			"audio/wav",
			"video/mp4",
			"video/webm",
		},
	},
)

func buildContentKinds(src map[Kind][]string) map[string]Kind {
	ret := make(map[string]Kind)
	for kind, names := range src {
		for _, name := range names {
			ret[NormalizeHint(name)] = kind
		}
	}
	return ret
}

// NormalizeHint case-folds an encoding or content type name and strips
// hyphens and surrounding whitespace
func NormalizeHint(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
}

// LookupKind returns the kind registered for an encoding name or MIME type
func LookupKind(name string) (Kind, bool) {
	kind, ok := contentKinds[NormalizeHint(name)]
	return kind, ok
}

// InferKind selects a kind from the hint. An explicit encoding found in the
// lookup table wins. Otherwise the content type is used: table entry first,
// then the MIME family, with binary as the default for any other content
// type. ErrEncodingUnresolvable is returned when neither hint is usable.
func InferKind(h Hint) (Kind, error) {
	if h.Encoding != nil {
		if kind, ok := LookupKind(*h.Encoding); ok {
			return kind, nil
		}
	}
	if h.ContentType == nil {
		return 0, ErrEncodingUnresolvable
	}
	mimeType, params, _ := strings.Cut(*h.ContentType, ";")
	if strings.Contains(strings.ToLower(params), "charset=") {
		return KindString, nil
	}
	mimeType = NormalizeHint(mimeType)
	if mimeType == "" {
		return 0, ErrEncodingUnresolvable
	}
	if kind, ok := contentKinds[mimeType]; ok {
		return kind, nil
	}
	family, _, _ := strings.Cut(mimeType, "/")
	if family == "text" {
		return KindString, nil
	}
	return KindBinary, nil
}

// Resolve returns the value of the element selected by spec
func Resolve(el *Element, spec EncodingSpec, h Hint) (string, error) {
	switch spec {
	case EncodingString:
		return resolveKind(el, KindString)
	case EncodingBinary:
		return resolveKind(el, KindBinary)
	case EncodingContentType:
		kind, err := InferKind(h)
		if err != nil {
			return "", err
		}
		return resolveKind(el, kind)
	default:
		return "", fmt.Errorf("unsupported encoding spec: %s", spec)
	}
}

func resolveKind(el *Element, kind Kind) (string, error) {
	var val string
	var ok bool
	switch kind {
	case KindString:
		val, ok = el.String()
	case KindBinary:
		val, ok = el.Binary()
	}
	if !ok {
		return "", ErrFieldMissing
	}
	return val, nil
}
