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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNormalizeHint(t *testing.T) {
	assert.Equal(t, "utf8", NormalizeHint(" UTF-8 "))
	assert.Equal(t, "text/plain", NormalizeHint("Text/Plain"))
	assert.Equal(t, "application/xjavascript", NormalizeHint("application/x-javascript"))
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name     string
		hint     Hint
		expected Kind
		err      error
	}{
		{"explicit utf8", Hint{Encoding: strp("utf8")}, KindString, nil},
		{"explicit UTF-8 with hyphen", Hint{Encoding: strp("UTF-8")}, KindString, nil},
		{"explicit gzip", Hint{Encoding: strp("gzip"), ContentType: strp("text/plain")}, KindBinary, nil},
		{"explicit wins over content type", Hint{Encoding: strp("binary"), ContentType: strp("text/html")}, KindBinary, nil},
		{"unknown explicit falls back", Hint{Encoding: strp("rot13"), ContentType: strp("image/png")}, KindBinary, nil},
		{"content type text", Hint{ContentType: strp("text/plain")}, KindString, nil},
		{"content type image", Hint{ContentType: strp("image/jpeg")}, KindBinary, nil},
		{"content type charset param", Hint{ContentType: strp("application/foo; charset=utf-8")}, KindString, nil},
		{"content type text family", Hint{ContentType: strp("text/x-unknown")}, KindString, nil},
		{"content type binary default", Hint{ContentType: strp("application/x-custom")}, KindBinary, nil},
		{"no hints", Hint{}, 0, ErrEncodingUnresolvable},
		{"unknown explicit only", Hint{Encoding: strp("rot13")}, 0, ErrEncodingUnresolvable},
		{"empty content type", Hint{ContentType: strp("  ")}, 0, ErrEncodingUnresolvable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := InferKind(tt.hint)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestResolve(t *testing.T) {
	el := &Element{
		Position: 2,
		Str:      strp("hello"),
		Bin:      strp("aGVsbG8="),
		Hex:      strp("68656c6c6f"),
	}
	val, err := Resolve(el, EncodingString, Hint{})
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	val, err = Resolve(el, EncodingBinary, Hint{})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", val)

	val, err = Resolve(el, EncodingContentType, Hint{ContentType: strp("text/plain")})
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	val, err = Resolve(el, EncodingContentType, Hint{ContentType: strp("image/png")})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", val)

	_, err = Resolve(el, EncodingContentType, Hint{})
	assert.ErrorIs(t, err, ErrEncodingUnresolvable)
}

func TestResolveLongSlots(t *testing.T) {
	el := &Element{LongStr: strp("long text"), LongBin: strp("bG9uZw==")}
	val, err := Resolve(el, EncodingString, Hint{})
	require.NoError(t, err)
	assert.Equal(t, "long text", val)
	val, err = Resolve(el, EncodingBinary, Hint{})
	require.NoError(t, err)
	assert.Equal(t, "bG9uZw==", val)
}

func TestResolveMissing(t *testing.T) {
	el := &Element{Str: strp("only text")}
	_, err := Resolve(el, EncodingBinary, Hint{})
	assert.ErrorIs(t, err, ErrFieldMissing)
	_, err = Resolve(nil, EncodingString, Hint{})
	assert.ErrorIs(t, err, ErrFieldMissing)
}

func TestEncodingSpecRoundTrip(t *testing.T) {
	for _, spec := range []EncodingSpec{EncodingString, EncodingBinary, EncodingContentType} {
		parsed, err := ParseEncodingSpec(spec.String())
		require.NoError(t, err)
		assert.Equal(t, spec, parsed)
	}
	_, err := ParseEncodingSpec("utf32")
	assert.Error(t, err)
}
