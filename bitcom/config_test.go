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

package bitcom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/bmap/pushdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
protocols:
  - name: TAGS
    prefix: tags
    literal: true
    fields:
      - name: body
        encoding: content-type
      - name: mime
        hint: content-type
      - name: note
        optional: true
  - name: PAIRS
    prefix: pairs
    literal: true
    fields:
      - name: cmd
      - group: entries
        fields:
          - name: key
          - name: val
            encoding: binary
`

func TestLoadConfig(t *testing.T) {
	protocols, err := LoadConfig(strings.NewReader(testConfig))
	require.NoError(t, err)
	require.Len(t, protocols, 2)

	assert.Equal(t, Protocol{
		Name:    "TAGS",
		Prefix:  "tags",
		Literal: true,
		Schema: Schema{
			Leaf{Name: "body", Encoding: pushdata.EncodingContentType},
			Leaf{Name: "mime", Encoding: pushdata.EncodingString, Hint: HintContentType},
			Leaf{Name: "note", Encoding: pushdata.EncodingString, Optional: true},
		},
	}, protocols[0])

	group, ok := protocols[1].Schema.Group()
	require.True(t, ok)
	assert.Equal(t, "entries", group.Name)
	assert.Equal(t, []Leaf{
		{Name: "key", Encoding: pushdata.EncodingString},
		{Name: "val", Encoding: pushdata.EncodingBinary},
	}, group.Leaves)

	r, err := DefaultRegistry().Extend(protocols...)
	require.NoError(t, err)
	name, ok := r.ResolvePrefix("pairs")
	assert.True(t, ok)
	assert.Equal(t, "PAIRS", name)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protocols.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	protocols, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Len(t, protocols, 2)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigEmpty(t *testing.T) {
	protocols, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, protocols)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "protocols:\n  - name: X\n    prefx: x\n"},
		{"bad encoding", "protocols:\n  - name: X\n    prefix: x\n    fields:\n      - name: a\n        encoding: utf32\n"},
		{"bad hint", "protocols:\n  - name: X\n    prefix: x\n    fields:\n      - name: a\n        hint: charset\n"},
		{"nested leaf", "protocols:\n  - name: X\n    prefix: x\n    fields:\n      - name: a\n        fields:\n          - name: b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}
