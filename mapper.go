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
	"github.com/blinklabs-io/bmap/bitcom"
	"github.com/blinklabs-io/bmap/pushdata"
)

// Fields is the decoded field mapping of one protocol envelope
type Fields map[string]any

// mapping is the output of the schema field mapper for one envelope
type mapping struct {
	Fields Fields
	// Group holds one small record per element consumed by a repeating group
	Group     []Fields
	GroupName string
}

// mapFields applies a schema to the data elements of an envelope. Leaf k of
// the schema maps to data element k. Problems are reported as diagnostics and
// the affected field is omitted.
func (s *decodeState) mapFields(env Envelope, schema bitcom.Schema) mapping {
	data := env.Data()
	ret := mapping{Fields: make(Fields)}
	hint := schemaHint(schema, data)
	consumed := 0
	for idx, field := range schema {
		switch f := field.(type) {
		case bitcom.Leaf:
			consumed = idx + 1
			if idx >= len(data) || data[idx].Empty() {
				if !f.Optional {
					s.diagnose(env.Protocol, "required field %q absent at position %d", f.Name, idx+1)
				}
				continue
			}
			val, err := pushdata.Resolve(&data[idx], f.Encoding, hint)
			if err != nil {
				s.diagnose(env.Protocol, "%v", FieldError{Field: f.Name, Position: idx + 1, Err: err})
				continue
			}
			ret.Fields[f.Name] = val
		case bitcom.RepeatingGroup:
			ret.GroupName = f.Name
			ret.Group = make([]Fields, 0, max(len(data)-idx, 0))
			for pos := idx; pos < len(data); pos++ {
				leaf := f.Leaves[(pos-idx)%len(f.Leaves)]
				val, err := pushdata.Resolve(&data[pos], leaf.Encoding, hint)
				if err != nil {
					s.diagnose(env.Protocol, "%v", FieldError{Field: leaf.Name, Position: pos + 1, Err: err})
					continue
				}
				ret.Group = append(ret.Group, Fields{leaf.Name: val})
			}
			consumed = max(len(data), idx)
		case bitcom.SubDispatch:
			s.diagnose(env.Protocol, "sub-dispatch %q is not decoded", f.Name)
			consumed = len(data)
		default:
			s.diagnose(env.Protocol, "unsupported field spec %T", field)
		}
	}
	for pos := consumed; pos < len(data); pos++ {
		s.diagnose(env.Protocol, "no schema field for position %d", pos+1)
	}
	return ret
}

// schemaHint collects the content type and encoding hint values of an envelope
func schemaHint(schema bitcom.Schema, data []pushdata.Element) pushdata.Hint {
	var hint pushdata.Hint
	if idx, ok := schema.HintIndex(bitcom.HintContentType); ok && idx < len(data) {
		if val, ok := data[idx].String(); ok {
			hint.ContentType = &val
		}
	}
	if idx, ok := schema.HintIndex(bitcom.HintEncoding); ok && idx < len(data) {
		if val, ok := data[idx].String(); ok {
			hint.Encoding = &val
		}
	}
	return hint
}

// genericFields merges a mapping into a single field set. Group records are
// stored under the group name.
func genericFields(m mapping) Fields {
	if m.GroupName != "" && len(m.Group) > 0 {
		m.Fields[m.GroupName] = m.Group
	}
	return m.Fields
}
