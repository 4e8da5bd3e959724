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
	"errors"
	"fmt"

	"github.com/blinklabs-io/bmap/pushdata"
)

// HintRole marks a leaf whose value feeds content type dependent resolution
// of its siblings
type HintRole uint8

const (
	HintNone HintRole = iota
	HintContentType
	HintEncoding
)

// FieldSpec is one entry of a Schema: a Leaf, a RepeatingGroup or a SubDispatch
type FieldSpec interface {
	isFieldSpec()
	FieldName() string
}

// Leaf maps a single pushdata element onto a named field
type Leaf struct {
	Name     string
	Encoding pushdata.EncodingSpec
	// Optional leaves are skipped without a diagnostic when absent
	Optional bool
	Hint     HintRole
}

// RepeatingGroup consumes the remainder of an envelope, cycling through its
// leaves for each element
type RepeatingGroup struct {
	Name   string
	Leaves []Leaf
}

// SubDispatch selects a nested schema by the value of its element
type SubDispatch struct {
	Name     string
	Variants map[string]Schema
}

func (Leaf) isFieldSpec()           {}
func (RepeatingGroup) isFieldSpec() {}
func (SubDispatch) isFieldSpec()    {}

func (l Leaf) FieldName() string           { return l.Name }
func (g RepeatingGroup) FieldName() string { return g.Name }
func (d SubDispatch) FieldName() string    { return d.Name }

// Schema is the ordered field layout that follows a protocol prefix
type Schema []FieldSpec

// Validate checks the structural rules of a schema: names are set, a
// repeating group is the last entry and has leaves, and a sub-dispatch is the
// only entry at its level
func (s Schema) Validate() error {
	var errs []error
	for idx, field := range s {
		switch f := field.(type) {
		case Leaf:
			if f.Name == "" {
				errs = append(errs, fmt.Errorf("field %d: leaf without name", idx))
			}
		case RepeatingGroup:
			if len(f.Leaves) == 0 {
				errs = append(errs, fmt.Errorf("field %d: repeating group %q without leaves", idx, f.Name))
			}
			if idx != len(s)-1 {
				errs = append(errs, fmt.Errorf("field %d: repeating group %q must be last", idx, f.Name))
			}
			for leafIdx, leaf := range f.Leaves {
				if leaf.Name == "" {
					errs = append(errs, fmt.Errorf("field %d: group leaf %d without name", idx, leafIdx))
				}
			}
		case SubDispatch:
			if len(s) != 1 {
				errs = append(errs, fmt.Errorf("field %d: sub-dispatch %q must be the only field", idx, f.Name))
			}
			for variant, sub := range f.Variants {
				if err := sub.Validate(); err != nil {
					errs = append(errs, fmt.Errorf("variant %q: %w", variant, err))
				}
			}
		default:
			errs = append(errs, fmt.Errorf("field %d: unknown field spec %T", idx, field))
		}
	}
	return errors.Join(errs...)
}

// Group returns the trailing repeating group, if any
func (s Schema) Group() (RepeatingGroup, bool) {
	if len(s) == 0 {
		return RepeatingGroup{}, false
	}
	g, ok := s[len(s)-1].(RepeatingGroup)
	return g, ok
}

// HintIndex returns the schema position of the leaf with the specified role
func (s Schema) HintIndex(role HintRole) (int, bool) {
	for idx, field := range s {
		if leaf, ok := field.(Leaf); ok && leaf.Hint == role {
			return idx, true
		}
	}
	return 0, false
}
