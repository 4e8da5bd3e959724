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
	"io"
	"os"

	"github.com/blinklabs-io/bmap/pushdata"
	"gopkg.in/yaml.v3"
)

// Config is the YAML document accepted by LoadConfig
//
//	protocols:
//	  - name: BITPIC
//	    prefix: 18pAqbYqhzErT6Zk3a5dwxHtB9icv8jH2p
//	    fields:
//	      - name: paymail
//	      - name: signature
//	        encoding: binary
//	      - group: extra
//	        fields:
//	          - name: key
//	          - name: val
type Config struct {
	Protocols []ProtocolConfig `yaml:"protocols"`
}

type ProtocolConfig struct {
	Name    string        `yaml:"name"`
	Prefix  string        `yaml:"prefix"`
	Literal bool          `yaml:"literal"`
	Fields  []FieldConfig `yaml:"fields"`
}

// FieldConfig describes a leaf, or a repeating group when Group is set
type FieldConfig struct {
	Name     string        `yaml:"name"`
	Encoding string        `yaml:"encoding"`
	Optional bool          `yaml:"optional"`
	Hint     string        `yaml:"hint"`
	Group    string        `yaml:"group"`
	Fields   []FieldConfig `yaml:"fields"`
}

// LoadConfig parses YAML protocol definitions
func LoadConfig(r io.Reader) ([]Protocol, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse protocol config: %w", err)
	}
	ret := make([]Protocol, 0, len(cfg.Protocols))
	for _, pc := range cfg.Protocols {
		p, err := pc.protocol()
		if err != nil {
			return nil, ProtocolError{Protocol: pc.Name, Err: err}
		}
		ret = append(ret, p)
	}
	return ret, nil
}

// LoadConfigFile parses YAML protocol definitions from a file
func LoadConfigFile(path string) ([]Protocol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

func (pc ProtocolConfig) protocol() (Protocol, error) {
	p := Protocol{
		Name:    pc.Name,
		Prefix:  pc.Prefix,
		Literal: pc.Literal,
		Schema:  make(Schema, 0, len(pc.Fields)),
	}
	for _, fc := range pc.Fields {
		if fc.Group != "" {
			group := RepeatingGroup{Name: fc.Group}
			for _, leafConfig := range fc.Fields {
				leaf, err := leafConfig.leaf()
				if err != nil {
					return Protocol{}, fmt.Errorf("group %s: %w", fc.Group, err)
				}
				group.Leaves = append(group.Leaves, leaf)
			}
			p.Schema = append(p.Schema, group)
			continue
		}
		leaf, err := fc.leaf()
		if err != nil {
			return Protocol{}, err
		}
		p.Schema = append(p.Schema, leaf)
	}
	return p, nil
}

func (fc FieldConfig) leaf() (Leaf, error) {
	if len(fc.Fields) > 0 {
		return Leaf{}, fmt.Errorf("field %s: nested fields require group", fc.Name)
	}
	encoding, err := pushdata.ParseEncodingSpec(fc.Encoding)
	if err != nil {
		return Leaf{}, fmt.Errorf("field %s: %w", fc.Name, err)
	}
	leaf := Leaf{
		Name:     fc.Name,
		Encoding: encoding,
		Optional: fc.Optional,
	}
	switch fc.Hint {
	case "":
	case "content-type":
		leaf.Hint = HintContentType
	case "encoding":
		leaf.Hint = HintEncoding
	default:
		return Leaf{}, fmt.Errorf("field %s: unknown hint %q", fc.Name, fc.Hint)
	}
	return leaf, nil
}
