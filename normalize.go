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
	"github.com/blinklabs-io/bmap/hashing"
)

const (
	// attestationMinElements includes the prefix
	attestationMinElements = 4

	mapCmdSet = "SET"
)

// Root keys supplied by metanet aggregation that are moved under METANET
var metanetLinkageKeys = []string{"ancestor", "child", "head"}

// Reporter records a diagnostic for the envelope being normalized
type Reporter func(format string, args ...any)

// MapCommandHandler folds the key/value records that follow a MAP command
// into fields. Each entry holds a single "key" or "val" field in script order.
type MapCommandHandler func(fields Fields, entries []Fields, report Reporter)

// MetanetNode identifies a node or its parent in a METANET record
type MetanetNode struct {
	Address string `json:"a" cbor:"a"`
	Tx      string `json:"tx" cbor:"tx"`
	ID      string `json:"id,omitempty" cbor:"id,omitempty"`
}

func defaultMapCommands() map[string]MapCommandHandler {
	return map[string]MapCommandHandler{
		mapCmdSet: mapSet,
	}
}

// normalize produces the record value of a registered protocol envelope. ok is
// false when the envelope is dropped.
func (s *decodeState) normalize(env Envelope) (any, bool) {
	schema, _ := s.d.registry.Schema(env.Protocol)
	switch env.Protocol {
	case bitcom.ProtocolMAP:
		return s.normalizeMap(env, schema)
	case bitcom.ProtocolAIP, bitcom.ProtocolHAIP:
		return s.normalizeAttestation(env, schema)
	case bitcom.ProtocolMetanet:
		return s.normalizeMetanet(env, schema)
	case bitcom.ProtocolBitcom:
		return s.normalizeBitcom(env), true
	default:
		return genericFields(s.mapFields(env, schema)), true
	}
}

func (s *decodeState) normalizeMap(env Envelope, schema bitcom.Schema) (any, bool) {
	m := s.mapFields(env, schema)
	cmd, ok := m.Fields["cmd"].(string)
	if !ok {
		s.diagnose(env.Protocol, "dropping envelope without command")
		return nil, false
	}
	fields := Fields{"cmd": cmd}
	if handler, ok := s.d.mapCommands[cmd]; ok {
		handler(fields, m.Group, s.reporter(env.Protocol))
	}
	return fields, true
}

// mapSet pairs keys with the values that follow them. A repeated key keeps
// the last value.
func mapSet(fields Fields, entries []Fields, report Reporter) {
	var key string
	haveKey := false
	for _, entry := range entries {
		if k, ok := entry["key"].(string); ok {
			if haveKey {
				report("key %q has no value", key)
			}
			key = k
			haveKey = true
			continue
		}
		val, ok := entry["val"]
		if !ok {
			continue
		}
		if !haveKey {
			report("skipping value %v without key", val)
			continue
		}
		haveKey = false
		if key == "cmd" {
			report("skipping key %q which would replace the command", key)
			continue
		}
		fields[key] = val
	}
	if haveKey {
		report("key %q has no value", key)
	}
}

func (s *decodeState) normalizeAttestation(env Envelope, schema bitcom.Schema) (any, bool) {
	if len(env.Elements) < attestationMinElements {
		s.diagnose(
			env.Protocol,
			"dropping envelope with %d elements, need at least %d",
			len(env.Elements),
			attestationMinElements,
		)
		return nil, false
	}
	m := s.mapFields(env, schema)
	indices := make([]string, 0, len(m.Group))
	for _, entry := range m.Group {
		if idx, ok := entry["index"].(string); ok {
			indices = append(indices, idx)
		}
	}
	if len(indices) > 0 {
		m.Fields["index"] = indices
	}
	return m.Fields, true
}

// normalizeMetanet derives the node identifier from the address of the output
// spent by the first input and the transaction ID. The parent identifier is
// the one carried by the envelope.
func (s *decodeState) normalizeMetanet(env Envelope, schema bitcom.Schema) (any, bool) {
	m := s.mapFields(env, schema)
	var address, prevTx string
	if in, ok := s.txn.SpendingInput(); ok {
		if in.E.A != nil {
			address = *in.E.A
		}
		if in.E.H != nil {
			prevTx = *in.E.H
		}
	}
	node := MetanetNode{Address: address, Tx: s.txn.ID}
	if address == "" || s.txn.ID == "" {
		s.diagnose(env.Protocol, "cannot derive node id: spending address or transaction id missing")
	} else {
		id, err := hashing.HexDigest(s.ctx, s.d.hasher, []byte(address+s.txn.ID))
		if err != nil {
			s.diagnose(env.Protocol, "cannot derive node id: %v", err)
		} else {
			node.ID = id
		}
	}
	parent := MetanetNode{Address: address, Tx: prevTx}
	if id, ok := m.Fields["parent"].(string); ok {
		parent.ID = id
	}
	return Fields{
		"node":   node,
		"parent": parent,
	}, true
}

// normalizeBitcom returns the element values after the prefix verbatim
func (s *decodeState) normalizeBitcom(env Envelope) []string {
	data := env.Data()
	ret := make([]string, 0, len(data))
	for idx := range data {
		val, ok := data[idx].Value()
		if !ok {
			s.diagnose(env.Protocol, "element at position %d has no value", idx+1)
			continue
		}
		ret = append(ret, val)
	}
	return ret
}

// relocateLinkage moves metanet aggregation keys from the record root into the
// METANET record
func relocateLinkage(record Record) {
	fields, ok := record[bitcom.ProtocolMetanet].(Fields)
	if !ok {
		return
	}
	for _, key := range metanetLinkageKeys {
		if val, ok := record[key]; ok {
			fields[key] = val
			delete(record, key)
		}
	}
}
