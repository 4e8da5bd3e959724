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

	"github.com/btcsuite/btcd/btcutil/base58"
)

// ChainDelimiter separates protocol envelopes within a single output
const ChainDelimiter = "|"

var ErrInvalidProtocol = errors.New("invalid protocol definition")

// ProtocolError describes a rejected protocol definition
type ProtocolError struct {
	Protocol string
	Err      error
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("protocol %q: %v", e.Protocol, e.Err)
}

func (e ProtocolError) Unwrap() error { return e.Err }

func (ProtocolError) Is(target error) bool {
	return target == ErrInvalidProtocol
}

// Protocol binds a prefix token to a canonical name and a schema
type Protocol struct {
	Name   string
	Prefix string
	// Literal prefixes are plain tokens rather than base58check addresses
	Literal bool
	Schema  Schema
}

// Registry is an immutable bidirectional mapping between prefix tokens and
// protocol names. It is safe for concurrent use.
type Registry struct {
	byPrefix map[string]Protocol
	byName   map[string]Protocol
	order    []string
}

// NewRegistry builds a registry from the provided protocol definitions
func NewRegistry(protocols ...Protocol) (*Registry, error) {
	r := &Registry{
		byPrefix: make(map[string]Protocol, len(protocols)),
		byName:   make(map[string]Protocol, len(protocols)),
		order:    make([]string, 0, len(protocols)),
	}
	for _, p := range protocols {
		if err := r.add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(p Protocol) error {
	if p.Name == "" {
		return ProtocolError{Protocol: p.Prefix, Err: errors.New("missing name")}
	}
	if p.Prefix == "" {
		return ProtocolError{Protocol: p.Name, Err: errors.New("missing prefix")}
	}
	if p.Prefix == ChainDelimiter {
		return ProtocolError{Protocol: p.Name, Err: errors.New("prefix collides with chain delimiter")}
	}
	if !p.Literal {
		if _, _, err := base58.CheckDecode(p.Prefix); err != nil {
			return ProtocolError{
				Protocol: p.Name,
				Err:      fmt.Errorf("prefix %q is not a base58check address: %w", p.Prefix, err),
			}
		}
	}
	if err := p.Schema.Validate(); err != nil {
		return ProtocolError{Protocol: p.Name, Err: err}
	}
	if _, ok := r.byName[p.Name]; ok {
		return ProtocolError{Protocol: p.Name, Err: errors.New("duplicate name")}
	}
	if existing, ok := r.byPrefix[p.Prefix]; ok {
		return ProtocolError{
			Protocol: p.Name,
			Err:      fmt.Errorf("prefix already registered to %s", existing.Name),
		}
	}
	r.byPrefix[p.Prefix] = p
	r.byName[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// Extend returns a new registry containing the receiver's protocols followed
// by the provided ones. The receiver is not modified.
func (r *Registry) Extend(protocols ...Protocol) (*Registry, error) {
	all := make([]Protocol, 0, len(r.order)+len(protocols))
	all = append(all, r.Protocols()...)
	all = append(all, protocols...)
	return NewRegistry(all...)
}

// ResolvePrefix returns the protocol name registered for a prefix token
func (r *Registry) ResolvePrefix(token string) (string, bool) {
	p, ok := r.byPrefix[token]
	if !ok {
		return "", false
	}
	return p.Name, true
}

// Prefix returns the prefix token registered for a protocol name
func (r *Registry) Prefix(name string) (string, bool) {
	p, ok := r.byName[name]
	if !ok {
		return "", false
	}
	return p.Prefix, true
}

// Schema returns the schema registered for a protocol name. The returned
// schema is shared and must not be modified.
func (r *Registry) Schema(name string) (Schema, bool) {
	p, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return p.Schema, true
}

func (r *Registry) Protocol(name string) (Protocol, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// SubSchema returns the schema of a sub-dispatch variant of a protocol
func (r *Registry) SubSchema(name string, variant string) (Schema, bool) {
	schema, ok := r.Schema(name)
	if !ok || len(schema) == 0 {
		return nil, false
	}
	dispatch, ok := schema[0].(SubDispatch)
	if !ok {
		return nil, false
	}
	sub, ok := dispatch.Variants[variant]
	return sub, ok
}

// Protocols returns the registered protocols in registration order
func (r *Registry) Protocols() []Protocol {
	ret := make([]Protocol, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, r.byName[name])
	}
	return ret
}

func (r *Registry) Len() int {
	return len(r.order)
}
