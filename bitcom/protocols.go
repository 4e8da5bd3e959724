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
	"fmt"

	"github.com/blinklabs-io/bmap/pushdata"
)

// Protocol names
const (
	ProtocolB       = "B"
	ProtocolMAP     = "MAP"
	ProtocolAIP     = "AIP"
	ProtocolHAIP    = "HAIP"
	ProtocolMetanet = "METANET"
	ProtocolBitkey  = "BITKEY"
	ProtocolBitpic  = "BITPIC"
	ProtocolBitcom  = "BITCOM"
)

// Protocol prefixes
const (
	PrefixB       = "19HxigV4QyBv3tHpQVcUEQyq1pzZVdoAut"
	PrefixMAP     = "1PuQa7K62MiKCtssSLKy1kh56WWU7MtUR5"
	PrefixAIP     = "15PciHG22SNLQJXMoSUaWVi7WSqc7hCfva"
	PrefixHAIP    = "1HA1P2exomAwCUycZHr8WeyFoy5vuQASE3"
	PrefixMetanet = "meta"
	PrefixBitkey  = "13SrNDkVzY5bHBRKNu5iXTQ7K7VqTh5tJC"
	PrefixBitpic  = "18pAqbYqhzErT6Zk3a5dwxHtB9icv8jH2p"
	PrefixBitcom  = "$"
)

func str(name string) Leaf {
	return Leaf{Name: name, Encoding: pushdata.EncodingString}
}

func bin(name string) Leaf {
	return Leaf{Name: name, Encoding: pushdata.EncodingBinary}
}

var attestationSchema = Schema{
	str("algorithm"),
	str("address"),
	bin("signature"),
	RepeatingGroup{
		Name:   "index",
		Leaves: []Leaf{str("index")},
	},
}

var defaultProtocols = []Protocol{
	{
		Name:   ProtocolB,
		Prefix: PrefixB,
		Schema: Schema{
			Leaf{Name: "content", Encoding: pushdata.EncodingContentType},
			Leaf{Name: "content-type", Encoding: pushdata.EncodingString, Hint: HintContentType},
			Leaf{Name: "encoding", Encoding: pushdata.EncodingString, Hint: HintEncoding},
			Leaf{Name: "filename", Encoding: pushdata.EncodingString, Optional: true},
		},
	},
	{
		Name:   ProtocolMAP,
		Prefix: PrefixMAP,
		Schema: Schema{
			str("cmd"),
			RepeatingGroup{
				Name:   "pairs",
				Leaves: []Leaf{str("key"), str("val")},
			},
		},
	},
	{
		Name:   ProtocolAIP,
		Prefix: PrefixAIP,
		Schema: attestationSchema,
	},
	{
		Name:   ProtocolHAIP,
		Prefix: PrefixHAIP,
		Schema: attestationSchema,
	},
	{
		Name:    ProtocolMetanet,
		Prefix:  PrefixMetanet,
		Literal: true,
		Schema: Schema{
			str("address"),
			str("parent"),
		},
	},
	{
		Name:   ProtocolBitkey,
		Prefix: PrefixBitkey,
		Schema: Schema{
			bin("bitkey_signature"),
			str("user_signature"),
			str("paymail"),
			str("pubkey"),
		},
	},
	{
		Name:   ProtocolBitpic,
		Prefix: PrefixBitpic,
		Schema: Schema{
			str("paymail"),
			str("pubkey"),
			bin("signature"),
		},
	},
	{
		Name:    ProtocolBitcom,
		Prefix:  PrefixBitcom,
		Literal: true,
		Schema: Schema{
			SubDispatch{
				Name: "command",
				Variants: map[string]Schema{
					"echo": {
						str("data"),
						str("to"),
						str("filename"),
					},
					"su": {
						str("pubkey"),
						bin("signature"),
					},
					"route": {
						str("action"),
						str("address"),
						str("path"),
						str("endpoint"),
					},
					"useradd": {
						str("address"),
					},
				},
			},
		},
	},
}

var defaultRegistry = mustRegistry(defaultProtocols...)

func mustRegistry(protocols ...Protocol) *Registry {
	r, err := NewRegistry(protocols...)
	if err != nil {
		panic(fmt.Sprintf("unexpected error building default registry: %s", err))
	}
	return r
}

// DefaultRegistry returns the registry of well-known bitcom protocols. It is
// built once at package initialization.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
