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

// Package hashing provides the hash capability used to derive
// content-addressed identifiers for node-linking envelopes.
package hashing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

const (
	SHA256Size     = sha256.Size
	Blake2b256Size = 32
	Blake3Size     = 32
)

var ErrUnknownHasher = errors.New("unknown hasher")

// Hasher computes a digest. Implementations may block, for example when the
// digest is computed by a remote signer, and should honor ctx.
type Hasher interface {
	Hash(ctx context.Context, data []byte) ([]byte, error)
}

// HasherFunc adapts a function to the Hasher interface
type HasherFunc func(ctx context.Context, data []byte) ([]byte, error)

func (f HasherFunc) Hash(ctx context.Context, data []byte) ([]byte, error) {
	return f(ctx, data)
}

type sha256Hasher struct{}

func (sha256Hasher) Hash(_ context.Context, data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}

type blake2b256Hasher struct{}

func (blake2b256Hasher) Hash(_ context.Context, data []byte) ([]byte, error) {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		return nil, fmt.Errorf("create blake2b hash: %w", err)
	}
	tmpHash.Write(data)
	return tmpHash.Sum(nil), nil
}

type blake3Hasher struct{}

func (blake3Hasher) Hash(_ context.Context, data []byte) ([]byte, error) {
	sum := blake3.Sum256(data)
	return sum[:], nil
}

// SHA256 returns the default hasher used for node identifiers
func SHA256() Hasher {
	return sha256Hasher{}
}

// Blake2b256 returns a hasher producing Blake2b-256 digests
func Blake2b256() Hasher {
	return blake2b256Hasher{}
}

// Blake3 returns a hasher producing 256-bit BLAKE3 digests
func Blake3() Hasher {
	return blake3Hasher{}
}

// ByName returns a hasher by its configuration name
func ByName(name string) (Hasher, error) {
	switch strings.ToLower(name) {
	case "", "sha256":
		return SHA256(), nil
	case "blake2b256", "blake2b-256":
		return Blake2b256(), nil
	case "blake3":
		return Blake3(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownHasher, name)
	}
}

// HexDigest hashes data and returns the digest as lowercase hex
func HexDigest(ctx context.Context, h Hasher, data []byte) (string, error) {
	digest, err := h.Hash(ctx, data)
	if err != nil {
		return "", err
	}
	if len(digest) == 0 {
		return "", errors.New("hasher returned empty digest")
	}
	return hex.EncodeToString(digest), nil
}
