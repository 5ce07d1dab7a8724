// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// ExtendedPrivateKey is a private scalar k, reduced modulo the subgroup
// order, together with its chain code c. Keys are never modified by
// derivation; every child is a new value.
type ExtendedPrivateKey struct {
	k *big.Int
	c [ChainCodeSize]byte
}

// ExtendedPublicKey is the point K = k·G together with the chain code of the
// matching private key.
type ExtendedPublicKey struct {
	pt *Point
	c  [ChainCodeSize]byte
}

// NewExtendedPrivateKey builds an extended private key on Baby Jubjub from a
// scalar and a 32-byte chain code. The scalar must be in [0, N).
func NewExtendedPrivateKey(k *big.Int, chainCode []byte) (ExtendedPrivateKey, error) {
	if k == nil || k.Sign() < 0 || k.Cmp(BabyJubJub().Order()) >= 0 {
		return ExtendedPrivateKey{}, fmt.Errorf("%w: scalar is not reduced modulo the subgroup order", ErrEncodingRange)
	}
	if len(chainCode) != ChainCodeSize {
		return ExtendedPrivateKey{}, fmt.Errorf("%w: chain code must be %d bytes, got %d", ErrEncodingRange, ChainCodeSize, len(chainCode))
	}
	return newExtendedPrivateKey(k, chainCode), nil
}

// NewExtendedPublicKey builds an extended public key from a point and a
// 32-byte chain code.
func NewExtendedPublicKey(point *Point, chainCode []byte) (ExtendedPublicKey, error) {
	if point == nil || point.X == nil || point.Y == nil {
		return ExtendedPublicKey{}, fmt.Errorf("%w: missing public point", ErrEncodingRange)
	}
	if len(chainCode) != ChainCodeSize {
		return ExtendedPublicKey{}, fmt.Errorf("%w: chain code must be %d bytes, got %d", ErrEncodingRange, ChainCodeSize, len(chainCode))
	}
	return newExtendedPublicKey(point, chainCode), nil
}

func newExtendedPrivateKey(k *big.Int, chainCode []byte) ExtendedPrivateKey {
	key := ExtendedPrivateKey{k: new(big.Int).Set(k)}
	copy(key.c[:], chainCode)
	return key
}

func newExtendedPublicKey(point *Point, chainCode []byte) ExtendedPublicKey {
	key := ExtendedPublicKey{pt: point.clone()}
	copy(key.c[:], chainCode)
	return key
}

// Scalar returns a copy of the private scalar.
func (k ExtendedPrivateKey) Scalar() *big.Int {
	if k.k == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(k.k)
}

// ScalarBytes returns the private scalar as 32 big-endian bytes.
func (k ExtendedPrivateKey) ScalarBytes() []byte {
	b, _ := ser256(k.Scalar()) //nolint:errcheck // scalars are always < N < 2^256
	return b
}

// ScalarHex returns the private scalar as 64 hex characters.
func (k ExtendedPrivateKey) ScalarHex() string {
	return hex.EncodeToString(k.ScalarBytes())
}

// ChainCode returns a copy of the chain code.
func (k ExtendedPrivateKey) ChainCode() [ChainCodeSize]byte {
	return k.c
}

// Public returns the extended public key k·G on Baby Jubjub.
func (k ExtendedPrivateKey) Public() ExtendedPublicKey {
	return defaultDeriver.Public(k)
}

// Zero wipes the private scalar and chain code. The key must not be used
// afterwards. Copies of the key share the scalar storage, so they are wiped
// as well.
func (k *ExtendedPrivateKey) Zero() {
	if k.k != nil {
		bits := k.k.Bits()
		for i := range bits {
			bits[i] = 0
		}
		k.k.SetInt64(0)
	}
	for i := range k.c {
		k.c[i] = 0
	}
}

// Point returns a copy of the public point.
func (k ExtendedPublicKey) Point() *Point {
	return k.pt.clone()
}

// ChainCode returns a copy of the chain code.
func (k ExtendedPublicKey) ChainCode() [ChainCodeSize]byte {
	return k.c
}

// Compressed returns the packed Baby Jubjub encoding of the public point.
func (k ExtendedPublicKey) Compressed() []byte {
	return BabyJubJub().Compress(k.pt)
}

// CompressedHex returns the packed public point as hex.
func (k ExtendedPublicKey) CompressedHex() string {
	return hex.EncodeToString(k.Compressed())
}

// Equal reports whether both keys hold the same point and chain code.
func (k ExtendedPublicKey) Equal(o ExtendedPublicKey) bool {
	return k.pt.Equal(o.pt) && k.c == o.c
}

// Equal reports whether both keys hold the same scalar and chain code.
func (k ExtendedPrivateKey) Equal(o ExtendedPrivateKey) bool {
	return k.Scalar().Cmp(o.Scalar()) == 0 && k.c == o.c
}
