// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"fmt"
	"math/big"
)

// Deriver derives extended keys over a curve with a keyed hash. The zero
// value is not usable; use NewDeriver. A Deriver holds no mutable state and
// is safe for concurrent use.
type Deriver struct {
	curve Curve
	hmac  HMACFunc
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithCurve replaces the Baby Jubjub curve.
func WithCurve(c Curve) Option {
	return func(d *Deriver) {
		d.curve = c
	}
}

// WithHMAC replaces HMAC-SHA512.
func WithHMAC(h HMACFunc) Option {
	return func(d *Deriver) {
		d.hmac = h
	}
}

// NewDeriver returns a Deriver over Baby Jubjub with HMAC-SHA512 unless
// overridden by opts.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		curve: BabyJubJub(),
		hmac:  HMACSHA512,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDeriver = NewDeriver()

// split runs the keyed hash and splits its output into the tweak IL and the
// child chain code IR.
func (d *Deriver) split(key, message []byte) (*big.Int, []byte, error) {
	l := d.hmac(key, message)
	if len(l) != 64 {
		return nil, nil, fmt.Errorf("keyed hash returned %d bytes, want 64", len(l))
	}
	return parse256(l[:32]), l[32:], nil
}

// MasterKey derives the master extended private key from a seed.
func (d *Deriver) MasterKey(seed []byte) (ExtendedPrivateKey, error) {
	il, c, err := d.split([]byte(MasterKeyDomain), seed)
	if err != nil {
		return ExtendedPrivateKey{}, err
	}
	k := il.Mod(il, d.curve.Order())
	return newExtendedPrivateKey(k, c), nil
}

// DeriveChildPrivate derives the child at index from a private parent.
// Indexes at or above HardenedKeyStart commit to the parent scalar, all
// others to the parent public point.
func (d *Deriver) DeriveChildPrivate(parent ExtendedPrivateKey, index uint32) (ExtendedPrivateKey, error) {
	k := parent.Scalar()

	var body []byte
	if index >= HardenedKeyStart {
		kb, err := ser256(k)
		if err != nil {
			return ExtendedPrivateKey{}, err
		}
		body = kb
	} else {
		body = d.curve.Compress(d.curve.ScalarMult(k, d.curve.Base()))
	}
	body = append(body, ser32(index)...)

	il, c, err := d.split(parent.c[:], body)
	if err != nil {
		return ExtendedPrivateKey{}, err
	}
	child := il.Add(il, k)
	child.Mod(child, d.curve.Order())
	return newExtendedPrivateKey(child, c), nil
}

// DeriveChildPublic derives the public child at a non-hardened index from a
// public parent. Hardened indexes fail with ErrDeriveHardFromPublic.
func (d *Deriver) DeriveChildPublic(parent ExtendedPublicKey, index uint32) (ExtendedPublicKey, error) {
	if index >= HardenedKeyStart {
		return ExtendedPublicKey{}, fmt.Errorf("%w: index %d", ErrDeriveHardFromPublic, index)
	}
	if parent.pt == nil {
		return ExtendedPublicKey{}, fmt.Errorf("%w: missing public point", ErrEncodingRange)
	}

	body := append(d.curve.Compress(parent.pt), ser32(index)...)
	il, c, err := d.split(parent.c[:], body)
	if err != nil {
		return ExtendedPublicKey{}, err
	}
	child := d.curve.Add(parent.pt, d.curve.ScalarMult(il, d.curve.Base()))
	return newExtendedPublicKey(child, c), nil
}

// Public returns the extended public key matching priv.
func (d *Deriver) Public(priv ExtendedPrivateKey) ExtendedPublicKey {
	return newExtendedPublicKey(d.curve.ScalarMult(priv.Scalar(), d.curve.Base()), priv.c[:])
}

// DerivePath folds DeriveChildPrivate over indexes, starting at root.
// Intermediate keys are wiped once their child exists; root is left
// untouched.
func (d *Deriver) DerivePath(root ExtendedPrivateKey, indexes []uint32) (ExtendedPrivateKey, error) {
	key := root
	for depth, index := range indexes {
		child, err := d.DeriveChildPrivate(key, index)
		if err != nil {
			return ExtendedPrivateKey{}, fmt.Errorf("could not derive child %d at depth %d: %w", index, depth+1, err)
		}
		if depth > 0 {
			key.Zero()
		}
		key = child
	}
	if len(indexes) == 0 {
		return newExtendedPrivateKey(root.Scalar(), root.c[:]), nil
	}
	return key, nil
}

// DerivePublicPath folds DeriveChildPublic over indexes, starting at root.
// Any hardened index fails with ErrDeriveHardFromPublic.
func (d *Deriver) DerivePublicPath(root ExtendedPublicKey, indexes []uint32) (ExtendedPublicKey, error) {
	key := root
	for depth, index := range indexes {
		child, err := d.DeriveChildPublic(key, index)
		if err != nil {
			return ExtendedPublicKey{}, fmt.Errorf("could not derive child %d at depth %d: %w", index, depth+1, err)
		}
		key = child
	}
	return key, nil
}

// DerivePrivateKeyFromPath obtains a seed from src and derives the extended
// private key at path. The path is validated before the seed is requested.
func (d *Deriver) DerivePrivateKeyFromPath(src SeedSource, path string) (ExtendedPrivateKey, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return ExtendedPrivateKey{}, err
	}

	seed, err := src.Seed()
	if err != nil {
		return ExtendedPrivateKey{}, fmt.Errorf("could not obtain seed: %w", err)
	}
	defer wipe(seed)

	master, err := d.MasterKey(seed)
	if err != nil {
		return ExtendedPrivateKey{}, fmt.Errorf("could not derive master key: %w", err)
	}
	defer master.Zero()

	return d.DerivePath(master, indexes)
}

// DerivePublicKeyFromPath derives the private key at path and returns its
// public counterpart. It always derives privately, so hardened steps are
// allowed.
func (d *Deriver) DerivePublicKeyFromPath(src SeedSource, path string) (ExtendedPublicKey, error) {
	priv, err := d.DerivePrivateKeyFromPath(src, path)
	if err != nil {
		return ExtendedPublicKey{}, err
	}
	defer priv.Zero()
	return d.Public(priv), nil
}

// MasterKey derives the Baby Jubjub master extended private key from seed.
func MasterKey(seed []byte) (ExtendedPrivateKey, error) {
	return defaultDeriver.MasterKey(seed)
}

// DeriveChildPrivate derives a Baby Jubjub child key from a private parent.
func DeriveChildPrivate(parent ExtendedPrivateKey, index uint32) (ExtendedPrivateKey, error) {
	return defaultDeriver.DeriveChildPrivate(parent, index)
}

// DeriveChildPublic derives a Baby Jubjub child key from a public parent.
func DeriveChildPublic(parent ExtendedPublicKey, index uint32) (ExtendedPublicKey, error) {
	return defaultDeriver.DeriveChildPublic(parent, index)
}

// DerivePrivateKeyFromPath derives the Baby Jubjub extended private key at
// path for the seed produced by src.
func DerivePrivateKeyFromPath(src SeedSource, path string) (ExtendedPrivateKey, error) {
	return defaultDeriver.DerivePrivateKeyFromPath(src, path)
}

// DerivePublicKeyFromPath derives the Baby Jubjub extended public key at
// path for the seed produced by src.
func DerivePublicKeyFromPath(src SeedSource, path string) (ExtendedPublicKey, error) {
	return defaultDeriver.DerivePublicKeyFromPath(src, path)
}

// Privkey derives the extended private key at path from a BIP39 mnemonic
// with an empty passphrase.
func Privkey(mnemonic, path string) (ExtendedPrivateKey, error) {
	return DerivePrivateKeyFromPath(Mnemonic{Phrase: mnemonic}, path)
}

// Pubkey derives the extended public key at path from a BIP39 mnemonic
// with an empty passphrase.
func Pubkey(mnemonic, path string) (ExtendedPublicKey, error) {
	return DerivePublicKeyFromPath(Mnemonic{Phrase: mnemonic}, path)
}

// DerivePath derives the public descendant at a non-hardened path.
func (k ExtendedPublicKey) DerivePath(path string) (ExtendedPublicKey, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return ExtendedPublicKey{}, err
	}
	return defaultDeriver.DerivePublicPath(k, indexes)
}

// Child derives the private child at index.
func (k ExtendedPrivateKey) Child(index uint32) (ExtendedPrivateKey, error) {
	return defaultDeriver.DeriveChildPrivate(k, index)
}

// Child derives the public child at a non-hardened index.
func (k ExtendedPublicKey) Child(index uint32) (ExtendedPublicKey, error) {
	return defaultDeriver.DeriveChildPublic(k, index)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
