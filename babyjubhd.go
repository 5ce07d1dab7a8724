// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package babyjubhd derives hierarchies of Baby Jubjub key pairs from a
// single seed, following the BIP32 hierarchical deterministic scheme.
//
// The master key is HMAC-SHA512("BabyJub seed", seed). Every child is derived
// from its parent's chain code and an index; indexes at or above
// HardenedKeyStart are hardened and require the parent private scalar, all
// others can also be derived from the parent public key alone.
//
// Private scalars are reduced modulo the order of the prime subgroup
// generated by the Base8 point, which makes the derived keys usable inside
// circom/snark circuits that work over the BN254 scalar field.
package babyjubhd

import (
	"errors"
)

const (
	// HardenedKeyStart is the first hardened child index (2^31).
	HardenedKeyStart uint32 = 0x80000000

	// MasterKeyDomain is the HMAC key used to turn a seed into the master
	// extended key.
	MasterKeyDomain = "BabyJub seed"

	// ChainCodeSize is the length of every chain code in bytes.
	ChainCodeSize = 32

	// ScalarSize is the length of a serialized private scalar in bytes.
	ScalarSize = 32
)

var (
	// ErrPathFormat is returned when a derivation path does not match
	// m(/[0-9]+'?)*.
	ErrPathFormat = errors.New("invalid derivation path")

	// ErrDeriveHardFromPublic is returned when a hardened child is requested
	// from an extended public key.
	ErrDeriveHardFromPublic = errors.New("cannot derive hardened child from public key")

	// ErrEncodingRange is returned when a value does not fit its fixed-width
	// encoding.
	ErrEncodingRange = errors.New("value out of range for fixed-width encoding")

	// ErrInvalidKeyEncoding is returned when an encoded extended key cannot
	// be decoded.
	ErrInvalidKeyEncoding = errors.New("invalid extended key encoding")

	// ErrInvalidSeed is returned by seed sources that cannot produce a seed.
	ErrInvalidSeed = errors.New("invalid seed")
)
