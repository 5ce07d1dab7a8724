// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Version bytes of the base58check encoding of extended keys.
const (
	PublicKeyVersion  byte = 0x42
	PrivateKeyVersion byte = 0x43
)

const encodedPayloadSize = ChainCodeSize + 32

// String returns the base58check encoding of the chain code followed by the
// compressed point.
func (k ExtendedPublicKey) String() string {
	payload := make([]byte, 0, encodedPayloadSize)
	payload = append(payload, k.c[:]...)
	payload = append(payload, k.Compressed()...)
	return base58.CheckEncode(payload, PublicKeyVersion)
}

// Encode returns the base58check encoding of the chain code followed by the
// 32-byte scalar. The result is secret.
func (k ExtendedPrivateKey) Encode() string {
	payload := make([]byte, 0, encodedPayloadSize)
	payload = append(payload, k.c[:]...)
	payload = append(payload, k.ScalarBytes()...)
	defer wipe(payload)
	return base58.CheckEncode(payload, PrivateKeyVersion)
}

// String hides the private material.
func (k ExtendedPrivateKey) String() string {
	return "babyjubhd.ExtendedPrivateKey(redacted)"
}

func decodePayload(s string, version byte) ([]byte, error) {
	payload, v, err := base58.CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyEncoding, err)
	}
	if v != version {
		return nil, fmt.Errorf("%w: unexpected version byte 0x%02x", ErrInvalidKeyEncoding, v)
	}
	if len(payload) != encodedPayloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidKeyEncoding, len(payload), encodedPayloadSize)
	}
	return payload, nil
}

// ParseExtendedPublicKey decodes the output of ExtendedPublicKey.String. The
// point must lie in the Baby Jubjub prime-order subgroup.
func ParseExtendedPublicKey(s string) (ExtendedPublicKey, error) {
	payload, err := decodePayload(s, PublicKeyVersion)
	if err != nil {
		return ExtendedPublicKey{}, err
	}
	curve, ok := BabyJubJub().(PointDecompressor)
	if !ok {
		return ExtendedPublicKey{}, fmt.Errorf("%w: curve cannot decompress points", ErrInvalidKeyEncoding)
	}
	point, err := curve.Decompress(payload[ChainCodeSize:])
	if err != nil {
		return ExtendedPublicKey{}, fmt.Errorf("%w: %w", ErrInvalidKeyEncoding, err)
	}
	return newExtendedPublicKey(point, payload[:ChainCodeSize]), nil
}

// ParseExtendedPrivateKey decodes the output of ExtendedPrivateKey.Encode.
func ParseExtendedPrivateKey(s string) (ExtendedPrivateKey, error) {
	payload, err := decodePayload(s, PrivateKeyVersion)
	if err != nil {
		return ExtendedPrivateKey{}, err
	}
	defer wipe(payload)
	key, err := NewExtendedPrivateKey(parse256(payload[ChainCodeSize:]), payload[:ChainCodeSize])
	if err != nil {
		return ExtendedPrivateKey{}, fmt.Errorf("%w: %w", ErrInvalidKeyEncoding, err)
	}
	return key, nil
}
