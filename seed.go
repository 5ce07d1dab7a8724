// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// SeedSource produces the seed bytes a key hierarchy is derived from. The
// caller owns the returned slice and may wipe it.
type SeedSource interface {
	Seed() ([]byte, error)
}

// Mnemonic is a BIP39 phrase with an optional passphrase. The phrase is not
// checked against a word list; any phrase produces a seed.
type Mnemonic struct {
	Phrase     string
	Passphrase string
}

// Seed returns the 64-byte BIP39 seed of the phrase.
func (m Mnemonic) Seed() ([]byte, error) {
	if strings.TrimSpace(m.Phrase) == "" {
		return nil, fmt.Errorf("%w: empty mnemonic", ErrInvalidSeed)
	}
	return bip39.NewSeed(m.Phrase, m.Passphrase), nil
}

// RawSeed is a seed supplied directly by the caller.
type RawSeed []byte

// Seed returns a copy of the raw seed.
func (s RawSeed) Seed() ([]byte, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty seed", ErrInvalidSeed)
	}
	seed := make([]byte, len(s))
	copy(seed, s)
	return seed, nil
}
