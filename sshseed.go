// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// combineSeedPassphrase mixes a seed passphrase into the SSH key seed. The
// passphrase is hashed with SHA256 and XORed with the key seed.
func combineSeedPassphrase(keySeed []byte, seedPassphrase string) []byte {
	passphraseHash := sha256.Sum256([]byte(seedPassphrase))

	combined := make([]byte, len(keySeed))
	for i := range keySeed {
		combined[i] = keySeed[i] ^ passphraseHash[i]
	}

	return combined
}

// MnemonicFromSSHKey returns the 24-word BIP39 phrase whose entropy is the
// 32-byte seed of an ed25519 private key, so a Baby Jubjub hierarchy can be
// rebuilt from an SSH key alone.
//
// If seedPassphrase is non-empty it is combined with the key seed first:
// ENTROPY(seed-passphrase) + ENTROPY(ssh-key).
func MnemonicFromSSHKey(key *ed25519.PrivateKey, seedPassphrase string) (string, error) {
	if key == nil || len(*key) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("%w: not an ed25519 private key", ErrInvalidSeed)
	}

	var entropy []byte
	if seedPassphrase != "" {
		entropy = combineSeedPassphrase(key.Seed(), seedPassphrase)
	} else {
		entropy = key.Seed()
	}
	defer wipe(entropy)

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return words, nil
}

// SSHKey derives the seed from an ed25519 SSH key through its 24-word
// mnemonic. Passphrase is the BIP39 passphrase applied to that mnemonic.
type SSHKey struct {
	Key            *ed25519.PrivateKey
	SeedPassphrase string
	Passphrase     string
}

// Seed returns the BIP39 seed of the key's mnemonic.
func (s SSHKey) Seed() ([]byte, error) {
	words, err := MnemonicFromSSHKey(s.Key, s.SeedPassphrase)
	if err != nil {
		return nil, err
	}
	return Mnemonic{Phrase: words, Passphrase: s.Passphrase}.Seed()
}
