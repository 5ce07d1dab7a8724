// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/matryer/is"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// testSeed is the BIP39 seed of testMnemonic with an empty passphrase.
func testSeed(t *testing.T) []byte {
	t.Helper()
	return mustHex(t, "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4")
}

// sequentialSeed is the 64-byte seed 0x00, 0x01, ..., 0x3f.
func sequentialSeed() []byte {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func TestMasterKey_GoldenValues(t *testing.T) {
	tests := []struct {
		name      string
		seed      func(t *testing.T) []byte
		scalar    string
		chainCode string
	}{
		{
			name:      "bip39 abandon seed",
			seed:      testSeed,
			scalar:    "053ca170d897477dfa151931a02a406cb840a9414402b57cd4acafc1d4b40ad8",
			chainCode: "566848a443a873f68bc4c64b56b269cede13a64713bb9501ac39aa6de0b10292",
		},
		{
			name:      "sequential seed",
			seed:      func(*testing.T) []byte { return sequentialSeed() },
			scalar:    "0174b802c7bb198cccb9bc69a81e26024014a709d1f5f99439abd3d9ee8bddad",
			chainCode: "7399f731a541a98e45108e513326d7b8ef8f26f3749c705cef0a5a0cc9c1d498",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			master, err := MasterKey(tt.seed(t))
			is.NoErr(err)
			is.Equal(master.ScalarHex(), tt.scalar)
			chainCode := master.ChainCode()
			is.Equal(hex.EncodeToString(chainCode[:]), tt.chainCode)
		})
	}
}

func TestMasterKey_PublicPoint(t *testing.T) {
	is := is.New(t)

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)

	pub := master.Public()
	is.Equal(pub.CompressedHex(), "656555e29017c8dd0ba311aee289ac1bbbfba0ddc5fd39bc8e5e994bb203100e")

	x, _ := new(big.Int).SetString("3698849496160262764282064300835693378170114645677789253134316047590407183386", 10)
	y, _ := new(big.Int).SetString("6360674945273245083604349711129702659721519054525336705257468913401793439077", 10)
	is.True(pub.Point().Equal(&Point{X: x, Y: y}))
}

func TestDerivePrivateKeyFromPath_GoldenValues(t *testing.T) {
	tests := []struct {
		path       string
		scalar     string
		chainCode  string
		compressed string
	}{
		{
			path:       "m/0'/1/2'",
			scalar:     "04b81e4487c98b82920c8fa1d782557a35da3cb45908c7bc5a9e89b2ed62521e",
			chainCode:  "fd3589661aa6ceb0dd6e55fdc163c669111a886842043f70edd9497451c69fec",
			compressed: "2f412e7f71f385d6fec22199cf6cc002e6426c2990f90e9ef9f67639983c5994",
		},
		{
			path:       "m/0/1",
			scalar:     "025c64715c488c3efce6cd71f5488eec60c7e27296e5fae5d7a9f542f472da2d",
			chainCode:  "f4c37e638a424921bf28fdcb0605532e1b259b9e61cf9d7307731c6512e1064a",
			compressed: "897aad0f92069461b7cc833c452834de1dc1f0ccc0c2bd275e218dc8e7df4a25",
		},
		{
			path:       "m/1/0",
			scalar:     "004e87028e4cdb00d44ca4cb6491b30a08023130d8ad7d0c46d0b94540442230",
			chainCode:  "38ee81dfb958a80f3de8af54a5880986889ea4c2b326ac409e13d5d8015c17b1",
			compressed: "3fe80d4c31d2c4fb09932355e01b414a7efadb6445ec169736f912ac04e8bb8e",
		},
		{
			path:       "m/0'/1",
			scalar:     "002eb11e13a5ec3ba14c9ba8b1fa9029230f4992ad52f85ec9fac939386015c8",
			chainCode:  "546ef5d7d20a057d8aaef612e4129c759d581cfbbec9373e6e78377a1a8183cb",
			compressed: "f8d43f69d1e3b697bb2f767650bc93cc05492e31898067e74739f6e9f635d694",
		},
		{
			path:       "m/44'/0'/0'/0/0",
			scalar:     "027e912348feda5e0b355363a0af18d95b0e5d9fefa410ea7617658a9b72990c",
			chainCode:  "9b6c781ff66f54de10991df1b21f5f3cd453e1ce4f85328fd5e2c173c8a46fbd",
			compressed: "e2275a5092277d8c243f623747fa9582db6d87b69a05c8a21e28ee4d27615796",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			is := is.New(t)

			priv, err := DerivePrivateKeyFromPath(Mnemonic{Phrase: testMnemonic}, tt.path)
			is.NoErr(err)
			is.Equal(priv.ScalarHex(), tt.scalar)
			chainCode := priv.ChainCode()
			is.Equal(hex.EncodeToString(chainCode[:]), tt.chainCode)

			pub, err := DerivePublicKeyFromPath(RawSeed(testSeed(t)), tt.path)
			is.NoErr(err)
			is.Equal(pub.CompressedHex(), tt.compressed)
			is.Equal(pub.ChainCode(), chainCode)
		})
	}
}

func TestDerivePrivateKeyFromPath_SequentialSeed(t *testing.T) {
	is := is.New(t)

	priv, err := DerivePrivateKeyFromPath(RawSeed(sequentialSeed()), "m/0'/1/2'")
	is.NoErr(err)
	is.Equal(priv.ScalarHex(), "013fec6841313f0d4fda913c1366459cc4c5d00189fa02ebfa648e1fef383c4e")
	chainCode := priv.ChainCode()
	is.Equal(hex.EncodeToString(chainCode[:]), "143bb92d9eda0bf73edf820f60999a8cf544ead682e1d22e0813b3875199ad85")
	is.Equal(priv.Public().CompressedHex(), "e6b725e06205e18644747f817db33753b39eac3d5e8ee0820b5a26c9b0b1fa0f")
}

func TestPrivkeyPubkey_Mnemonic(t *testing.T) {
	is := is.New(t)

	priv, err := Privkey(testMnemonic, "m/0/1")
	is.NoErr(err)
	is.Equal(priv.ScalarHex(), "025c64715c488c3efce6cd71f5488eec60c7e27296e5fae5d7a9f542f472da2d")

	pub, err := Pubkey(testMnemonic, "m/0/1")
	is.NoErr(err)
	is.True(pub.Equal(priv.Public()))
}

func TestDerivePrivateKeyFromPath_Deterministic(t *testing.T) {
	is := is.New(t)

	first, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m/0'/1/2'")
	is.NoErr(err)

	for n := 0; n < 3; n++ {
		again, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m/0'/1/2'")
		is.NoErr(err)
		is.True(bytes.Equal(first.ScalarBytes(), again.ScalarBytes()))
		is.Equal(first.ChainCode(), again.ChainCode())
	}
}

func TestDerivePrivateKeyFromPath_PathOrderMatters(t *testing.T) {
	is := is.New(t)

	a, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m/0/1")
	is.NoErr(err)
	b, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m/1/0")
	is.NoErr(err)

	is.True(!a.Equal(b))
}

// TestDerivePrivateKeyFromPath_HardenedPerSegment makes sure hardening is
// decided per segment: only the first step differs between the paths.
func TestDerivePrivateKeyFromPath_HardenedPerSegment(t *testing.T) {
	is := is.New(t)

	plain, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m/0/1")
	is.NoErr(err)
	hardened, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m/0'/1")
	is.NoErr(err)
	is.True(!plain.Equal(hardened))

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)
	step, err := DeriveChildPrivate(master, HardenedKeyStart)
	is.NoErr(err)
	manual, err := DeriveChildPrivate(step, 1)
	is.NoErr(err)
	is.True(manual.Equal(hardened))
}

func TestDerivePrivateKeyFromPath_RootPath(t *testing.T) {
	is := is.New(t)

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)

	root, err := DerivePrivateKeyFromPath(RawSeed(testSeed(t)), "m")
	is.NoErr(err)
	is.True(root.Equal(master))
}

func TestDerivePrivateKeyFromPath_InvalidPathSkipsSeed(t *testing.T) {
	is := is.New(t)

	src := &countingSource{seed: testSeed(t)}
	_, err := DerivePrivateKeyFromPath(src, "x/0")
	is.True(errors.Is(err, ErrPathFormat))
	is.Equal(src.calls, 0)

	_, err = DerivePublicKeyFromPath(src, "m/0/abc")
	is.True(errors.Is(err, ErrPathFormat))
	is.Equal(src.calls, 0)
}

func TestDerivePrivateKeyFromPath_SeedError(t *testing.T) {
	is := is.New(t)

	_, err := DerivePrivateKeyFromPath(Mnemonic{}, "m/0")
	is.True(errors.Is(err, ErrInvalidSeed))
}

func TestDerivePrivateKeyFromPath_WipesSeed(t *testing.T) {
	is := is.New(t)

	src := &countingSource{seed: testSeed(t)}
	_, err := DerivePrivateKeyFromPath(src, "m/1")
	is.NoErr(err)
	is.Equal(src.calls, 1)
	is.True(bytes.Equal(src.last, make([]byte, 64)))
}

func TestDeriveChild_HardenedOffset(t *testing.T) {
	is := is.New(t)

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)

	normal, err := DeriveChildPrivate(master, 5)
	is.NoErr(err)
	hardened, err := DeriveChildPrivate(master, 5+HardenedKeyStart)
	is.NoErr(err)

	is.Equal(normal.ScalarHex(), "029ce90b4082a83445bd2b8f9ef58a80bf5ab1c3e054cd1a75e951ee47dbce7d")
	is.Equal(hardened.ScalarHex(), "0585421b97bd64c15230024d194e2d30b8c9c03f44ed2a3a36acf68c848528fd")
	is.True(!normal.Equal(hardened))

	_, err = DeriveChildPublic(master.Public(), 5+HardenedKeyStart)
	is.True(errors.Is(err, ErrDeriveHardFromPublic))
}

func TestDeriveChildPublic_MatchesPrivate(t *testing.T) {
	master, err := MasterKey(testSeed(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, index := range []uint32{0, 1, 7, 1000, HardenedKeyStart - 1} {
		t.Run(FormatPath([]uint32{index}), func(t *testing.T) {
			is := is.New(t)

			priv, err := DeriveChildPrivate(master, index)
			is.NoErr(err)
			pub, err := DeriveChildPublic(master.Public(), index)
			is.NoErr(err)

			is.True(pub.Equal(priv.Public()))
		})
	}
}

func TestDeriveChildPublic_Golden(t *testing.T) {
	is := is.New(t)

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)

	child, err := master.Public().Child(7)
	is.NoErr(err)
	is.Equal(child.CompressedHex(), "a77cfbdd844223e6366ffa16ca38f8b5407e3d0817b541104176ec04783d9b2f")
	chainCode := child.ChainCode()
	is.Equal(hex.EncodeToString(chainCode[:]), "6560dab0ba559f58ae237086ea3527d0f99c8085714e34f12d116c3507c98ed4")
}

func TestDeriveChildPublic_RejectsHardened(t *testing.T) {
	is := is.New(t)

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)
	pub := master.Public()
	before := pub.String()

	for _, index := range []uint32{HardenedKeyStart, HardenedKeyStart + 1, ^uint32(0)} {
		_, err := DeriveChildPublic(pub, index)
		is.True(errors.Is(err, ErrDeriveHardFromPublic))
	}
	is.Equal(pub.String(), before)
}

func TestExtendedPublicKey_DerivePath(t *testing.T) {
	is := is.New(t)

	master, err := MasterKey(testSeed(t))
	is.NoErr(err)

	pub, err := master.Public().DerivePath("m/0/1")
	is.NoErr(err)
	is.Equal(pub.CompressedHex(), "897aad0f92069461b7cc833c452834de1dc1f0ccc0c2bd275e218dc8e7df4a25")

	_, err = master.Public().DerivePath("m/0'/1")
	is.True(errors.Is(err, ErrDeriveHardFromPublic))

	_, err = master.Public().DerivePath("0/1")
	is.True(errors.Is(err, ErrPathFormat))
}

func TestDerivedScalarsAreReduced(t *testing.T) {
	is := is.New(t)

	order := BabyJubJub().Order()
	key, err := MasterKey(sequentialSeed())
	is.NoErr(err)

	for i := uint32(0); i < 32; i++ {
		index := i
		if i%2 == 1 {
			index += HardenedKeyStart
		}
		key, err = key.Child(index)
		is.NoErr(err)
		is.True(key.Scalar().Sign() >= 0)
		is.True(key.Scalar().Cmp(order) < 0)
	}
}

func TestExtendedPrivateKey_Zero(t *testing.T) {
	is := is.New(t)

	key, err := MasterKey(testSeed(t))
	is.NoErr(err)
	scalar := key.Scalar()

	key.Zero()
	is.Equal(key.Scalar().Sign(), 0)
	is.Equal(key.ChainCode(), [ChainCodeSize]byte{})
	is.True(scalar.Sign() != 0) // copies handed out earlier are independent
}

func TestNewExtendedPrivateKey_Validation(t *testing.T) {
	is := is.New(t)

	_, err := NewExtendedPrivateKey(BabyJubJub().Order(), make([]byte, ChainCodeSize))
	is.True(errors.Is(err, ErrEncodingRange))

	_, err = NewExtendedPrivateKey(big.NewInt(-1), make([]byte, ChainCodeSize))
	is.True(errors.Is(err, ErrEncodingRange))

	_, err = NewExtendedPrivateKey(big.NewInt(1), make([]byte, 31))
	is.True(errors.Is(err, ErrEncodingRange))

	key, err := NewExtendedPrivateKey(big.NewInt(1), make([]byte, ChainCodeSize))
	is.NoErr(err)
	is.True(key.Public().Point().Equal(BabyJubJub().Base()))
}

type countingSource struct {
	seed  []byte
	last  []byte
	calls int
}

func (s *countingSource) Seed() ([]byte, error) {
	s.calls++
	s.last = make([]byte, len(s.seed))
	copy(s.last, s.seed)
	return s.last, nil
}
