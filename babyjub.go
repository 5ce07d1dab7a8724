// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"
)

// CompressedPointSize is the length of a packed Baby Jubjub point.
const CompressedPointSize = 32

type babyJubJub struct{}

// BabyJubJub returns the Baby Jubjub curve as used by circomlib: generator
// Base8, the prime subgroup order, and the 32-byte little-endian packing of
// the Y coordinate with the sign of X in the top bit.
func BabyJubJub() Curve {
	return babyJubJub{}
}

func (babyJubJub) Base() *Point {
	return fromBJJ(babyjub.B8)
}

func (babyJubJub) Order() *big.Int {
	return new(big.Int).Set(babyjub.SubOrder)
}

func (babyJubJub) ScalarMult(k *big.Int, p *Point) *Point {
	return fromBJJ(babyjub.NewPoint().Mul(new(big.Int).Set(k), toBJJ(p)))
}

func (babyJubJub) Add(p, q *Point) *Point {
	sum := babyjub.NewPointProjective().Add(toBJJ(p).Projective(), toBJJ(q).Projective())
	return fromBJJ(sum.Affine())
}

func (babyJubJub) Compress(p *Point) []byte {
	packed := toBJJ(p).Compress()
	return packed[:]
}

// Decompress unpacks a compressed point and checks that it lies in the
// prime-order subgroup.
func (babyJubJub) Decompress(b []byte) (*Point, error) {
	if len(b) != CompressedPointSize {
		return nil, fmt.Errorf("compressed point must be %d bytes, got %d", CompressedPointSize, len(b))
	}
	var buf [CompressedPointSize]byte
	copy(buf[:], b)
	p, err := babyjub.NewPoint().Decompress(buf)
	if err != nil {
		return nil, fmt.Errorf("could not decompress point: %w", err)
	}
	if !p.InSubGroup() {
		return nil, fmt.Errorf("point is not in the prime-order subgroup")
	}
	return fromBJJ(p), nil
}

func toBJJ(p *Point) *babyjub.Point {
	return &babyjub.Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

func fromBJJ(p *babyjub.Point) *Point {
	return &Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}
