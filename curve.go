// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"math/big"
)

// Point is an affine curve point.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Equal reports whether p and q have the same coordinates.
func (p *Point) Equal(q *Point) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p *Point) clone() *Point {
	if p == nil {
		return nil
	}
	return &Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

// Curve is the curve algebra the derivation engine depends on.
//
// Implementations must not modify their arguments and must return freshly
// allocated points.
type Curve interface {
	// Base returns the generator of the prime-order subgroup.
	Base() *Point
	// Order returns the prime order N of the subgroup generated by Base.
	Order() *big.Int
	// ScalarMult returns k·p.
	ScalarMult(k *big.Int, p *Point) *Point
	// Add returns p + q.
	Add(p, q *Point) *Point
	// Compress returns the canonical compressed encoding of p.
	Compress(p *Point) []byte
}

// PointDecompressor is implemented by curves that can decode their
// compressed point encoding. Only the extended key text encoding needs it.
type PointDecompressor interface {
	Decompress(b []byte) (*Point, error)
}
