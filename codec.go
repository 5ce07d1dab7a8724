// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// ser32 serializes an index as 4 big-endian bytes.
func ser32(i uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, i)
	return b
}

// ser256 serializes x as 32 big-endian bytes, left padded with zeros.
func ser256(x *big.Int) ([]byte, error) {
	if x == nil || x.Sign() < 0 || x.BitLen() > 8*ScalarSize {
		return nil, fmt.Errorf("%w: scalar does not fit in %d bytes", ErrEncodingRange, ScalarSize)
	}
	b := make([]byte, ScalarSize)
	x.FillBytes(b)
	return b, nil
}

// parse256 interprets b as a big-endian unsigned integer. The result is not
// reduced; callers reduce modulo the subgroup order where needed.
func parse256(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
