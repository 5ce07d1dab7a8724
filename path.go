// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePath parses a derivation path of the form m/i1[']/i2[']/... into
// child indexes. Segments ending in ' are hardened and carry the
// HardenedKeyStart offset. The path "m" yields no indexes.
func ParsePath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if segments[0] != "m" {
		return nil, fmt.Errorf("%w: path must begin with 'm', got %q", ErrPathFormat, path)
	}

	indexes := make([]uint32, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		index, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// parseSegment decides hardening from the segment's own suffix.
func parseSegment(segment string) (uint32, error) {
	digits, hardened := strings.CutSuffix(segment, "'")
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("%w: %q is not a number", ErrPathFormat, segment)
	}

	raw, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || uint32(raw) >= HardenedKeyStart {
		return 0, fmt.Errorf("%w: index %q must be below %d", ErrPathFormat, digits, HardenedKeyStart)
	}

	index := uint32(raw)
	if hardened {
		index += HardenedKeyStart
	}
	return index, nil
}

// FormatPath renders child indexes back into path notation.
func FormatPath(indexes []uint32) string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range indexes {
		b.WriteByte('/')
		if index >= HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(index-HardenedKeyStart), 10))
			b.WriteByte('\'')
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(index), 10))
	}
	return b.String()
}
