// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package babyjubhd

import (
	"crypto/hmac"
	"crypto/sha512"
)

// HMACFunc computes a 64-byte keyed MAC of message.
type HMACFunc func(key, message []byte) []byte

// HMACSHA512 is HMAC with SHA-512.
func HMACSHA512(key, message []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(message) //nolint:errcheck
	return mac.Sum(nil)
}
