// Package base58check implements the first-generation text codec: a payload
// followed by a four byte double-SHA-256 checksum, encoded as base58. It is
// retained only so existing material can be migrated to the strkey encoding.
package base58check

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58/base58"
)

var (
	ErrChecksumMismatch = errors.New("base58check checksum mismatch")
	ErrInputTooShort    = errors.New("base58check input too short")
)

// Encode appends checksum(payload) to payload and base58 encodes the result.
// Any version byte is part of the payload; callers prepend their own.
func Encode(payload []byte) string {
	buf := make([]byte, 0, len(payload)+4)
	buf = append(buf, payload...)
	buf = append(buf, checksum(payload)...)
	return base58.Encode(buf)
}

// Decode reverses Encode, returning the payload without its checksum.
func Decode(s string) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("base58 decode: %w", err)
	}
	if len(raw) < 5 {
		return nil, ErrInputTooShort
	}
	payload, check := raw[:len(raw)-4], raw[len(raw)-4:]
	if !bytes.Equal(checksum(payload), check) {
		return nil, ErrChecksumMismatch
	}
	return append([]byte(nil), payload...), nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:4]
}
