// Package strkey implements the checksummed text encoding used for public
// keys and secret seeds on the Aster ledger network: a purpose version byte,
// the raw payload, and a CRC16 checksum, encoded as unpadded base32.
package strkey

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
)

// VersionByte tags an encoded payload with its purpose so that a seed can
// never be mistaken for an address and vice versa.
type VersionByte byte

const (
	// VersionAccount is the purpose tag for public keys. Encoded addresses
	// start with 'G'.
	VersionAccount VersionByte = 6 << 3
	// VersionSeed is the purpose tag for secret seeds. Encoded seeds start
	// with 'S'.
	VersionSeed VersionByte = 18 << 3
)

var (
	ErrChecksumMismatch   = errors.New("strkey checksum mismatch")
	ErrInvalidVersionByte = errors.New("strkey version byte mismatch")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Encode returns the text form of payload under the given purpose tag.
func Encode(version VersionByte, payload []byte) string {
	raw := make([]byte, 0, len(payload)+3)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	var crc [2]byte
	binary.LittleEndian.PutUint16(crc[:], checksum(raw))
	raw = append(raw, crc[:]...)
	return encoding.EncodeToString(raw)
}

// Decode reverses Encode. It fails if the text is not valid base32, the
// checksum does not match, or the version byte is not the expected one.
func Decode(expected VersionByte, s string) ([]byte, error) {
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("strkey base32 decode: %w", err)
	}
	if len(raw) < 3 {
		return nil, fmt.Errorf("strkey too short: %d bytes", len(raw))
	}
	body, crc := raw[:len(raw)-2], raw[len(raw)-2:]
	if checksum(body) != binary.LittleEndian.Uint16(crc) {
		return nil, ErrChecksumMismatch
	}
	if VersionByte(body[0]) != expected {
		return nil, fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrInvalidVersionByte, body[0], byte(expected))
	}
	return append([]byte(nil), body[1:]...), nil
}

// checksum is CRC16-XModem: polynomial 0x1021, zero initial value.
func checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
