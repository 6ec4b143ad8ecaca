package keypair

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/ripemd160"

	"aster-ledger/go-sdk/internal/platform/legacydiag"
	"aster-ledger/go-sdk/pkg/base58check"
)

// Version bytes of the first-generation network encodings.
const (
	legacyAddressVersion = 0x00
	legacySeedVersion    = 0x21
)

// LegacyAddress returns the first-generation network identifier for the
// public key: base58check over a zero version byte plus
// RIPEMD160(SHA256(publicKey)). The transform is one way; a legacy address
// cannot be decoded back into a public key and exists only for compatibility
// lookups against the old network.
//
// Deprecated: use Address.
func (p *Public) LegacyAddress() string {
	legacydiag.Warn("address_encode", "legacy hash-based addresses are retained for migration only")
	sum := sha256.Sum256(p.pub)
	h := ripemd160.New()
	h.Write(sum[:])
	buf := make([]byte, 0, 1+ripemd160.Size)
	buf = append(buf, legacyAddressVersion)
	buf = append(buf, h.Sum(nil)...)
	return base58check.Encode(buf)
}

// LegacySeed returns the seed in the first-generation base58 encoding.
// Unlike LegacyAddress this is reversible; ParseLegacySeed inverts it.
//
// Deprecated: use Seed.
func (f *Full) LegacySeed() string {
	legacydiag.Warn("seed_encode", "base58 seed encoding is retained for migration only")
	buf := make([]byte, 0, 1+SeedSize)
	buf = append(buf, legacySeedVersion)
	buf = append(buf, f.seed[:]...)
	return base58check.Encode(buf)
}

// ParseLegacySeed builds a Full keypair from a first-generation base58
// encoded seed.
//
// Deprecated: use ParseSeed; this exists only to migrate stored material.
func ParseLegacySeed(s string) (*Full, error) {
	legacydiag.Warn("seed_decode", "base58 seed decoding is retained for migration only")
	raw, err := base58check.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < 1 || raw[0] != legacySeedVersion {
		return nil, fmt.Errorf("%w: want 0x%02x", ErrInvalidLegacyVersion, legacySeedVersion)
	}
	return FromRawSeed(raw[1:])
}
