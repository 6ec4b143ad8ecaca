package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"aster-ledger/go-sdk/pkg/mnemonic"
	"aster-ledger/go-sdk/pkg/strkey"
)

// randSource is the CSPRNG behind Random. Tests substitute a deterministic
// reader; production code never touches it.
var randSource io.Reader = rand.Reader

// FromRawSeed derives the keypair deterministically from a 32-byte seed.
func FromRawSeed(seed []byte) (*Full, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSeedLength, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	f := &Full{
		Public: Public{pub: priv.Public().(ed25519.PublicKey)},
		priv:   priv,
	}
	copy(f.seed[:], seed)
	return f, nil
}

// Random generates a keypair from 32 cryptographically secure random bytes.
func Random() (*Full, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(randSource, seed); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return FromRawSeed(seed)
}

// FromMnemonic derives the keypair at the given index from a mnemonic phrase.
// Distinct indexes yield unrelated keypairs from the same phrase.
func FromMnemonic(phrase, passphrase, language string, index uint32) (*Full, error) {
	seed, err := mnemonic.ToSeed(phrase, passphrase, language, index)
	if err != nil {
		return nil, err
	}
	return FromRawSeed(seed)
}

// ParseSeed builds a Full keypair from a strkey-encoded secret seed.
func ParseSeed(s string) (*Full, error) {
	raw, err := strkey.Decode(strkey.VersionSeed, s)
	if err != nil {
		return nil, err
	}
	return FromRawSeed(raw)
}

// ParseAddress builds a verify-only keypair from a strkey-encoded address.
func ParseAddress(s string) (*Public, error) {
	raw, err := strkey.Decode(strkey.VersionAccount, s)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAddressLength, len(raw))
	}
	return &Public{pub: ed25519.PublicKey(raw)}, nil
}
