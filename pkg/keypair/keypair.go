// Package keypair represents Ed25519 signing and verifying keys for Aster
// ledger accounts. A Full keypair can sign and derive its seed encodings; a
// Public keypair can only verify. The two are distinct types so that
// "verifying-key-only" is a first-class state instead of a nil field.
package keypair

import (
	"crypto/ed25519"
	"errors"

	"aster-ledger/go-sdk/pkg/strkey"
	"aster-ledger/go-sdk/pkg/xdr"
)

const (
	// SeedSize is the raw seed length in bytes.
	SeedSize = 32
	// HintSize is the signature hint length in bytes.
	HintSize = 4
)

var (
	ErrInvalidSeedLength    = errors.New("raw seed must be exactly 32 bytes")
	ErrInvalidAddressLength = errors.New("decoded public key must be exactly 32 bytes")
	ErrNoSecretKey          = errors.New("no secret key available")
	ErrInvalidLegacyVersion = errors.New("unexpected legacy version byte")
)

// Identity is the surface shared by Full and Public keypairs. Callers that
// only verify can hold either; signing on a Public identity fails with
// ErrNoSecretKey.
type Identity interface {
	RawPublicKey() []byte
	Address() string
	LegacyAddress() string
	Hint() [HintSize]byte
	Verify(payload, signature []byte) bool
	Sign(payload []byte) ([]byte, error)
	SignDecorated(payload []byte) (xdr.DecoratedSignature, error)
	PublicKeyRecord() xdr.PublicKey
}

// Public holds only a verifying key.
type Public struct {
	pub ed25519.PublicKey
}

// Full holds a verifying key together with the seed and signing key derived
// from it. Values are immutable after construction.
type Full struct {
	Public
	seed [SeedSize]byte
	priv ed25519.PrivateKey
}

var (
	_ Identity = (*Public)(nil)
	_ Identity = (*Full)(nil)
)

// RawPublicKey returns a copy of the 32 verifying key bytes.
func (p *Public) RawPublicKey() []byte {
	return append([]byte(nil), p.pub...)
}

// Address returns the public key in the current checksummed text encoding.
func (p *Public) Address() string {
	return strkey.Encode(strkey.VersionAccount, p.pub)
}

// Hint returns the last four bytes of the public key. Verifiers use it to
// locate the matching key among several candidates; it is not authenticating
// by itself.
func (p *Public) Hint() [HintSize]byte {
	var hint [HintSize]byte
	if len(p.pub) >= HintSize {
		copy(hint[:], p.pub[len(p.pub)-HintSize:])
	}
	return hint
}

// Verify reports whether signature is a valid Ed25519 signature over payload
// by this key. Malformed inputs are a verification failure, not an error.
func (p *Public) Verify(payload, signature []byte) bool {
	if len(p.pub) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(p.pub, payload, signature)
}

// Sign always fails on a verify-only identity.
func (p *Public) Sign([]byte) ([]byte, error) {
	return nil, ErrNoSecretKey
}

// SignDecorated always fails on a verify-only identity.
func (p *Public) SignDecorated([]byte) (xdr.DecoratedSignature, error) {
	return xdr.DecoratedSignature{}, ErrNoSecretKey
}

// PublicKeyRecord returns the tagged wire record for the verifying key.
func (p *Public) PublicKeyRecord() xdr.PublicKey {
	rec := xdr.PublicKey{Type: xdr.KeyTypeEd25519}
	copy(rec.Ed25519[:], p.pub)
	return rec
}

// RawSeed returns a copy of the 32 seed bytes.
func (f *Full) RawSeed() []byte {
	return append([]byte(nil), f.seed[:]...)
}

// Seed returns the seed in the current checksummed text encoding.
func (f *Full) Seed() string {
	return strkey.Encode(strkey.VersionSeed, f.seed[:])
}

// Sign returns the 64-byte Ed25519 signature over payload. A Full value
// built without the package constructors has no signing key and fails with
// ErrNoSecretKey rather than producing a garbage signature.
func (f *Full) Sign(payload []byte) ([]byte, error) {
	if len(f.priv) != ed25519.PrivateKeySize {
		return nil, ErrNoSecretKey
	}
	return ed25519.Sign(f.priv, payload), nil
}

// SignDecorated signs payload and bundles the signature with this key's hint.
func (f *Full) SignDecorated(payload []byte) (xdr.DecoratedSignature, error) {
	sig, err := f.Sign(payload)
	if err != nil {
		return xdr.DecoratedSignature{}, err
	}
	return xdr.DecoratedSignature{Hint: f.Hint(), Signature: sig}, nil
}
