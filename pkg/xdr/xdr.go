// Package xdr holds the two wire records a network consumer needs from a
// keypair: the tagged public key and the decorated signature. Marshalling
// follows XDR rules: big-endian discriminants, fixed opaques raw, variable
// opaques length-prefixed and zero-padded to a four byte boundary.
package xdr

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// KeyType discriminates the public key union on the wire.
type KeyType int32

// KeyTypeEd25519 is the only key type the current network accepts.
const KeyTypeEd25519 KeyType = 0

const (
	// PublicKeySize is the raw Ed25519 public key length.
	PublicKeySize = 32
	// HintSize is the signature hint length.
	HintSize = 4
)

// PublicKey is the tagged public key record.
type PublicKey struct {
	Type    KeyType
	Ed25519 [PublicKeySize]byte
}

func (pk PublicKey) MarshalBinary() ([]byte, error) {
	if pk.Type != KeyTypeEd25519 {
		return nil, fmt.Errorf("unsupported key type %d", pk.Type)
	}
	out := make([]byte, 4+PublicKeySize)
	binary.BigEndian.PutUint32(out[:4], uint32(pk.Type))
	copy(out[4:], pk.Ed25519[:])
	return out, nil
}

// MarshalBase64 returns the base64 wire form used when submitting the record
// over text transports.
func (pk PublicKey) MarshalBase64() (string, error) {
	raw, err := pk.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecoratedSignature pairs a signature with its signer's hint so verifiers
// can pre-filter candidate keys. The hint is a lookup aid only; consumers
// must still run a full verification.
type DecoratedSignature struct {
	Hint      [HintSize]byte
	Signature []byte
}

func (ds DecoratedSignature) MarshalBinary() ([]byte, error) {
	pad := (4 - len(ds.Signature)%4) % 4
	out := make([]byte, 0, HintSize+4+len(ds.Signature)+pad)
	out = append(out, ds.Hint[:]...)
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(ds.Signature)))
	out = append(out, length[:]...)
	out = append(out, ds.Signature...)
	out = append(out, make([]byte, pad)...)
	return out, nil
}

func (ds DecoratedSignature) MarshalBase64() (string, error) {
	raw, err := ds.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
