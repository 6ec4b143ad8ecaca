package base58check

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{0x00},
		append([]byte{0x21}, bytes.Repeat([]byte{0x7F}, 32)...),
		append([]byte{0x00}, bytes.Repeat([]byte{0x00}, 20)...),
	}
	for _, payload := range payloads {
		encoded := Encode(payload)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode failed for %x: %v", payload, err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("round trip mismatch: got %x, want %x", decoded, payload)
		}
	}
}

func TestLeadingZeroBytesSurvive(t *testing.T) {
	payload := append([]byte{0x00, 0x00}, []byte{0x01, 0x02, 0x03}...)
	encoded := Encode(payload)
	if !strings.HasPrefix(encoded, "11") {
		t.Fatalf("leading zero bytes should encode as '1' characters, got %q", encoded)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("leading zeros lost: got %x, want %x", decoded, payload)
	}
}

func TestDecodeRejectsCorruptedText(t *testing.T) {
	encoded := Encode(bytes.Repeat([]byte{0x42}, 16))
	corrupted := []byte(encoded)
	mid := len(corrupted) / 2
	if corrupted[mid] == '2' {
		corrupted[mid] = '3'
	} else {
		corrupted[mid] = '2'
	}
	if _, err := Decode(string(corrupted)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestDecodeRejectsShortInput(t *testing.T) {
	if _, err := Decode("2g"); !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("expected ErrInputTooShort, got %v", err)
	}
}

func TestDecodeRejectsNonAlphabetCharacters(t *testing.T) {
	if _, err := Decode("0OIl"); err == nil {
		t.Fatal("expected error for characters outside the base58 alphabet")
	}
}
