package keypair

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"aster-ledger/go-sdk/internal/platform/legacydiag"
	"aster-ledger/go-sdk/pkg/base58check"
)

func captureLegacyEvents(t *testing.T) *[]legacydiag.Event {
	t.Helper()
	var events []legacydiag.Event
	legacydiag.SetObserver(func(ev legacydiag.Event) { events = append(events, ev) })
	legacydiag.SetEnabled(false)
	t.Cleanup(func() {
		legacydiag.SetObserver(nil)
		legacydiag.SetEnabled(true)
	})
	return &events
}

func TestLegacySeedRoundTrip(t *testing.T) {
	events := captureLegacyEvents(t)

	seed := bytes.Repeat([]byte{0x33}, SeedSize)
	f := mustFromRawSeed(t, seed)

	encoded := f.LegacySeed()
	parsed, err := ParseLegacySeed(encoded)
	if err != nil {
		t.Fatalf("parse legacy seed failed: %v", err)
	}
	if !bytes.Equal(parsed.RawSeed(), seed) {
		t.Fatal("legacy seed round trip mismatch")
	}
	if parsed.Address() != f.Address() {
		t.Fatal("legacy round trip should keep the keypair identity")
	}

	if len(*events) != 2 {
		t.Fatalf("expected a deprecation event per legacy call, got %d", len(*events))
	}
	ops := []string{(*events)[0].Op, (*events)[1].Op}
	if ops[0] != "seed_encode" || ops[1] != "seed_decode" {
		t.Fatalf("unexpected event ops %v", ops)
	}
}

func TestParseLegacySeedRejectsWrongVersion(t *testing.T) {
	captureLegacyEvents(t)

	payload := append([]byte{0x55}, bytes.Repeat([]byte{0x33}, SeedSize)...)
	if _, err := ParseLegacySeed(base58check.Encode(payload)); !errors.Is(err, ErrInvalidLegacyVersion) {
		t.Fatalf("expected ErrInvalidLegacyVersion, got %v", err)
	}
}

func TestParseLegacySeedRejectsCorruptedText(t *testing.T) {
	captureLegacyEvents(t)

	f := mustFromRawSeed(t, bytes.Repeat([]byte{0x44}, SeedSize))
	corrupted := []byte(f.LegacySeed())
	mid := len(corrupted) / 2
	if corrupted[mid] == '2' {
		corrupted[mid] = '3'
	} else {
		corrupted[mid] = '2'
	}
	if _, err := ParseLegacySeed(string(corrupted)); err == nil {
		t.Fatal("expected error for corrupted legacy seed")
	}
}

func TestLegacyAddressIsStableAndIrreversible(t *testing.T) {
	captureLegacyEvents(t)

	f := mustFromRawSeed(t, bytes.Repeat([]byte{0x66}, SeedSize))
	addr := f.LegacyAddress()
	if addr != f.LegacyAddress() {
		t.Fatal("legacy address must be deterministic")
	}
	// Hash-based addresses for a zero version byte lead with a '1'.
	if !strings.HasPrefix(addr, "1") {
		t.Fatalf("legacy address should start with '1', got %q", addr)
	}

	// The encoding decodes, but only to a 21-byte hash digest; the public
	// key is not recoverable from it.
	payload, err := base58check.Decode(addr)
	if err != nil {
		t.Fatalf("legacy address should be well-formed base58check: %v", err)
	}
	if len(payload) != 21 {
		t.Fatalf("expected 21-byte payload, got %d", len(payload))
	}
	if payload[0] != 0x00 {
		t.Fatalf("expected zero version byte, got 0x%02x", payload[0])
	}
	if bytes.Contains(payload, f.RawPublicKey()) {
		t.Fatal("legacy address must not embed the public key")
	}
}

func TestLegacyAddressMatchesForFullAndPublic(t *testing.T) {
	captureLegacyEvents(t)

	f := mustFromRawSeed(t, bytes.Repeat([]byte{0x77}, SeedSize))
	pub, err := ParseAddress(f.Address())
	if err != nil {
		t.Fatalf("parse address failed: %v", err)
	}
	if f.LegacyAddress() != pub.LegacyAddress() {
		t.Fatal("legacy address must depend only on the public key")
	}
}
