package mnemonic

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/text/unicode/norm"
)

// A fixed valid English phrase (the classic all-"abandon" test phrase).
const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestToSeedDeterministic(t *testing.T) {
	s1, err := ToSeed(testPhrase, "", "english", 0)
	if err != nil {
		t.Fatalf("first derivation failed: %v", err)
	}
	s2, err := ToSeed(testPhrase, "", "english", 0)
	if err != nil {
		t.Fatalf("second derivation failed: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatal("identical inputs must derive identical seeds")
	}
	if len(s1) != SeedSize {
		t.Fatalf("seed must be %d bytes, got %d", SeedSize, len(s1))
	}
}

func TestToSeedIndexesAreIndependent(t *testing.T) {
	seen := make(map[string]uint32)
	for _, index := range []uint32{0, 1, 2, 7, 1000} {
		seed, err := ToSeed(testPhrase, "", "english", index)
		if err != nil {
			t.Fatalf("derivation failed for index %d: %v", index, err)
		}
		if prev, dup := seen[string(seed)]; dup {
			t.Fatalf("indexes %d and %d derived the same seed", prev, index)
		}
		seen[string(seed)] = index
	}
}

func TestToSeedPassphraseChangesSeed(t *testing.T) {
	plain, err := ToSeed(testPhrase, "", "english", 0)
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	salted, err := ToSeed(testPhrase, "extra", "english", 0)
	if err != nil {
		t.Fatalf("derivation with passphrase failed: %v", err)
	}
	if bytes.Equal(plain, salted) {
		t.Fatal("passphrase must change the derived seed")
	}
}

func TestToSeedRejectsInvalidPhrase(t *testing.T) {
	if _, err := ToSeed("definitely not a mnemonic", "", "english", 0); !errors.Is(err, ErrInvalidPhrase) {
		t.Fatalf("expected ErrInvalidPhrase, got %v", err)
	}
}

func TestToSeedRejectsUnknownLanguage(t *testing.T) {
	if _, err := ToSeed(testPhrase, "", "klingon", 0); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestComposedFormPhraseDerivesCanonicalSeed(t *testing.T) {
	// Wordlists are decomposed (NFKD); IMEs hand back composed kana. Both
	// forms of the same Japanese phrase must validate and derive identically.
	phrase, err := NewPhrase(128, "japanese")
	if err != nil {
		t.Fatalf("phrase generation failed: %v", err)
	}
	composed := norm.NFC.String(phrase)

	if err := Validate(composed, "japanese"); err != nil {
		t.Fatalf("composed-form phrase should validate: %v", err)
	}
	canonical, err := ToSeed(phrase, "", "japanese", 0)
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	fromComposed, err := ToSeed(composed, "", "japanese", 0)
	if err != nil {
		t.Fatalf("composed-form derivation failed: %v", err)
	}
	if !bytes.Equal(canonical, fromComposed) {
		t.Fatal("composed and decomposed phrase forms must derive the same seed")
	}
}

func TestPassphraseIsNormalized(t *testing.T) {
	composed := "ぞ"          // ぞ
	decomposed := "ぞ" // そ + combining dakuten
	a, err := ToSeed(testPhrase, composed, "english", 0)
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	b, err := ToSeed(testPhrase, decomposed, "english", 0)
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("composed and decomposed passphrase forms must derive the same seed")
	}
}

func TestNewPhraseIsValid(t *testing.T) {
	phrase, err := NewPhrase(256, "english")
	if err != nil {
		t.Fatalf("phrase generation failed: %v", err)
	}
	if err := Validate(phrase, "english"); err != nil {
		t.Fatalf("generated phrase should validate: %v", err)
	}
}

func TestNewPhraseRejectsBadEntropy(t *testing.T) {
	if _, err := NewPhrase(100, "english"); err == nil {
		t.Fatal("expected error for entropy size not divisible by 32")
	}
}
