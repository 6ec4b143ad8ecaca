// Package mnemonic derives raw keypair seeds from BIP39-style phrases. The
// derivation takes a keypair index so that a single phrase yields an
// unbounded sequence of unrelated seeds.
package mnemonic

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived raw seed in bytes.
const SeedSize = 32

const (
	pbkdf2Rounds = 2048
	saltPrefix   = "mnemonic"
)

var (
	ErrInvalidPhrase       = errors.New("invalid mnemonic phrase")
	ErrUnsupportedLanguage = errors.New("unsupported mnemonic language")
)

var wordlistByLanguage = map[string][]string{
	"english":             wordlists.English,
	"chinese_simplified":  wordlists.ChineseSimplified,
	"chinese_traditional": wordlists.ChineseTraditional,
	"french":              wordlists.French,
	"italian":             wordlists.Italian,
	"japanese":            wordlists.Japanese,
	"korean":              wordlists.Korean,
	"spanish":             wordlists.Spanish,
}

// bip39 keeps the active wordlist in package state, so language selection is
// serialized here.
var listMu sync.Mutex

// NewPhrase generates a fresh phrase with the given entropy size in bits
// (128 through 256 in steps of 32).
func NewPhrase(entropyBits int, language string) (string, error) {
	words, err := lookupLanguage(language)
	if err != nil {
		return "", err
	}
	listMu.Lock()
	defer listMu.Unlock()
	bip39.SetWordList(words)
	defer bip39.SetWordList(wordlists.English)

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("mnemonic entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// Validate reports whether phrase is a well-formed mnemonic in the given
// language.
func Validate(phrase, language string) error {
	words, err := lookupLanguage(language)
	if err != nil {
		return err
	}
	listMu.Lock()
	defer listMu.Unlock()
	bip39.SetWordList(words)
	defer bip39.SetWordList(wordlists.English)

	if !bip39.IsMnemonicValid(normalize(phrase)) {
		return ErrInvalidPhrase
	}
	return nil
}

// ToSeed derives the raw seed for one keypair index. The index is mixed into
// the PBKDF2 salt, not split off the output, so every index produces an
// independent seed.
func ToSeed(phrase, passphrase, language string, index uint32) ([]byte, error) {
	phrase = normalize(phrase)
	passphrase = norm.NFKD.String(passphrase)
	if err := Validate(phrase, language); err != nil {
		return nil, err
	}
	salt := saltPrefix + passphrase + strconv.FormatUint(uint64(index), 10)
	return pbkdf2.Key([]byte(phrase), []byte(salt), pbkdf2Rounds, SeedSize, sha512.New), nil
}

// normalize applies NFKD so composed input (IME-produced kana with dakuten,
// ideographic separators) matches the decomposed form the wordlists and the
// seed derivation are defined over.
func normalize(phrase string) string {
	return strings.TrimSpace(norm.NFKD.String(phrase))
}

func lookupLanguage(language string) ([]string, error) {
	if language == "" {
		language = "english"
	}
	words, ok := wordlistByLanguage[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return words, nil
}
