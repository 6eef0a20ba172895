package mnemonic

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	// Strength128 produces a 12-word phrase
	Strength128 = 128
	// Strength256 produces a 24-word phrase
	Strength256 = 256

	// SeedSize is the length of a BIP-39 seed in bytes
	SeedSize = 64
)

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidStrength = errors.New("strength must be 128 or 256 bits")
)

// Mnemonic is a whitespace-normalised word phrase.
type Mnemonic string

// Words returns the individual words of the phrase.
func (m Mnemonic) Words() []string {
	return strings.Fields(string(m))
}

// Seed is the deterministic byte string derived from a mnemonic and passphrase.
type Seed []byte

// Hex returns the fixed-length hex encoding of the seed.
func (s Seed) Hex() string {
	return hex.EncodeToString(s)
}

// ParseSeed decodes a hex seed written by Seed.Hex.
func ParseSeed(s string) (Seed, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	if len(b) != SeedSize {
		return nil, fmt.Errorf("seed must decode to %d bytes, got %d", SeedSize, len(b))
	}
	return Seed(b), nil
}

// Engine generates, checks and expands mnemonic phrases.
// A strict engine also enforces wordlist membership and the BIP-39 checksum.
type Engine struct {
	strict bool
}

// NewEngine returns an Engine. strict=false only checks the word count.
func NewEngine(strict bool) *Engine {
	return &Engine{strict: strict}
}

// Strict reports whether the engine enforces wordlist and checksum.
func (e *Engine) Strict() bool {
	return e.strict
}

// Generate returns a fresh random phrase of 12 (128 bits) or 24 (256 bits) words.
func (e *Engine) Generate(strength int) (Mnemonic, error) {
	if strength != Strength128 && strength != Strength256 {
		return "", ErrInvalidStrength
	}

	entropy, err := bip39.NewEntropy(strength)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return Mnemonic(phrase), nil
}

// Validate reports whether candidate has exactly 12 or 24 whitespace-separated words.
func Validate(candidate string) bool {
	n := len(strings.Fields(candidate))
	return n == 12 || n == 24
}

// Validate is the engine-level variant of Validate; it honours strict mode.
func (e *Engine) Validate(candidate string) bool {
	return e.Check(candidate) == nil
}

// Check returns nil for an acceptable phrase or a *ValidationError describing
// what is wrong with it. The error never contains the phrase itself.
func (e *Engine) Check(candidate string) error {
	words := strings.Fields(candidate)
	if n := len(words); n != 12 && n != 24 {
		return &ValidationError{Reason: ReasonWordCount, WordCount: n}
	}
	if !e.strict {
		return nil
	}

	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return &ValidationError{Reason: ReasonUnknownWord, WordCount: len(words), Position: i + 1}
		}
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return &ValidationError{Reason: ReasonChecksum, WordCount: len(words)}
	}
	return nil
}

// Normalize trims and collapses whitespace. It does not validate.
func Normalize(candidate string) Mnemonic {
	return Mnemonic(strings.Join(strings.Fields(candidate), " "))
}

// ToSeed derives the BIP-39 seed (PBKDF2-SHA512, 2048 rounds) for a phrase and
// optional passphrase. Same inputs always give the same seed.
func (e *Engine) ToSeed(m Mnemonic, passphrase string) (Seed, error) {
	if err := e.Check(string(m)); err != nil {
		return nil, err
	}
	return Seed(bip39.NewSeed(string(Normalize(string(m))), passphrase)), nil
}
