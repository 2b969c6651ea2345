package mnemonic

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// seedIterations is the PBKDF2 round count fixed by BIP-39.
const seedIterations = 2048

// ErrInvalidSeed is returned when a seed's text form cannot be parsed.
var ErrInvalidSeed = errors.New("invalid seed")

// Seed is the 512-bit output of BIP-39 key stretching. It initializes a
// BIP-32 master key.
type Seed [SeedSize]byte

// NewSeed derives the seed of m with an optional passphrase using
// PBKDF2-HMAC-SHA512 as specified in BIP-39. The salt is
// NFKD("mnemonic" + passphrase).
func NewSeed(m *Mnemonic, passphrase string) Seed {
	return seedFromPhrase(m.phrase, passphrase)
}

func seedFromPhrase(phrase, passphrase string) Seed {
	// Normalizing the phrase is a no-op except for Japanese phrases, whose
	// ideographic spaces become U+0020.
	password := []byte(norm.NFKD.String(phrase))
	salt := []byte(norm.NFKD.String("mnemonic" + passphrase))

	var seed Seed
	copy(seed[:], crypto.PBKDF2SHA512(password, salt, seedIterations, SeedSize))
	return seed
}

// ParseSeed decodes a 128-character hex seed.
func ParseSeed(s string) (Seed, error) {
	var seed Seed
	b, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if len(b) != SeedSize {
		return seed, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidSeed, len(b), SeedSize)
	}
	copy(seed[:], b)
	return seed, nil
}

// Bytes returns a copy of the seed.
func (s Seed) Bytes() []byte {
	return slices.Clone(s[:])
}

// String returns the lower-case hex encoding of the seed.
func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}
