package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = mnemonic.SeedSize

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional
// passphrase using PBKDF2-SHA512 as specified in BIP-39. Unlike
// mnemonic.NewSeed it rejects phrases that fail validation.
func SeedFromMnemonic(phrase, passphrase string, lang mnemonic.Language) (mnemonic.Seed, error) {
	m, err := mnemonic.FromPhrase(phrase, lang)
	if err != nil {
		return mnemonic.Seed{}, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return mnemonic.NewSeed(m, passphrase), nil
}
