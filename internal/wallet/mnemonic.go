// Package wallet implements HD wallet functionality on top of BIP-39
// mnemonics and BIP-32 key derivation.
package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// GenerateMnemonic creates a new BIP-39 mnemonic with the given entropy size.
func GenerateMnemonic(bits int, lang mnemonic.Language) (string, error) {
	m, err := mnemonic.New(bits, lang)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	log.Wallet.Debug().
		Int("bits", bits).
		Int("words", m.WordCount()).
		Stringer("language", lang).
		Msg("Generated mnemonic")
	return m.Phrase(), nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(phrase string, lang mnemonic.Language) bool {
	return mnemonic.Validate(phrase, lang) == nil
}
