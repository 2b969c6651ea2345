package config

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/pkg/hdkey"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// Validate checks the configuration for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if _, err := cfg.MnemonicLanguage(); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if !mnemonic.ValidEntropyBits(cfg.EntropyBits) {
		return fmt.Errorf("mnemonic.bits must be one of 128, 160, 192, 224, 256: got %d", cfg.EntropyBits)
	}
	if cfg.CoinType > hdkey.MaxIndex {
		return fmt.Errorf("coin_type must be in range [0, %d]", hdkey.MaxIndex)
	}
	if _, err := cfg.DerivationPath(); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, error or disabled")
	}
	return nil
}
