// Package config handles klingkeys configuration.
//
// Settings are resolved in three layers, later layers overriding earlier
// ones:
//   - Network defaults (Default)
//   - The key = value config file (LoadFile, ApplyFileConfig)
//   - Command-line flags that were explicitly set (Flags.Load)
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-keys/pkg/hdkey"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// PassphraseEnv names the environment variable read for the BIP-39
// passphrase when neither --passphrase nor --prompt is given.
const PassphraseEnv = "KLINGKEYS_PASSPHRASE"

// Config holds klingkeys runtime configuration.
type Config struct {
	// Network selects the extended key version (xprv/tprv) and the
	// default coin type.
	Network NetworkType `conf:"network"`

	// Mnemonic
	Language    string `conf:"language"`
	EntropyBits int    `conf:"mnemonic.bits"`

	// Derivation
	CoinType uint32 `conf:"coin_type"`
	Path     string `conf:"path"` // Parent path for derive; empty means m/44'/coin'/0'/0.

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// MnemonicLanguage returns the parsed wordlist language.
func (c *Config) MnemonicLanguage() (mnemonic.Language, error) {
	return mnemonic.ParseLanguage(c.Language)
}

// KeyVersion returns the private extended key version for the network.
func (c *Config) KeyVersion() uint32 {
	if c.Network == Testnet {
		return hdkey.VersionTestnetPrivate
	}
	return hdkey.VersionMainnetPrivate
}

// DerivationPath returns the parsed Path, or nil when Path is empty.
func (c *Config) DerivationPath() (hdkey.Path, error) {
	if c.Path == "" {
		return nil, nil
	}
	return hdkey.ParsePath(c.Path)
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultConfigDir returns the platform-specific default config directory.
//
//	Linux:   ~/.klingkeys
//	macOS:   ~/Library/Application Support/Klingkeys
//	Windows: %APPDATA%\Klingkeys
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingkeys"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Klingkeys")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Klingkeys")
		}
		return filepath.Join(home, "AppData", "Roaming", "Klingkeys")
	default:
		return filepath.Join(home, ".klingkeys")
	}
}

// DefaultConfigFile returns the config file path used when --config is not
// given.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "klingkeys.conf")
}
