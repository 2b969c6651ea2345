package config

import "github.com/Klingon-tech/klingnet-keys/internal/wallet"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network:     Mainnet,
		Language:    "english",
		EntropyBits: wallet.MnemonicEntropyBits,
		CoinType:    wallet.CoinTypeKlingnet,
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.CoinType = wallet.CoinTypeTestnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
