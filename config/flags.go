package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags holds parsed command-line flags. Only flags the user explicitly
// set override file and network defaults.
type Flags struct {
	// Core
	Config  string
	Network string
	Testnet bool

	// Mnemonic
	Language    string
	EntropyBits int

	// Derivation
	CoinType uint32
	Path     string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	fs *pflag.FlagSet
}

// BindFlags registers the configuration flags on fs. The returned Flags is
// populated when fs is parsed.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	// Core
	fs.StringVarP(&f.Config, "config", "c", "", "Config file path (default: "+DefaultConfigFile()+")")
	fs.StringVar(&f.Network, "network", string(Mainnet), "Network type (mainnet or testnet)")
	fs.BoolVar(&f.Testnet, "testnet", false, "Shorthand for --network=testnet")

	// Mnemonic
	fs.StringVarP(&f.Language, "lang", "l", "english", "Mnemonic wordlist language")
	fs.IntVar(&f.EntropyBits, "bits", 256, "Entropy bits for new mnemonics (128, 160, 192, 224, 256)")

	// Derivation
	fs.Uint32Var(&f.CoinType, "coin-type", 0, "BIP-44 coin type (mainnet: 8888, testnet: 1)")
	fs.StringVarP(&f.Path, "path", "p", "", "Parent derivation path (default: m/44'/<coin-type>'/0'/0)")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error, disabled)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	return f
}

// Load resolves the configuration: network defaults, then the config file,
// then explicitly set flags. The result is validated.
func (f *Flags) Load() (*Config, error) {
	path := f.Config
	if path == "" {
		path = DefaultConfigFile()
	}
	values, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	// The network picks the defaults, so resolve it before anything else.
	network := Mainnet
	if v, ok := values["network"]; ok {
		network = NetworkType(v)
	}
	if f.isSet("network") {
		network = NetworkType(f.Network)
	}
	if f.Testnet {
		network = Testnet
	}

	cfg := Default(network)
	if err := ApplyFileConfig(cfg, values); err != nil {
		return nil, err
	}
	f.apply(cfg)
	cfg.Network = network

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *Flags) apply(cfg *Config) {
	if f.isSet("lang") {
		cfg.Language = f.Language
	}
	if f.isSet("bits") {
		cfg.EntropyBits = f.EntropyBits
	}
	if f.isSet("coin-type") {
		cfg.CoinType = f.CoinType
	}
	if f.isSet("path") {
		cfg.Path = f.Path
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.isSet("log-json") {
		cfg.Log.JSON = f.LogJSON
	}
}

// isSet checks if a flag was explicitly set.
func (f *Flags) isSet(name string) bool {
	if f.fs == nil {
		return false
	}
	fl := f.fs.Lookup(name)
	return fl != nil && fl.Changed
}
