package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads configuration from a .conf file.
// Format: key = value (one per line, # for comments). A missing file yields
// no values.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "network":
		cfg.Network = NetworkType(value)

	// Mnemonic
	case "language", "lang":
		cfg.Language = value
	case "mnemonic.bits":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.EntropyBits = n

	// Derivation
	case "coin_type":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.CoinType = uint32(n)
	case "path":
		cfg.Path = value

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a default configuration file. Existing files
// are not overwritten.
func WriteDefaultConfig(path string, network NetworkType) error {
	cfg := Default(network)
	content := `# klingkeys configuration
#
# Command-line flags override every value in this file.
# Secrets (mnemonics, passphrases) never belong here.

# Network: mainnet (xprv, coin type 8888) or testnet (tprv, coin type 1)
network = ` + string(network) + `

# ============================================================================
# Mnemonic
# ============================================================================

# Wordlist: english, chinese-simplified, chinese-traditional, french,
# italian, japanese, korean, spanish, czech
language = ` + cfg.Language + `

# Entropy for new mnemonics: 128, 160, 192, 224 or 256 bits
mnemonic.bits = ` + strconv.Itoa(cfg.EntropyBits) + `

# ============================================================================
# Derivation
# ============================================================================

# BIP-44 coin type used when path is empty
coin_type = ` + strconv.FormatUint(uint64(cfg.CoinType), 10) + `

# Parent path for derive (default: m/44'/<coin_type>'/0'/0)
# path = m/44'/8888'/0'/0

# ============================================================================
# Logging
# ============================================================================

log.level = ` + cfg.Log.Level + `
# log.file =
log.json = false
`
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
