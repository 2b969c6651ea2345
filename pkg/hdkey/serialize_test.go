package hdkey

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestParseExtendedKey_RoundTrip(t *testing.T) {
	master := mustMaster(t, vector1Seed)
	paths := []string{"m", "m/0'", "m/0'/1/2'", "m/44'/8888'/3'/1/2147483647"}

	for _, s := range paths {
		t.Run(s, func(t *testing.T) {
			p, err := ParsePath(s)
			if err != nil {
				t.Fatalf("ParsePath() error: %v", err)
			}
			k, err := master.DerivePath(p)
			if err != nil {
				t.Fatalf("DerivePath() error: %v", err)
			}

			back, err := ParseExtendedKey(k.String())
			if err != nil {
				t.Fatalf("ParseExtendedKey() error: %v", err)
			}
			if !bytes.Equal(back.PrivateKeyBytes(), k.PrivateKeyBytes()) {
				t.Error("private key mismatch")
			}
			if back.ChainCode() != k.ChainCode() {
				t.Error("chain code mismatch")
			}
			if back.Depth() != k.Depth() || back.ChildNumber() != k.ChildNumber() {
				t.Errorf("position = %d/%s, want %d/%s", back.Depth(), back.ChildNumber(), k.Depth(), k.ChildNumber())
			}
			if back.ParentFingerprint() != k.ParentFingerprint() {
				t.Error("parent fingerprint mismatch")
			}
			if back.Version() != VersionMainnetPrivate {
				t.Errorf("Version() = %#x, want %#x", back.Version(), VersionMainnetPrivate)
			}
			if back.String() != k.String() {
				t.Errorf("String() = %s, want %s", back, k)
			}
		})
	}
}

func TestString_Prefixes(t *testing.T) {
	mainnet := mustMaster(t, vector1Seed)
	testnet, err := NewMasterKeyWithVersion(mustHex(t, vector1Seed), VersionTestnetPrivate)
	if err != nil {
		t.Fatalf("NewMasterKeyWithVersion() error: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"mainnet private", mainnet.String(), "xprv"},
		{"mainnet public", mainnet.PublicString(), "xpub"},
		{"testnet private", testnet.String(), "tprv"},
		{"testnet public", testnet.PublicString(), "tpub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.got, tt.want) {
				t.Errorf("serialization = %s, want prefix %s", tt.got, tt.want)
			}
		})
	}
}

func TestParseExtendedKey_Errors(t *testing.T) {
	master := mustMaster(t, vector1Seed)

	if _, err := ParseExtendedKey(master.PublicString()); !errors.Is(err, ErrPublicKeyOnly) {
		t.Errorf("ParseExtendedKey(xpub) error = %v, want %v", err, ErrPublicKeyOnly)
	}

	xprv := master.String()
	corrupt := xprv[:len(xprv)-1] + string(flipBase58(xprv[len(xprv)-1]))

	privateAs := func(version uint32) string {
		raw := master.toBIP32(true)
		raw.Version = binary.BigEndian.AppendUint32(nil, version)
		return raw.B58Serialize()
	}

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "not an extended key"},
		{"truncated", xprv[:len(xprv)-4]},
		{"bad checksum", corrupt},
		{"private key as xpub", privateAs(VersionMainnetPublic)},
		{"private key as tpub", privateAs(VersionTestnetPublic)},
		{"unknown version", privateAs(0xdeadbeef)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseExtendedKey(tt.in); !errors.Is(err, ErrInvalidExtendedKey) {
				t.Errorf("ParseExtendedKey(%q) error = %v, want %v", tt.in, err, ErrInvalidExtendedKey)
			}
		})
	}
}

func flipBase58(c byte) byte {
	if c == '2' {
		return '3'
	}
	return '2'
}
