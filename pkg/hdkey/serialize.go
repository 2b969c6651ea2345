package hdkey

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip32"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
)

// Serialization versions.
const (
	VersionMainnetPrivate uint32 = 0x0488ade4 // xprv
	VersionMainnetPublic  uint32 = 0x0488b21e // xpub
	VersionTestnetPrivate uint32 = 0x04358394 // tprv
	VersionTestnetPublic  uint32 = 0x043587cf // tpub
)

// ErrInvalidExtendedKey is returned for a serialization that decodes but
// describes an impossible key.
var ErrInvalidExtendedKey = errors.New("invalid extended key")

func (k *ExtendedKey) privateVersion() uint32 {
	if k.version == 0 {
		return VersionMainnetPrivate
	}
	return k.version
}

func publicVersion(private uint32) uint32 {
	if private == VersionTestnetPrivate {
		return VersionTestnetPublic
	}
	return VersionMainnetPublic
}

func (k *ExtendedKey) toBIP32(private bool) *bip32.Key {
	fp := k.parentFingerprint
	cc := k.chainCode
	key := &bip32.Key{
		Depth:       k.depth,
		ChildNumber: binary.BigEndian.AppendUint32(nil, k.childNumber.Uint32()),
		FingerPrint: fp[:],
		ChainCode:   cc[:],
	}
	if private {
		key.Version = binary.BigEndian.AppendUint32(nil, k.privateVersion())
		key.Key = k.key.Serialize()
		key.IsPrivate = true
	} else {
		key.Version = binary.BigEndian.AppendUint32(nil, publicVersion(k.privateVersion()))
		key.Key = k.key.PublicKey()
	}
	return key
}

// String returns the base58check private serialization (xprv or tprv).
func (k *ExtendedKey) String() string {
	return k.toBIP32(true).B58Serialize()
}

// PublicString returns the base58check public serialization (xpub or
// tpub) of k.
func (k *ExtendedKey) PublicString() string {
	return k.toBIP32(false).B58Serialize()
}

// ParseExtendedKey decodes a private serialization produced by String.
// Public serializations fail with ErrPublicKeyOnly.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	raw, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExtendedKey, err)
	}
	if !raw.IsPrivate {
		return nil, ErrPublicKeyOnly
	}
	switch v := binary.BigEndian.Uint32(raw.Version); v {
	case VersionMainnetPrivate, VersionTestnetPrivate:
	default:
		return nil, fmt.Errorf("%w: private key under version 0x%08x", ErrInvalidExtendedKey, v)
	}

	key, err := crypto.PrivateKeyFromBytes(raw.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExtendedKey, err)
	}

	k := &ExtendedKey{
		key:         key,
		depth:       raw.Depth,
		childNumber: ChildNumberFromUint32(binary.BigEndian.Uint32(raw.ChildNumber)),
		version:     binary.BigEndian.Uint32(raw.Version),
	}
	copy(k.parentFingerprint[:], raw.FingerPrint)
	copy(k.chainCode[:], raw.ChainCode)

	if k.depth == 0 && (k.parentFingerprint != [FingerprintSize]byte{} || k.childNumber.Uint32() != 0) {
		return nil, fmt.Errorf("%w: master key with parent data", ErrInvalidExtendedKey)
	}
	return k, nil
}
