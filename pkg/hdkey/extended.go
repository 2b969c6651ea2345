// Package hdkey implements BIP-32 hierarchical deterministic private key
// derivation over secp256k1.
package hdkey

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
)

var (
	ErrDepthTooLarge     = errors.New("derivation depth exceeds 255")
	ErrInvalidSeedLength = errors.New("invalid seed length")
	ErrInvalidPath       = errors.New("invalid derivation path")
	ErrIndexOutOfRange   = errors.New("child index out of range")
	ErrPublicKeyOnly     = errors.New("extended key has no private key")
)

// Sizes and limits, in bytes unless noted.
const (
	MinSeedSize     = 16  // shortest seed accepted by NewMasterKey
	MaxSeedSize     = 64  // longest seed, the BIP-39 output size
	ChainCodeSize   = 32
	FingerprintSize = 4
	MaxDepth        = 255 // levels; a key at MaxDepth has no children
)

var masterHMACKey = []byte("Bitcoin seed")

// ExtendedKey is a private key with the chain code and position metadata
// needed to derive children. Derivation never modifies the receiver, so an
// ExtendedKey may be shared between goroutines until Zero is called.
type ExtendedKey struct {
	key               *crypto.PrivateKey
	chainCode         [ChainCodeSize]byte
	depth             uint8
	childNumber       ChildNumber
	parentFingerprint [FingerprintSize]byte
	version           uint32
}

// NewMasterKey derives the root key from a seed of 16 to 64 bytes.
func NewMasterKey(seed []byte) (*ExtendedKey, error) {
	return NewMasterKeyWithVersion(seed, 0)
}

// NewMasterKeyWithVersion is NewMasterKey with an explicit serialization
// version that every descendant inherits.
func NewMasterKeyWithVersion(seed []byte, version uint32) (*ExtendedKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d-%d", ErrInvalidSeedLength, len(seed), MinSeedSize, MaxSeedSize)
	}

	i := crypto.HMACSHA512(masterHMACKey, seed)
	defer clear(i[:])

	key, err := crypto.PrivateKeyFromBytes(i[:32])
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	k := &ExtendedKey{key: key, version: version}
	copy(k.chainCode[:], i[32:])
	return k, nil
}

// DeriveChild derives the child selected by c.
func (k *ExtendedKey) DeriveChild(c ChildNumber) (*ExtendedKey, error) {
	if k.depth == MaxDepth {
		return nil, ErrDepthTooLarge
	}

	pub := k.key.PublicKey()
	data := make([]byte, 0, 1+crypto.PrivateKeySize+4)
	if c.IsHardened() {
		data = append(data, 0x00)
		data = append(data, k.key.Serialize()...)
	} else {
		data = append(data, pub...)
	}
	data = binary.BigEndian.AppendUint32(data, c.Uint32())

	i := crypto.HMACSHA512(k.chainCode[:], data)
	clear(data)
	defer clear(i[:])

	var il [32]byte
	copy(il[:], i[:32])
	key, err := k.key.DeriveChild(il)
	clear(il[:])
	if err != nil {
		return nil, fmt.Errorf("derive child %s: %w", c, err)
	}

	child := &ExtendedKey{
		key:               key,
		depth:             k.depth + 1,
		childNumber:       c,
		parentFingerprint: fingerprint(pub),
		version:           k.version,
	}
	copy(child.chainCode[:], i[32:])
	return child, nil
}

// DerivePath applies every component of p in order. The first failing step
// aborts the walk; its error is wrapped with the step position. Intermediate
// keys are wiped; k itself is left untouched.
func (k *ExtendedKey) DerivePath(p Path) (*ExtendedKey, error) {
	if len(p) == 0 {
		return k.clone(), nil
	}
	current := k
	for i, c := range p {
		child, err := current.DeriveChild(c)
		if current != k {
			current.Zero()
		}
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, c, err)
		}
		current = child
	}
	return current, nil
}

func (k *ExtendedKey) clone() *ExtendedKey {
	key, err := crypto.PrivateKeyFromBytes(k.key.Serialize())
	if err != nil {
		// k.key was validated on construction.
		panic(err)
	}
	c := *k
	c.key = key
	return &c
}

func fingerprint(pub []byte) [FingerprintSize]byte {
	var fp [FingerprintSize]byte
	copy(fp[:], crypto.Hash160(pub))
	return fp
}

// PrivateKeyBytes returns the 32-byte private scalar.
func (k *ExtendedKey) PrivateKeyBytes() []byte {
	return k.key.Serialize()
}

// PublicKeyBytes returns the 33-byte compressed public key.
func (k *ExtendedKey) PublicKeyBytes() []byte {
	return k.key.PublicKey()
}

// ChainCode returns a copy of the chain code.
func (k *ExtendedKey) ChainCode() [ChainCodeSize]byte { return k.chainCode }

// Depth is the number of derivations from the master key.
func (k *ExtendedKey) Depth() uint8 { return k.depth }

// ChildNumber is the index k was derived at; zero for a master key.
func (k *ExtendedKey) ChildNumber() ChildNumber { return k.childNumber }

// ParentFingerprint identifies the parent; all zeros for a master key.
func (k *ExtendedKey) ParentFingerprint() [FingerprintSize]byte { return k.parentFingerprint }

// Version is the serialization version; zero means mainnet xprv.
func (k *ExtendedKey) Version() uint32 { return k.version }

// IsMaster reports whether k is a root key.
func (k *ExtendedKey) IsMaster() bool { return k.depth == 0 }

// Fingerprint returns the first four bytes of Hash160 of k's public key,
// the value children record as their parent fingerprint.
func (k *ExtendedKey) Fingerprint() [FingerprintSize]byte {
	return fingerprint(k.key.PublicKey())
}

// Zero wipes the private scalar and chain code. k must not be used
// afterwards.
func (k *ExtendedKey) Zero() {
	k.key.Zero()
	clear(k.chainCode[:])
}
