package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Key sizes in bytes.
const (
	PrivateKeySize = 32
	PublicKeySize  = 33 // compressed
)

var (
	ErrInvalidKeyLength = errors.New("private key must be 32 bytes")
	ErrZeroKey          = errors.New("private key is zero")
	ErrKeyOutOfRange    = errors.New("private key is not below the curve order")
	ErrInvalidTweak     = errors.New("tweak is not below the curve order")
)

// PrivateKey is a secp256k1 private scalar in [1, n).
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte big-endian scalar.
// Unlike secp256k1.PrivKeyFromBytes it does not reduce modulo n: values of
// zero or at least n are rejected.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidKeyLength, len(b))
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, ErrKeyOutOfRange
	}
	if s.IsZero() {
		return nil, ErrZeroKey
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&s)}, nil
}

// DeriveChild returns a new key equal to (tweak + k) mod n. The receiver is
// not modified.
func (pk *PrivateKey) DeriveChild(tweak [32]byte) (*PrivateKey, error) {
	var t secp256k1.ModNScalar
	if overflow := t.SetBytes(&tweak); overflow != 0 {
		return nil, ErrInvalidTweak
	}
	var sum secp256k1.ModNScalar
	sum.Set(&pk.key.Key).Add(&t)
	if sum.IsZero() {
		return nil, ErrZeroKey
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&sum)}, nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}
