// Package crypto provides the cryptographic primitives used by mnemonic and
// HD key derivation.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // BIP-32 mandates RIPEMD-160.
)

// Hash160Size is the length of a Hash160 digest in bytes.
const Hash160Size = ripemd160.Size

// SHA256 computes the SHA-256 digest of data.
func SHA256(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	first := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(first[:])
	return h.Sum(nil)
}

// HMACSHA512 computes HMAC-SHA512 of data under key.
func HMACSHA512(key, data []byte) [sha512.Size]byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	var out [sha512.Size]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// PBKDF2SHA512 stretches password with salt using PBKDF2 and HMAC-SHA512.
func PBKDF2SHA512(password, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLen, sha512.New)
}
