package hdkey

import (
	"fmt"
	"strconv"
)

// HardenedOffset is the first hardened child number (2^31).
const HardenedOffset uint32 = 0x80000000

// MaxIndex is the largest index within either the normal or the hardened
// range.
const MaxIndex = HardenedOffset - 1

// ChildNumber selects a child of an extended key: an index below 2^31 and
// whether derivation is hardened.
type ChildNumber struct {
	index    uint32
	hardened bool
}

// NewChildNumber returns the child number for index. index must not exceed
// MaxIndex.
func NewChildNumber(index uint32, hardened bool) (ChildNumber, error) {
	if index > MaxIndex {
		return ChildNumber{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return ChildNumber{index: index, hardened: hardened}, nil
}

// Normal returns the non-hardened child number for index. It panics if
// index exceeds MaxIndex and is meant for constant indices.
func Normal(index uint32) ChildNumber {
	c, err := NewChildNumber(index, false)
	if err != nil {
		panic(err)
	}
	return c
}

// Hardened returns the hardened child number for index. It panics if index
// exceeds MaxIndex and is meant for constant indices.
func Hardened(index uint32) ChildNumber {
	c, err := NewChildNumber(index, true)
	if err != nil {
		panic(err)
	}
	return c
}

// ChildNumberFromUint32 decodes the 32-bit wire form, where the top bit
// marks hardened derivation.
func ChildNumberFromUint32(v uint32) ChildNumber {
	return ChildNumber{index: v &^ HardenedOffset, hardened: v&HardenedOffset != 0}
}

// Index returns the index without the hardened bit.
func (c ChildNumber) Index() uint32 {
	return c.index
}

// IsHardened reports whether c selects hardened derivation.
func (c ChildNumber) IsHardened() bool {
	return c.hardened
}

// Uint32 returns the 32-bit wire form used in HMAC input and serialization.
func (c ChildNumber) Uint32() uint32 {
	if c.hardened {
		return c.index | HardenedOffset
	}
	return c.index
}

// String formats c as in a derivation path: "44'" or "0".
func (c ChildNumber) String() string {
	s := strconv.FormatUint(uint64(c.index), 10)
	if c.hardened {
		return s + "'"
	}
	return s
}
