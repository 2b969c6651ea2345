// Package mnemonic implements BIP-39 mnemonic phrases: encoding entropy as a
// checksummed word sequence, validating phrases and stretching them into
// seeds.
package mnemonic

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidEntropyLength = errors.New("invalid entropy length")
	ErrInvalidWordCount     = errors.New("invalid mnemonic word count")
	ErrInvalidWord          = errors.New("invalid mnemonic word")
	ErrInvalidChecksum      = errors.New("invalid mnemonic checksum")
	ErrUnsupportedLanguage  = errors.New("unsupported language")
)

// Entropy bounds in bits. Sizes must also be a multiple of 32.
const (
	MinEntropyBits = 128
	MaxEntropyBits = 256
)

// bitsPerWord is the width of a wordlist index.
const bitsPerWord = 11

// Mnemonic is a validated BIP-39 phrase together with the entropy it
// encodes. It is immutable.
type Mnemonic struct {
	entropy []byte
	lang    Language
	phrase  string
}

// NewEntropy returns bits/8 bytes from crypto/rand. bits must be one of
// 128, 160, 192, 224 or 256.
func NewEntropy(bits int) ([]byte, error) {
	return readEntropy(rand.Reader, bits)
}

func readEntropy(r io.Reader, bits int) ([]byte, error) {
	if !ValidEntropyBits(bits) {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidEntropyLength, bits)
	}
	entropy := make([]byte, bits/8)
	if _, err := io.ReadFull(r, entropy); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	return entropy, nil
}

// New generates a mnemonic with bits of entropy from crypto/rand.
func New(bits int, lang Language) (*Mnemonic, error) {
	return NewFromReader(rand.Reader, bits, lang)
}

// NewFromReader generates a mnemonic with bits of entropy read from r.
// r must be a cryptographically secure source outside of tests.
func NewFromReader(r io.Reader, bits int, lang Language) (*Mnemonic, error) {
	entropy, err := readEntropy(r, bits)
	if err != nil {
		return nil, err
	}
	return FromEntropy(entropy, lang)
}

// FromEntropy encodes entropy as a phrase in lang. The entropy length must
// be 16, 20, 24, 28 or 32 bytes.
func FromEntropy(entropy []byte, lang Language) (*Mnemonic, error) {
	if !ValidEntropyBits(len(entropy) * 8) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidEntropyLength, len(entropy))
	}
	list, err := WordListFor(lang)
	if err != nil {
		return nil, err
	}

	// entropy || SHA256(entropy)[0]. Only complete 11-bit groups are used,
	// which keeps the first len(entropy)/4 checksum bits.
	sum := crypto.SHA256(entropy)
	buf := append(slices.Clone(entropy), sum[0])

	words := make([]string, (len(entropy)*8+8)/bitsPerWord)
	for i := range words {
		words[i] = list.Get(readBits(buf, i*bitsPerWord, bitsPerWord))
	}

	return &Mnemonic{
		entropy: slices.Clone(entropy),
		lang:    lang,
		phrase:  strings.Join(words, lang.Separator()),
	}, nil
}

// FromPhrase parses and validates phrase in lang. The phrase is
// NFKD-normalized and split on whitespace; the stored phrase is the
// canonical single-separator form.
func FromPhrase(phrase string, lang Language) (*Mnemonic, error) {
	words := strings.Fields(norm.NFKD.String(phrase))
	entropy, err := decode(words, lang)
	if err != nil {
		return nil, err
	}
	return &Mnemonic{
		entropy: entropy,
		lang:    lang,
		phrase:  strings.Join(words, lang.Separator()),
	}, nil
}

// Validate checks the word count, the words and the checksum of phrase.
func Validate(phrase string, lang Language) error {
	_, err := FromPhrase(phrase, lang)
	return err
}

func decode(words []string, lang Language) ([]byte, error) {
	// The count is checked before any word lookup.
	if !validWordCount(len(words)) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordCount, len(words))
	}
	wm, err := WordMapFor(lang)
	if err != nil {
		return nil, err
	}

	totalBits := len(words) * bitsPerWord
	checksumBits := totalBits / 33
	entropyBits := totalBits - checksumBits

	buf := make([]byte, (totalBits+7)/8)
	for i, w := range words {
		idx, err := wm.Index(w)
		if err != nil {
			return nil, err
		}
		writeBits(buf, i*bitsPerWord, bitsPerWord, idx)
	}

	entropy := buf[:entropyBits/8]
	sum := crypto.SHA256(entropy)
	want := uint16(sum[0] >> (8 - checksumBits))
	if got := readBits(buf, entropyBits, checksumBits); got != want {
		return nil, ErrInvalidChecksum
	}
	return slices.Clone(entropy), nil
}

// Entropy returns a copy of the encoded entropy.
func (m *Mnemonic) Entropy() []byte {
	return slices.Clone(m.entropy)
}

// Language returns the wordlist language of the phrase.
func (m *Mnemonic) Language() Language {
	return m.lang
}

// Phrase returns the words joined by the language separator.
func (m *Mnemonic) Phrase() string {
	return m.phrase
}

// Words returns the individual words of the phrase.
func (m *Mnemonic) Words() []string {
	return strings.Fields(m.phrase)
}

// WordCount returns the number of words in the phrase.
func (m *Mnemonic) WordCount() int {
	return (len(m.entropy)*8 + len(m.entropy)/4) / bitsPerWord
}

// Seed derives the 64-byte seed for this mnemonic and passphrase.
func (m *Mnemonic) Seed(passphrase string) Seed {
	return NewSeed(m, passphrase)
}

// ValidEntropyBits reports whether bits is a supported entropy size: a
// multiple of 32 from 128 to 256.
func ValidEntropyBits(bits int) bool {
	return bits%32 == 0 && bits >= MinEntropyBits && bits <= MaxEntropyBits
}

// validWordCount accepts 12, 15, 18, 21 and 24.
func validWordCount(n int) bool {
	return n%3 == 0 && n >= 12 && n <= 24
}

// readBits returns n (<= 16) bits of buf starting at bit offset off,
// most significant bit first.
func readBits(buf []byte, off, n int) uint16 {
	var v uint16
	for i := off; i < off+n; i++ {
		bit := buf[i/8] >> (7 - uint(i%8)) & 1
		v = v<<1 | uint16(bit)
	}
	return v
}

// writeBits stores the low n bits of v into buf at bit offset off, most
// significant bit first. buf must be zeroed in that range.
func writeBits(buf []byte, off, n int, v uint16) {
	for i := 0; i < n; i++ {
		if v>>(n-1-i)&1 == 1 {
			pos := off + i
			buf[pos/8] |= 1 << (7 - uint(pos%8))
		}
	}
}
