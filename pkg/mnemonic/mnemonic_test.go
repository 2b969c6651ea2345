package mnemonic

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

const abandonAbout = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func repeatWord(word string, n int, last string) string {
	return strings.Repeat(word+" ", n) + last
}

// testEntropy returns n deterministic, non-trivial entropy bytes.
func testEntropy(n int, salt byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*37) ^ salt
	}
	return b
}

func TestFromEntropy_KnownVectors(t *testing.T) {
	// BIP-39 reference vectors (English).
	tests := []struct {
		entropy string
		phrase  string
	}{
		{"00000000000000000000000000000000", abandonAbout},
		{"7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f", "legal winner thank year wave sausage worth useful legal winner thank yellow"},
		{"80808080808080808080808080808080", "letter advice cage absurd amount doctor acoustic avoid letter advice cage above"},
		{"ffffffffffffffffffffffffffffffff", repeatWord("zoo", 11, "wrong")},
		{strings.Repeat("00", 24), repeatWord("abandon", 17, "agent")},
		{strings.Repeat("ff", 24), repeatWord("zoo", 17, "when")},
		{strings.Repeat("00", 32), repeatWord("abandon", 23, "art")},
		{strings.Repeat("ff", 32), repeatWord("zoo", 23, "vote")},
	}

	for _, tt := range tests {
		t.Run(tt.entropy, func(t *testing.T) {
			entropy, _ := hex.DecodeString(tt.entropy)
			m, err := FromEntropy(entropy, English)
			if err != nil {
				t.Fatalf("FromEntropy() error: %v", err)
			}
			if m.Phrase() != tt.phrase {
				t.Errorf("Phrase() = %q, want %q", m.Phrase(), tt.phrase)
			}
			if !bytes.Equal(m.Entropy(), entropy) {
				t.Errorf("Entropy() = %x, want %x", m.Entropy(), entropy)
			}
			if m.Language() != English {
				t.Errorf("Language() = %v, want English", m.Language())
			}
		})
	}
}

func TestFromEntropy_MatchesReference(t *testing.T) {
	for _, size := range []int{16, 20, 24, 28, 32} {
		for salt := byte(0); salt < 8; salt++ {
			entropy := testEntropy(size, salt*31)
			m, err := FromEntropy(entropy, English)
			if err != nil {
				t.Fatalf("FromEntropy(%d bytes) error: %v", size, err)
			}
			want, err := bip39.NewMnemonic(entropy)
			if err != nil {
				t.Fatalf("bip39.NewMnemonic() error: %v", err)
			}
			if m.Phrase() != want {
				t.Errorf("FromEntropy(%x) = %q, want %q", entropy, m.Phrase(), want)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, lang := range Languages() {
		for _, size := range []int{16, 20, 24, 28, 32} {
			entropy := testEntropy(size, byte(lang))
			m, err := FromEntropy(entropy, lang)
			if err != nil {
				t.Fatalf("%v: FromEntropy(%d bytes) error: %v", lang, size, err)
			}
			back, err := FromPhrase(m.Phrase(), lang)
			if err != nil {
				t.Fatalf("%v: FromPhrase() error: %v", lang, err)
			}
			if !bytes.Equal(back.Entropy(), entropy) {
				t.Errorf("%v: round trip entropy = %x, want %x", lang, back.Entropy(), entropy)
			}
			if back.Phrase() != m.Phrase() {
				t.Errorf("%v: round trip phrase = %q, want %q", lang, back.Phrase(), m.Phrase())
			}
		}
	}
}

func TestWordCountTable(t *testing.T) {
	tests := []struct {
		entropyBytes int
		words        int
	}{
		{16, 12},
		{20, 15},
		{24, 18},
		{28, 21},
		{32, 24},
	}

	for _, tt := range tests {
		m, err := FromEntropy(make([]byte, tt.entropyBytes), English)
		if err != nil {
			t.Fatalf("FromEntropy(%d bytes) error: %v", tt.entropyBytes, err)
		}
		if m.WordCount() != tt.words {
			t.Errorf("WordCount() = %d, want %d", m.WordCount(), tt.words)
		}
		if got := len(m.Words()); got != tt.words {
			t.Errorf("len(Words()) = %d, want %d", got, tt.words)
		}
	}
}

func TestFromEntropy_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 1, 12, 15, 17, 31, 33, 64} {
		_, err := FromEntropy(make([]byte, n), English)
		if !errors.Is(err, ErrInvalidEntropyLength) {
			t.Errorf("FromEntropy(%d bytes) error = %v, want %v", n, err, ErrInvalidEntropyLength)
		}
	}
}

func TestFromEntropy_CopiesInput(t *testing.T) {
	entropy := make([]byte, 16)
	m, err := FromEntropy(entropy, English)
	if err != nil {
		t.Fatalf("FromEntropy() error: %v", err)
	}
	entropy[0] = 0xff
	if m.Entropy()[0] != 0 {
		t.Error("mutating the input changed the mnemonic entropy")
	}
	m.Entropy()[1] = 0xff
	if m.Entropy()[1] != 0 {
		t.Error("mutating Entropy() result changed the mnemonic")
	}
}

func TestNew(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		m, err := New(bits, English)
		if err != nil {
			t.Fatalf("New(%d) error: %v", bits, err)
		}
		if got := len(m.Entropy()) * 8; got != bits {
			t.Errorf("New(%d) entropy bits = %d", bits, got)
		}
		if err := Validate(m.Phrase(), English); err != nil {
			t.Errorf("New(%d) produced invalid phrase: %v", bits, err)
		}
	}
}

func TestNew_Unique(t *testing.T) {
	m1, err := New(256, English)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m2, err := New(256, English)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m1.Phrase() == m2.Phrase() {
		t.Error("two generated mnemonics should not be identical")
	}
}

func TestNew_InvalidBits(t *testing.T) {
	for _, bits := range []int{0, 96, 127, 129, 255, 288, 512} {
		if _, err := New(bits, English); !errors.Is(err, ErrInvalidEntropyLength) {
			t.Errorf("New(%d) error = %v, want %v", bits, err, ErrInvalidEntropyLength)
		}
	}
}

func TestNewFromReader(t *testing.T) {
	entropy := testEntropy(32, 0x5a)
	m, err := NewFromReader(bytes.NewReader(entropy), 256, English)
	if err != nil {
		t.Fatalf("NewFromReader() error: %v", err)
	}
	want, err := FromEntropy(entropy, English)
	if err != nil {
		t.Fatalf("FromEntropy() error: %v", err)
	}
	if m.Phrase() != want.Phrase() {
		t.Errorf("NewFromReader() = %q, want %q", m.Phrase(), want.Phrase())
	}

	if _, err := NewFromReader(bytes.NewReader(entropy[:10]), 256, English); err == nil {
		t.Error("NewFromReader() should fail on a short reader")
	}
}

func TestNewEntropy(t *testing.T) {
	e, err := NewEntropy(160)
	if err != nil {
		t.Fatalf("NewEntropy() error: %v", err)
	}
	if len(e) != 20 {
		t.Errorf("NewEntropy(160) length = %d, want 20", len(e))
	}
}

func TestFromPhrase_Errors(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		wantErr error
	}{
		{"empty string", "", ErrInvalidWordCount},
		{"single word", "abandon", ErrInvalidWordCount},
		{"eleven words", repeatWord("abandon", 10, "about"), ErrInvalidWordCount},
		{"thirteen words", repeatWord("abandon", 12, "about"), ErrInvalidWordCount},
		{"twenty-seven words", repeatWord("abandon", 26, "about"), ErrInvalidWordCount},
		{"count checked before words", repeatWord("abandon", 12, "klingon"), ErrInvalidWordCount},
		{"count checked before words 25", repeatWord("klingon", 24, "klingon"), ErrInvalidWordCount},
		{"unknown word", repeatWord("abandon", 11, "klingon"), ErrInvalidWord},
		{"prefix is not a word", repeatWord("abandon", 11, "abou"), ErrInvalidWord},
		{"wrong checksum 12", repeatWord("abandon", 11, "abandon"), ErrInvalidChecksum},
		{"wrong checksum 24", repeatWord("abandon", 23, "abandon"), ErrInvalidChecksum},
		{"wrong language", abandonAbout, ErrInvalidWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang := English
			if tt.name == "wrong language" {
				lang = Korean
			}
			_, err := FromPhrase(tt.phrase, lang)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FromPhrase() error = %v, want %v", err, tt.wantErr)
			}
			if err := Validate(tt.phrase, lang); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromPhrase_NormalizesWhitespace(t *testing.T) {
	messy := "  abandon\tabandon abandon  abandon abandon abandon\nabandon abandon abandon abandon abandon about \n"
	m, err := FromPhrase(messy, English)
	if err != nil {
		t.Fatalf("FromPhrase() error: %v", err)
	}
	if m.Phrase() != abandonAbout {
		t.Errorf("Phrase() = %q, want %q", m.Phrase(), abandonAbout)
	}
	if !bytes.Equal(m.Entropy(), make([]byte, 16)) {
		t.Errorf("Entropy() = %x, want zeros", m.Entropy())
	}
}

func TestJapaneseSeparator(t *testing.T) {
	m, err := FromEntropy(make([]byte, 16), Japanese)
	if err != nil {
		t.Fatalf("FromEntropy() error: %v", err)
	}
	if !strings.Contains(m.Phrase(), "\u3000") {
		t.Errorf("Japanese phrase %q should use ideographic spaces", m.Phrase())
	}

	// ASCII spaces are accepted and canonicalized.
	ascii := strings.Join(m.Words(), " ")
	back, err := FromPhrase(ascii, Japanese)
	if err != nil {
		t.Fatalf("FromPhrase() error: %v", err)
	}
	if back.Phrase() != m.Phrase() {
		t.Errorf("Phrase() = %q, want %q", back.Phrase(), m.Phrase())
	}
	if back.Seed("") != m.Seed("") {
		t.Error("seed should not depend on the separator used for input")
	}
}

// flipPhraseBit flips one bit of the 11-bit index concatenation of phrase.
func flipPhraseBit(t *testing.T, phrase string, bit int) string {
	t.Helper()
	list := englishList(t)
	wm, err := WordMapFor(English)
	if err != nil {
		t.Fatalf("WordMapFor() error: %v", err)
	}
	words := strings.Fields(phrase)
	out := make([]string, len(words))
	for i, w := range words {
		idx, err := wm.Index(w)
		if err != nil {
			t.Fatalf("Index(%q) error: %v", w, err)
		}
		if i == bit/bitsPerWord {
			idx ^= 1 << (bitsPerWord - 1 - bit%bitsPerWord)
		}
		out[i] = list.Get(idx)
	}
	return strings.Join(out, " ")
}

func TestChecksumSensitivity(t *testing.T) {
	for _, size := range []int{16, 32} {
		m, err := FromEntropy(testEntropy(size, 0x42), English)
		if err != nil {
			t.Fatalf("FromEntropy() error: %v", err)
		}
		totalBits := m.WordCount() * bitsPerWord
		entropyBits := size * 8

		for bit := 0; bit < totalBits; bit++ {
			flipped := flipPhraseBit(t, m.Phrase(), bit)
			err := Validate(flipped, English)

			if bit >= entropyBits {
				// A flipped checksum bit can never verify.
				if !errors.Is(err, ErrInvalidChecksum) {
					t.Errorf("%d bytes, bit %d: Validate() error = %v, want %v", size, bit, err, ErrInvalidChecksum)
				}
				continue
			}
			// A flipped entropy bit is accepted only on a genuine checksum
			// collision, which the reference implementation must agree on.
			if err != nil && !errors.Is(err, ErrInvalidChecksum) {
				t.Errorf("%d bytes, bit %d: Validate() error = %v, want %v", size, bit, err, ErrInvalidChecksum)
			}
			if want := bip39.IsMnemonicValid(flipped); (err == nil) != want {
				t.Errorf("%d bytes, bit %d: Validate() = %v, reference valid = %v", size, bit, err, want)
			}
		}
	}
}

func TestCzech_MatchesReference(t *testing.T) {
	bip39.SetWordList(wordlists.Czech)
	t.Cleanup(func() { bip39.SetWordList(wordlists.English) })

	for _, size := range []int{16, 20, 24, 28, 32} {
		entropy := testEntropy(size, 0x5a)
		m, err := FromEntropy(entropy, Czech)
		if err != nil {
			t.Fatalf("FromEntropy(%d bytes) error: %v", size, err)
		}
		want, err := bip39.NewMnemonic(entropy)
		if err != nil {
			t.Fatalf("bip39.NewMnemonic() error: %v", err)
		}
		if m.Phrase() != norm.NFKD.String(want) {
			t.Errorf("FromEntropy(%x, Czech) = %q, want %q", entropy, m.Phrase(), want)
		}
		if err := Validate(want, Czech); err != nil {
			t.Errorf("Validate(%q, Czech) error: %v", want, err)
		}
	}
}

func TestValidate_MatchesReference(t *testing.T) {
	phrases := []string{
		abandonAbout,
		repeatWord("abandon", 23, "art"),
		repeatWord("zoo", 11, "wrong"),
		repeatWord("zoo", 11, "zoo"),
		"legal winner thank year wave sausage worth useful legal winner thank yellow",
		"legal winner thank year wave sausage worth useful legal winner thank thank",
	}
	for _, p := range phrases {
		err := Validate(p, English)
		if want := bip39.IsMnemonicValid(p); (err == nil) != want {
			t.Errorf("Validate(%q) = %v, reference valid = %v", p, err, want)
		}
	}
}

func TestBits(t *testing.T) {
	buf := make([]byte, 3)
	writeBits(buf, 3, 11, 0x5a5)
	if got := readBits(buf, 3, 11); got != 0x5a5 {
		t.Errorf("readBits() = %#x, want 0x5a5", got)
	}
	if buf[0]>>5 != 0 || buf[1]&0x03 != 0 || buf[2] != 0 {
		t.Errorf("writeBits() touched bits outside its range: %08b", buf)
	}
}
