package mnemonic

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// WordListSize is the number of entries in every BIP-39 wordlist.
const WordListSize = 2048

// WordList maps an 11-bit index to a word. It is immutable and safe for
// concurrent use.
type WordList struct {
	lang  Language
	words []string
	// sorted is words in byte order, used for prefix search.
	sorted []string
}

// WordMap is the inverse of a WordList.
type WordMap struct {
	lang  Language
	index map[string]uint16
}

// table holds the lazily built resources of one language.
type table struct {
	listOnce sync.Once
	list     *WordList
	listErr  error

	mapOnce sync.Once
	wordMap *WordMap
}

var tables [numLanguages]table

// WordListFor returns the process-wide wordlist for lang, loading it on
// first use.
func WordListFor(lang Language) (*WordList, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, lang)
	}
	t := &tables[lang]
	t.listOnce.Do(func() {
		t.list, t.listErr = newWordList(lang, lang.words())
	})
	return t.list, t.listErr
}

// WordMapFor returns the process-wide word-to-index map for lang, building
// it from the wordlist on first use.
func WordMapFor(lang Language) (*WordMap, error) {
	list, err := WordListFor(lang)
	if err != nil {
		return nil, err
	}
	t := &tables[lang]
	t.mapOnce.Do(func() {
		t.wordMap = list.wordMap()
	})
	return t.wordMap, nil
}

// newWordList validates a raw wordlist resource. Entries are normalized to
// NFKD so that lookups match normalized phrases.
func newWordList(lang Language, raw []string) (*WordList, error) {
	if len(raw) != WordListSize {
		return nil, fmt.Errorf("%w: %s wordlist has %d entries, want %d",
			ErrUnsupportedLanguage, lang, len(raw), WordListSize)
	}

	words := make([]string, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, w := range raw {
		w = norm.NFKD.String(strings.TrimSpace(w))
		if w == "" {
			return nil, fmt.Errorf("%w: %s wordlist entry %d is empty", ErrUnsupportedLanguage, lang, i)
		}
		if _, dup := seen[w]; dup {
			return nil, fmt.Errorf("%w: %s wordlist has duplicate word %q", ErrUnsupportedLanguage, lang, w)
		}
		seen[w] = struct{}{}
		words[i] = w
	}

	sorted := slices.Clone(words)
	slices.Sort(sorted)

	return &WordList{lang: lang, words: words, sorted: sorted}, nil
}

func (wl *WordList) wordMap() *WordMap {
	index := make(map[string]uint16, len(wl.words))
	for i, w := range wl.words {
		index[w] = uint16(i)
	}
	return &WordMap{lang: wl.lang, index: index}
}

// Language returns the language of the list.
func (wl *WordList) Language() Language {
	return wl.lang
}

// Len returns the number of words, always WordListSize.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// Get returns the word at index. It panics if index >= WordListSize.
func (wl *WordList) Get(index uint16) string {
	return wl.words[index]
}

// Words returns a copy of the list in index order.
func (wl *WordList) Words() []string {
	return slices.Clone(wl.words)
}

// WordsByPrefix returns the words starting with prefix in sorted order,
// for auto-completion. It binary-searches the sorted view and scans forward
// while the prefix still matches.
func (wl *WordList) WordsByPrefix(prefix string) []string {
	prefix = norm.NFKD.String(prefix)
	start, _ := slices.BinarySearch(wl.sorted, prefix)
	end := start
	for end < len(wl.sorted) && strings.HasPrefix(wl.sorted[end], prefix) {
		end++
	}
	return slices.Clone(wl.sorted[start:end])
}

// Index returns the position of word in the list.
func (wm *WordMap) Index(word string) (uint16, error) {
	i, ok := wm.index[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return i, nil
}

// Contains reports whether word is in the list.
func (wm *WordMap) Contains(word string) bool {
	_, ok := wm.index[word]
	return ok
}
