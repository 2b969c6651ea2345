package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// Language identifies a BIP-39 wordlist.
type Language int

// Supported languages. English is the zero value.
const (
	English Language = iota
	ChineseSimplified
	ChineseTraditional
	French
	Italian
	Japanese
	Korean
	Spanish
	Czech

	numLanguages
)

var languageNames = [numLanguages]string{
	English:            "english",
	ChineseSimplified:  "chinese-simplified",
	ChineseTraditional: "chinese-traditional",
	French:             "french",
	Italian:            "italian",
	Japanese:           "japanese",
	Korean:             "korean",
	Spanish:            "spanish",
	Czech:              "czech",
}

// words returns the bundled wordlist resource for the language.
func (l Language) words() []string {
	switch l {
	case English:
		return wordlists.English
	case ChineseSimplified:
		return wordlists.ChineseSimplified
	case ChineseTraditional:
		return wordlists.ChineseTraditional
	case French:
		return wordlists.French
	case Italian:
		return wordlists.Italian
	case Japanese:
		return wordlists.Japanese
	case Korean:
		return wordlists.Korean
	case Spanish:
		return wordlists.Spanish
	case Czech:
		return wordlists.Czech
	default:
		return nil
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l >= 0 && l < numLanguages
}

// Separator returns the string placed between words of a phrase.
// Japanese phrases use the ideographic space.
func (l Language) Separator() string {
	if l == Japanese {
		return "\u3000"
	}
	return " "
}

func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageNames[l]
}

// ParseLanguage converts a language name such as "english" or
// "chinese-simplified" to a Language. Underscores are accepted in place of
// hyphens and matching is case-insensitive.
func ParseLanguage(name string) (Language, error) {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for l, n := range languageNames {
		if n == s {
			return Language(l), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
}

// Languages returns every supported language.
func Languages() []Language {
	out := make([]Language, numLanguages)
	for i := range out {
		out[i] = Language(i)
	}
	return out
}
