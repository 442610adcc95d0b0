package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultPunctuation lists the Ethiopic word and sentence separators stripped
// from every word: wordspace, full stop, comma, semicolon, colon, preface colon.
var DefaultPunctuation = []string{"፡", "።", "፣", "፤", "፥", "፦"}

// UnicodeForm selects an optional Unicode normalization applied after
// punctuation removal and before trimming.
type UnicodeForm string

const (
	UnicodeFormNone UnicodeForm = "none"
	UnicodeFormNFC  UnicodeForm = "nfc"
)

// ParseUnicodeForm converts a config value into a UnicodeForm.
// An empty string means UnicodeFormNone.
func ParseUnicodeForm(s string) (UnicodeForm, error) {
	switch UnicodeForm(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnicodeFormNone:
		return UnicodeFormNone, nil
	case UnicodeFormNFC:
		return UnicodeFormNFC, nil
	default:
		return "", fmt.Errorf("unknown unicode form %q (want none or nfc)", s)
	}
}

// Normalizer cleans words before they are compared or stored.
// The zero value strips nothing but surrounding whitespace.
type Normalizer struct {
	replacer *strings.Replacer
	form     UnicodeForm
}

// NewNormalizer builds a Normalizer that removes every mark in punctuation.
// Empty marks are ignored.
func NewNormalizer(punctuation []string, form UnicodeForm) Normalizer {
	pairs := make([]string, 0, 2*len(punctuation))
	for _, p := range punctuation {
		if p == "" {
			continue
		}
		pairs = append(pairs, p, "")
	}

	n := Normalizer{form: form}
	if len(pairs) > 0 {
		n.replacer = strings.NewReplacer(pairs...)
	}
	return n
}

// DefaultNormalizer strips DefaultPunctuation without Unicode normalization.
func DefaultNormalizer() Normalizer {
	return NewNormalizer(DefaultPunctuation, UnicodeFormNone)
}

// Clean removes every punctuation mark from word and trims surrounding
// whitespace. Punctuation-only input yields "".
func (n Normalizer) Clean(word string) string {
	if n.replacer != nil {
		word = n.replacer.Replace(word)
	}
	// Composition runs after removal so a mark sitting between a base and a
	// combining character cannot leave a decomposed pair behind.
	if n.form == UnicodeFormNFC {
		word = norm.NFC.String(word)
	}
	return strings.TrimSpace(word)
}
