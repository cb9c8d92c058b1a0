package ingest

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// DefaultPunctuation is the set of characters removed from every token.
const DefaultPunctuation = `!()-[]{};:'"“”\,<>./?@#$%^&*_~`

// DefaultPossessiveSuffix is stripped once from the end of a lowercased token.
const DefaultPossessiveSuffix = "'s"

// NormalizerOptions controls how raw tokens become canonical words.
type NormalizerOptions struct {
	StripPossessive  bool
	PossessiveSuffix string
	Punctuation      string
	Stem             bool // english snowball stemming after stripping
}

// DefaultNormalizerOptions returns the standard normalization rules.
func DefaultNormalizerOptions() NormalizerOptions {
	return NormalizerOptions{
		StripPossessive:  true,
		PossessiveSuffix: DefaultPossessiveSuffix,
		Punctuation:      DefaultPunctuation,
	}
}

// Normalizer converts raw tokens into canonical words
type Normalizer struct {
	possessive string // empty when possessive stripping is off
	punct      map[rune]struct{}
	stem       bool
}

// NewNormalizer creates a normalizer. The punctuation set is built once.
func NewNormalizer(opts NormalizerOptions) *Normalizer {
	punct := make(map[rune]struct{}, len(opts.Punctuation))
	for _, r := range opts.Punctuation {
		punct[r] = struct{}{}
	}

	n := &Normalizer{punct: punct, stem: opts.Stem}
	if opts.StripPossessive {
		n.possessive = strings.ToLower(opts.PossessiveSuffix)
	}
	return n
}

var defaultNormalizer = NewNormalizer(DefaultNormalizerOptions())

// Normalize applies the default rules to a token.
//
//	Normalize("Word's.")     == "word"
//	Normalize("  HELLO!!  ") == "hello"
//	Normalize("---")         == ""
func Normalize(token string) string {
	return defaultNormalizer.Normalize(token)
}

// Normalize trims, lowercases, strips a trailing possessive and then
// removes punctuation anywhere in the word. The result may be empty.
func (n *Normalizer) Normalize(token string) string {
	word := strings.ToLower(strings.TrimSpace(token))

	if n.possessive != "" {
		word = n.stripPossessive(word)
	}

	word = n.stripPunctuation(word)

	if n.stem && word != "" {
		word = english.Stem(word, false)
	}
	return word
}

// stripPossessive removes the possessive suffix once. Trailing punctuation
// after the suffix is kept here and removed by stripPunctuation, so
// "word's." still loses its "'s".
func (n *Normalizer) stripPossessive(word string) string {
	body := strings.TrimRightFunc(word, n.isPunct)
	if !strings.HasSuffix(body, n.possessive) {
		return word
	}
	return body[:len(body)-len(n.possessive)] + word[len(body):]
}

func (n *Normalizer) isPunct(r rune) bool {
	_, ok := n.punct[r]
	return ok
}

func (n *Normalizer) stripPunctuation(word string) string {
	if len(n.punct) == 0 {
		return word
	}

	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if n.isPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
